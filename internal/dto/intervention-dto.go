package dto

import "github.com/aarondl/null/v8"

// CreateInterventionDTO - вмешательство, открываемое при принятии заявки.
type CreateInterventionDTO struct {
	Demande    int      `json:"demande"`
	Status     string   `json:"status"`
	Priorite   string   `json:"priorite"`
	Technicien null.Int `json:"technicien"`
	DateDebut  string   `json:"date_debut"`
}

// UpdateInterventionDTO - правка вмешательства в работе. Форма всегда
// присылает все поля, поэтому PATCH отправляет их целиком.
type UpdateInterventionDTO struct {
	Priorite           string      `form:"priorite" json:"priorite" validate:"required,oneof=Haute Moyenne Basse"`
	Technicien         null.Int    `form:"technicien" json:"technicien" validate:"omitempty,gt=0"`
	ComposantsUtilises []int       `form:"composants_utilises" json:"composants_utilises" validate:"dive,gt=0"`
	Description        null.String `form:"description" json:"description" validate:"omitempty,max=2000"`
}

type IrreparableDTO struct {
	Cause string `form:"cause_irreparable" json:"cause_irreparable" validate:"notblank,max=500"`
}

// InterventionStatusDTO - тело PATCH при закрытии вмешательства.
type InterventionStatusDTO struct {
	Status           string `json:"status"`
	DateFin          string `json:"date_fin,omitempty"`
	CauseIrreparable string `json:"cause_irreparable,omitempty"`
}
