package dto

import "github.com/aarondl/null/v8"

// CreateDemandeDTO - публичная форма подачи заявки.
type CreateDemandeDTO struct {
	Nom           string      `form:"nom" json:"nom" validate:"notblank,max=100"`
	Prenom        string      `form:"prenom" json:"prenom" validate:"notblank,max=100"`
	Email         string      `form:"email" json:"email" validate:"required,email"`
	Telephone     null.String `form:"telephone" json:"telephone" validate:"omitempty,phone_fr"`
	Service       null.String `form:"service" json:"service" validate:"omitempty,max=100"`
	TypeMateriel  string      `form:"type_materiel" json:"type_materiel" validate:"notblank,max=100"`
	PanneDeclaree string      `form:"panne_declaree" json:"panne_declaree" validate:"notblank,max=2000"`

	// Заполняется сервисом, из формы не читается
	Status string `form:"-" json:"status"`
}

type DemandeStatusDTO struct {
	Status string `json:"status"`
}

// AcceptDemandeDTO - параметры вмешательства, открываемого при принятии.
// Пустой приоритет означает Moyenne.
type AcceptDemandeDTO struct {
	Priorite   string   `form:"priorite" validate:"omitempty,oneof=Haute Moyenne Basse"`
	Technicien null.Int `form:"technicien" validate:"omitempty,gt=0"`
}
