package entities

import (
	"github.com/aarondl/null/v8"

	"maintenance-portal/pkg/constants"
)

type Intervention struct {
	ID                 int         `json:"id"`
	Status             string      `json:"status"`
	Priorite           string      `json:"priorite"`
	Technicien         null.Int    `json:"technicien"`
	ComposantsUtilises []int       `json:"composants_utilises"`
	Demande            null.Int    `json:"demande"`
	Description        null.String `json:"description"`
	DateDebut          null.String `json:"date_debut"`
	DateFin            null.String `json:"date_fin"`
	CauseIrreparable   null.String `json:"cause_irreparable"`
}

// Editable - поля можно менять только пока работы идут.
func (i Intervention) Editable() bool {
	return i.Status == constants.InterventionEnCours
}

func (i Intervention) Irreparable() bool {
	return i.Status == constants.InterventionIrreparable
}

func (i Intervention) StatusLabel() string {
	return constants.InterventionStatusLabel(i.Status)
}

func (i Intervention) UsesComposant(id int) bool {
	for _, c := range i.ComposantsUtilises {
		if c == id {
			return true
		}
	}
	return false
}
