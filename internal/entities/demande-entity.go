package entities

import (
	"github.com/aarondl/null/v8"

	"maintenance-portal/pkg/constants"
)

// Demande - заявка на ремонт, поданная через публичную форму.
type Demande struct {
	ID            int            `json:"id"`
	Nom           string         `json:"nom"`
	Prenom        string         `json:"prenom"`
	Email         string         `json:"email"`
	Telephone     null.String    `json:"telephone"`
	Service       null.String    `json:"service"`
	TypeMateriel  string         `json:"type_materiel"`
	PanneDeclaree string         `json:"panne_declaree"`
	Status        string         `json:"status"`
	DateCreation  null.String    `json:"date_creation"`
	Interventions []Intervention `json:"interventions"`
}

func (d Demande) Demandeur() string {
	if d.Prenom == "" {
		return d.Nom
	}
	return d.Prenom + " " + d.Nom
}

func (d Demande) StatusLabel() string {
	return constants.DemandeStatusLabel(d.Status)
}

// Actionable - заявку ещё можно принять или отклонить.
func (d Demande) Actionable() bool {
	return constants.IsDemandeActionable(d.Status)
}
