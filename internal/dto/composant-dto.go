package dto

import "github.com/aarondl/null/v8"

type ComposantDTO struct {
	Nom        string      `form:"nom" json:"nom" validate:"notblank,max=100"`
	Type       string      `form:"type" json:"type" validate:"required,oneof=Nouveau Ancien"`
	Quantite   int         `form:"quantite" json:"quantite" validate:"gte=0"`
	Disponible bool        `form:"disponible" json:"disponible"`
	Categorie  null.String `form:"categorie" json:"categorie" validate:"omitempty,max=100"`
}
