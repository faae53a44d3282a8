package dto

import "github.com/aarondl/null/v8"

type EquipementDTO struct {
	Modele      null.String `form:"modele" json:"modele" validate:"omitempty,max=100"`
	NumeroSerie null.String `form:"numero_serie" json:"numero_serie" validate:"omitempty,max=100"`
	Designation string      `form:"designation" json:"designation" validate:"notblank,max=500"`
	Observation null.String `form:"observation" json:"observation" validate:"omitempty,max=2000"`
}

// EquipementsPDFEmailDTO - отправка PDF-выгрузки оборудования на почту.
type EquipementsPDFEmailDTO struct {
	Email string `form:"email" json:"email" validate:"required,email"`
}
