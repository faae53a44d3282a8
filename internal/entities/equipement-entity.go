package entities

import "github.com/aarondl/null/v8"

// Equipement - единица оборудования. Создаётся вручную или
// автоматически, когда вмешательство признано нерентабельным.
type Equipement struct {
	ID          int         `json:"id"`
	Modele      null.String `json:"modele"`
	NumeroSerie null.String `json:"numero_serie"`
	Designation string      `json:"designation"`
	Observation null.String `json:"observation"`
	DateAjout   null.String `json:"date_ajout"`
}
