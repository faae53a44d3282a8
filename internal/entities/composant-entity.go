package entities

import "github.com/aarondl/null/v8"

// Composant - запчасть на складе.
type Composant struct {
	ID         int         `json:"id"`
	Nom        string      `json:"nom"`
	Type       string      `json:"type"`
	Quantite   int         `json:"quantite"`
	Disponible bool        `json:"disponible"`
	Categorie  null.String `json:"categorie"`
	DateAjout  null.String `json:"date_ajout"`
}
