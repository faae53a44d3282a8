package services

import (
	"strconv"

	"maintenance-portal/internal/entities"
	"maintenance-portal/pkg/constants"
	"maintenance-portal/pkg/listview"
	"maintenance-portal/pkg/utils"
)

// Фасеты по ресурсам. ID фасета используется в строке запроса: filter[<id>].

func DemandeFacets() []listview.Facet[entities.Demande] {
	dateCreation := func(d entities.Demande) string { return d.DateCreation.String }
	return []listview.Facet[entities.Demande]{
		listview.DateFacet("date", "Date de création", dateCreation),
		listview.DateRangeFacet("periode", "Période", dateCreation),
		listview.EnumFacet("status", "Statut", func(d entities.Demande) string { return d.Status }, constants.DemandeStatusLabels),
		listview.EnumFacet("type_materiel", "Type de matériel", func(d entities.Demande) string { return d.TypeMateriel }, nil),
		demandePriorityFacet(),
	}
}

// demandePriorityFacet - приоритет берётся из вложенных вмешательств:
// достаточно одного совпадения. Заявка без вмешательств проходит фильтр.
func demandePriorityFacet() listview.Facet[entities.Demande] {
	return listview.Facet[entities.Demande]{
		ID:    "priorite",
		Label: "Priorité",
		Kind:  listview.KindSelect,
		Options: func(items []entities.Demande) []listview.Option {
			var nested []entities.Intervention
			for _, d := range items {
				nested = append(nested, d.Interventions...)
			}
			return listview.EnumOptions(nested, func(i entities.Intervention) string { return i.Priorite }, nil)
		},
		Match: func(d entities.Demande, value string) bool {
			if len(d.Interventions) == 0 {
				return true
			}
			for _, i := range d.Interventions {
				if i.Priorite == value {
					return true
				}
			}
			return false
		},
	}
}

// InterventionFacets; technicians - подписи "id → имя", может быть nil.
func InterventionFacets(technicians map[string]string) []listview.Facet[entities.Intervention] {
	dateDebut := func(i entities.Intervention) string { return i.DateDebut.String }
	return []listview.Facet[entities.Intervention]{
		listview.DateFacet("date", "Date de début", dateDebut),
		listview.DateRangeFacet("periode", "Période", dateDebut),
		listview.EnumFacet("status", "Statut", func(i entities.Intervention) string { return i.Status }, constants.InterventionStatusLabels),
		listview.EnumFacet("priorite", "Priorité", func(i entities.Intervention) string { return i.Priorite }, nil),
		listview.EnumFacet("technicien", "Technicien", func(i entities.Intervention) string {
			return utils.NullIntToString(i.Technicien)
		}, technicians),
	}
}

func ComposantFacets() []listview.Facet[entities.Composant] {
	return []listview.Facet[entities.Composant]{
		listview.DateFacet("date", "Date d'ajout", func(c entities.Composant) string { return c.DateAjout.String }),
		listview.EnumFacet("type", "Type", func(c entities.Composant) string { return c.Type }, nil),
		listview.EnumFacet("categorie", "Catégorie", func(c entities.Composant) string { return c.Categorie.String }, nil),
		listview.EnumFacet("disponible", "Disponibilité", func(c entities.Composant) string {
			return strconv.FormatBool(c.Disponible)
		}, constants.AvailabilityLabels),
	}
}

func EquipementFacets() []listview.Facet[entities.Equipement] {
	return []listview.Facet[entities.Equipement]{
		listview.DateFacet("date", "Date d'ajout", func(e entities.Equipement) string { return e.DateAjout.String }),
		listview.EnumFacet("modele", "Modèle", func(e entities.Equipement) string { return e.Modele.String }, nil),
	}
}

func UserFacets() []listview.Facet[entities.User] {
	return []listview.Facet[entities.User]{
		listview.EnumFacet("role", "Rôle", func(u entities.User) string { return strconv.FormatBool(u.IsStaff) }, map[string]string{
			"true":  "Administrateur",
			"false": "Technicien",
		}),
	}
}

// TechnicianLabels строит подписи для фасета "technicien".
func TechnicianLabels(users []entities.User) map[string]string {
	labels := make(map[string]string, len(users))
	for _, u := range users {
		labels[strconv.Itoa(u.ID)] = u.Username
	}
	return labels
}
