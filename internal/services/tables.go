package services

import (
	"maintenance-portal/internal/entities"
	"maintenance-portal/pkg/constants"
	"maintenance-portal/pkg/listview"
	"maintenance-portal/pkg/utils"
)

func dateCell(v any) string {
	return utils.FormatDateFR(listview.Text(v))
}

func DemandeTable() listview.Table[entities.Demande] {
	return listview.Table[entities.Demande]{
		Columns: []listview.Column[entities.Demande]{
			{Header: "N°", Field: "id"},
			{Header: "Demandeur", Value: func(d entities.Demande) any { return d.Demandeur() }},
			{Header: "Service", Field: "service"},
			{Header: "Type de matériel", Field: "type_materiel"},
			{Header: "Statut", Value: func(d entities.Demande) any { return d.StatusLabel() }},
			{Header: "Date de création", Field: "date_creation", Render: dateCell},
		},
		IDField: "id",
		BaseURL: "/demandes",
	}
}

// InterventionTable; technicians - подписи технических специалистов, может быть nil.
func InterventionTable(technicians map[string]string) listview.Table[entities.Intervention] {
	return listview.Table[entities.Intervention]{
		Columns: []listview.Column[entities.Intervention]{
			{Header: "N°", Field: "id"},
			{Header: "Demande", Field: "demande"},
			{Header: "Statut", Field: "status", Render: func(v any) string {
				return constants.InterventionStatusLabel(listview.Text(v))
			}},
			{Header: "Priorité", Field: "priorite"},
			{Header: "Technicien", Value: func(i entities.Intervention) any {
				id := utils.NullIntToString(i.Technicien)
				if name, ok := technicians[id]; ok {
					return name
				}
				return id
			}},
			{Header: "Début", Field: "date_debut", Render: dateCell},
			{Header: "Fin", Field: "date_fin", Render: dateCell},
		},
		IDField: "id",
		BaseURL: "/interventions",
	}
}

func ComposantTable() listview.Table[entities.Composant] {
	return listview.Table[entities.Composant]{
		Columns: []listview.Column[entities.Composant]{
			{Header: "Nom", Field: "nom"},
			{Header: "Type", Field: "type"},
			{Header: "Catégorie", Field: "categorie"},
			{Header: "Quantité", Field: "quantite"},
			{Header: "Disponible", Field: "disponible"},
			{Header: "Ajouté le", Field: "date_ajout", Render: dateCell},
		},
		IDField: "id",
		BaseURL: "/composants",
	}
}

func EquipementTable() listview.Table[entities.Equipement] {
	return listview.Table[entities.Equipement]{
		Columns: []listview.Column[entities.Equipement]{
			{Header: "Désignation", Field: "designation"},
			{Header: "Modèle", Field: "modele"},
			{Header: "N° de série", Field: "numero_serie"},
			{Header: "Observation", Field: "observation"},
			{Header: "Ajouté le", Field: "date_ajout", Render: dateCell},
		},
		IDField: "id",
		BaseURL: "/equipements",
	}
}

func UserTable() listview.Table[entities.User] {
	return listview.Table[entities.User]{
		Columns: []listview.Column[entities.User]{
			{Header: "Identifiant", Field: "username"},
			{Header: "E-mail", Field: "email"},
			{Header: "Rôle", Value: func(u entities.User) any { return u.RoleLabel() }},
		},
		IDField: "id",
		BaseURL: "/users",
	}
}
