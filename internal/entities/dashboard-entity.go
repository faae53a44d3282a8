package entities

// Dashboard - сводка, которую отдаёт /dashboard/.
type Dashboard struct {
	TotalDemandes            int            `json:"total_demandes"`
	TotalInterventions       int            `json:"total_interventions"`
	TotalComposants          int            `json:"total_composants"`
	TotalEquipements         int            `json:"total_equipements"`
	DemandesParStatut        map[string]int `json:"demandes_par_statut"`
	InterventionsParStatut   map[string]int `json:"interventions_par_statut"`
	InterventionsParPriorite map[string]int `json:"interventions_par_priorite"`
	DernieresDemandes        []Demande      `json:"dernieres_demandes"`
}
