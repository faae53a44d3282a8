package constants

// --- СТАТУСЫ ЗАЯВОК (совпадают с кодами API) ---
const (
	DemandeNouvelle  = "Nouvelle"
	DemandeAcceptee  = "Acceptee"
	DemandeRejetee   = "Rejetee"
	DemandeTerminee  = "Terminee"
	DemandeEnAttente = "EnAttente"
)

// --- СТАТУСЫ ВМЕШАТЕЛЬСТВ ---
const (
	InterventionEnCours     = "enCours"
	InterventionTermine     = "Termine"
	InterventionIrreparable = "Irreparable"
)

const (
	PrioriteHaute   = "Haute"
	PrioriteMoyenne = "Moyenne"
	PrioriteBasse   = "Basse"
)

const (
	ComposantNouveau = "Nouveau"
	ComposantAncien  = "Ancien"
)

var DemandeStatusLabels = map[string]string{
	DemandeNouvelle:  "Nouvelle",
	DemandeAcceptee:  "Acceptée",
	DemandeRejetee:   "Rejetée",
	DemandeTerminee:  "Terminée",
	DemandeEnAttente: "En attente",
}

var InterventionStatusLabels = map[string]string{
	InterventionEnCours:     "En cours",
	InterventionTermine:     "Terminé",
	InterventionIrreparable: "Irréparable",
}

var AvailabilityLabels = map[string]string{
	"true":  "Disponible",
	"false": "Indisponible",
}

// Финальные статусы вмешательства
var FinalInterventionStatuses = []string{
	InterventionTermine,
	InterventionIrreparable,
}

func IsFinalInterventionStatus(code string) bool {
	for _, s := range FinalInterventionStatuses {
		if s == code {
			return true
		}
	}
	return false
}

// Заявку можно принять или отклонить только до начала работ
func IsDemandeActionable(code string) bool {
	return code == DemandeNouvelle || code == DemandeEnAttente
}

func DemandeStatusLabel(code string) string {
	return labelOr(DemandeStatusLabels, code)
}

func InterventionStatusLabel(code string) string {
	return labelOr(InterventionStatusLabels, code)
}

func labelOr(labels map[string]string, code string) string {
	if l, ok := labels[code]; ok {
		return l
	}
	return code
}
