package events

import "maintenance-portal/internal/entities"

// DemandeCreatedEvent - публичная заявка принята API.
type DemandeCreatedEvent struct {
	Demande entities.Demande
}

func (e DemandeCreatedEvent) Name() string {
	return "demande.created"
}

// InterventionClosedEvent - вмешательство завершено или признано нерентабельным.
// Token нужен слушателю, чтобы обратиться к API от имени технического специалиста.
type InterventionClosedEvent struct {
	Intervention entities.Intervention
	Demande      *entities.Demande
	Token        string
}

func (e InterventionClosedEvent) Name() string {
	return "intervention.closed"
}
