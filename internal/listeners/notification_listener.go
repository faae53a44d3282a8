package listeners

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"go.uber.org/zap"

	"maintenance-portal/internal/dto"
	"maintenance-portal/internal/events"
	"maintenance-portal/internal/repositories"
	"maintenance-portal/pkg/config"
	"maintenance-portal/pkg/constants"
	"maintenance-portal/pkg/eventbus"
)

var (
	demandeCreatedTmpl = template.Must(template.New("demande_created").Parse(`<p>Bonjour {{.Prenom}} {{.Nom}},</p>
<p>Votre demande n°{{.ID}} concernant « {{.TypeMateriel}} » a bien été enregistrée.</p>
<p>Panne déclarée : {{.PanneDeclaree}}</p>
<p>Le service informatique vous tiendra informé de son traitement.</p>`))

	interventionClosedTmpl = template.Must(template.New("intervention_closed").Parse(`<p>Bonjour {{.Demande.Prenom}} {{.Demande.Nom}},</p>
<p>L'intervention sur votre demande n°{{.Demande.ID}} ({{.Demande.TypeMateriel}}) est désormais : <strong>{{.Status}}</strong>.</p>
{{if .Cause}}<p>Cause : {{.Cause}}</p>{{end}}`))
)

// NotificationListener отправляет письма заявителям через API.
type NotificationListener struct {
	notificationRepo repositories.NotificationRepositoryInterface
	cfg              config.NotificationConfig
	logger           *zap.Logger
}

func NewNotificationListener(
	notificationRepo repositories.NotificationRepositoryInterface,
	cfg config.NotificationConfig,
	logger *zap.Logger,
) *NotificationListener {
	return &NotificationListener{
		notificationRepo: notificationRepo,
		cfg:              cfg,
		logger:           logger,
	}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	if !l.cfg.Enabled {
		l.logger.Info("Notifications par e-mail désactivées")
		return
	}
	bus.Subscribe(events.DemandeCreatedEvent{}.Name(), l.handleDemandeCreated)
	bus.Subscribe(events.InterventionClosedEvent{}.Name(), l.handleInterventionClosed)
	l.logger.Info("NotificationListener abonné", zap.Strings("events", []string{
		events.DemandeCreatedEvent{}.Name(),
		events.InterventionClosedEvent{}.Name(),
	}))
}

func (l *NotificationListener) handleDemandeCreated(ctx context.Context, e eventbus.Event) error {
	event, ok := e.(events.DemandeCreatedEvent)
	if !ok {
		return fmt.Errorf("événement inattendu: %T", e)
	}
	d := event.Demande
	if d.Email == "" {
		return nil
	}

	var body bytes.Buffer
	if err := demandeCreatedTmpl.Execute(&body, d); err != nil {
		return fmt.Errorf("rendu de l'e-mail de confirmation: %w", err)
	}

	// Заявитель не авторизован: письмо уходит без токена.
	err := l.notificationRepo.SendHTMLEmail(ctx, "", dto.HTMLEmailDTO{
		To:      d.Email,
		Subject: fmt.Sprintf("%s : demande n°%d", l.cfg.Subject, d.ID),
		HTML:    body.String(),
	})
	if err != nil {
		return err
	}
	l.logger.Info("E-mail de confirmation envoyé", zap.Int("demandeID", d.ID))
	return nil
}

func (l *NotificationListener) handleInterventionClosed(ctx context.Context, e eventbus.Event) error {
	event, ok := e.(events.InterventionClosedEvent)
	if !ok {
		return fmt.Errorf("événement inattendu: %T", e)
	}
	if event.Demande == nil || event.Demande.Email == "" {
		return nil
	}

	data := struct {
		Demande any
		Status  string
		Cause   string
	}{
		Demande: event.Demande,
		Status:  constants.InterventionStatusLabel(event.Intervention.Status),
		Cause:   event.Intervention.CauseIrreparable.String,
	}
	var body bytes.Buffer
	if err := interventionClosedTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("rendu de l'e-mail de clôture: %w", err)
	}

	err := l.notificationRepo.SendHTMLEmail(ctx, event.Token, dto.HTMLEmailDTO{
		To:      event.Demande.Email,
		Subject: fmt.Sprintf("%s : demande n°%d", l.cfg.Subject, event.Demande.ID),
		HTML:    body.String(),
	})
	if err != nil {
		return err
	}
	l.logger.Info("E-mail de clôture envoyé",
		zap.Int("interventionID", event.Intervention.ID),
		zap.Int("demandeID", event.Demande.ID),
	)
	return nil
}
