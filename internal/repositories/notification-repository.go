package repositories

import (
	"context"
	"fmt"

	"maintenance-portal/internal/dto"
	"maintenance-portal/internal/integrations/backend"
)

// NotificationRepositoryInterface - отправка писем делегирована API.
type NotificationRepositoryInterface interface {
	SendHTMLEmail(ctx context.Context, token string, email dto.HTMLEmailDTO) error
}

type NotificationRepository struct {
	api API
}

func NewNotificationRepository(api API) NotificationRepositoryInterface {
	return &NotificationRepository{api: api}
}

func (r *NotificationRepository) SendHTMLEmail(ctx context.Context, token string, email dto.HTMLEmailDTO) error {
	if err := r.api.Post(ctx, token, backend.PathSendHTMLEmail, email, nil); err != nil {
		return fmt.Errorf("envoi de l'e-mail à %s: %w", email.To, err)
	}
	return nil
}
