package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"maintenance-portal/internal/dto"
	"maintenance-portal/internal/integrations/backend"
	apperrors "maintenance-portal/pkg/errors"
)

type AuthRepositoryInterface interface {
	Login(ctx context.Context, credentials dto.LoginDTO) (*dto.LoginResponseDTO, error)
}

type AuthRepository struct {
	api API
}

func NewAuthRepository(api API) AuthRepositoryInterface {
	return &AuthRepository{api: api}
}

// Login обменивает логин и пароль на токен API.
// 400 и 401 от API означают неверные учётные данные.
func (r *AuthRepository) Login(ctx context.Context, credentials dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	var resp dto.LoginResponseDTO
	err := r.api.Post(ctx, "", backend.PathLogin, credentials, &resp)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) &&
			(apiErr.StatusCode == http.StatusBadRequest || apiErr.StatusCode == http.StatusUnauthorized) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("connexion de %s: %w", credentials.Username, err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("connexion de %s: réponse sans jeton", credentials.Username)
	}
	return &resp, nil
}
