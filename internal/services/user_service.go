package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"maintenance-portal/internal/dto"
	"maintenance-portal/internal/entities"
	"maintenance-portal/internal/repositories"
	apperrors "maintenance-portal/pkg/errors"
	"maintenance-portal/pkg/utils"
)

// UserServiceInterface - управление учётными записями, только для администраторов.
type UserServiceInterface interface {
	GetUsers(ctx context.Context) repositories.ListResult[entities.User]
	FindUser(ctx context.Context, id int) (*entities.User, error)
	CreateUser(ctx context.Context, form dto.CreateUserDTO) (*entities.User, error)
	UpdateUser(ctx context.Context, id int, form dto.UpdateUserDTO) (*entities.User, error)
	DeleteUser(ctx context.Context, id int) error
	// Technicians - подписи для фасета техников; без прав администратора пусто.
	Technicians(ctx context.Context) map[string]string
}

type UserService struct {
	*BaseService
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewUserService(userRepo repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{
		BaseService: NewBaseService(logger),
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (s *UserService) GetUsers(ctx context.Context) repositories.ListResult[entities.User] {
	token, err := s.CheckStaff(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			return repositories.ListResult[entities.User]{Items: []entities.User{}, Outcome: repositories.OutcomeDegraded, Err: err}
		}
		return unauthenticated[entities.User]()
	}
	return s.userRepo.GetUsers(ctx, token)
}

func (s *UserService) FindUser(ctx context.Context, id int) (*entities.User, error) {
	token, err := s.CheckStaff(ctx)
	if err != nil {
		return nil, err
	}
	return s.userRepo.FindUser(ctx, token, id)
}

func (s *UserService) CreateUser(ctx context.Context, form dto.CreateUserDTO) (*entities.User, error) {
	token, err := s.CheckStaff(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.userRepo.CreateUser(ctx, token, form)
	if err != nil {
		s.logger.Error("Échec de la création de l'utilisateur", zap.String("username", form.Username), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Utilisateur créé", zap.Int("userID", u.ID), zap.Bool("isStaff", u.IsStaff))
	return u, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id int, form dto.UpdateUserDTO) (*entities.User, error) {
	token, err := s.CheckStaff(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.userRepo.UpdateUser(ctx, token, id, form)
	if err != nil {
		s.logger.Error("Échec de la mise à jour de l'utilisateur", zap.Int("userID", id), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Utilisateur mis à jour", zap.Int("userID", id), zap.Bool("passwordChanged", form.Password != ""))
	return u, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	token, err := s.CheckStaff(ctx)
	if err != nil {
		return err
	}
	if err := s.userRepo.DeleteUser(ctx, token, id); err != nil {
		s.logger.Error("Échec de la suppression de l'utilisateur", zap.Int("userID", id), zap.Error(err))
		return err
	}
	s.logger.Info("Utilisateur supprimé", zap.Int("userID", id))
	return nil
}

func (s *UserService) Technicians(ctx context.Context) map[string]string {
	session, err := utils.GetSessionFromCtx(ctx)
	if err != nil || !session.IsStaff {
		return nil
	}
	res := s.userRepo.GetUsers(ctx, session.Token)
	if !res.OK() {
		return nil
	}
	return TechnicianLabels(res.Items)
}
