package usecase

import (
	"context"
	"errors"
	"strings"

	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/infrastructure/logger"
	"polarizados_ya/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTechnicianNotFound = errors.New("technician not found")
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrForbidden          = errors.New("forbidden")
)

// IUserUseCase exposes staff directory operations.
type IUserUseCase interface {
	GetByID(ctx context.Context, id string) (entities.User, error)
	List(ctx context.Context, actor entities.User) ([]entities.User, error)
	ListTechnicians(ctx context.Context) ([]entities.User, error)
	UpdateRole(ctx context.Context, actor entities.User, id string, role entities.UserRole) (entities.User, error)
}

type UserUseCase struct {
	repo interfaces.IUserRepository
}

var _ IUserUseCase = (*UserUseCase)(nil)

func NewUserUseCase(repo interfaces.IUserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

func (u *UserUseCase) GetByID(ctx context.Context, id string) (entities.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.User{}, ErrInvalidUserID
	}
	user, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	return user, nil
}

func (u *UserUseCase) List(ctx context.Context, actor entities.User) ([]entities.User, error) {
	if !entities.HasRole(actor, entities.UserRoleAdmin) {
		return nil, ErrForbidden
	}
	return u.repo.List(ctx)
}

func (u *UserUseCase) ListTechnicians(ctx context.Context) ([]entities.User, error) {
	return u.repo.ListByRole(ctx, entities.UserRoleTecnico)
}

func (u *UserUseCase) UpdateRole(ctx context.Context, actor entities.User, id string, role entities.UserRole) (entities.User, error) {
	if !entities.HasRole(actor, entities.UserRoleAdmin) {
		return entities.User{}, ErrForbidden
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.User{}, ErrInvalidUserID
	}
	if !role.Valid() {
		return entities.User{}, ErrInvalidRole
	}

	updated, err := u.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return entities.User{}, err
	}
	if updated.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	logger.WithContext(ctx).Info("[user][usecase] role updated",
		zap.String("user_id", id), zap.String("role", string(role)), zap.String("by", actor.ID))
	return updated, nil
}

// technician loads id and checks it holds the tecnico role.
func technician(ctx context.Context, users interfaces.IUserRepository, id string) (entities.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.User{}, ErrTechnicianNotFound
	}
	user, err := users.GetByID(ctx, id)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" || user.Role != entities.UserRoleTecnico {
		return entities.User{}, ErrTechnicianNotFound
	}
	return user, nil
}
