package interfaces

import (
	"context"

	"polarizados_ya/internal/domain/entities"
)

// IUserRepository abstracts DynamoDB persistence for staff users.
//
// Lookups return the zero-value User when nothing matches.
type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	GetByEmail(ctx context.Context, email string) (entities.User, error)
	List(ctx context.Context) ([]entities.User, error)
	ListByRole(ctx context.Context, role entities.UserRole) ([]entities.User, error)
	UpdateRole(ctx context.Context, id string, role entities.UserRole) (entities.User, error)
}
