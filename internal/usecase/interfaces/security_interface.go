package interfaces

import (
	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/infrastructure/security"
)

// ITokenManager issues and validates access tokens.
type ITokenManager interface {
	GenerateToken(user entities.User) (string, error)
	ValidateToken(token string) (*security.Claims, error)
}

// IPasswordHasher hashes and verifies passwords.
type IPasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) error
}
