package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/infrastructure/logger"
	"polarizados_ya/internal/infrastructure/security"
	"polarizados_ya/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidEmail           = errors.New("invalid email")
	ErrInvalidName            = errors.New("invalid name")
	ErrInvalidRole            = errors.New("invalid role")
	ErrWeakPassword           = errors.New("password too short")
	ErrUnauthenticated        = errors.New("unauthenticated")
)

// RegisterInput is the self sign-up command. Role defaults to asesor.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     entities.UserRole
	Phone    string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	AccessToken string
	User        entities.User
}

// IAuthUseCase covers sign-up, sign-in and bearer token resolution.
type IAuthUseCase interface {
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Authenticate(ctx context.Context, token string) (entities.User, error)
}

type AuthUseCase struct {
	users  interfaces.IUserRepository
	tokens interfaces.ITokenManager
	hasher interfaces.IPasswordHasher
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(users interfaces.IUserRepository, tokens interfaces.ITokenManager, hasher interfaces.IPasswordHasher) *AuthUseCase {
	return &AuthUseCase{users: users, tokens: tokens, hasher: hasher}
}

func (u *AuthUseCase) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	email := normalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return AuthResult{}, ErrInvalidEmail
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return AuthResult{}, ErrInvalidName
	}
	role := in.Role
	if role == "" {
		role = entities.UserRoleAsesor
	}
	if !role.Valid() {
		return AuthResult{}, ErrInvalidRole
	}

	existing, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if existing.ID != "" {
		return AuthResult{}, ErrEmailAlreadyRegistered
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return AuthResult{}, ErrWeakPassword
		}
		return AuthResult{}, err
	}

	created, err := u.users.Create(ctx, entities.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return AuthResult{}, err
	}

	logger.WithContext(ctx).Info("[auth][usecase] user registered",
		zap.String("user_id", created.ID), zap.String("role", string(created.Role)))
	return u.issue(created)
}

func (u *AuthUseCase) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := u.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return AuthResult{}, err
	}
	if user.ID == "" {
		return AuthResult{}, ErrInvalidCredentials
	}
	if err := u.hasher.Check(password, user.PasswordHash); err != nil {
		if errors.Is(err, security.ErrInvalidPassword) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	return u.issue(user)
}

// Authenticate resolves a bearer token into the current user record.
func (u *AuthUseCase) Authenticate(ctx context.Context, token string) (entities.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.User{}, ErrUnauthenticated
	}
	claims, err := u.tokens.ValidateToken(token)
	if err != nil {
		logger.WithContext(ctx).Debug("[auth][usecase] token rejected", zap.Error(err))
		return entities.User{}, ErrUnauthenticated
	}
	user, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, ErrUnauthenticated
	}
	return user, nil
}

func (u *AuthUseCase) issue(user entities.User) (AuthResult, error) {
	token, err := u.tokens.GenerateToken(user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{AccessToken: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
