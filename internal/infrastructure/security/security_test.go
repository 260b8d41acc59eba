package security

import (
	"errors"
	"testing"
	"time"

	"polarizados_ya/internal/domain/entities"

	"golang.org/x/crypto/bcrypt"
)

func TestJWTManager(t *testing.T) {
	user := entities.User{ID: "u-1", Email: "ana@shop.test", Role: entities.UserRoleAsesor}

	t.Run("round trip", func(t *testing.T) {
		m := NewJWTManager("secret", time.Hour)
		token, err := m.GenerateToken(user)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		claims, err := m.ValidateToken(token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.UserID != "u-1" || claims.Role != entities.UserRoleAsesor || claims.Email != "ana@shop.test" {
			t.Fatalf("unexpected claims: %+v", claims)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _ := NewJWTManager("secret", time.Hour).GenerateToken(user)
		if _, err := NewJWTManager("other", time.Hour).ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		m := NewJWTManager("secret", time.Hour)
		m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _ := m.GenerateToken(user)
		m.now = time.Now
		if _, err := m.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
			t.Fatalf("expected ErrExpiredToken, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := NewJWTManager("secret", time.Hour).ValidateToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	if _, err := h.Hash("abc"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.Check("secret123", hash); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := h.Check("wrong", hash); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}
