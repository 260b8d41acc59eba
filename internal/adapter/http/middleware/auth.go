package middleware

import (
	"errors"
	"net/http"
	"strings"

	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/usecase"
	"polarizados_ya/pkg"

	"github.com/gin-gonic/gin"
)

// UserContextKey holds the authenticated entities.User in the gin context.
const UserContextKey = "user"

var (
	errMissingToken = pkg.NewDomainErrorSimple("UNAUTHORIZED", "No autenticado", http.StatusUnauthorized)
	errInvalidToken = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Token inválido", http.StatusUnauthorized)
	errAccessDenied = pkg.NewDomainErrorSimple("FORBIDDEN", "Acceso denegado", http.StatusForbidden)
)

// Auth resolves the bearer token into the current user.
func Auth(auth usecase.IAuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(errMissingToken.HTTPStatus, errMissingToken.ToHTTPError())
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			if errors.Is(err, usecase.ErrUnauthenticated) {
				c.AbortWithStatusJSON(errInvalidToken.HTTPStatus, errInvalidToken.ToHTTPError())
				return
			}
			appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}

// RequireRoles rejects users outside roles. It must run after Auth.
func RequireRoles(roles ...entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !entities.HasRole(CurrentUser(c), roles...) {
			c.AbortWithStatusJSON(errAccessDenied.HTTPStatus, errAccessDenied.ToHTTPError())
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or the zero value outside Auth.
func CurrentUser(c *gin.Context) entities.User {
	if v, ok := c.Get(UserContextKey); ok {
		if u, ok := v.(entities.User); ok {
			return u
		}
	}
	return entities.User{}
}
