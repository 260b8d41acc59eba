package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"polarizados_ya/pkg"

	"github.com/gin-gonic/gin"
)

var errRequestTimeout = pkg.NewDomainErrorSimple("REQUEST_TIMEOUT", "La solicitud excedió el tiempo de espera", http.StatusGatewayTimeout)

// RequestTimeout bounds the request context. Handlers see the deadline through
// c.Request.Context(); if it expires before anything was written, the client gets a 504.
func RequestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			c.AbortWithStatusJSON(errRequestTimeout.HTTPStatus, errRequestTimeout.ToHTTPError())
		}
	}
}
