package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"polarizados_ya/internal/adapter/http/middleware"
	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/pkg"

	"github.com/gin-gonic/gin"
)

var (
	adminUser   = entities.User{ID: "admin-1", Name: "Admin", Role: entities.UserRoleAdmin}
	asesorUser  = entities.User{ID: "asesor-1", Name: "Asesor", Role: entities.UserRoleAsesor}
	tecnicoUser = entities.User{ID: "tec-1", Name: "Tecnico", Role: entities.UserRoleTecnico}
)

// newRouter returns a test router that authenticates every request as user.
func newRouter(user entities.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserContextKey, user)
		c.Next()
	})
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) pkg.HTTPError {
	t.Helper()
	var body pkg.HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected error body, got %q", w.Body.String())
	}
	return body
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, w.Code, w.Body.String())
	}
}
