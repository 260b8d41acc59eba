package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		e := NewDomainErrorSimple("NOT_FOUND", "Orden no encontrada", http.StatusNotFound)
		if e.Error() != "Orden no encontrada" {
			t.Fatalf("unexpected message: %s", e.Error())
		}
		body := e.ToHTTPError()
		if body.Code != "NOT_FOUND" || body.Detail != "Orden no encontrada" {
			t.Fatalf("unexpected body: %+v", body)
		}
	})

	t.Run("wrapped error", func(t *testing.T) {
		cause := errors.New("db")
		e := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, 0)
		if e.HTTPStatus != http.StatusInternalServerError {
			t.Fatalf("expected default 500, got %d", e.HTTPStatus)
		}
		if !errors.Is(e, cause) {
			t.Fatalf("expected wrapped cause")
		}
		if e.ToHTTPError().Detail != "An internal error occurred" {
			t.Fatalf("cause must not leak into detail")
		}
	})
}
