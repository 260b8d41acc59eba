package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	request "polarizados_ya/internal/adapter/http/dto/request"
	response "polarizados_ya/internal/adapter/http/dto/response"
	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendsBearerAndCorrelationID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "corr-1", r.Header.Get("X-Request-ID"))
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		_ = json.NewEncoder(w).Encode(response.UserResponse{ID: "u-1", Role: "asesor"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", time.Second)
	c.SetToken("tok")

	ctx := logger.ContextWithCorrelationID(context.Background(), "corr-1")
	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-1", me.ID)
}

func TestClientServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"INVALID_TRANSITION","detail":"Solo se puede avanzar al siguiente estado"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	c.SetToken("tok")

	err := c.UpdateServiceOrderStatus(context.Background(), "o-1", "terminado")
	var rej *ServerRejectionError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, http.StatusConflict, rej.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", rej.Code)
	assert.Equal(t, "Solo se puede avanzar al siguiente estado", rej.Detail)
	assert.True(t, IsRejection(err, http.StatusConflict))
	assert.Equal(t, "tok", c.Token())
}

func TestClientRejectionWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).ListQuotes(context.Background())
	var rej *ServerRejectionError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "Bad Gateway", rej.Detail)
}

func TestClientSessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"UNAUTHORIZED","detail":"Token inválido"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	c.SetToken("stale")
	expired := 0
	c.OnSessionExpired(func() { expired++ })

	_, err := c.DashboardStats(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 1, expired)
	assert.Empty(t, c.Token())
}

func TestClientLoginFailureIsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body request.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "a@b.co", body.Email)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"INVALID_CREDENTIALS","detail":"Credenciales inválidas"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	c.OnSessionExpired(func() { t.Fatal("login failure must not expire a session") })

	_, err := c.Login(context.Background(), "a@b.co", "bad")
	assert.False(t, errors.Is(err, ErrSessionExpired))
	assert.True(t, IsRejection(err, http.StatusUnauthorized))
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, 50*time.Millisecond)
	_, err := c.UnreadCount(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)

	var rej *ServerRejectionError
	assert.False(t, errors.As(err, &rej))
}

func TestClientQueryEncoding(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.RequestURI())
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.ListServiceOrders(context.Background(), "en_proceso", "tec 1")
	require.NoError(t, err)
	_, err = c.ListAppointments(context.Background(), "")
	require.NoError(t, err)
	_, err = c.GetVehicleByPlate(context.Background(), "ABC123")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/service-orders?status=en_proceso&technician_id=tec+1",
		"/appointments",
		"/vehicles/plate/ABC123",
	}, got)
}

func TestValidationError(t *testing.T) {
	assert.Equal(t, "vehicle: selecciona un vehículo", NewValidationError("vehicle", "selecciona un vehículo").Error())
	assert.Equal(t, "sin servicios", (&ValidationError{Message: "sin servicios"}).Error())

	err := WrapValidation("services", entities.ErrDuplicateService)
	assert.ErrorIs(t, err, entities.ErrDuplicateService)
	assert.Equal(t, "services: service already added", err.Error())
}
