package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	response "polarizados_ya/internal/adapter/http/dto/response"
	"polarizados_ya/internal/adapter/http/handlers/mocks"
	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/usecase"

	"go.uber.org/mock/gomock"
)

func TestAuthHandler_Register(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAuthUseCase(ctrl)
		r := newRouter(entities.User{})
		r.POST("/auth/register", NewAuthHandler(uc).Register)

		w := serve(r, http.MethodPost, "/auth/register", "{")
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("email already registered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAuthUseCase(ctrl)
		r := newRouter(entities.User{})
		r.POST("/auth/register", NewAuthHandler(uc).Register)

		uc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(usecase.AuthResult{}, usecase.ErrEmailAlreadyRegistered)

		w := serve(r, http.MethodPost, "/auth/register", `{"email":"a@b.co","password":"secret1","name":"Ana"}`)
		expectStatus(t, w, http.StatusBadRequest)
		if body := decodeError(t, w); body.Detail != "El email ya está registrado" {
			t.Fatalf("unexpected detail %q", body.Detail)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAuthUseCase(ctrl)
		r := newRouter(entities.User{})
		r.POST("/auth/register", NewAuthHandler(uc).Register)

		uc.EXPECT().Register(gomock.Any(), usecase.RegisterInput{
			Email: "a@b.co", Password: "secret1", Name: "Ana", Role: entities.UserRoleTecnico,
		}).Return(usecase.AuthResult{
			AccessToken: "tok",
			User:        entities.User{ID: "u-1", Email: "a@b.co", Name: "Ana", Role: entities.UserRoleTecnico},
		}, nil)

		w := serve(r, http.MethodPost, "/auth/register", `{"email":"a@b.co","password":"secret1","name":"Ana","role":"tecnico"}`)
		expectStatus(t, w, http.StatusOK)

		var body response.TokenResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unexpected body: %v", err)
		}
		if body.AccessToken != "tok" || body.TokenType != "bearer" || body.User.ID != "u-1" {
			t.Fatalf("unexpected response: %+v", body)
		}
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("missing password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAuthUseCase(ctrl)
		r := newRouter(entities.User{})
		r.POST("/auth/login", NewAuthHandler(uc).Login)

		w := serve(r, http.MethodPost, "/auth/login", `{"email":"a@b.co"}`)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAuthUseCase(ctrl)
		r := newRouter(entities.User{})
		r.POST("/auth/login", NewAuthHandler(uc).Login)

		uc.EXPECT().Login(gomock.Any(), "a@b.co", "bad").Return(usecase.AuthResult{}, usecase.ErrInvalidCredentials)

		w := serve(r, http.MethodPost, "/auth/login", `{"email":"a@b.co","password":"bad"}`)
		expectStatus(t, w, http.StatusUnauthorized)
		if body := decodeError(t, w); body.Code != "INVALID_CREDENTIALS" {
			t.Fatalf("unexpected code %q", body.Code)
		}
	})

	t.Run("internal error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAuthUseCase(ctrl)
		r := newRouter(entities.User{})
		r.POST("/auth/login", NewAuthHandler(uc).Login)

		uc.EXPECT().Login(gomock.Any(), "a@b.co", "secret1").Return(usecase.AuthResult{}, errors.New("dynamo down"))

		w := serve(r, http.MethodPost, "/auth/login", `{"email":"a@b.co","password":"secret1"}`)
		expectStatus(t, w, http.StatusInternalServerError)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIAuthUseCase(ctrl)
	r := newRouter(asesorUser)
	r.GET("/auth/me", NewAuthHandler(uc).Me)

	w := serve(r, http.MethodGet, "/auth/me", "")
	expectStatus(t, w, http.StatusOK)

	var body response.UserResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if body.ID != asesorUser.ID || body.Role != string(entities.UserRoleAsesor) {
		t.Fatalf("unexpected user: %+v", body)
	}
}

func TestUserHandler(t *testing.T) {
	t.Run("list forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIUserUseCase(ctrl)
		r := newRouter(tecnicoUser)
		r.GET("/users", NewUserHandler(uc).List)

		uc.EXPECT().List(gomock.Any(), tecnicoUser).Return(nil, usecase.ErrForbidden)

		w := serve(r, http.MethodGet, "/users", "")
		expectStatus(t, w, http.StatusForbidden)
	})

	t.Run("technicians", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIUserUseCase(ctrl)
		r := newRouter(asesorUser)
		r.GET("/users/technicians", NewUserHandler(uc).ListTechnicians)

		uc.EXPECT().ListTechnicians(gomock.Any()).Return([]entities.User{tecnicoUser}, nil)

		w := serve(r, http.MethodGet, "/users/technicians", "")
		expectStatus(t, w, http.StatusOK)

		var body []response.UserResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || len(body) != 1 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("update role reads query", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIUserUseCase(ctrl)
		r := newRouter(adminUser)
		r.PUT("/users/:id/role", NewUserHandler(uc).UpdateRole)

		uc.EXPECT().UpdateRole(gomock.Any(), adminUser, "u-9", entities.UserRoleTecnico).Return(entities.User{ID: "u-9"}, nil)

		w := serve(r, http.MethodPut, "/users/u-9/role?role=tecnico", "")
		expectStatus(t, w, http.StatusOK)
	})

	t.Run("update role unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIUserUseCase(ctrl)
		r := newRouter(adminUser)
		r.PUT("/users/:id/role", NewUserHandler(uc).UpdateRole)

		uc.EXPECT().UpdateRole(gomock.Any(), adminUser, "nope", entities.UserRoleAdmin).Return(entities.User{}, usecase.ErrUserNotFound)

		w := serve(r, http.MethodPut, "/users/nope/role?role=admin", "")
		expectStatus(t, w, http.StatusNotFound)
	})
}
