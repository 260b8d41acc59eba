package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	response "polarizados_ya/internal/adapter/http/dto/response"
	"polarizados_ya/internal/adapter/http/handlers/mocks"
	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/usecase"

	"go.uber.org/mock/gomock"
)

func TestQuoteHandler_Create(t *testing.T) {
	t.Run("quantity defaults to one", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newRouter(asesorUser)
		r.POST("/quotes", NewQuoteHandler(uc).Create)

		uc.EXPECT().Create(gomock.Any(), asesorUser, usecase.QuoteInput{
			VehicleID:  "v-1",
			ClientName: "Luis",
			Items: []entities.QuoteItem{
				{Service: entities.ServicePolarizado, Description: "Polarizado", Price: 100000, Quantity: 1},
			},
		}).Return(entities.Quote{
			ID:          "q-1",
			Status:      entities.QuoteStatusPending,
			QuoteTotals: entities.QuoteTotals{Subtotal: 100000, Tax: 19000, Total: 119000},
		}, nil)

		w := serve(r, http.MethodPost, "/quotes",
			`{"vehicle_id":"v-1","client_name":"Luis","items":[{"service":"polarizado","description":"Polarizado","price":100000}]}`)
		expectStatus(t, w, http.StatusCreated)

		var body response.QuoteResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unexpected body: %v", err)
		}
		if body.Total != 119000 || body.Status != "pending" {
			t.Fatalf("unexpected response: %+v", body)
		}
	})

	t.Run("invalid item", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newRouter(asesorUser)
		r.POST("/quotes", NewQuoteHandler(uc).Create)

		uc.EXPECT().Create(gomock.Any(), asesorUser, gomock.Any()).Return(entities.Quote{}, entities.ErrInvalidQuoteItem)

		w := serve(r, http.MethodPost, "/quotes", `{"vehicle_id":"v-1","items":[{"service":"polarizado","price":-5}]}`)
		expectStatus(t, w, http.StatusBadRequest)
	})
}

func TestQuoteHandler_Approve(t *testing.T) {
	t.Run("passes signature and cedula", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newRouter(asesorUser)
		r.PUT("/quotes/:id/approve", NewQuoteHandler(uc).Approve)

		uc.EXPECT().Approve(gomock.Any(), "q-1", "https://s/sig.png", "https://s/ced.jpg").
			Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusApproved}, nil)

		w := serve(r, http.MethodPut, "/quotes/q-1/approve?signature_url=https://s/sig.png&cedula_photo_url=https://s/ced.jpg", "")
		expectStatus(t, w, http.StatusOK)
	})

	t.Run("already approved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newRouter(asesorUser)
		r.PUT("/quotes/:id/approve", NewQuoteHandler(uc).Approve)

		uc.EXPECT().Approve(gomock.Any(), "q-1", "", "").Return(entities.Quote{}, usecase.ErrQuoteNotPending)

		w := serve(r, http.MethodPut, "/quotes/q-1/approve", "")
		expectStatus(t, w, http.StatusConflict)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newRouter(asesorUser)
		r.GET("/quotes/:id", NewQuoteHandler(uc).Get)

		uc.EXPECT().GetByID(gomock.Any(), "q-9").Return(entities.Quote{}, usecase.ErrQuoteNotFound)

		w := serve(r, http.MethodGet, "/quotes/q-9", "")
		expectStatus(t, w, http.StatusNotFound)
	})
}
