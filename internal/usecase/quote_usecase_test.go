package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"polarizados_ya/internal/domain/entities"
	mock_interfaces "polarizados_ya/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestQuoteUseCase_Create(t *testing.T) {
	items := []entities.QuoteItem{
		{Service: entities.ServicePolarizado, Price: 350000, Quantity: 1},
		{Service: entities.ServiceNanoceramica, Description: "Nano", Price: 800000, Quantity: 1},
	}

	t.Run("duplicate service", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil)
		dup := []entities.QuoteItem{items[0], items[0]}
		if _, err := uc.Create(context.Background(), asesorUser, QuoteInput{VehicleID: "v-1", Items: dup}); !errors.Is(err, entities.ErrDuplicateService) {
			t.Fatalf("expected ErrDuplicateService, got %v", err)
		}
	})

	t.Run("empty items", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil)
		if _, err := uc.Create(context.Background(), asesorUser, QuoteInput{VehicleID: "v-1"}); !errors.Is(err, entities.ErrNoServices) {
			t.Fatalf("expected ErrNoServices, got %v", err)
		}
	})

	t.Run("totals computed server side", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		vehicles := mock_interfaces.NewMockIVehicleRepository(ctrl)
		uc := NewQuoteUseCase(repo, vehicles)

		vehicles.EXPECT().GetByID(gomock.Any(), "v-1").Return(entities.Vehicle{ID: "v-1", ClientName: "Ana", ClientEmail: "ana@mail.co"}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.Subtotal != 1150000 || q.Tax != 218500 || q.Total != 1368500 {
					t.Fatalf("unexpected totals: %+v", q.QuoteTotals)
				}
				if q.Status != entities.QuoteStatusPending || q.ClientName != "Ana" || q.ClientEmail != "ana@mail.co" {
					t.Fatalf("unexpected quote: %+v", q)
				}
				if q.Items[0].Description != "Polarizado" || q.Items[1].Description != "Nano" {
					t.Fatalf("unexpected descriptions: %+v", q.Items)
				}
				return q, nil
			},
		)

		if _, err := uc.Create(context.Background(), asesorUser, QuoteInput{VehicleID: "v-1", Items: items}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestQuoteUseCase_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
	uc := NewQuoteUseCase(repo, nil)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.EXPECT().List(gomock.Any()).Return([]entities.Quote{
		{ID: "old", CreatedAt: base},
		{ID: "new", CreatedAt: base.Add(time.Hour)},
	}, nil)

	items, err := uc.List(context.Background())
	if err != nil || items[0].ID != "new" {
		t.Fatalf("expected newest first, got %+v %v", items, err)
	}
}

func TestQuoteUseCase_Approve(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, nil)

		if _, err := uc.Approve(context.Background(), "q-1", "", ""); !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("already approved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusApproved}, nil)

		if _, err := uc.Approve(context.Background(), "q-1", "", ""); !errors.Is(err, ErrQuoteNotPending) {
			t.Fatalf("expected ErrQuoteNotPending, got %v", err)
		}
	})

	t.Run("lost race", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusPending}, nil)
		repo.EXPECT().Approve(gomock.Any(), "q-1", gomock.Any(), "", "").Return(entities.Quote{}, nil)

		if _, err := uc.Approve(context.Background(), "q-1", "", ""); !errors.Is(err, ErrQuoteNotPending) {
			t.Fatalf("expected ErrQuoteNotPending, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)
		fixed := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
		uc.now = func() time.Time { return fixed }

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusPending}, nil)
		repo.EXPECT().Approve(gomock.Any(), "q-1", fixed, "https://sig", "https://ced").Return(
			entities.Quote{ID: "q-1", Status: entities.QuoteStatusApproved, ApprovedAt: &fixed}, nil)

		q, err := uc.Approve(context.Background(), "q-1", " https://sig ", "https://ced")
		if err != nil || q.Status != entities.QuoteStatusApproved {
			t.Fatalf("unexpected result: %+v %v", q, err)
		}
	})
}
