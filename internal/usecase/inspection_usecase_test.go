package usecase

import (
	"context"
	"errors"
	"testing"

	"polarizados_ya/internal/domain/entities"
	mock_interfaces "polarizados_ya/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestInspectionUseCase_Create(t *testing.T) {
	t.Run("missing area rejected before any lookup", func(t *testing.T) {
		uc := NewInspectionUseCase(nil, nil, nil, entities.DamagePolicy{})
		items := entities.DefaultInspectionItems()[1:]
		_, err := uc.Create(context.Background(), tecnicoUser, InspectionInput{VehicleID: "v-1", Items: items})
		if !errors.Is(err, entities.ErrMissingArea) {
			t.Fatalf("expected ErrMissingArea, got %v", err)
		}
	})

	t.Run("damage note policy", func(t *testing.T) {
		items := entities.DefaultInspectionItems()
		items[0].HasDamage = true

		uc := NewInspectionUseCase(nil, nil, nil, entities.DamagePolicy{RequireNotes: true})
		if _, err := uc.Create(context.Background(), tecnicoUser, InspectionInput{VehicleID: "v-1", Items: items}); !errors.Is(err, entities.ErrMissingDamageNote) {
			t.Fatalf("expected ErrMissingDamageNote, got %v", err)
		}
	})

	t.Run("too many photos", func(t *testing.T) {
		uc := NewInspectionUseCase(nil, nil, nil, entities.DamagePolicy{})
		photos := make([]string, MaxInspectionPhotos+1)
		if _, err := uc.Create(context.Background(), tecnicoUser, InspectionInput{VehicleID: "v-1", Items: entities.DefaultInspectionItems(), Photos: photos}); !errors.Is(err, ErrTooManyPhotos) {
			t.Fatalf("expected ErrTooManyPhotos, got %v", err)
		}
	})

	t.Run("vehicle not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		vehicles := mock_interfaces.NewMockIVehicleRepository(ctrl)
		uc := NewInspectionUseCase(nil, vehicles, nil, entities.DamagePolicy{})

		vehicles.EXPECT().GetByID(gomock.Any(), "v-1").Return(entities.Vehicle{}, nil)

		if _, err := uc.Create(context.Background(), tecnicoUser, InspectionInput{VehicleID: "v-1", Items: entities.DefaultInspectionItems()}); !errors.Is(err, ErrVehicleNotFound) {
			t.Fatalf("expected ErrVehicleNotFound, got %v", err)
		}
	})

	t.Run("zero photos moves agendado vehicle to ingresado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInspectionRepository(ctrl)
		vehicles := mock_interfaces.NewMockIVehicleRepository(ctrl)
		uc := NewInspectionUseCase(repo, vehicles, nil, entities.DamagePolicy{})

		vehicles.EXPECT().GetByID(gomock.Any(), "v-1").Return(entities.Vehicle{ID: "v-1", Status: entities.VehicleStatusAgendado}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Inspection{})).DoAndReturn(
			func(_ context.Context, i entities.Inspection) (entities.Inspection, error) {
				if i.ID == "" || len(i.Items) != len(entities.InspectionAreas) || len(i.Photos) != 0 || i.CreatedBy != "tec-1" {
					t.Fatalf("unexpected inspection: %+v", i)
				}
				return i, nil
			},
		)
		vehicles.EXPECT().UpdateStatus(gomock.Any(), "v-1", entities.VehicleStatusIngresado).Return(entities.Vehicle{ID: "v-1", Status: entities.VehicleStatusIngresado}, nil)

		if _, err := uc.Create(context.Background(), tecnicoUser, InspectionInput{VehicleID: "v-1", Items: entities.DefaultInspectionItems()}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("photos stored and other statuses untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInspectionRepository(ctrl)
		vehicles := mock_interfaces.NewMockIVehicleRepository(ctrl)
		photos := mock_interfaces.NewMockIPhotoStore(ctrl)
		uc := NewInspectionUseCase(repo, vehicles, photos, entities.DamagePolicy{})

		vehicles.EXPECT().GetByID(gomock.Any(), "v-1").Return(entities.Vehicle{ID: "v-1", Status: entities.VehicleStatusConTecnico}, nil)
		photos.EXPECT().SaveInspectionPhotos(gomock.Any(), gomock.Any(), []string{"data:1", "data:2"}).DoAndReturn(
			func(_ context.Context, id string, _ []string) ([]string, error) {
				return []string{"inspections/" + id + "/1.jpg", "inspections/" + id + "/2.jpg"}, nil
			},
		)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, i entities.Inspection) (entities.Inspection, error) {
				if len(i.Photos) != 2 || i.Photos[0] != "inspections/"+i.ID+"/1.jpg" {
					t.Fatalf("unexpected photos: %v", i.Photos)
				}
				return i, nil
			},
		)

		_, err := uc.Create(context.Background(), tecnicoUser, InspectionInput{
			VehicleID: "v-1",
			Items:     entities.DefaultInspectionItems(),
			Photos:    []string{"data:1", "data:2"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("photo store failure aborts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		vehicles := mock_interfaces.NewMockIVehicleRepository(ctrl)
		photos := mock_interfaces.NewMockIPhotoStore(ctrl)
		uc := NewInspectionUseCase(nil, vehicles, photos, entities.DamagePolicy{})

		vehicles.EXPECT().GetByID(gomock.Any(), "v-1").Return(entities.Vehicle{ID: "v-1"}, nil)
		photos.EXPECT().SaveInspectionPhotos(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("s3"))

		_, err := uc.Create(context.Background(), tecnicoUser, InspectionInput{VehicleID: "v-1", Items: entities.DefaultInspectionItems(), Photos: []string{"x"}})
		if err == nil || err.Error() != "s3" {
			t.Fatalf("expected s3 error, got %v", err)
		}
	})

	t.Run("insert failure removes uploaded photos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInspectionRepository(ctrl)
		vehicles := mock_interfaces.NewMockIVehicleRepository(ctrl)
		photos := mock_interfaces.NewMockIPhotoStore(ctrl)
		uc := NewInspectionUseCase(repo, vehicles, photos, entities.DamagePolicy{})

		stored := []string{"inspections/x/1.jpg"}
		vehicles.EXPECT().GetByID(gomock.Any(), "v-1").Return(entities.Vehicle{ID: "v-1", Status: entities.VehicleStatusAgendado}, nil)
		photos.EXPECT().SaveInspectionPhotos(gomock.Any(), gomock.Any(), gomock.Any()).Return(stored, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Inspection{}, errors.New("dynamo"))
		photos.EXPECT().DeleteInspectionPhotos(gomock.Any(), stored).Return(nil)

		_, err := uc.Create(context.Background(), tecnicoUser, InspectionInput{VehicleID: "v-1", Items: entities.DefaultInspectionItems(), Photos: []string{"x"}})
		if err == nil || err.Error() != "dynamo" {
			t.Fatalf("expected dynamo error, got %v", err)
		}
	})

	t.Run("insert failure without photos skips cleanup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInspectionRepository(ctrl)
		vehicles := mock_interfaces.NewMockIVehicleRepository(ctrl)
		photos := mock_interfaces.NewMockIPhotoStore(ctrl)
		uc := NewInspectionUseCase(repo, vehicles, photos, entities.DamagePolicy{})

		vehicles.EXPECT().GetByID(gomock.Any(), "v-1").Return(entities.Vehicle{ID: "v-1"}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Inspection{}, errors.New("dynamo"))

		if _, err := uc.Create(context.Background(), tecnicoUser, InspectionInput{VehicleID: "v-1", Items: entities.DefaultInspectionItems()}); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("vehicle status failure keeps the inspection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInspectionRepository(ctrl)
		vehicles := mock_interfaces.NewMockIVehicleRepository(ctrl)
		uc := NewInspectionUseCase(repo, vehicles, nil, entities.DamagePolicy{})

		vehicles.EXPECT().GetByID(gomock.Any(), "v-1").Return(entities.Vehicle{ID: "v-1", Status: entities.VehicleStatusAgendado}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, i entities.Inspection) (entities.Inspection, error) { return i, nil },
		)
		vehicles.EXPECT().UpdateStatus(gomock.Any(), "v-1", entities.VehicleStatusIngresado).Return(entities.Vehicle{}, errors.New("throttled"))

		created, err := uc.Create(context.Background(), tecnicoUser, InspectionInput{VehicleID: "v-1", Items: entities.DefaultInspectionItems()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ID == "" {
			t.Fatalf("expected the stored inspection to be returned")
		}
	})
}

func TestInspectionUseCase_ListByVehicle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIInspectionRepository(ctrl)
	uc := NewInspectionUseCase(repo, nil, nil, entities.DamagePolicy{})

	if _, err := uc.ListByVehicle(context.Background(), ""); !errors.Is(err, ErrInvalidVehicleID) {
		t.Fatalf("expected ErrInvalidVehicleID, got %v", err)
	}

	repo.EXPECT().ListByVehicleID(gomock.Any(), "v-1").Return([]entities.Inspection{{ID: "i-1"}}, nil)
	items, err := uc.ListByVehicle(context.Background(), "v-1")
	if err != nil || len(items) != 1 {
		t.Fatalf("unexpected result: %v %v", items, err)
	}
}
