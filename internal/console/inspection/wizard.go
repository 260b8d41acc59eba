package inspection

import (
	"context"
	"errors"
	"fmt"
	"sync"

	request "polarizados_ya/internal/adapter/http/dto/request"
	response "polarizados_ya/internal/adapter/http/dto/response"
	"polarizados_ya/internal/console/apiclient"
	"polarizados_ya/internal/console/camera"
	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// Step is the wizard page.
type Step int

const (
	StepVehicle Step = iota + 1
	StepPhotos
	StepChecklist
)

func (s Step) String() string {
	switch s {
	case StepVehicle:
		return "vehicle"
	case StepPhotos:
		return "photos"
	case StepChecklist:
		return "checklist"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

var (
	ErrMissingVehicle = errors.New("selecciona un vehículo")
	ErrWrongStep      = errors.New("operation not available on this step")
)

// API is the backend surface the wizard submits to.
type API interface {
	CreateInspection(ctx context.Context, in request.InspectionRequest) (response.InspectionResponse, error)
}

// Wizard is the three-step check-in draft: vehicle, photos, checklist.
// The draft survives failed submissions and is cleared by a successful one.
type Wizard struct {
	api    API
	camera *camera.Controller
	policy entities.DamagePolicy

	mu             sync.Mutex
	step           Step
	vehicle        *response.VehicleResponse
	serviceOrderID string
	items          []entities.InspectionItem
	generalNotes   string
}

func NewWizard(api API, cam *camera.Controller, policy entities.DamagePolicy) *Wizard {
	w := &Wizard{api: api, camera: cam, policy: policy}
	w.resetLocked()
	return w
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Camera() *camera.Controller {
	return w.camera
}

// Vehicle returns the selected vehicle, if any.
func (w *Wizard) Vehicle() (response.VehicleResponse, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.vehicle == nil {
		return response.VehicleResponse{}, false
	}
	return *w.vehicle, true
}

// SelectVehicle sets the vehicle on step 1.
func (w *Wizard) SelectVehicle(v response.VehicleResponse) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepVehicle {
		return ErrWrongStep
	}
	w.vehicle = &v
	return nil
}

// LinkServiceOrder attaches the inspection to an existing order.
func (w *Wizard) LinkServiceOrder(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.serviceOrderID = id
}

// ToPhotos moves from step 1 to step 2 and requires a selected vehicle.
func (w *Wizard) ToPhotos() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepVehicle {
		return ErrWrongStep
	}
	if w.vehicle == nil {
		return apiclient.WrapValidation("vehicle", ErrMissingVehicle)
	}
	w.step = StepPhotos
	return nil
}

// BackToVehicle moves from step 2 to step 1. The camera is closed; confirmed photos stay.
func (w *Wizard) BackToVehicle(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepPhotos {
		return ErrWrongStep
	}
	w.camera.Close(ctx)
	w.step = StepVehicle
	return nil
}

// ToChecklist moves from step 2 to step 3. Zero photos is allowed.
func (w *Wizard) ToChecklist(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepPhotos {
		return ErrWrongStep
	}
	w.camera.Close(ctx)
	w.step = StepChecklist
	return nil
}

// BackToPhotos moves from step 3 to step 2.
func (w *Wizard) BackToPhotos() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepChecklist {
		return ErrWrongStep
	}
	w.step = StepPhotos
	return nil
}

// Items returns a copy of the checklist in area order.
func (w *Wizard) Items() []entities.InspectionItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]entities.InspectionItem, len(w.items))
	copy(out, w.items)
	return out
}

// SetItem updates the checklist entry for area.
func (w *Wizard) SetItem(area string, condition entities.Condition, hasDamage bool, notes string) error {
	if !condition.Valid() {
		return apiclient.WrapValidation(area, entities.ErrInvalidCondition)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.items {
		if w.items[i].Area == area {
			w.items[i].Condition = condition
			w.items[i].HasDamage = hasDamage
			w.items[i].Notes = notes
			return nil
		}
	}
	return apiclient.WrapValidation(area, entities.ErrUnknownArea)
}

func (w *Wizard) SetGeneralNotes(notes string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.generalNotes = notes
}

// Submit validates the draft locally and sends it as one request. On failure the
// draft is left intact on step 3; on success it is reset to step 1.
func (w *Wizard) Submit(ctx context.Context) (response.InspectionResponse, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepChecklist {
		return response.InspectionResponse{}, ErrWrongStep
	}
	if w.vehicle == nil {
		return response.InspectionResponse{}, apiclient.WrapValidation("vehicle", ErrMissingVehicle)
	}
	if err := entities.ValidateInspectionItems(w.items, w.policy); err != nil {
		return response.InspectionResponse{}, apiclient.WrapValidation("items", err)
	}

	req := w.requestLocked()
	out, err := w.api.CreateInspection(ctx, req)
	if err != nil {
		logger.WithContext(ctx).Warn("[console][inspection] submit failed",
			zap.String("vehicle_id", w.vehicle.ID), zap.Error(err))
		return response.InspectionResponse{}, err
	}

	logger.WithContext(ctx).Info("[console][inspection] submitted",
		zap.String("inspection_id", out.ID), zap.Int("photos", len(req.Photos)))
	w.camera.Reset(ctx)
	w.resetLocked()
	return out, nil
}

// Cancel discards the whole draft, photos included.
func (w *Wizard) Cancel(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.camera.Reset(ctx)
	w.resetLocked()
}

func (w *Wizard) requestLocked() request.InspectionRequest {
	items := make([]request.InspectionItemRequest, len(w.items))
	for i, it := range w.items {
		items[i] = request.InspectionItemRequest{
			Area:      it.Area,
			Condition: string(it.Condition),
			Notes:     it.Notes,
			HasDamage: it.HasDamage,
		}
	}
	photos := w.camera.Photos()
	urls := make([]string, len(photos))
	for i, p := range photos {
		urls[i] = p.DataURL()
	}
	return request.InspectionRequest{
		VehicleID:      w.vehicle.ID,
		ServiceOrderID: w.serviceOrderID,
		Items:          items,
		GeneralNotes:   w.generalNotes,
		Photos:         urls,
	}
}

func (w *Wizard) resetLocked() {
	w.step = StepVehicle
	w.vehicle = nil
	w.serviceOrderID = ""
	w.items = entities.DefaultInspectionItems()
	w.generalNotes = ""
}
