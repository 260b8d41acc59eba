package camera

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"polarizados_ya/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// State is the controller phase.
type State int

const (
	StateIdle State = iota
	StatePreviewing
	StatePendingReview
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreviewing:
		return "previewing"
	case StatePendingReview:
		return "pending_review"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	ErrInvalidState    = errors.New("operation not allowed in the current camera state")
	ErrPhotoLimit      = errors.New("photo limit reached")
	ErrIndexOutOfRange = errors.New("photo index out of range")
)

// Controller drives one camera device through Idle, Previewing and PendingReview
// and accumulates confirmed photos up to a cap. At most one device session is
// open at any time.
type Controller struct {
	device VideoCaptureDevice

	mu        sync.Mutex
	state     State
	facing    Facing
	maxPhotos int
	session   Session
	pending   *CapturedPhoto
	photos    []CapturedPhoto
}

type Option func(*Controller)

func WithFacing(f Facing) Option {
	return func(c *Controller) {
		c.facing = f
	}
}

func NewController(device VideoCaptureDevice, opts ...Option) *Controller {
	c := &Controller{device: device, facing: FacingBack, maxPhotos: DefaultMaxPhotos}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open starts a preview. maxPhotos <= 0 keeps the current cap.
func (c *Controller) Open(ctx context.Context, maxPhotos int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return ErrInvalidState
	}
	if maxPhotos > 0 {
		c.maxPhotos = maxPhotos
	}
	if len(c.photos) >= c.maxPhotos {
		return ErrPhotoLimit
	}
	return c.startLocked(ctx)
}

// SwitchFacing stops the current session, if any, flips the facing and opens a
// new one. From Idle it retries with the other camera, e.g. after a failed Open.
func (c *Controller) SwitchFacing(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StatePendingReview {
		return ErrInvalidState
	}
	if len(c.photos) >= c.maxPhotos {
		return ErrPhotoLimit
	}

	c.stopLocked(ctx)
	c.facing = c.facing.Flip()
	return c.startLocked(ctx)
}

// Capture grabs the current frame, stops the preview and holds the frame for review.
func (c *Controller) Capture(ctx context.Context) (CapturedPhoto, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePreviewing {
		return CapturedPhoto{}, ErrInvalidState
	}

	frame, err := c.device.GrabFrame(c.session)
	if err != nil {
		return CapturedPhoto{}, fmt.Errorf("failed to grab frame: %w", err)
	}
	photo, err := c.device.Encode(frame)
	if err != nil {
		return CapturedPhoto{}, err
	}
	photo.Facing = c.facing

	c.stopLocked(ctx)
	c.pending = &photo
	c.state = StatePendingReview
	return photo, nil
}

// Retake drops the pending frame and reopens the preview.
func (c *Controller) Retake(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePendingReview {
		return ErrInvalidState
	}
	c.pending = nil
	c.state = StateIdle
	return c.startLocked(ctx)
}

// Confirm keeps the pending frame. Under the cap a new preview opens; at the cap
// the controller goes Idle. A failed reopen still keeps the confirmed photo.
func (c *Controller) Confirm(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePendingReview {
		return ErrInvalidState
	}
	c.photos = append(c.photos, *c.pending)
	c.pending = nil
	c.state = StateIdle

	if len(c.photos) >= c.maxPhotos {
		return nil
	}
	return c.startLocked(ctx)
}

// Remove deletes the confirmed photo at index, keeping the order of the rest.
func (c *Controller) Remove(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.photos) {
		return ErrIndexOutOfRange
	}
	c.photos = append(c.photos[:index], c.photos[index+1:]...)
	return nil
}

// Close stops any preview and discards the pending frame. Confirmed photos stay.
func (c *Controller) Close(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked(ctx)
	c.pending = nil
	c.state = StateIdle
}

// Reset closes the controller and drops every confirmed photo.
func (c *Controller) Reset(ctx context.Context) {
	c.Close(ctx)
	c.mu.Lock()
	c.photos = nil
	c.mu.Unlock()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Facing() Facing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.facing
}

func (c *Controller) MaxPhotos() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxPhotos
}

// Pending returns the frame awaiting review, if any.
func (c *Controller) Pending() (CapturedPhoto, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return CapturedPhoto{}, false
	}
	return *c.pending, true
}

// Photos returns a copy of the confirmed photos in capture order.
func (c *Controller) Photos() []CapturedPhoto {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CapturedPhoto, len(c.photos))
	copy(out, c.photos)
	return out
}

func (c *Controller) startLocked(ctx context.Context) error {
	s, err := c.device.Start(ctx, c.facing)
	if err != nil {
		c.session = nil
		c.state = StateIdle
		if !errors.Is(err, ErrDeviceAccess) {
			err = fmt.Errorf("%w: %v", ErrDeviceAccess, err)
		}
		logger.WithContext(ctx).Warn("[console][camera] device start failed",
			zap.String("facing", string(c.facing)), zap.Error(err))
		return err
	}
	c.session = s
	c.state = StatePreviewing
	return nil
}

// stopLocked releases the session, if any. A failed stop is logged and the
// handle dropped anyway.
func (c *Controller) stopLocked(ctx context.Context) {
	if c.session == nil {
		return
	}
	if err := c.device.Stop(c.session); err != nil {
		logger.WithContext(ctx).Warn("[console][camera] device stop failed", zap.Error(err))
	}
	c.session = nil
}
