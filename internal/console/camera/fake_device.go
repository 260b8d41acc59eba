package camera

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
)

type fakeSession struct {
	id     int
	facing Facing
}

func (s *fakeSession) Facing() Facing { return s.facing }

// FakeDevice is an in-memory camera that renders solid frames and tracks open sessions.
type FakeDevice struct {
	Width  int
	Height int

	mu        sync.Mutex
	nextID    int
	active    map[int]bool
	maxActive int
	starts    int
	failStart error
}

func NewFakeDevice(width, height int) *FakeDevice {
	return &FakeDevice{Width: width, Height: height, active: map[int]bool{}}
}

// FailStart makes every following Start fail with err; nil restores normal behaviour.
func (d *FakeDevice) FailStart(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failStart = err
}

func (d *FakeDevice) Start(_ context.Context, facing Facing) (Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.failStart != nil {
		return nil, d.failStart
	}
	d.nextID++
	d.starts++
	d.active[d.nextID] = true
	if len(d.active) > d.maxActive {
		d.maxActive = len(d.active)
	}
	return &fakeSession{id: d.nextID, facing: facing}, nil
}

func (d *FakeDevice) Stop(s Session) error {
	fs, ok := s.(*fakeSession)
	if !ok {
		return errors.New("unknown session")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.active, fs.id)
	return nil
}

func (d *FakeDevice) GrabFrame(s Session) (image.Image, error) {
	fs, ok := s.(*fakeSession)
	if !ok {
		return nil, errors.New("unknown session")
	}
	d.mu.Lock()
	live := d.active[fs.id]
	d.mu.Unlock()
	if !live {
		return nil, errors.New("session stopped")
	}

	img := image.NewRGBA(image.Rect(0, 0, d.Width, d.Height))
	shade := uint8(fs.id * 40)
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			img.Set(x, y, color.RGBA{R: shade, G: 80, B: 160, A: 255})
		}
	}
	return img, nil
}

func (d *FakeDevice) Encode(img image.Image) (CapturedPhoto, error) {
	return EncodeJPEG(img, JPEGQuality)
}

// Active returns the number of sessions currently open.
func (d *FakeDevice) Active() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.active)
}

// MaxActive returns the highest number of simultaneously open sessions seen.
func (d *FakeDevice) MaxActive() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maxActive
}

// Starts returns how many sessions were opened.
func (d *FakeDevice) Starts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.starts
}
