package camera

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"time"
)

// Facing selects the physical camera a session targets.
type Facing string

const (
	FacingBack  Facing = "back"
	FacingFront Facing = "front"
)

// Flip returns the opposite facing.
func (f Facing) Flip() Facing {
	if f == FacingFront {
		return FacingBack
	}
	return FacingFront
}

const (
	JPEGQuality      = 70
	DefaultMaxPhotos = 10
)

// ErrDeviceAccess means the camera is missing or access was denied.
var ErrDeviceAccess = errors.New("no se pudo acceder a la cámara")

// Session is one live acquisition of a video input device.
type Session interface {
	Facing() Facing
}

// VideoCaptureDevice is the platform camera. Start must fail with an error
// wrapping ErrDeviceAccess when the device is unavailable.
type VideoCaptureDevice interface {
	Start(ctx context.Context, facing Facing) (Session, error)
	Stop(s Session) error
	GrabFrame(s Session) (image.Image, error)
	Encode(img image.Image) (CapturedPhoto, error)
}

// CapturedPhoto is an encoded still frame.
type CapturedPhoto struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
	Facing      Facing
	CapturedAt  time.Time
}

// DataURL renders the photo the way the inspection endpoint accepts it.
func (p CapturedPhoto) DataURL() string {
	return "data:" + p.ContentType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// EncodeJPEG encodes img at the given quality; the buffer keeps the frame's native size.
func EncodeJPEG(img image.Image, quality int) (CapturedPhoto, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return CapturedPhoto{}, fmt.Errorf("failed to encode frame: %w", err)
	}
	b := img.Bounds()
	return CapturedPhoto{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
		Width:       b.Dx(),
		Height:      b.Dy(),
		CapturedAt:  time.Now(),
	}, nil
}
