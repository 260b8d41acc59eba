package camera

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T) (*Controller, *FakeDevice) {
	t.Helper()
	dev := NewFakeDevice(32, 24)
	return NewController(dev), dev
}

func TestCaptureConfirmFlow(t *testing.T) {
	ctx := context.Background()
	c, dev := newTestController(t)

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, FacingBack, c.Facing())
	assert.Equal(t, DefaultMaxPhotos, c.MaxPhotos())

	require.NoError(t, c.Open(ctx, 3))
	assert.Equal(t, StatePreviewing, c.State())
	assert.Equal(t, 1, dev.Active())

	photo, err := c.Capture(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatePendingReview, c.State())
	assert.Equal(t, 0, dev.Active(), "capture stops the live session")
	assert.Equal(t, 32, photo.Width)
	assert.Equal(t, 24, photo.Height)
	assert.Equal(t, FacingBack, photo.Facing)
	assert.True(t, strings.HasPrefix(photo.DataURL(), "data:image/jpeg;base64,"))

	pending, ok := c.Pending()
	require.True(t, ok)
	assert.Equal(t, photo.Data, pending.Data)

	require.NoError(t, c.Confirm(ctx))
	assert.Equal(t, StatePreviewing, c.State(), "confirm under the cap reopens")
	assert.Len(t, c.Photos(), 1)
	_, ok = c.Pending()
	assert.False(t, ok)
}

func TestConfirmAtCapGoesIdle(t *testing.T) {
	ctx := context.Background()
	c, dev := newTestController(t)

	require.NoError(t, c.Open(ctx, 2))
	for i := 0; i < 2; i++ {
		_, err := c.Capture(ctx)
		require.NoError(t, err)
		require.NoError(t, c.Confirm(ctx))
	}

	assert.Len(t, c.Photos(), 2)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, 0, dev.Active())
	assert.ErrorIs(t, c.Open(ctx, 0), ErrPhotoLimit)
}

func TestGuards(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)

	_, err := c.Capture(ctx)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, c.Confirm(ctx), ErrInvalidState)
	assert.ErrorIs(t, c.Retake(ctx), ErrInvalidState)

	require.NoError(t, c.Open(ctx, 0))
	assert.ErrorIs(t, c.Open(ctx, 0), ErrInvalidState)

	_, err = c.Capture(ctx)
	require.NoError(t, err)
	_, err = c.Capture(ctx)
	assert.ErrorIs(t, err, ErrInvalidState, "no second capture while a frame is pending")
	assert.ErrorIs(t, c.SwitchFacing(ctx), ErrInvalidState)
}

func TestRetakeDiscardsPending(t *testing.T) {
	ctx := context.Background()
	c, dev := newTestController(t)

	require.NoError(t, c.Open(ctx, 0))
	_, err := c.Capture(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Retake(ctx))
	assert.Equal(t, StatePreviewing, c.State())
	assert.Equal(t, 1, dev.Active())
	assert.Empty(t, c.Photos())
	_, ok := c.Pending()
	assert.False(t, ok)
}

func TestSwitchFacing(t *testing.T) {
	ctx := context.Background()
	c, dev := newTestController(t)

	require.NoError(t, c.SwitchFacing(ctx))
	assert.Equal(t, FacingFront, c.Facing())
	assert.Equal(t, StatePreviewing, c.State(), "switching from idle opens the other camera")
	assert.Equal(t, 1, dev.Active())
	assert.Equal(t, 1, dev.Starts())

	require.NoError(t, c.SwitchFacing(ctx))
	assert.Equal(t, FacingBack, c.Facing())
	assert.Equal(t, StatePreviewing, c.State())
	assert.Equal(t, 1, dev.Active())
	assert.Equal(t, 2, dev.Starts())
	assert.Equal(t, 1, dev.MaxActive())
}

func TestSwitchFacingRetriesAfterFailedOpen(t *testing.T) {
	ctx := context.Background()
	c, dev := newTestController(t)

	dev.FailStart(errors.New("no back camera"))
	assert.ErrorIs(t, c.Open(ctx, 0), ErrDeviceAccess)
	assert.Equal(t, StateIdle, c.State())

	dev.FailStart(nil)
	require.NoError(t, c.SwitchFacing(ctx))
	assert.Equal(t, FacingFront, c.Facing())
	assert.Equal(t, StatePreviewing, c.State())
	assert.Equal(t, 1, dev.Active())
}

func TestSwitchFacingAtPhotoLimit(t *testing.T) {
	ctx := context.Background()
	c, dev := newTestController(t)

	require.NoError(t, c.Open(ctx, 1))
	_, err := c.Capture(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Confirm(ctx))
	require.Equal(t, StateIdle, c.State())

	starts := dev.Starts()
	assert.ErrorIs(t, c.SwitchFacing(ctx), ErrPhotoLimit)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, FacingBack, c.Facing())
	assert.Equal(t, starts, dev.Starts())
}

func TestDeviceFailureLeavesPhotosAlone(t *testing.T) {
	ctx := context.Background()
	c, dev := newTestController(t)

	require.NoError(t, c.Open(ctx, 0))
	_, err := c.Capture(ctx)
	require.NoError(t, err)

	dev.FailStart(errors.New("permission denied"))
	err = c.Confirm(ctx)
	assert.ErrorIs(t, err, ErrDeviceAccess)
	assert.Equal(t, StateIdle, c.State())
	assert.Len(t, c.Photos(), 1)

	err = c.Open(ctx, 0)
	assert.ErrorIs(t, err, ErrDeviceAccess)
	assert.Equal(t, StateIdle, c.State())
	assert.Len(t, c.Photos(), 1)

	dev.FailStart(nil)
	require.NoError(t, c.Open(ctx, 0))
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)

	require.NoError(t, c.Open(ctx, 0))
	var shots [][]byte
	for i := 0; i < 3; i++ {
		p, err := c.Capture(ctx)
		require.NoError(t, err)
		shots = append(shots, p.Data)
		require.NoError(t, c.Confirm(ctx))
	}
	c.Close(ctx)

	require.NoError(t, c.Remove(1))
	photos := c.Photos()
	require.Len(t, photos, 2)
	assert.Equal(t, shots[0], photos[0].Data)
	assert.Equal(t, shots[2], photos[1].Data)

	require.NoError(t, c.Remove(1))
	require.NoError(t, c.Remove(0))
	assert.Empty(t, c.Photos())

	assert.ErrorIs(t, c.Remove(0), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.Remove(-1), ErrIndexOutOfRange)
}

func TestCloseKeepsConfirmedPhotos(t *testing.T) {
	ctx := context.Background()
	c, dev := newTestController(t)

	require.NoError(t, c.Open(ctx, 0))
	_, err := c.Capture(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Confirm(ctx))
	_, err = c.Capture(ctx)
	require.NoError(t, err)

	c.Close(ctx)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, 0, dev.Active())
	assert.Len(t, c.Photos(), 1)
	_, ok := c.Pending()
	assert.False(t, ok)

	c.Reset(ctx)
	assert.Empty(t, c.Photos())
}

func TestNeverMoreThanOneSession(t *testing.T) {
	ctx := context.Background()
	c, dev := newTestController(t)
	rng := rand.New(rand.NewSource(7))

	ops := []func(){
		func() { _ = c.Open(ctx, 4) },
		func() { _, _ = c.Capture(ctx) },
		func() { _ = c.Confirm(ctx) },
		func() { _ = c.Retake(ctx) },
		func() { _ = c.SwitchFacing(ctx) },
		func() { c.Close(ctx) },
		func() { _ = c.Remove(0) },
	}
	for i := 0; i < 2000; i++ {
		ops[rng.Intn(len(ops))]()
		require.LessOrEqual(t, dev.Active(), 1)
		require.Equal(t, c.State() == StatePreviewing, dev.Active() == 1)
		require.LessOrEqual(t, len(c.Photos()), 4)
	}
	assert.Equal(t, 1, dev.MaxActive())
}

func writeFrame(t *testing.T, path string, shade uint8) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: shade, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestDirDevice(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeFrame(t, filepath.Join(root, "a.png"), 10)
	writeFrame(t, filepath.Join(root, "b.png"), 200)
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(root, "front"), 0o755))
	writeFrame(t, filepath.Join(root, "front", "selfie.png"), 90)

	dev := NewDirDevice(root)
	c := NewController(dev)

	require.NoError(t, c.Open(ctx, 0))
	p, err := c.Capture(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, p.Width)
	assert.Equal(t, 6, p.Height)
	assert.Equal(t, "image/jpeg", p.ContentType)
	require.NoError(t, c.Confirm(ctx))

	require.NoError(t, c.SwitchFacing(ctx))
	p, err = c.Capture(ctx)
	require.NoError(t, err)
	assert.Equal(t, FacingFront, p.Facing)
	require.NoError(t, c.Confirm(ctx))
	assert.Len(t, c.Photos(), 2)
	c.Close(ctx)

	_, err = NewDirDevice(t.TempDir()).Start(ctx, FacingBack)
	assert.ErrorIs(t, err, ErrDeviceAccess)
	_, err = NewDirDevice(filepath.Join(root, "missing")).Start(ctx, FacingBack)
	assert.ErrorIs(t, err, ErrDeviceAccess)
}
