package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var frameExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

type dirSession struct {
	facing Facing
	frames []string
	next   int
	live   bool
}

func (s *dirSession) Facing() Facing { return s.facing }

// DirDevice plays image files from a directory as camera frames, in name order.
// A "front" or "back" subdirectory, when present, is used for that facing.
type DirDevice struct {
	Root string

	mu     sync.Mutex
	active *dirSession
}

func NewDirDevice(root string) *DirDevice {
	return &DirDevice{Root: root}
}

func (d *DirDevice) Start(_ context.Context, facing Facing) (Session, error) {
	frames, err := d.frames(facing)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active != nil && d.active.live {
		return nil, fmt.Errorf("%w: device busy", ErrDeviceAccess)
	}
	d.active = &dirSession{facing: facing, frames: frames, live: true}
	return d.active, nil
}

func (d *DirDevice) Stop(s Session) error {
	ds, ok := s.(*dirSession)
	if !ok {
		return errors.New("unknown session")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	ds.live = false
	if d.active == ds {
		d.active = nil
	}
	return nil
}

// GrabFrame decodes the next file, wrapping around at the end.
func (d *DirDevice) GrabFrame(s Session) (image.Image, error) {
	ds, ok := s.(*dirSession)
	if !ok {
		return nil, errors.New("unknown session")
	}

	d.mu.Lock()
	if !ds.live {
		d.mu.Unlock()
		return nil, errors.New("session stopped")
	}
	path := ds.frames[ds.next%len(ds.frames)]
	ds.next++
	d.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

func (d *DirDevice) Encode(img image.Image) (CapturedPhoto, error) {
	return EncodeJPEG(img, JPEGQuality)
}

func (d *DirDevice) frames(facing Facing) ([]string, error) {
	dir := d.Root
	if info, err := os.Stat(filepath.Join(d.Root, string(facing))); err == nil && info.IsDir() {
		dir = filepath.Join(d.Root, string(facing))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceAccess, err)
	}

	var frames []string
	for _, e := range entries {
		if e.IsDir() || !frameExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		frames = append(frames, filepath.Join(dir, e.Name()))
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: no frames in %s", ErrDeviceAccess, dir)
	}
	sort.Strings(frames)
	return frames, nil
}
