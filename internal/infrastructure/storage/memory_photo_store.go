package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryPhotoStore keeps inspection photos in process memory. Used with STORAGE_BACKEND=memory.
type MemoryPhotoStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryPhotoStore() *MemoryPhotoStore {
	return &MemoryPhotoStore{objects: map[string][]byte{}}
}

// SaveInspectionPhotos validates every data URL before storing any of them.
func (s *MemoryPhotoStore) SaveInspectionPhotos(_ context.Context, inspectionID string, dataURLs []string) ([]string, error) {
	payloads := make([][]byte, len(dataURLs))
	for i, dataURL := range dataURLs {
		payload, err := DecodeJPEGDataURL(dataURL)
		if err != nil {
			return nil, fmt.Errorf("photo %d: %w", i+1, err)
		}
		payloads[i] = payload
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, len(payloads))
	for i, p := range payloads {
		keys[i] = PhotoKey(inspectionID, i+1)
		s.objects[keys[i]] = p
	}
	return keys, nil
}

func (s *MemoryPhotoStore) DeleteInspectionPhotos(_ context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.objects, k)
	}
	return nil
}

// Photo returns the stored bytes for key.
func (s *MemoryPhotoStore) Photo(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.objects[key]
	return b, ok
}
