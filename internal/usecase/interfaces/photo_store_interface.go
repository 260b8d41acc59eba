package interfaces

import "context"

// IPhotoStore persists inspection photos sent as base64 JPEG data URLs.
type IPhotoStore interface {
	SaveInspectionPhotos(ctx context.Context, inspectionID string, dataURLs []string) ([]string, error)
	// DeleteInspectionPhotos removes stored photos, e.g. when the inspection could not be saved.
	DeleteInspectionPhotos(ctx context.Context, keys []string) error
}
