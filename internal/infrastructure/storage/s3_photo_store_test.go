package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakePutter struct {
	keys    []string
	bodies  [][]byte
	err     error
	failAt  int
	deleted []string
	delErrs []types.Error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil && len(f.keys)+1 >= f.failAt {
		return nil, f.err
	}
	b, _ := io.ReadAll(in.Body)
	f.keys = append(f.keys, aws.ToString(in.Key))
	f.bodies = append(f.bodies, b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakePutter) DeleteObjects(_ context.Context, in *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	for _, o := range in.Delete.Objects {
		f.deleted = append(f.deleted, aws.ToString(o.Key))
	}
	return &s3.DeleteObjectsOutput{Errors: f.delErrs}, nil
}

func jpegURL(payload string) string {
	return jpegDataURLPrefix + base64.StdEncoding.EncodeToString([]byte(payload))
}

func TestSaveInspectionPhotos(t *testing.T) {
	t.Run("uploads in order", func(t *testing.T) {
		fp := &fakePutter{}
		store := &S3PhotoStore{client: fp, bucket: "photos"}

		keys, err := store.SaveInspectionPhotos(context.Background(), "insp-1", []string{jpegURL("a"), jpegURL("b")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(keys) != 2 || keys[0] != "inspections/insp-1/1.jpg" || keys[1] != "inspections/insp-1/2.jpg" {
			t.Fatalf("unexpected keys: %v", keys)
		}
		if string(fp.bodies[1]) != "b" {
			t.Fatalf("unexpected body: %q", fp.bodies[1])
		}
	})

	t.Run("rejects non jpeg", func(t *testing.T) {
		store := &S3PhotoStore{client: &fakePutter{}, bucket: "photos"}
		if _, err := store.SaveInspectionPhotos(context.Background(), "i", []string{"data:image/png;base64,AAAA"}); !errors.Is(err, ErrInvalidPhoto) {
			t.Fatalf("expected ErrInvalidPhoto, got %v", err)
		}
	})

	t.Run("upload error", func(t *testing.T) {
		store := &S3PhotoStore{client: &fakePutter{err: errors.New("boom")}, bucket: "photos"}
		if _, err := store.SaveInspectionPhotos(context.Background(), "i", []string{jpegURL("a")}); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("failed upload removes earlier photos", func(t *testing.T) {
		fp := &fakePutter{err: errors.New("boom"), failAt: 3}
		store := &S3PhotoStore{client: fp, bucket: "photos"}

		_, err := store.SaveInspectionPhotos(context.Background(), "i", []string{jpegURL("a"), jpegURL("b"), jpegURL("c")})
		if err == nil {
			t.Fatalf("expected error")
		}
		if len(fp.deleted) != 2 || fp.deleted[0] != "inspections/i/1.jpg" || fp.deleted[1] != "inspections/i/2.jpg" {
			t.Fatalf("expected the two uploaded photos to be deleted, got %v", fp.deleted)
		}
	})
}

func TestDeleteInspectionPhotos(t *testing.T) {
	t.Run("nothing to delete", func(t *testing.T) {
		fp := &fakePutter{}
		store := &S3PhotoStore{client: fp, bucket: "photos"}
		if err := store.DeleteInspectionPhotos(context.Background(), nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fp.deleted != nil {
			t.Fatalf("expected no request, got %v", fp.deleted)
		}
	})

	t.Run("per key errors are reported", func(t *testing.T) {
		fp := &fakePutter{delErrs: []types.Error{{Key: aws.String("inspections/i/1.jpg"), Message: aws.String("AccessDenied")}}}
		store := &S3PhotoStore{client: fp, bucket: "photos"}
		if err := store.DeleteInspectionPhotos(context.Background(), []string{"inspections/i/1.jpg"}); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestPhotoURLWithoutPresigner(t *testing.T) {
	store := &S3PhotoStore{bucket: "photos"}
	url, err := store.PhotoURL(context.Background(), "inspections/i/1.jpg")
	if err != nil || url != "inspections/i/1.jpg" {
		t.Fatalf("unexpected result: %s %v", url, err)
	}
}

func TestMemoryPhotoStore(t *testing.T) {
	store := NewMemoryPhotoStore()

	if _, err := store.SaveInspectionPhotos(context.Background(), "i", []string{jpegURL("a"), "nope"}); !errors.Is(err, ErrInvalidPhoto) {
		t.Fatalf("expected ErrInvalidPhoto, got %v", err)
	}
	if _, ok := store.Photo("inspections/i/1.jpg"); ok {
		t.Fatalf("expected nothing stored after a rejected batch")
	}

	keys, err := store.SaveInspectionPhotos(context.Background(), "i", []string{jpegURL("a"), jpegURL("b")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, ok := store.Photo(keys[1])
	if !ok || string(b) != "b" {
		t.Fatalf("unexpected photo %q %v", b, ok)
	}

	if err := store.DeleteInspectionPhotos(context.Background(), keys); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.Photo(keys[0]); ok {
		t.Fatalf("expected photo to be deleted")
	}
}
