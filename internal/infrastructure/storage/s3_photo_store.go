package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"polarizados_ya/internal/config"
	"polarizados_ya/internal/infrastructure/database"
	"polarizados_ya/internal/infrastructure/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

const (
	jpegDataURLPrefix = "data:image/jpeg;base64,"
	presignTTL        = 15 * time.Minute
)

var ErrInvalidPhoto = errors.New("photo must be a base64 JPEG data URL")

type objectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// S3PhotoStore keeps inspection photos in an S3 bucket.
type S3PhotoStore struct {
	client  objectStore
	presign func(ctx context.Context, bucket, key string) (string, error)
	bucket  string
}

func NewS3PhotoStore(ctx context.Context, cfg *config.Config) (*S3PhotoStore, error) {
	awsCfg, err := database.NewAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	presigner := s3.NewPresignClient(client)

	return &S3PhotoStore{
		client: client,
		bucket: cfg.PhotosBucket,
		presign: func(ctx context.Context, bucket, key string) (string, error) {
			req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
				Bucket: aws.String(bucket),
				Key:    aws.String(key),
			}, s3.WithPresignExpires(presignTTL))
			if err != nil {
				return "", err
			}
			return req.URL, nil
		},
	}, nil
}

// PhotoKey is the object key of the n-th photo (1-based) of an inspection.
func PhotoKey(inspectionID string, n int) string {
	return fmt.Sprintf("inspections/%s/%d.jpg", inspectionID, n)
}

// SaveInspectionPhotos uploads every data URL and returns the object keys in order.
func (s *S3PhotoStore) SaveInspectionPhotos(ctx context.Context, inspectionID string, dataURLs []string) ([]string, error) {
	keys := make([]string, 0, len(dataURLs))
	for i, dataURL := range dataURLs {
		payload, err := DecodeJPEGDataURL(dataURL)
		if err != nil {
			return nil, fmt.Errorf("photo %d: %w", i+1, err)
		}
		key := PhotoKey(inspectionID, i+1)
		_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(payload),
			ContentType: aws.String("image/jpeg"),
		})
		if err != nil {
			if derr := s.DeleteInspectionPhotos(ctx, keys); derr != nil {
				logger.WithContext(ctx).Warn("[storage][s3] partial upload not cleaned up",
					zap.String("inspection_id", inspectionID), zap.Error(derr))
			}
			return nil, fmt.Errorf("failed to upload photo %d: %w", i+1, err)
		}
		keys = append(keys, key)
	}
	logger.WithContext(ctx).Info("[storage][s3] inspection photos stored",
		zap.String("inspection_id", inspectionID), zap.Int("count", len(keys)))
	return keys, nil
}

// DeleteInspectionPhotos removes keys in one batch request.
func (s *S3PhotoStore) DeleteInspectionPhotos(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	objects := make([]types.ObjectIdentifier, len(keys))
	for i, k := range keys {
		objects[i] = types.ObjectIdentifier{Key: aws.String(k)}
	}
	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to delete photos: %w", err)
	}
	if len(out.Errors) > 0 {
		return fmt.Errorf("failed to delete %d of %d photos, first %s: %s", len(out.Errors), len(keys),
			aws.ToString(out.Errors[0].Key), aws.ToString(out.Errors[0].Message))
	}
	return nil
}

// PhotoURL returns a short-lived download URL for key.
func (s *S3PhotoStore) PhotoURL(ctx context.Context, key string) (string, error) {
	if s.presign == nil {
		return key, nil
	}
	url, err := s.presign(ctx, s.bucket, key)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return url, nil
}

// DecodeJPEGDataURL extracts the JPEG bytes from a "data:image/jpeg;base64," URL.
func DecodeJPEGDataURL(dataURL string) ([]byte, error) {
	if !strings.HasPrefix(dataURL, jpegDataURLPrefix) {
		return nil, ErrInvalidPhoto
	}
	payload, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, jpegDataURLPrefix))
	if err != nil || len(payload) == 0 {
		return nil, ErrInvalidPhoto
	}
	return payload, nil
}
