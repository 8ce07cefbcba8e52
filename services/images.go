package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/astraautomax/automax-backend/models"
	"go.uber.org/zap"
)

var (
	// ErrInvalidImage is returned for payloads that are not a decodable data-URI image.
	ErrInvalidImage = errors.New("invalid image format")
	// ErrUpload is returned when the media host rejects or fails an upload.
	ErrUpload = errors.New("image upload failed")
)

// ImageStorage turns an incoming data-URI payload into what is persisted
// with the product.
type ImageStorage interface {
	// Store prepares dataURI for persistence.
	Store(ctx context.Context, dataURI string) (models.ProductImage, error)
	// Discard releases anything Store created outside the document store.
	// Errors are logged, never returned.
	Discard(ctx context.Context, img models.ProductImage)
}

// InlineStorage keeps the decoded image bytes inside the product document.
type InlineStorage struct{}

// Store decodes the base64 payload following the first comma of dataURI.
func (InlineStorage) Store(_ context.Context, dataURI string) (models.ProductImage, error) {
	data, err := DecodeDataURI(dataURI)
	if err != nil {
		return models.ProductImage{}, err
	}
	return models.ProductImage{Data: data}, nil
}

// Discard is a no-op: inline bytes go away with the document.
func (InlineStorage) Discard(context.Context, models.ProductImage) {}

// DecodeDataURI extracts the binary payload of a base64 data URI.
func DecodeDataURI(dataURI string) ([]byte, error) {
	if !models.IsImageDataURI(dataURI) {
		return nil, ErrInvalidImage
	}
	_, payload, ok := strings.Cut(dataURI, ",")
	if !ok || payload == "" {
		return nil, fmt.Errorf("%w: missing payload", ErrInvalidImage)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return data, nil
}

// CloudStorage hands the payload to a media host and keeps only the reference.
type CloudStorage struct {
	Host MediaHost
}

// MediaHost is a remote image store.
type MediaHost interface {
	Upload(ctx context.Context, dataURI string) (UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}

// UploadResult identifies an uploaded asset.
type UploadResult struct {
	URL      string
	PublicID string
}

// Store uploads dataURI and returns its hosted reference.
func (s CloudStorage) Store(ctx context.Context, dataURI string) (models.ProductImage, error) {
	if !models.IsImageDataURI(dataURI) {
		return models.ProductImage{}, ErrInvalidImage
	}
	res, err := s.Host.Upload(ctx, dataURI)
	if err != nil {
		return models.ProductImage{}, err
	}
	return models.ProductImage{URL: res.URL, PublicID: res.PublicID}, nil
}

// Discard deletes the hosted asset, if any.
func (s CloudStorage) Discard(ctx context.Context, img models.ProductImage) {
	if img.PublicID == "" {
		return
	}
	if err := s.Host.Destroy(ctx, img.PublicID); err != nil {
		zap.L().Warn("failed to remove hosted image", zap.String("publicId", img.PublicID), zap.Error(err))
		return
	}
	zap.L().Info("removed hosted image", zap.String("publicId", img.PublicID))
}
