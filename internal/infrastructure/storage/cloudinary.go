// Package storage provides blob storage implementations for the
// image objects attached to business resources.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/sistemaventa/backend/internal/application/gateway"
	"github.com/sistemaventa/backend/internal/domain/settings"
	"github.com/sistemaventa/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Ensure CloudinaryStorage implements the gateway contract
var _ gateway.BlobStorage = (*CloudinaryStorage)(nil)

// CloudinaryStorage stores image objects in Cloudinary. Credentials
// are read from the configurations table on every call, so rotating
// them requires no restart; at the current call volume the extra
// query is acceptable.
type CloudinaryStorage struct {
	settings shared.Repository[settings.Configuration]
	logger   *zap.Logger
}

// NewCloudinaryStorage creates a new CloudinaryStorage
func NewCloudinaryStorage(cfg shared.Repository[settings.Configuration], logger *zap.Logger) *CloudinaryStorage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CloudinaryStorage{settings: cfg, logger: logger}
}

// publicID derives the stable object key from a filename; stripping
// the extension makes re-uploads of the same name idempotent.
func publicID(filename string) string {
	return strings.TrimSuffix(filename, path.Ext(filename))
}

func (s *CloudinaryStorage) client(ctx context.Context) (*cloudinary.Cloudinary, error) {
	rows, err := s.settings.Query(ctx, settings.ForResource(settings.ResourceCloudinary))
	if err != nil {
		return nil, fmt.Errorf("loading cloudinary credentials: %w", err)
	}
	cfg := settings.AsMap(rows)

	for _, key := range []string{settings.CloudPropertyName, settings.CloudPropertyAPIKey, settings.CloudPropertyAPISecret} {
		if cfg[key] == "" {
			return nil, fmt.Errorf("cloudinary configuration is missing %q", key)
		}
	}

	cld, err := cloudinary.NewFromParams(
		cfg[settings.CloudPropertyName],
		cfg[settings.CloudPropertyAPIKey],
		cfg[settings.CloudPropertyAPISecret],
	)
	if err != nil {
		return nil, fmt.Errorf("creating cloudinary client: %w", err)
	}
	return cld, nil
}

// Upload stores the object under {folder}/{filename-sans-extension},
// overwriting any previous object at the same key, and returns the
// secure URL.
func (s *CloudinaryStorage) Upload(ctx context.Context, content io.Reader, folder, filename string) (string, error) {
	if filename == "" {
		return "", errors.New("filename is required")
	}

	cld, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	resp, err := cld.Upload.Upload(ctx, content, uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID(filename),
		Overwrite:    api.Bool(true),
		ResourceType: imageResourceType,
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s/%s: %w", folder, filename, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("uploading %s/%s: %s", folder, filename, resp.Error.Message)
	}

	s.logger.Debug("object uploaded",
		zap.String("folder", folder),
		zap.String("public_id", resp.PublicID),
	)

	return resp.SecureURL, nil
}

// Remove deletes the object. A key that never existed reports
// (false, nil); only transport or API failures return an error.
func (s *CloudinaryStorage) Remove(ctx context.Context, folder, filename string) (bool, error) {
	if filename == "" {
		return false, errors.New("filename is required")
	}

	cld, err := s.client(ctx)
	if err != nil {
		return false, err
	}

	resp, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     folder + "/" + publicID(filename),
		ResourceType: imageResourceType,
	})
	if err != nil {
		return false, fmt.Errorf("removing %s/%s: %w", folder, filename, err)
	}

	switch resp.Result {
	case "ok":
		return true, nil
	case "not found":
		return false, nil
	default:
		return false, fmt.Errorf("removing %s/%s: %s", folder, filename, resp.Result)
	}
}

// imageResourceType pins every stored object to Cloudinary's image type
const imageResourceType = "image"
