package business

import (
	"context"
	"fmt"
	"io"

	"github.com/sistemaventa/backend/internal/application/gateway"
	"github.com/sistemaventa/backend/internal/domain/business"
	"github.com/sistemaventa/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// logoFolder is the blob-store folder holding the business logo
const logoFolder = "carpeta_logo"

// ProfileService maintains the singleton business profile. The row is
// seeded by the migrations; the service only reads and edits it.
type ProfileService struct {
	profiles shared.Repository[business.Profile]
	blobs    gateway.BlobStorage
	logger   *zap.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	profiles shared.Repository[business.Profile],
	blobs gateway.BlobStorage,
	logger *zap.Logger,
) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		profiles: profiles,
		blobs:    blobs,
		logger:   logger,
	}
}

// obtain loads the singleton row. Exposed lookups go through Obtain;
// nothing in the service accepts a profile id.
func (s *ProfileService) obtain(ctx context.Context) (*business.Profile, error) {
	profile, err := s.profiles.Get(ctx, func(p *business.Profile) bool {
		return p.ID == business.ProfileID
	})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, shared.ErrNotFound
	}
	return profile, nil
}

// Obtain returns the business profile
func (s *ProfileService) Obtain(ctx context.Context) (*business.Profile, error) {
	return s.obtain(ctx)
}

// Apply merges the scalar fields of changes into the profile, adopts
// the logo filename when none was recorded, uploads a supplied logo
// and persists the result.
func (s *ProfileService) Apply(ctx context.Context, changes *business.Profile, logo io.Reader, logoName string) (*business.Profile, error) {
	profile, err := s.obtain(ctx)
	if err != nil {
		return nil, err
	}

	profile.Merge(changes)
	profile.AdoptLogoName(logoName)

	if logo != nil {
		url, err := s.blobs.Upload(ctx, logo, logoFolder, profile.LogoName)
		if err != nil {
			return nil, fmt.Errorf("uploading business logo: %w", err)
		}
		profile.LogoURL = url
	}

	ok, err := s.profiles.Edit(ctx, profile)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrPersistenceFailure
	}

	return profile, nil
}
