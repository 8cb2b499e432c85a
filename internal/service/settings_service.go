package service

import (
	"context"
	"strings"

	"stockroom/internal/image"
	"stockroom/internal/model"
	"stockroom/internal/repository"

	"github.com/rs/zerolog"
)

type settingsService struct {
	settingsRepo repository.SettingsRepository
	images       image.Store
	imageMax     int64
	logger       zerolog.Logger
}

// NewSettingsService creates a new settings service. Logos are stored in images.
func NewSettingsService(settingsRepo repository.SettingsRepository, images image.Store, imageMaxBytes int64, logger zerolog.Logger) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		images:       images,
		imageMax:     imageMaxBytes,
		logger:       logger.With().Str("service", "settings").Logger(),
	}
}

func (s *settingsService) Get(ctx context.Context) (model.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

func (s *settingsService) UpdateCompanyName(ctx context.Context, name *string) (model.Settings, error) {
	if name == nil {
		return s.settingsRepo.Get(ctx)
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return model.Settings{}, model.NewValidationError("companyName", "Company name is required")
	}
	return s.settingsRepo.Update(ctx, func(st *model.Settings) {
		st.CompanyName = trimmed
	})
}

func (s *settingsService) UploadLogo(ctx context.Context, file model.FileUpload) (model.Settings, error) {
	contentType, _, err := image.CheckImage(file.Data, s.imageMax)
	if err != nil {
		return model.Settings{}, err
	}

	ref, err := s.images.Save(ctx, file.Filename, contentType, file.Data)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to store logo")
		return model.Settings{}, model.NewStorageError("store logo", err)
	}

	var previous *string
	updated, err := s.settingsRepo.Update(ctx, func(st *model.Settings) {
		previous = st.Logo
		st.Logo = &ref
	})
	if err != nil {
		_ = s.images.Delete(ctx, ref)
		return model.Settings{}, err
	}

	if previous != nil && *previous != ref {
		if err := s.images.Delete(ctx, *previous); err != nil {
			s.logger.Warn().Err(err).Str("logo", *previous).Msg("failed to delete previous logo")
		}
	}

	s.logger.Info().Str("logo", ref).Msg("logo updated")
	return updated, nil
}
