package service

import (
	"context"
	"strings"

	"github.com/bukusaku/bukusaku-api/internal/config"
	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/bukusaku/bukusaku-api/internal/domain/repository"
	"github.com/bukusaku/bukusaku-api/pkg/apperror"
	"github.com/bukusaku/bukusaku-api/pkg/printer"
)

// SettingsService manages the store profile printed on receipts
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	defaults     config.StoreConfig
}

// NewSettingsService creates a new settings service. defaults fill the
// profile the first time it is read.
func NewSettingsService(settingsRepo repository.SettingsRepository, defaults config.StoreConfig) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, defaults: defaults}
}

// GetProfile returns the store profile, creating it from defaults when the
// database has none yet.
func (s *SettingsService) GetProfile(ctx context.Context) (*entity.StoreProfile, error) {
	profile, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	profile = &entity.StoreProfile{
		Name:       s.defaults.Name,
		Tagline:    s.defaults.Tagline,
		Address:    s.defaults.Address,
		Services:   s.defaults.Services,
		ThankYou:   s.defaults.ThankYou,
		Notice:     s.defaults.Notice,
		PaperWidth: s.defaults.PaperWidth,
	}
	if _, err := printer.ColumnsFor(profile.PaperWidth); err != nil {
		profile.PaperWidth = printer.DefaultPaperWidth
	}
	if err := s.settingsRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfileInput represents the update settings input. Nil fields are
// left unchanged.
type UpdateProfileInput struct {
	Name       *string
	Tagline    *string
	Address    *string
	Services   *string
	ThankYou   *string
	Notice     *string
	PaperWidth *int
}

// UpdateProfile updates the store profile
func (s *SettingsService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.StoreProfile, error) {
	profile, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldError("name", "Store name is required")
		}
		profile.Name = name
	}
	if input.PaperWidth != nil {
		if _, err := printer.ColumnsFor(*input.PaperWidth); err != nil {
			return nil, apperror.NewFieldError("paper_width", err.Error())
		}
		profile.PaperWidth = *input.PaperWidth
	}
	setIf(&profile.Tagline, input.Tagline)
	setIf(&profile.Address, input.Address)
	setIf(&profile.Services, input.Services)
	setIf(&profile.ThankYou, input.ThankYou)
	setIf(&profile.Notice, input.Notice)

	if err := s.settingsRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
