package service

import (
	"context"
	"fmt"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/model"
	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/repository"
)

// Settings is the process-wide configuration snapshot shared by the
// services. Updates swap the whole record atomically; a reader takes
// one Current() pointer per operation and never observes a half-applied
// policy.
type Settings struct {
	p atomic.Pointer[model.CafeSetting]
}

func NewSettings(initial *model.CafeSetting) *Settings {
	s := &Settings{}
	s.p.Store(initial)
	return s
}

// Current returns the live snapshot. Callers must not mutate it.
func (s *Settings) Current() *model.CafeSetting {
	return s.p.Load()
}

func (s *Settings) swap(next *model.CafeSetting) {
	s.p.Store(next)
}

// SettingsService reads and updates the cafe-wide configuration row.
// Updates are persisted first, then swapped into the shared snapshot so
// running services pick them up without a restart.
type SettingsService struct {
	repo     repository.SettingRepository
	settings *Settings
}

func NewSettingsService(repo repository.SettingRepository, settings *Settings) *SettingsService {
	return &SettingsService{repo: repo, settings: settings}
}

// Current returns the live settings snapshot.
func (s *SettingsService) Current() *model.CafeSetting {
	return s.settings.Current()
}

// Update validates and persists new settings, then publishes them to
// the shared snapshot.
func (s *SettingsService) Update(ctx context.Context, next model.CafeSetting) error {
	if next.CancelWindowHours < 0 {
		return fmt.Errorf("%w: cancel window must not be negative", ErrValidation)
	}
	if next.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: slot duration must be positive", ErrValidation)
	}
	if next.AutoGenerateDaysAhead < 1 {
		return fmt.Errorf("%w: generation horizon must be at least one day", ErrValidation)
	}

	next.ID = model.SettingSingletonID
	if err := s.repo.Save(ctx, &next); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	s.settings.swap(&next)
	log.WithFields(log.Fields{
		"cancel_window_hours": next.CancelWindowHours,
		"slot_duration_min":   next.SlotDurationMinutes,
		"days_ahead":          next.AutoGenerateDaysAhead,
	}).Info("cafe settings updated")
	return nil
}
