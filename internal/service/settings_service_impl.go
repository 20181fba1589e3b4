package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/blueprint/internal/app"
	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/alexanderramin/blueprint/internal/repository"
)

type settingsService struct {
	settings repository.SettingsRepo
}

func NewSettingsService(settings repository.SettingsRepo) SettingsService {
	return &settingsService{settings: settings}
}

func (s *settingsService) GetPeriod(ctx context.Context) (*domain.ReportingPeriod, error) {
	p, err := s.settings.GetPeriod(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

// SetPeriod parses a "YYYY-MM" key and stores it as the reporting period.
func (s *settingsService) SetPeriod(ctx context.Context, monthKey string) (*domain.ReportingPeriod, error) {
	k, err := domain.ParseMonthKey(monthKey)
	if err != nil {
		return nil, &app.AnalyticsError{Code: app.AnalyticsErrInvalidPeriod, Message: err.Error()}
	}
	p := domain.PeriodFromMonthKey(k)
	if err := p.Validate(); err != nil {
		return nil, &app.AnalyticsError{Code: app.AnalyticsErrInvalidPeriod, Message: err.Error()}
	}
	if err := s.settings.SetPeriod(ctx, p); err != nil {
		return nil, fmt.Errorf("saving reporting period: %w", err)
	}
	return &p, nil
}
