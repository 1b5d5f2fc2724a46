package settings

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/validator"
)

type SettingsServiceImpl struct {
	settings.SettingsRepository
	transactor database.Transactor
}

func NewSettingsService(settingsRepository settings.SettingsRepository, transactor database.Transactor) settings.SettingsService {
	return &SettingsServiceImpl{
		SettingsRepository: settingsRepository,
		transactor:         transactor,
	}
}

// GetProjectSettings implements settings.SettingsService.
func (s *SettingsServiceImpl) GetProjectSettings(ctx context.Context) (settings.ProjectSettings, error) {
	rows, err := s.SettingsRepository.GetAll(ctx)
	if err != nil {
		return settings.ProjectSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	result := settings.ProjectSettings{
		AnnualLeaveDays:      settings.DefaultAnnualLeaveDays,
		AnnualLeaveResetDate: settings.DefaultAnnualLeaveResetDate,
	}

	for _, row := range rows {
		switch row.Key {
		case settings.KeyProjectStartDate:
			date, err := utils.ParseDate(row.Value)
			if err != nil {
				slog.Warn("Ignoring unreadable project start date", "value", row.Value, "error", err)
				continue
			}
			result.ProjectStartDate = &date
		case settings.KeyAnnualLeaveDays:
			days, err := strconv.Atoi(row.Value)
			if err != nil || days < 0 {
				slog.Warn("Ignoring unreadable annual leave days, using default", "value", row.Value)
				continue
			}
			result.AnnualLeaveDays = days
		case settings.KeyAnnualLeaveResetDate:
			if !validator.IsValidResetDate(row.Value) {
				slog.Warn("Ignoring unreadable annual leave reset date, using default", "value", row.Value)
				continue
			}
			result.AnnualLeaveResetDate = row.Value
		}
	}

	return result, nil
}

// Get implements settings.SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.SettingsResponse, error) {
	cfg, err := s.GetProjectSettings(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return settings.SettingsResponse{
		ProjectStartDate:     utils.FormatDatePtr(cfg.ProjectStartDate),
		AnnualLeaveDays:      cfg.AnnualLeaveDays,
		AnnualLeaveResetDate: cfg.AnnualLeaveResetDate,
	}, nil
}

// Update implements settings.SettingsService.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if req.ProjectStartDate != nil {
			if err := s.SettingsRepository.Upsert(txCtx, settings.KeyProjectStartDate, *req.ProjectStartDate); err != nil {
				return fmt.Errorf("failed to update project start date: %w", err)
			}
		}
		if req.AnnualLeaveDays != nil {
			if err := s.SettingsRepository.Upsert(txCtx, settings.KeyAnnualLeaveDays, strconv.Itoa(*req.AnnualLeaveDays)); err != nil {
				return fmt.Errorf("failed to update annual leave days: %w", err)
			}
		}
		if req.AnnualLeaveResetDate != nil {
			if err := s.SettingsRepository.Upsert(txCtx, settings.KeyAnnualLeaveResetDate, *req.AnnualLeaveResetDate); err != nil {
				return fmt.Errorf("failed to update annual leave reset date: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	return s.Get(ctx)
}

// UpdateStartDate implements settings.SettingsService.
func (s *SettingsServiceImpl) UpdateStartDate(ctx context.Context, req settings.UpdateStartDateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.SettingsRepository.Upsert(ctx, settings.KeyProjectStartDate, req.StartDate); err != nil {
		return fmt.Errorf("failed to update project start date: %w", err)
	}
	return nil
}

// UpdateAnnualLeave implements settings.SettingsService.
func (s *SettingsServiceImpl) UpdateAnnualLeave(ctx context.Context, req settings.UpdateAnnualLeaveRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}
	if req.ResetDate == nil && req.DefaultAnnualLeaveAllowance == nil {
		return s.Get(ctx)
	}
	return s.Update(ctx, req.ToUpdate())
}
