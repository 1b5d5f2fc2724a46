package settings

import "context"

type SettingsService interface {
	// Get returns the dashboard view of the settings
	Get(ctx context.Context) (SettingsResponse, error)

	// GetProjectSettings returns typed settings, falling back to defaults for anything missing or unreadable
	GetProjectSettings(ctx context.Context) (ProjectSettings, error)

	// Update applies a partial update atomically
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)

	UpdateStartDate(ctx context.Context, req UpdateStartDateRequest) error
	UpdateAnnualLeave(ctx context.Context, req UpdateAnnualLeaveRequest) (SettingsResponse, error)
}
