package driving

import "github.com/custodia-labs/chatprep/internal/core/domain"

// SettingsService manages persisted pipeline settings.
type SettingsService interface {
	// Get retrieves current settings with defaults applied.
	Get() (*domain.PipelineSettings, error)

	// Save validates and persists settings.
	Save(settings *domain.PipelineSettings) error

	// Set updates a single setting by key from its string form.
	Set(key, value string) error

	// Keys returns the recognised setting keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.PipelineSettings
}
