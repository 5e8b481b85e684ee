package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/chatprep/internal/core/domain"
	"github.com/custodia-labs/chatprep/internal/core/ports/driven"
	"github.com/custodia-labs/chatprep/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyThreshold         = "pipeline.threshold"
	keyMinQuestionLength = "pipeline.min_question_length"
	keyMaxQuestionLength = "pipeline.max_question_length"
	keyLinesPath         = "corpus.lines_path"
	keyConversationsPath = "corpus.conversations_path"
	keyCacheEnabled      = "cache.enabled"
)

// SettingsService manages pipeline settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current pipeline settings. Unset keys take their defaults.
func (s *SettingsService) Get() (*domain.PipelineSettings, error) {
	defaults := domain.DefaultPipelineSettings()

	return &domain.PipelineSettings{
		Threshold:         s.getInt(keyThreshold, defaults.Threshold),
		MinQuestionLength: s.getInt(keyMinQuestionLength, defaults.MinQuestionLength),
		MaxQuestionLength: s.getInt(keyMaxQuestionLength, defaults.MaxQuestionLength),
		LinesPath:         s.getString(keyLinesPath, defaults.LinesPath),
		ConversationsPath: s.getString(keyConversationsPath, defaults.ConversationsPath),
		CacheEnabled:      s.getBool(keyCacheEnabled, defaults.CacheEnabled),
	}, nil
}

// Save validates and persists pipeline settings.
func (s *SettingsService) Save(settings *domain.PipelineSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(keyThreshold, settings.Threshold); err != nil {
		return fmt.Errorf("save threshold: %w", err)
	}
	if err := s.configStore.Set(keyMinQuestionLength, settings.MinQuestionLength); err != nil {
		return fmt.Errorf("save min question length: %w", err)
	}
	if err := s.configStore.Set(keyMaxQuestionLength, settings.MaxQuestionLength); err != nil {
		return fmt.Errorf("save max question length: %w", err)
	}
	if err := s.configStore.Set(keyLinesPath, settings.LinesPath); err != nil {
		return fmt.Errorf("save lines path: %w", err)
	}
	if err := s.configStore.Set(keyConversationsPath, settings.ConversationsPath); err != nil {
		return fmt.Errorf("save conversations path: %w", err)
	}
	if err := s.configStore.Set(keyCacheEnabled, settings.CacheEnabled); err != nil {
		return fmt.Errorf("save cache enabled: %w", err)
	}

	return nil
}

// Set updates one setting from its string form. The resulting
// settings must still validate.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyThreshold:
		settings.Threshold, err = parseInt(key, value)
	case keyMinQuestionLength:
		settings.MinQuestionLength, err = parseInt(key, value)
	case keyMaxQuestionLength:
		settings.MaxQuestionLength, err = parseInt(key, value)
	case keyLinesPath:
		settings.LinesPath = value
	case keyConversationsPath:
		settings.ConversationsPath = value
	case keyCacheEnabled:
		settings.CacheEnabled, err = strconv.ParseBool(value)
		if err != nil {
			err = fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return err
	}

	return s.Save(settings)
}

// Keys returns the recognised setting keys in display order.
func (s *SettingsService) Keys() []string {
	return []string{
		keyThreshold,
		keyMinQuestionLength,
		keyMaxQuestionLength,
		keyLinesPath,
		keyConversationsPath,
		keyCacheEnabled,
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.PipelineSettings {
	return domain.DefaultPipelineSettings()
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
	}
	return n, nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getInt honours an explicit zero, which is a valid threshold.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
