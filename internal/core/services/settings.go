package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/swamp/internal/core/domain"
	"github.com/custodia-labs/swamp/internal/core/ports/driven"
	"github.com/custodia-labs/swamp/internal/core/ports/driving"
	"github.com/custodia-labs/swamp/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyIndexStrategy   = "index.strategy"
	KeyIndexAlphabet   = "index.alphabet"
	KeyPropagateFilter = "index.propagate_filter"
	KeyStoreBackend    = "store.backend"
	KeyInputHeader     = "input.header"
)

// settingKeys lists the recognised keys in display order.
var settingKeys = []string{
	KeyIndexStrategy,
	KeyIndexAlphabet,
	KeyPropagateFilter,
	KeyStoreBackend,
	KeyInputHeader,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or unusable values fall back to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Index: domain.IndexSettings{
			Strategy:        s.getStrategy(defaults.Index.Strategy),
			Alphabet:        s.getAlphabet(defaults.Index.Alphabet),
			PropagateFilter: s.getBool(KeyPropagateFilter, defaults.Index.PropagateFilter),
		},
		Store: domain.StoreSettings{
			Backend: s.getBackend(defaults.Store.Backend),
		},
		Input: domain.InputSettings{
			Header: s.getBool(KeyInputHeader, defaults.Input.Header),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Set validates value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	var stored any
	switch key {
	case KeyIndexStrategy:
		strategy := domain.IndexStrategy(value)
		if !strategy.IsValid() {
			return fmt.Errorf("%s: unknown strategy %q: %w", key, value, domain.ErrInvalidInput)
		}
		stored = strategy.String()
	case KeyStoreBackend:
		backend := domain.StoreBackend(value)
		if !backend.IsValid() {
			return fmt.Errorf("%s: unknown backend %q: %w", key, value, domain.ErrInvalidInput)
		}
		stored = backend.String()
	case KeyIndexAlphabet:
		if _, err := domain.NewAlphabet(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		stored = value
	case KeyPropagateFilter, KeyInputHeader:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %q is not a boolean: %w", key, value, domain.ErrInvalidInput)
		}
		stored = b
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	logger.Debug("Setting %s = %v", key, stored)
	return nil
}

// Keys returns the recognised config keys in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Value renders the current value of key the way Set accepts it.
func Value(settings *domain.AppSettings, key string) (string, bool) {
	switch key {
	case KeyIndexStrategy:
		return settings.Index.Strategy.String(), true
	case KeyIndexAlphabet:
		return settings.Index.Alphabet, true
	case KeyPropagateFilter:
		return strconv.FormatBool(settings.Index.PropagateFilter), true
	case KeyStoreBackend:
		return settings.Store.Backend.String(), true
	case KeyInputHeader:
		return strconv.FormatBool(settings.Input.Header), true
	default:
		return "", false
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	val, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	b, ok := val.(bool)
	if !ok {
		logger.Warn("Ignoring non-boolean %s = %v", key, val)
		return defaultVal
	}
	return b
}

func (s *SettingsService) getStrategy(defaultVal domain.IndexStrategy) domain.IndexStrategy {
	val := s.configStore.GetString(KeyIndexStrategy)
	if val == "" {
		return defaultVal
	}
	strategy := domain.IndexStrategy(val)
	if !strategy.IsValid() {
		logger.Warn("Ignoring unknown %s %q", KeyIndexStrategy, val)
		return defaultVal
	}
	return strategy
}

func (s *SettingsService) getBackend(defaultVal domain.StoreBackend) domain.StoreBackend {
	val := s.configStore.GetString(KeyStoreBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StoreBackend(val)
	if !backend.IsValid() {
		logger.Warn("Ignoring unknown %s %q", KeyStoreBackend, val)
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getAlphabet(defaultVal string) string {
	val := s.configStore.GetString(KeyIndexAlphabet)
	if val == "" {
		return defaultVal
	}
	if _, err := domain.NewAlphabet(val); err != nil {
		logger.Warn("Ignoring %s: %v", KeyIndexAlphabet, err)
		return defaultVal
	}
	return val
}
