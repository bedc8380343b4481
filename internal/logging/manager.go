package logging

import (
	"fmt"

	"jobi-server/internal/config"
	"jobi-server/internal/logging/adapters"
)

// Manager manages the logging system initialization and configuration
type Manager struct {
	factory *AdapterFactory
	logger  *MultiLogger
}

// NewManager creates a new logging manager
func NewManager() *Manager {
	return &Manager{
		factory: NewAdapterFactory(),
		logger:  NewMultiLogger(),
	}
}

// Initialize initializes the logging system from configuration
func (m *Manager) Initialize(cfg *config.Config) error {
	level := ParseLogLevel(cfg.Logging.Level)
	m.logger.SetLevel(level)

	// If adapter configuration is provided, use it
	if len(cfg.Logging.Adapters) > 0 {
		for _, ac := range cfg.Logging.Adapters {
			if !ac.Enabled {
				continue
			}

			adapter, err := m.factory.CreateAdapter(AdapterConfig{
				Name:    ac.Name,
				Type:    ac.Type,
				Enabled: ac.Enabled,
				Options: ac.Options,
			})
			if err != nil {
				return fmt.Errorf("failed to create adapter %s: %w", ac.Name, err)
			}

			if err := m.logger.AddAdapter(adapter); err != nil {
				return fmt.Errorf("failed to add adapter %s: %w", ac.Name, err)
			}
		}
		return nil
	}

	// Fallback to a stdout adapter built from the flat logging settings
	adapter := adapters.NewStdoutAdapter("stdout", adapters.StdoutConfig{
		Format: cfg.Logging.Format,
	})
	if err := m.logger.AddAdapter(adapter); err != nil {
		return fmt.Errorf("failed to add stdout adapter: %w", err)
	}

	return nil
}

// GetLogger returns the initialized logger
func (m *Manager) GetLogger() Logger {
	return m.logger
}

// Close closes the logging system
func (m *Manager) Close() error {
	if m.logger != nil {
		return m.logger.Close()
	}
	return nil
}

// Global manager instance
var globalManager *Manager

// InitializeLogging initializes the global logging system
func InitializeLogging(cfg *config.Config) error {
	globalManager = NewManager()
	return globalManager.Initialize(cfg)
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() Logger {
	if globalManager == nil {
		// Fallback to a basic logger if not initialized
		manager := NewManager()
		adapter := adapters.NewStdoutAdapter("fallback_stdout", adapters.StdoutConfig{Format: "json"})
		manager.logger.AddAdapter(adapter)
		globalManager = manager
	}
	return globalManager.GetLogger()
}

// CloseLogging closes the global logging system
func CloseLogging() error {
	if globalManager != nil {
		return globalManager.Close()
	}
	return nil
}

// LogWithRequestID creates a logger with request ID context
func LogWithRequestID(requestID string) Logger {
	return GetGlobalLogger().WithField("request_id", requestID)
}
