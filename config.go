package hawkfuel

import (
	"os"

	"github.com/HlnefzgerSchoolAct/HawkFuel/internal/store"
)

// Config configures the HawkFuel client.
type Config struct {
	// LocalPath is the path to the local SQLite database.
	// Defaults to the per-user data directory.
	LocalPath string

	// CloudURL is the URL of the cloud document service.
	// If empty, the client operates in offline-only mode and every sync
	// operation is a silent no-op.
	CloudURL string

	// APIKey authenticates with the cloud service.
	APIKey string

	// UserID is the signed-in account identity. Optional at construction;
	// SignIn supplies it per session.
	UserID string

	// DeviceID identifies this client instance for observability.
	// Defaults to hostname if not set.
	DeviceID string

	// Debug enables verbose logging of all cloud API communications.
	Debug bool

	// DebugLogPath is the path to write debug logs.
	// Defaults to stderr if empty.
	DebugLogPath string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	hostname, _ := os.Hostname()
	return Config{
		LocalPath: store.DBPath(),
		DeviceID:  hostname,
	}
}

// ConfigFromEnv reads configuration from environment variables.
//
//	HAWKFUEL_DB_PATH    → LocalPath
//	HAWKFUEL_CLOUD_URL  → CloudURL
//	HAWKFUEL_API_KEY    → APIKey
//	HAWKFUEL_USER_ID    → UserID
//	HAWKFUEL_DEVICE_ID  → DeviceID
//	HAWKFUEL_DEBUG      → Debug (any non-empty value enables)
//	HAWKFUEL_DEBUG_LOG  → DebugLogPath
func ConfigFromEnv() Config {
	return Config{
		LocalPath:    os.Getenv("HAWKFUEL_DB_PATH"),
		CloudURL:     os.Getenv("HAWKFUEL_CLOUD_URL"),
		APIKey:       os.Getenv("HAWKFUEL_API_KEY"),
		UserID:       os.Getenv("HAWKFUEL_USER_ID"),
		DeviceID:     os.Getenv("HAWKFUEL_DEVICE_ID"),
		Debug:        os.Getenv("HAWKFUEL_DEBUG") != "",
		DebugLogPath: os.Getenv("HAWKFUEL_DEBUG_LOG"),
	}
}

// Validate checks the configuration for errors.
// Returns *ValidationError for invalid fields.
func (c *Config) Validate() error {
	if c.LocalPath == "" {
		return &ValidationError{Field: "LocalPath", Message: "required: path to SQLite database"}
	}
	if c.CloudURL != "" && c.APIKey == "" {
		return &ValidationError{Field: "APIKey", Message: "required when CloudURL is set"}
	}
	return nil
}

// IsOffline returns true if the client operates in offline-only mode.
// Offline mode is determined by CloudURL being empty.
func (c *Config) IsOffline() bool {
	return c.CloudURL == ""
}

// WithDefaults fills in default values for unset fields.
func (c Config) WithDefaults() Config {
	defaults := DefaultConfig()
	if c.LocalPath == "" {
		c.LocalPath = defaults.LocalPath
	}
	if c.DeviceID == "" {
		c.DeviceID = defaults.DeviceID
	}
	return c
}
