package hawkfuel

import (
	"errors"
	"testing"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("HAWKFUEL_DB_PATH", "/tmp/test.db")
	t.Setenv("HAWKFUEL_CLOUD_URL", "https://sync.example.com")
	t.Setenv("HAWKFUEL_API_KEY", "secret")
	t.Setenv("HAWKFUEL_USER_ID", "u1")
	t.Setenv("HAWKFUEL_DEVICE_ID", "laptop")
	t.Setenv("HAWKFUEL_DEBUG", "1")

	cfg := ConfigFromEnv()
	if cfg.LocalPath != "/tmp/test.db" {
		t.Errorf("LocalPath = %q", cfg.LocalPath)
	}
	if cfg.CloudURL != "https://sync.example.com" {
		t.Errorf("CloudURL = %q", cfg.CloudURL)
	}
	if cfg.APIKey != "secret" || cfg.UserID != "u1" || cfg.DeviceID != "laptop" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.Debug {
		t.Error("Debug not enabled")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{LocalPath: "/tmp/test.db"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("offline config should validate, got %v", err)
	}

	cfg = Config{}
	err := cfg.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if verr.Field != "LocalPath" {
		t.Errorf("field = %q", verr.Field)
	}

	cfg = Config{LocalPath: "/tmp/test.db", CloudURL: "https://sync.example.com"}
	err = cfg.Validate()
	if !errors.As(err, &verr) || verr.Field != "APIKey" {
		t.Errorf("cloud URL without API key: %v", err)
	}
}

func TestConfigIsOffline(t *testing.T) {
	cfg := Config{LocalPath: "/tmp/test.db"}
	if !cfg.IsOffline() {
		t.Error("empty CloudURL should be offline")
	}
	cfg.CloudURL = "https://sync.example.com"
	if cfg.IsOffline() {
		t.Error("configured CloudURL should not be offline")
	}
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()
	if cfg.LocalPath == "" {
		t.Error("LocalPath default not applied")
	}

	cfg = Config{LocalPath: "/custom/path.db", DeviceID: "pinned"}.WithDefaults()
	if cfg.LocalPath != "/custom/path.db" || cfg.DeviceID != "pinned" {
		t.Errorf("explicit values overridden: %+v", cfg)
	}
}
