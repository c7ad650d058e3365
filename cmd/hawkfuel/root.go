package main

import (
	"context"
	"fmt"

	hawkfuel "github.com/HlnefzgerSchoolAct/HawkFuel"
	"github.com/spf13/cobra"
)

var (
	cfgDBPath   string
	cfgCloudURL string
	cfgAPIKey   string
	cfgUserID   string
	outputJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "hawkfuel",
	Short: "HawkFuel - nutrition tracking CLI",
	Long: `HawkFuel tracks meals, water, weight, and exercise in a local
database and keeps a signed-in account's data mirrored to the cloud.

All logging works offline; sync happens when a cloud URL is configured.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDBPath, "db", "", "Path to local database (default: per-user data directory)")
	rootCmd.PersistentFlags().StringVar(&cfgCloudURL, "cloud-url", "", "URL of the cloud sync service")
	rootCmd.PersistentFlags().StringVar(&cfgAPIKey, "api-key", "", "API key for cloud authentication")
	rootCmd.PersistentFlags().StringVar(&cfgUserID, "user", "", "Account user ID for cloud sync")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output results as JSON")
}

func loadConfig() hawkfuel.Config {
	cfg := hawkfuel.ConfigFromEnv()

	// Flags override environment
	if cfgDBPath != "" {
		cfg.LocalPath = cfgDBPath
	}
	if cfgCloudURL != "" {
		cfg.CloudURL = cfgCloudURL
	}
	if cfgAPIKey != "" {
		cfg.APIKey = cfgAPIKey
	}
	if cfgUserID != "" {
		cfg.UserID = cfgUserID
	}

	return cfg
}

func loadAndValidateConfig() (hawkfuel.Config, error) {
	cfg := loadConfig().WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newClient builds a client from flags and environment. The caller owns
// Close.
func newClient() (*hawkfuel.Client, error) {
	cfg, err := loadAndValidateConfig()
	if err != nil {
		return nil, err
	}
	client, err := hawkfuel.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize client: %w", err)
	}
	return client, nil
}

// newSignedInClient builds a client and signs in the configured user.
// Commands that talk to the cloud require this.
func newSignedInClient(ctx context.Context) (*hawkfuel.Client, error) {
	cfg, err := loadAndValidateConfig()
	if err != nil {
		return nil, err
	}
	if cfg.UserID == "" {
		return nil, fmt.Errorf("no user configured: set --user or HAWKFUEL_USER_ID")
	}
	client, err := hawkfuel.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize client: %w", err)
	}
	if err := client.SignIn(ctx, cfg.UserID); err != nil {
		client.Close()
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return client, nil
}
