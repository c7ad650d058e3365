package main

import (
	hawkfuel "github.com/HlnefzgerSchoolAct/HawkFuel"
	hawkmcp "github.com/HlnefzgerSchoolAct/HawkFuel/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for coding agent integration",
	Long: `Start a Model Context Protocol (MCP) server over stdio.

This lets assistants log meals, water, and weigh-ins conversationally.

Configuration in an MCP client:

  {
    "mcpServers": {
      "hawkfuel": {
        "command": "hawkfuel",
        "args": ["mcp"],
        "env": {
          "HAWKFUEL_DB_PATH": "/path/to/hawkfuel.db"
        }
      }
    }
  }

Environment variables:
  HAWKFUEL_DB_PATH    Path to local SQLite database
  HAWKFUEL_CLOUD_URL  Cloud service URL (optional, enables sync)
  HAWKFUEL_API_KEY    Cloud API key (required if HAWKFUEL_CLOUD_URL set)
  HAWKFUEL_USER_ID    Account user ID (optional, signs in for sync)`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadAndValidateConfig()
	if err != nil {
		return err
	}

	// The client persists for the server lifetime
	client, err := hawkfuel.New(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	if cfg.UserID != "" && !cfg.IsOffline() {
		if err := client.SignIn(cmd.Context(), cfg.UserID); err != nil {
			return err
		}
	}

	server := hawkmcp.NewServer(client)
	return server.Run()
}
