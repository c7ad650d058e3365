package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync local data with the cloud",
	Long: `Push local data to the cloud, or pull the cloud copy down with --pull.

Requires --cloud-url (or HAWKFUEL_CLOUD_URL), --api-key, and a user
configured via --user or HAWKFUEL_USER_ID.

Example:
  hawkfuel sync
  hawkfuel sync --pull`,
	RunE: runSync,
}

var syncPull bool

func init() {
	syncCmd.Flags().BoolVar(&syncPull, "pull", false, "Pull cloud data into the local store instead of pushing")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	client, err := newSignedInClient(cmd.Context())
	if err != nil {
		return err
	}
	defer client.Close()

	out := cmd.OutOrStdout()

	if syncPull {
		err = runWithSpinner(out, "Pulling cloud data", func() error {
			return client.Pull(cmd.Context())
		})
		if err != nil {
			return fmt.Errorf("pull: %w", err)
		}
		printSuccess(out, "Pulled cloud data into the local store")
	} else {
		err = runWithSpinner(out, "Pushing local data", func() error {
			return client.Sync(cmd.Context())
		})
		if err != nil {
			return fmt.Errorf("push: %w", err)
		}
		printSuccess(out, "Pushed local data to the cloud")
	}

	state, last := client.Status()
	if !last.IsZero() {
		printMuted(out, "Last synced: %s (%s)", last.Format("2006-01-02 15:04:05 MST"), state)
	}
	return nil
}
