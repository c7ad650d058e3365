package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var eraseCmd = &cobra.Command{
	Use:   "erase",
	Short: "Erase the account's cloud data",
	Long: `Delete every document the account has in the cloud. Local data is
untouched. Each document is deleted independently, so a partial failure
still removes as much as possible.

This cannot be undone. Requires --force or interactive confirmation.`,
	RunE: runErase,
}

var eraseForce bool

func init() {
	eraseCmd.Flags().BoolVar(&eraseForce, "force", false, "Skip confirmation prompt")
	rootCmd.AddCommand(eraseCmd)
}

func runErase(cmd *cobra.Command, args []string) error {
	if !eraseForce {
		fmt.Fprint(cmd.OutOrStdout(), "Erase ALL cloud data for this account? Type 'yes' to confirm: ")
		var answer string
		fmt.Fscanln(cmd.InOrStdin(), &answer)
		if strings.ToLower(strings.TrimSpace(answer)) != "yes" {
			printMuted(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	client, err := newSignedInClient(cmd.Context())
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.EraseCloudData(cmd.Context()); err != nil {
		return fmt.Errorf("erase: %w", err)
	}

	printSuccess(cmd.OutOrStdout(), "Cloud data erased")
	return nil
}
