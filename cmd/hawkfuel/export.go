package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the local database to JSON",
	Long: `Write every slot, recipe, and template to a JSON file, or to stdout
when no file is given.

Example:
  hawkfuel export backup.json
  hawkfuel export > backup.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a JSON export into the local database",
	Long: `Load a JSON export. Slots are replaced; recipes and templates merge
by id with existing entries.

Example:
  hawkfuel import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	if len(args) == 0 {
		return client.Store().ExportJSON(cmd.OutOrStdout())
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := client.Store().ExportJSON(f); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	printSuccess(cmd.OutOrStdout(), "Exported to %s", args[0])
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	if err := client.Store().ImportJSON(f); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	printSuccess(cmd.OutOrStdout(), "Imported %s", args[0])
	return nil
}
