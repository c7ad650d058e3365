package main

import (
	"fmt"
	"strconv"

	hawkfuel "github.com/HlnefzgerSchoolAct/HawkFuel"
	"github.com/spf13/cobra"
)

var weightCmd = &cobra.Command{
	Use:   "weight [kg]",
	Short: "Record a weigh-in or show weight history",
	Long: `Record today's weigh-in, or show the full weight history when no
amount is given. A second weigh-in on the same day replaces the first.

Example:
  hawkfuel weight 72.4
  hawkfuel weight`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWeight,
}

func init() {
	rootCmd.AddCommand(weightCmd)
}

func runWeight(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	if len(args) == 0 {
		entries, err := client.WeightLog()
		if err != nil {
			return err
		}
		return outputWeightLog(cmd, entries)
	}

	kg, err := strconv.ParseFloat(args[0], 64)
	if err != nil || kg <= 0 {
		return fmt.Errorf("invalid weight %q: want kilograms, e.g. 72.4", args[0])
	}

	if err := client.LogWeight(cmd.Context(), hawkfuel.WeightEntry{WeightKg: kg}); err != nil {
		return fmt.Errorf("log weight: %w", err)
	}

	printSuccess(cmd.OutOrStdout(), "Recorded weigh-in: %.1f kg", kg)
	return nil
}
