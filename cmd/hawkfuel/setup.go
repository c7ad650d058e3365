package main

import (
	"fmt"

	hawkfuel "github.com/HlnefzgerSchoolAct/HawkFuel"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set up the user profile and daily targets",
	Long: `Save the user profile and compute daily calorie and macro targets
from it. Completing setup marks onboarding done.

Example:
  hawkfuel setup --name Ada --sex female --age 30 --height 170 --weight 65 \
    --activity moderate --goal maintain`,
	RunE: runSetup,
}

var (
	setupName     string
	setupSex      string
	setupAge      int
	setupHeight   float64
	setupWeight   float64
	setupActivity string
	setupGoal     string
)

func init() {
	setupCmd.Flags().StringVar(&setupName, "name", "", "Display name (required)")
	setupCmd.Flags().StringVar(&setupSex, "sex", "", "Sex for energy formulas: female or male (required)")
	setupCmd.Flags().IntVar(&setupAge, "age", 0, "Age in years (required)")
	setupCmd.Flags().Float64Var(&setupHeight, "height", 0, "Height in centimeters (required)")
	setupCmd.Flags().Float64Var(&setupWeight, "weight", 0, "Weight in kilograms (required)")
	setupCmd.Flags().StringVar(&setupActivity, "activity", "moderate", "Activity level: sedentary, light, moderate, active, veryActive")
	setupCmd.Flags().StringVar(&setupGoal, "goal", "maintain", "Weight goal: lose, maintain, gain")

	setupCmd.MarkFlagRequired("name")
	setupCmd.MarkFlagRequired("sex")
	setupCmd.MarkFlagRequired("age")
	setupCmd.MarkFlagRequired("height")
	setupCmd.MarkFlagRequired("weight")

	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	profile := hawkfuel.UserProfile{
		Name:          setupName,
		Sex:           hawkfuel.Sex(setupSex),
		Age:           setupAge,
		HeightCm:      setupHeight,
		WeightKg:      setupWeight,
		ActivityLevel: hawkfuel.ActivityLevel(setupActivity),
		Goal:          hawkfuel.Goal(setupGoal),
	}
	if err := client.SaveProfile(cmd.Context(), profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	target, macros := hawkfuel.Targets(profile)

	out := cmd.OutOrStdout()
	printSuccess(out, "Profile saved for %s", profile.Name)
	printKV(out, "Daily target", "%d kcal", target.Calories)
	printKV(out, "Protein", "%.0f g", macros.ProteinG)
	printKV(out, "Carbs", "%.0f g", macros.CarbsG)
	printKV(out, "Fat", "%.0f g", macros.FatG)
	return nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	Long:  `Show the current sync state and the last successful sync time.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	state, last := client.Status()

	if outputJSON {
		payload := map[string]any{"state": state}
		if !last.IsZero() {
			payload["lastSynced"] = last
		}
		return outputAsJSON(cmd, payload)
	}

	out := cmd.OutOrStdout()
	printKV(out, "State", "%s", state)
	if last.IsZero() {
		printKV(out, "Last synced", "never")
	} else {
		printKV(out, "Last synced", "%s", last.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}
