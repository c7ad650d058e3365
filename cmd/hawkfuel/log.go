package main

import (
	"fmt"

	hawkfuel "github.com/HlnefzgerSchoolAct/HawkFuel"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a food item to today's log",
	Long: `Log a food item with calories and macros.

Example:
  hawkfuel log --name "oatmeal with banana" --calories 310 --protein 9 --carbs 62 --fat 5
  hawkfuel log -n apple -k 95`,
	RunE: runLog,
}

var (
	logName     string
	logCalories int
	logProtein  float64
	logCarbs    float64
	logFat      float64
)

func init() {
	logCmd.Flags().StringVarP(&logName, "name", "n", "", "Name of the food (required)")
	logCmd.Flags().IntVarP(&logCalories, "calories", "k", 0, "Calories in the portion (required)")
	logCmd.Flags().Float64Var(&logProtein, "protein", 0, "Protein in grams")
	logCmd.Flags().Float64Var(&logCarbs, "carbs", 0, "Carbohydrates in grams")
	logCmd.Flags().Float64Var(&logFat, "fat", 0, "Fat in grams")

	logCmd.MarkFlagRequired("name")
	logCmd.MarkFlagRequired("calories")

	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	entry := hawkfuel.FoodEntry{
		Name:     logName,
		Calories: logCalories,
		ProteinG: logProtein,
		CarbsG:   logCarbs,
		FatG:     logFat,
	}
	if err := client.LogFood(cmd.Context(), entry); err != nil {
		return fmt.Errorf("log food: %w", err)
	}

	if outputJSON {
		day, err := client.TodayLog()
		if err != nil {
			return err
		}
		return outputAsJSON(cmd, day)
	}

	printSuccess(cmd.OutOrStdout(), "Logged %s (%d kcal)", logName, logCalories)
	return nil
}

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Log an exercise session",
	Long: `Log an exercise session with an estimate of calories burned.

Example:
  hawkfuel exercise --name "morning run" --burned 320`,
	RunE: runExercise,
}

var (
	exerciseName   string
	exerciseBurned int
)

func init() {
	exerciseCmd.Flags().StringVarP(&exerciseName, "name", "n", "", "Name of the activity (required)")
	exerciseCmd.Flags().IntVarP(&exerciseBurned, "burned", "b", 0, "Estimated calories burned (required)")

	exerciseCmd.MarkFlagRequired("name")
	exerciseCmd.MarkFlagRequired("burned")

	rootCmd.AddCommand(exerciseCmd)
}

func runExercise(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	entry := hawkfuel.ExerciseEntry{
		Name:           exerciseName,
		CaloriesBurned: exerciseBurned,
	}
	if err := client.LogExercise(cmd.Context(), entry); err != nil {
		return fmt.Errorf("log exercise: %w", err)
	}

	printSuccess(cmd.OutOrStdout(), "Logged %s (%d kcal burned)", exerciseName, exerciseBurned)
	return nil
}

var waterCmd = &cobra.Command{
	Use:   "water <ml>",
	Short: "Add water intake in milliliters",
	Long: `Add water intake to today's running total.

Example:
  hawkfuel water 500`,
	Args: cobra.ExactArgs(1),
	RunE: runWater,
}

func init() {
	rootCmd.AddCommand(waterCmd)
}

func runWater(cmd *cobra.Command, args []string) error {
	var ml int
	if _, err := fmt.Sscanf(args[0], "%d", &ml); err != nil || ml <= 0 {
		return fmt.Errorf("invalid amount %q: want a positive number of milliliters", args[0])
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.LogWater(cmd.Context(), ml); err != nil {
		return fmt.Errorf("log water: %w", err)
	}

	day, err := client.TodayLog()
	if err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "Added %d ml of water (today: %d ml)", ml, day.Water)
	return nil
}
