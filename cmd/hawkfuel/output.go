package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	hawkfuel "github.com/HlnefzgerSchoolAct/HawkFuel"
	"github.com/spf13/cobra"
)

// outputAsJSON writes any value as formatted JSON to the command's stdout.
func outputAsJSON(cmd *cobra.Command, v interface{}) error {
	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError prints an error to stderr, ensuring no API keys are leaked.
func outputError(w io.Writer, err error) {
	msg := scrubSensitiveData(err.Error())
	if isTTY() {
		fmt.Fprintf(w, "%s %s\n", errorStyle.Render(iconError), msg)
	} else {
		fmt.Fprintf(w, "Error: %s\n", msg)
	}
}

// scrubSensitiveData removes potential API keys from error messages.
// The library already avoids including keys, but this is defense in depth.
func scrubSensitiveData(msg string) string {
	if cfgAPIKey != "" && strings.Contains(msg, cfgAPIKey) {
		msg = strings.ReplaceAll(msg, cfgAPIKey, "[REDACTED]")
	}
	return msg
}

// outputDayLog prints a day's log in the configured format.
func outputDayLog(cmd *cobra.Command, day hawkfuel.DayLog, target hawkfuel.DailyTarget, hasTarget bool) error {
	if outputJSON {
		return outputAsJSON(cmd, day)
	}

	out := cmd.OutOrStdout()

	eaten := 0
	for _, e := range day.Entries {
		eaten += e.Calories
	}
	burned := 0
	for _, e := range day.Exercise {
		burned += e.CaloriesBurned
	}

	if len(day.Entries) == 0 {
		printMuted(out, "Nothing logged yet today.")
	} else {
		fmt.Fprintf(out, "Food (%d entries):\n", len(day.Entries))
		for _, e := range day.Entries {
			fmt.Fprintf(out, "  %s  %d kcal", e.Name, e.Calories)
			if e.ProteinG > 0 || e.CarbsG > 0 || e.FatG > 0 {
				fmt.Fprintf(out, "  (P %.0fg / C %.0fg / F %.0fg)", e.ProteinG, e.CarbsG, e.FatG)
			}
			fmt.Fprintln(out)
		}
	}

	if len(day.Exercise) > 0 {
		fmt.Fprintln(out, "Exercise:")
		for _, e := range day.Exercise {
			fmt.Fprintf(out, "  %s  %d kcal burned\n", e.Name, e.CaloriesBurned)
		}
	}

	fmt.Fprintln(out)
	printKV(out, "Water", "%d ml", day.Water)
	printKV(out, "Eaten", "%d kcal", eaten)
	if burned > 0 {
		printKV(out, "Burned", "%d kcal", burned)
	}
	if hasTarget && target.Calories > 0 {
		printKV(out, "Remaining", "%d of %d kcal", target.Calories-eaten+burned, target.Calories)
	}
	return nil
}

// outputWeightLog prints the weight history.
func outputWeightLog(cmd *cobra.Command, entries []hawkfuel.WeightEntry) error {
	if outputJSON {
		return outputAsJSON(cmd, entries)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		printMuted(out, "No weigh-ins recorded.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(out, "  %s  %.1f kg\n", e.Date, e.WeightKg)
	}
	return nil
}
