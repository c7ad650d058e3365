package main

import (
	hawkfuel "github.com/HlnefzgerSchoolAct/HawkFuel"
	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's log",
	Long:  `Show today's food entries, exercise, water, and calories remaining against the daily target.`,
	RunE:  runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

func runToday(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	day, err := client.TodayLog()
	if err != nil {
		return err
	}

	var target hawkfuel.DailyTarget
	hasTarget, _ := client.Store().GetSlotInto(hawkfuel.SlotDailyTarget, &target)

	return outputDayLog(cmd, day, target, hasTarget)
}
