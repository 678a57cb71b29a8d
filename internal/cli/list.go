package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/mindmate/internal/mood"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List mood entries",
		Run:   runMoodList,
	}

	cmd.Flags().StringP("timeframe", "t", "all", "Timeframe: daily, weekly, monthly, all")
	cmd.Flags().String("date", "", "Only entries for this day, YYYY-MM-DD")
	cmd.Flags().IntP("limit", "l", 0, "Max results (0 = no limit)")

	moodCmd.AddCommand(cmd)
}

func runMoodList(cmd *cobra.Command, args []string) {
	tf, _ := cmd.Flags().GetString("timeframe")
	date, _ := cmd.Flags().GetString("date")
	limit, _ := cmd.Flags().GetInt("limit")

	if !mood.ValidTimeframes[mood.Timeframe(tf)] {
		exitErr("mood list", fmt.Errorf("invalid timeframe %q (valid: daily, weekly, monthly, all)", tf))
	}

	a := openApp()
	defer a.Close()

	l := a.ledger(cmd.Context())
	entries := l.History(mood.Timeframe(tf))
	if date != "" {
		entries = l.EntriesForDate(date)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	if textOutput() {
		printEntries(entries)
		return
	}
	printJSON(entries)
}
