package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/mindmate/internal/model"
	"github.com/rcliao/mindmate/internal/mood"
	"github.com/rcliao/mindmate/internal/notify"
)

var moodCmd = &cobra.Command{
	Use:   "mood",
	Short: "Track and review your mood",
}

func init() {
	add := &cobra.Command{
		Use:   "add <value>",
		Short: "Record a mood from 1 (struggling) to 10 (great)",
		Args:  cobra.ExactArgs(1),
		Run:   runMoodAdd,
	}
	add.Flags().String("date", "", "Day of the entry, YYYY-MM-DD (default: today)")
	add.Flags().String("emoji", "", "Emoji (default: chosen from the value)")

	today := &cobra.Command{
		Use:   "today",
		Short: "Show today's mood entries",
		Run:   runMoodToday,
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show averages, streak and trend",
		Run:   runMoodStats,
	}

	moodCmd.AddCommand(add, today, stats)
	RootCmd.AddCommand(moodCmd)
}

func runMoodAdd(cmd *cobra.Command, args []string) {
	date, _ := cmd.Flags().GetString("date")
	emoji, _ := cmd.Flags().GetString("emoji")

	value, err := strconv.Atoi(args[0])
	if err != nil || !model.ValidMoodValue(value) {
		exitErr("mood add", fmt.Errorf("value must be a whole number from %d to %d", model.MinMoodValue, model.MaxMoodValue))
	}

	a := openApp()
	defer a.Close()

	entry, err := a.ledger(cmd.Context()).Add(cmd.Context(), mood.AddParams{
		Date:  date,
		Value: value,
		Emoji: emoji,
	})
	if err != nil {
		a.exitErr("mood add", err)
	}
	a.notifier.Notify(notify.Notice{Level: notify.LevelInfo, Title: "Mood Saved!", Message: "Your mood has been recorded successfully."})

	if textOutput() {
		fmt.Printf("%s %s %d/10\n", entry.Date, entry.Emoji, entry.Value)
		return
	}
	printJSON(entry)
}

func runMoodToday(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	entries := a.ledger(cmd.Context()).Today()
	if textOutput() {
		printEntries(entries)
		return
	}
	printJSON(entries)
}

func runMoodStats(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	s := a.ledger(cmd.Context()).Summarize()
	if textOutput() {
		fmt.Printf("entries:        %d\n", s.TotalEntries)
		fmt.Printf("average:        %.1f\n", s.AverageMood)
		fmt.Printf("last 7 days:    %.1f (%d entries)\n", s.WeeklyAverage, s.WeeklyEntries)
		fmt.Printf("last month:     %.1f (%d entries)\n", s.MonthlyAverage, s.MonthlyEntries)
		fmt.Printf("streak:         %d days\n", s.StreakDays)
		fmt.Printf("tracking since: %d days\n", s.DaysSinceFirst)
		fmt.Printf("trend:          %s\n", s.Trend)
		return
	}
	printJSON(s)
}

func printEntries(entries []model.MoodEntry) {
	if len(entries) == 0 {
		fmt.Println("no mood entries")
		return
	}
	for _, e := range entries {
		fmt.Printf("%s  %s  %2d/10  %s\n", e.Date, e.Emoji, e.Value, e.ID)
	}
}
