package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/mindmate/internal/notify"
	"github.com/rcliao/mindmate/internal/profile"
)

func init() {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send the daily mood check-in reminder until interrupted",
		Long:  "Runs in the foreground and prints a check-in reminder every day at the time set in your profile.",
		Run:   runRemind,
	}
	cmd.Flags().String("at", "", "Reminder time, HH:MM (default: profile reminder time)")

	RootCmd.AddCommand(cmd)
}

func runRemind(cmd *cobra.Command, args []string) {
	at, _ := cmd.Flags().GetString("at")

	a := openApp()
	defer a.Close()

	ctx := cmd.Context()
	if at == "" {
		prefs := profile.DefaultPreferences
		p, err := a.profiles().Get(ctx)
		switch {
		case err == nil:
			prefs = p.Preferences
		case !errors.Is(err, profile.ErrNoProfile):
			a.exitErr("remind", err)
		}
		if !prefs.Notifications {
			a.exitErr("remind", errors.New("notifications are off; enable them with `mindmate profile set --notifications`"))
		}
		at = prefs.ReminderTime
	}

	next, err := notify.NextReminder(time.Now(), at)
	if err != nil {
		a.exitErr("remind", err)
	}
	a.logger.Info("Reminder scheduled", zap.Time("next", next))
	fmt.Fprintf(cmd.ErrOrStderr(), "next check-in reminder at %s\n", next.Format("Mon 15:04"))

	r := &notify.Reminder{At: at, Notifier: notify.Multi{notify.NewWriterNotifier(cmd.OutOrStdout()), notify.NewLogNotifier(a.logger)}}
	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.exitErr("remind", err)
	}
}
