package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/mindmate/internal/model"
	"github.com/rcliao/mindmate/internal/notify"
	"github.com/rcliao/mindmate/internal/profile"
)

func init() {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change your profile and preferences",
		Run:   runProfileShow,
	}

	initCmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create your profile",
		Args:  cobra.ExactArgs(1),
		Run:   runProfileInit,
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		Run:   runProfileSet,
	}
	set.Flags().String("name", "", "Display name")
	set.Flags().Bool("notifications", true, "Daily reminder notifications")
	set.Flags().Bool("dark-mode", false, "Dark mode")
	set.Flags().String("reminder", "", "Reminder time, HH:MM")
	set.Flags().String("theme", "", "Theme: teal, purple, blue or green")

	cmd.AddCommand(initCmd, set)
	RootCmd.AddCommand(cmd)
}

func runProfileShow(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	p, err := a.profiles().Get(cmd.Context())
	if errors.Is(err, profile.ErrNoProfile) {
		a.exitErr("profile", fmt.Errorf("%w; run `mindmate profile init <name>`", err))
	}
	if err != nil {
		a.exitErr("profile", err)
	}

	if textOutput() {
		prefs := p.Preferences
		fmt.Printf("%s (joined %s)\n", p.Name, p.JoinedDate)
		fmt.Printf("notifications: %t\ndark mode:     %t\nreminder:      %s\ntheme:         %s\n",
			prefs.Notifications, prefs.DarkMode, prefs.ReminderTime, prefs.Theme)
		return
	}
	printJSON(p)
}

func runProfileInit(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	p, err := a.profiles().Create(cmd.Context(), args[0])
	if err != nil {
		a.exitErr("profile init", err)
	}
	printJSON(p)
}

func runProfileSet(cmd *cobra.Command, args []string) {
	var u profile.Update
	flags := cmd.Flags()
	if flags.Changed("name") {
		v, _ := flags.GetString("name")
		u.Name = &v
	}
	if flags.Changed("notifications") {
		v, _ := flags.GetBool("notifications")
		u.Notifications = &v
	}
	if flags.Changed("dark-mode") {
		v, _ := flags.GetBool("dark-mode")
		u.DarkMode = &v
	}
	if flags.Changed("reminder") {
		v, _ := flags.GetString("reminder")
		u.ReminderTime = &v
	}
	if flags.Changed("theme") {
		v, _ := flags.GetString("theme")
		theme := model.Theme(v)
		u.Theme = &theme
	}

	a := openApp()
	defer a.Close()

	p, err := a.profiles().Update(cmd.Context(), u)
	if err != nil {
		a.exitErr("profile set", err)
	}
	a.notifier.Notify(notify.Notice{Level: notify.LevelInfo, Title: "Profile Updated", Message: "Your changes have been saved."})
	printJSON(p)
}
