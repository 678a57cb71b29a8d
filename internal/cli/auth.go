package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rcliao/mindmate/internal/notify"
)

func init() {
	register := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Run:   runRegister,
	}
	register.Flags().StringP("username", "u", "", "Username (required)")
	register.Flags().StringP("email", "e", "", "Email (required)")
	register.Flags().StringP("password", "p", "", "Password (default: prompt or read from stdin)")
	register.MarkFlagRequired("username")
	register.MarkFlagRequired("email")

	login := &cobra.Command{
		Use:   "login <username-or-email>",
		Short: "Log in",
		Args:  cobra.ExactArgs(1),
		Run:   runLogin,
	}
	login.Flags().StringP("password", "p", "", "Password (default: prompt or read from stdin)")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Log out and delete this device's data",
		Run:   runLogout,
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Run:   runWhoami,
	}

	RootCmd.AddCommand(register, login, logout, whoami)
}

// readPassword takes the --password flag, else prompts on a terminal, else
// reads the first line of stdin.
func readPassword(cmd *cobra.Command) string {
	if pw, _ := cmd.Flags().GetString("password"); pw != "" {
		return pw
	}

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Password: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			exitErr("read password", err)
		}
		return string(b)
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		exitErr("read password", errors.New("no password on stdin"))
	}
	return strings.TrimRight(line, "\r\n")
}

func runRegister(cmd *cobra.Command, args []string) {
	username, _ := cmd.Flags().GetString("username")
	email, _ := cmd.Flags().GetString("email")
	password := readPassword(cmd)

	a := openApp()
	defer a.Close()

	user, err := a.auth().Register(cmd.Context(), username, email, password)
	if err != nil {
		a.exitErr("register", err)
	}
	a.notifier.Notify(notify.Notice{Level: notify.LevelInfo, Title: "Welcome to MindMate!", Message: "Your account has been created."})
	printJSON(user)
}

func runLogin(cmd *cobra.Command, args []string) {
	password := readPassword(cmd)

	a := openApp()
	defer a.Close()

	user, err := a.auth().Login(cmd.Context(), args[0], password)
	if err != nil {
		a.exitErr("login", err)
	}
	a.notifier.Notify(notify.Notice{Level: notify.LevelInfo, Title: "Welcome back!", Message: "You have successfully logged in."})
	printJSON(user)
}

func runLogout(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	if err := a.auth().Logout(cmd.Context()); err != nil {
		a.exitErr("logout", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), `{"ok":true}`)
}

func runWhoami(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	printJSON(a.auth().State(cmd.Context()))
}
