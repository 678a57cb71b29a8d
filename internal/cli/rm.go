package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <message-id>",
		Short: "Delete a chat message",
		Args:  cobra.ExactArgs(1),
		Run:   runChatRm,
	}

	chatCmd.AddCommand(cmd)
}

func runChatRm(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	id := args[0]
	removed, err := a.transcript(cmd.Context()).Delete(cmd.Context(), id)
	if err != nil {
		a.exitErr("rm", err)
	}
	if !removed {
		a.exitErr("rm", fmt.Errorf("no message with id %q", id))
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", id)
}
