package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/mindmate/internal/chat"
)

func init() {
	replies := &cobra.Command{
		Use:   "replies",
		Short: "Manage chat quick replies",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List quick replies, defaults first",
		Run:   runRepliesList,
	}
	list.Flags().Bool("custom", false, "Only learned replies")

	rm := &cobra.Command{
		Use:   "rm [id]",
		Short: "Remove a learned quick reply",
		Args:  cobra.MaximumNArgs(1),
		Run:   runRepliesRm,
	}
	rm.Flags().String("text", "", "Remove the reply with this text instead of by id")

	replies.AddCommand(list, rm)
	RootCmd.AddCommand(replies)
}

func runRepliesList(cmd *cobra.Command, args []string) {
	custom, _ := cmd.Flags().GetBool("custom")

	a := openApp()
	defer a.Close()

	q := a.quickReplies(cmd.Context())
	replies := q.All()
	if custom {
		replies = q.Custom()
	}

	if textOutput() {
		printQuickReplies(os.Stdout, replies)
		return
	}
	printJSON(replies)
}

func runRepliesRm(cmd *cobra.Command, args []string) {
	text, _ := cmd.Flags().GetString("text")
	if (len(args) == 0) == (text == "") {
		exitErr("replies rm", errors.New("give either an id or --text"))
	}

	a := openApp()
	defer a.Close()

	ctx := cmd.Context()
	q := a.quickReplies(ctx)
	var err error
	if text != "" {
		err = q.RemoveText(ctx, text)
	} else {
		err = q.Remove(ctx, args[0])
	}
	if errors.Is(err, chat.ErrDefaultReply) {
		a.exitErr("replies rm", fmt.Errorf("%w; only learned replies can be removed", err))
	}
	if err != nil {
		a.exitErr("replies rm", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"remaining":%d}`+"\n", len(q.Custom()))
}
