package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/mindmate/internal/chat"
	"github.com/rcliao/mindmate/internal/model"
	"github.com/rcliao/mindmate/internal/notify"
	"github.com/rcliao/mindmate/internal/resources"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk with MindMate",
	Long:  "Start an interactive chat. Messages and learned quick replies are saved on this device.",
	Run:   runChat,
}

func init() {
	send := &cobra.Command{
		Use:   "send <message>",
		Short: "Send one message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		Run:   runChatSend,
	}

	history := &cobra.Command{
		Use:   "history",
		Short: "Print the chat history",
		Run:   runChatHistory,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the chat history and start over",
		Run:   runChatClear,
	}

	chatCmd.AddCommand(send, history, clearCmd)
	RootCmd.AddCommand(chatCmd)
}

const chatHelp = `commands:
  /replies      list quick replies
  /r <n>        send quick reply n
  /forget <n>   remove custom quick reply n
  /history      show the conversation
  /rm <id>      delete a message
  /clear        clear the history
  /quit         leave`

func runChat(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	a := openApp()
	defer a.Close()

	out := cmd.OutOrStdout()
	nav := &notify.Recorder{}
	sess := a.session(ctx, notify.Multi{notify.NewWriterNotifier(out), notify.NewLogNotifier(a.logger)}, nav)
	if err := sess.Start(ctx); err != nil {
		a.exitErr("start chat", err)
	}

	for _, m := range sess.Messages() {
		printMessage(out, m)
	}
	printQuickReplies(out, sess.QuickReplies().All())
	fmt.Fprintln(out, "Type a message, or /help for commands.")

	lines := readLines(ctx, cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return
		case l, ok := <-lines:
			if !ok {
				return
			}
			line = strings.TrimSpace(l)
		}

		if sess.Safety().Open() {
			handleSafetyChoice(out, sess, nav, line)
			continue
		}

		if strings.HasPrefix(line, "/") {
			text, quit := runChatCommand(ctx, out, sess, line)
			if quit {
				return
			}
			if text == "" {
				continue
			}
			line = text
		}
		if line == "" {
			continue
		}

		if !chat.IsCrisis(line) {
			fmt.Fprintln(out, "MindMate is typing...")
		}
		res, err := sess.Send(ctx, line)
		switch {
		case errors.Is(err, context.Canceled):
			return
		case errors.Is(err, chat.ErrReplyFailed):
			continue
		case err != nil:
			a.exitErr("send", err)
		}

		if res.Learned != nil {
			fmt.Fprintf(out, "(saved %q as a quick reply)\n", res.Learned.Text)
		}
		if res.Reply != nil {
			printMessage(out, *res.Reply)
		}
		if res.Crisis && sess.Safety().Open() {
			printSafetyPrompt(out)
		}
	}
}

// readLines feeds input lines to a channel so the loop can also watch ctx.
// When ctx is done an io.Closer input is closed to end the pending read.
// Other inputs leave the reader goroutine blocked until the process exits.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	done := make(chan struct{})
	if c, ok := r.(io.Closer); ok {
		go func() {
			select {
			case <-ctx.Done():
				c.Close()
			case <-done:
			}
		}()
	}
	go func() {
		defer close(ch)
		defer close(done)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// runChatCommand handles a slash command. It returns text to send, if the
// command picked a quick reply, and whether to leave the chat.
func runChatCommand(ctx context.Context, out io.Writer, sess *chat.Session, line string) (string, bool) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	replies := sess.QuickReplies()

	switch name {
	case "/quit", "/exit":
		return "", true
	case "/help":
		fmt.Fprintln(out, chatHelp)
	case "/replies":
		printQuickReplies(out, replies.All())
	case "/r":
		all := replies.All()
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(all) {
			fmt.Fprintf(out, "pick a quick reply from 1 to %d\n", len(all))
			return "", false
		}
		return all[n-1].Text, false
	case "/forget":
		all := replies.All()
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(all) {
			fmt.Fprintf(out, "pick a quick reply from 1 to %d\n", len(all))
			return "", false
		}
		if err := replies.Remove(ctx, all[n-1].ID); err != nil {
			fmt.Fprintf(out, "cannot remove: %v\n", err)
			return "", false
		}
		fmt.Fprintf(out, "removed %q\n", all[n-1].Text)
	case "/history":
		for _, m := range sess.Messages() {
			printMessage(out, m)
		}
	case "/rm":
		ok, err := sess.DeleteMessage(ctx, arg)
		switch {
		case err != nil:
			fmt.Fprintf(out, "cannot delete: %v\n", err)
		case !ok:
			fmt.Fprintf(out, "no message with id %q\n", arg)
		default:
			fmt.Fprintln(out, "deleted")
		}
	case "/clear":
		greeting, err := sess.ClearHistory(ctx)
		if err != nil {
			fmt.Fprintf(out, "cannot clear: %v\n", err)
			return "", false
		}
		printMessage(out, greeting)
	default:
		fmt.Fprintf(out, "unknown command %s, try /help\n", name)
	}
	return "", false
}

func handleSafetyChoice(out io.Writer, sess *chat.Session, nav *notify.Recorder, line string) {
	switch strings.ToLower(line) {
	case "1", "resources", "/resources":
		sess.Safety().GoToResources()
		if views := nav.Views(); len(views) > 0 && views[len(views)-1] == notify.ViewResources {
			printResources(out, resources.Filter(resources.CategoryCrisis, ""))
		}
	case "2", "continue", "/dismiss":
		sess.Safety().Dismiss()
		fmt.Fprintln(out, "I'm still here whenever you want to keep talking.")
	default:
		fmt.Fprintln(out, "Enter 1 to view resources or 2 to continue the chat.")
	}
}

func printSafetyPrompt(out io.Writer) {
	fmt.Fprintf(out, `
  We're Here for You
  It sounds like you might be going through a really difficult time. Please
  know that you're not alone, and there are people who want to help.

    Crisis Helpline:   %s
    Crisis Text Line:  %s

  [1] View Resources   [2] Continue Chat
`, chat.CrisisHelpline, chat.CrisisTextLine)
}

func printMessage(out io.Writer, m model.ChatMessage) {
	who := "you"
	if m.Sender == model.SenderBot {
		who = "MindMate"
	}
	ts := time.UnixMilli(m.Timestamp).Format("15:04")
	fmt.Fprintf(out, "[%s] %s: %s\n", ts, who, m.Text)
}

func printQuickReplies(out io.Writer, replies []model.QuickReply) {
	fmt.Fprintln(out, "quick replies:")
	for i, r := range replies {
		mark := ""
		if !chat.IsDefault(r.ID) {
			mark = " *"
		}
		fmt.Fprintf(out, "  %d. %s%s\n", i+1, r.Text, mark)
	}
}

func runChatSend(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	a := openApp()
	defer a.Close()

	sess := a.session(ctx, a.notifier, nil)
	res, err := sess.Send(ctx, strings.Join(args, " "))
	if err != nil {
		a.exitErr("send", err)
	}
	if res.Crisis {
		printSafetyPrompt(os.Stderr)
	}

	if textOutput() {
		if res.Reply != nil {
			printMessage(os.Stdout, *res.Reply)
		}
		return
	}
	printJSON(res)
}

func runChatHistory(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	msgs := a.transcript(cmd.Context()).Messages()
	if textOutput() {
		for _, m := range msgs {
			printMessage(os.Stdout, m)
		}
		return
	}
	printJSON(msgs)
}

func runChatClear(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	a := openApp()
	defer a.Close()

	greeting, err := a.session(ctx, a.notifier, nil).ClearHistory(ctx)
	if err != nil {
		a.exitErr("clear", err)
	}
	printJSON(greeting)
}
