package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/mindmate/internal/mood"
	"github.com/rcliao/mindmate/internal/notify"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import mood data from a JSON export",
		Long:  "Merge a MindMate JSON export (file or stdin) into the mood history. Days that already have an entry keep it.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	moodCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var r io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			exitErr("open import file", err)
		}
		defer f.Close()
		r = f
	}

	a := openApp()
	defer a.Close()

	res, err := a.ledger(cmd.Context()).Import(cmd.Context(), r)
	if errors.Is(err, mood.ErrInvalidFormat) {
		a.notifier.Notify(notify.Notice{Level: notify.LevelError, Title: "Import Failed", Message: "Please select a valid MindMate mood data JSON file."})
	}
	if err != nil {
		a.exitErr("import", err)
	}

	a.notifier.Notify(notify.Notice{
		Level:   notify.LevelInfo,
		Title:   "Data Imported!",
		Message: fmt.Sprintf("Successfully imported %d new mood entries.", res.Added),
	})
	fmt.Printf(`{"ok":true,"added":%d,"skipped":%d,"total":%d}`+"\n", res.Added, res.Skipped, res.Total)
}
