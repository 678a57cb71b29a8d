package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/mindmate/internal/mood"
	"github.com/rcliao/mindmate/internal/notify"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export mood data as CSV or JSON",
		Long:  "Export the mood history to mindmate-mood-data-<date>.<csv|json> in the current directory, or to the path given with -o (\"-\" for stdout).",
		Run:   runExport,
	}

	cmd.Flags().String("as", "csv", "File format: csv or json")
	cmd.Flags().StringP("output", "o", "", "Output path, - for stdout")

	moodCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	as, _ := cmd.Flags().GetString("as")
	out, _ := cmd.Flags().GetString("output")
	format := mood.Format(as)
	if format != mood.FormatCSV && format != mood.FormatJSON {
		exitErr("export", fmt.Errorf("unknown format %q (valid: csv, json)", as))
	}

	a := openApp()
	defer a.Close()

	entries := a.ledger(cmd.Context()).Entries()
	if len(entries) == 0 {
		a.notifier.Notify(notify.Notice{Level: notify.LevelError, Title: "No Data to Export", Message: "You haven't tracked any moods yet."})
		return
	}

	now := time.Now()
	if out == "-" {
		if err := mood.Write(os.Stdout, format, entries, now); err != nil {
			a.exitErr("export", err)
		}
		return
	}
	if out == "" {
		out = mood.Filename(format, now)
	}

	f, err := os.Create(out)
	if err != nil {
		a.exitErr("create export file", err)
	}
	err = mood.Write(f, format, entries, now)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(out)
		a.exitErr("export", err)
	}

	a.notifier.Notify(notify.Notice{
		Level:   notify.LevelInfo,
		Title:   "Data Exported!",
		Message: fmt.Sprintf("Successfully exported %d mood entries to %s.", len(entries), strings.ToUpper(string(format))),
	})
	printJSON(map[string]any{"ok": true, "path": out, "entries": len(entries)})
}
