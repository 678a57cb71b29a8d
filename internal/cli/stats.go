package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rcliao/mindmate/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show storage statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	sq, ok := a.store.(*store.SQLiteStore)
	if !ok {
		a.exitErr("stats", errors.New("statistics need the sqlite storage driver"))
	}

	stats, err := sq.Stats(cmd.Context(), a.cfg.Storage.Path)
	if err != nil {
		a.exitErr("stats", err)
	}
	printJSON(stats)
}
