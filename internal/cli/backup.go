package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/mindmate/internal/store"
)

func init() {
	backup := &cobra.Command{
		Use:   "backup",
		Short: "Write a snapshot of all local data as JSON",
		Run:   runBackup,
	}
	backup.Flags().StringP("output", "o", "-", "Output file, or - for stdout")

	restore := &cobra.Command{
		Use:   "restore [file]",
		Short: "Replace local data with a backup (reads stdin when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		Run:   runRestore,
	}

	RootCmd.AddCommand(backup, restore)
}

func runBackup(cmd *cobra.Command, args []string) {
	output, _ := cmd.Flags().GetString("output")

	a := openApp()
	defer a.Close()

	b, err := store.ExportAll(cmd.Context(), a.store)
	if err != nil {
		a.exitErr("backup", err)
	}
	data, _ := json.MarshalIndent(b, "", "  ")

	if output == "-" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(output, append(data, '\n'), 0o600); err != nil {
		a.exitErr("write backup", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"path":%q,"keys":%d}`+"\n", output, len(b.Values))
}

func runRestore(cmd *cobra.Command, args []string) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			exitErr("open backup", err)
		}
		defer f.Close()
		r = f
	}

	var b store.Backup
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		exitErr("parse backup", err)
	}

	a := openApp()
	defer a.Close()

	n, err := store.Import(cmd.Context(), a.store, b)
	if err != nil {
		a.exitErr("restore", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"keys":%d}`+"\n", n)
}
