package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/mindmate/internal/wellness"
)

func init() {
	breathe := &cobra.Command{
		Use:   "breathe",
		Short: "Guided 4-7-8 breathing exercise",
		Run:   runBreathe,
	}
	breathe.Flags().IntP("cycles", "n", 4, "Number of cycles (0 = until interrupted)")

	quote := &cobra.Command{
		Use:   "quote",
		Short: "Print a motivational quote",
		Run:   runQuote,
	}

	RootCmd.AddCommand(breathe, quote)
}

func runBreathe(cmd *cobra.Command, args []string) {
	cycles, _ := cmd.Flags().GetInt("cycles")
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "4-7-8 Breathing Exercise")
	b := &wellness.Breathing{
		Cycles: cycles,
		OnTick: func(t wellness.Tick) {
			fmt.Fprintf(out, "\r[%d] %-24s %d ", t.Cycle, wellness.Instruction(t.Phase), t.Remaining)
		},
	}
	err := b.Run(cmd.Context())
	fmt.Fprintln(out)
	if err != nil && !errors.Is(err, context.Canceled) {
		exitErr("breathe", err)
	}
	fmt.Fprintln(out, "Well done. Notice how you feel.")
}

func runQuote(cmd *cobra.Command, args []string) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	q := wellness.RandomQuote(rng, wellness.Quote{})
	if textOutput() {
		fmt.Printf("%q\n  - %s\n", q.Text, q.Author)
		return
	}
	printJSON(q)
}
