package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rcliao/mindmate/internal/cli"
)

func main() {
	// Interrupts cancel pending bot replies and end the chat loop.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.RootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
