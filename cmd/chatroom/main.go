package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/cobra"

	"pipechat/domain"
	"pipechat/internal"
	"pipechat/runtime"
	"pipechat/runtime/workers"
	"pipechat/ui"
)

func main() {
	cmd := &cobra.Command{
		Use:   "chatroom <roomname> <username>",
		Short: "Join a named room and chat over filesystem mailboxes",
		Long: "chatroom joins a room materialized as a directory of named pipes,\n" +
			"one per participant, and broadcasts every input line to all other\n" +
			"members. There is no broker process: the shared filesystem is the\n" +
			"only coordination substrate.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  false,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1])
		},
	}
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the session lifecycle, and
// centralizes error reporting, so every defer executes before the process
// exits and setup failures map to a single non-zero exit path.
func run(roomName, userName string) error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Context & Signals
	// Interrupt and termination requests become a context cancellation that
	// the session observes synchronously; cleanup is not an error path.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Join the room
	registry := runtime.NewRegistry(config.BaseDir)
	display := ui.NewConsole(os.Stdout, roomName, userName)
	supervisor := workers.NewSupervisor(log, config.RestartInterval)

	session, err := runtime.Join(registry,
		domain.JoinRequest{Room: roomName, User: userName},
		display, os.Stdin, supervisor, config, log)
	if err != nil {
		return err
	}

	display.Notice(fmt.Sprintf("Welcome to %s!", roomName))

	// 4. Run until signal or end of input; both converge on the same cleanup
	// and the process still exits cleanly.
	return session.Run(ctx)
}
