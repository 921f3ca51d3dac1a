package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/platform/tui"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server that allows users to connect and play games.

Each SSH connection gets their own session with a game picker menu.
All users share one scoreboard, kept in memory while the server runs.
Sound stays on the server's side, so remote sessions are silent.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  arcade serve                           # Listen on :23234 with auto-generated key
  arcade serve --ssh :2222               # Listen on port 2222
  arcade serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open()
	if err != nil {
		return fmt.Errorf("cannot open scoreboard: %w", err)
	}
	defer store.Close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute

	build := func(gameID string) tui.Options {
		return tui.Options{
			FPS:     flagFPS,
			Session: arcade.sessionOptions(gameID, "", nil),
			Logger:  arcade.logger,
		}
	}

	server, err := tui.NewSSHServer(cfg, store, build, arcade.logger)
	if err != nil {
		return err
	}

	fmt.Printf("Starting arcade SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx)
}
