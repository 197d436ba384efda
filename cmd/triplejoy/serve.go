package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vovakirdan/triplejoy/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagEnvFile     string
)

// Environment variables that provide defaults for serve flags.
const (
	envSSHAddr     = "TRIPLEJOY_SSH_ADDR"
	envHostKey     = "TRIPLEJOY_HOST_KEY"
	envDBPath      = "TRIPLEJOY_DB"
	envIdleTimeout = "TRIPLEJOY_IDLE_TIMEOUT_MIN"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the TripleJoy SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the difficulty menu.
Scores are stored per-server (all users share the same leaderboard);
achievements are kept per SSH user name.

Settings not given as flags are read from the environment, after loading
a .env file if present:
  TRIPLEJOY_SSH_ADDR          - listen address
  TRIPLEJOY_HOST_KEY          - host key path
  TRIPLEJOY_DB                - scores database path
  TRIPLEJOY_IDLE_TIMEOUT_MIN  - idle timeout in minutes

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.triplejoy/host_key

Examples:
  triplejoy serve                           # Listen on :23234 with auto-generated key
  triplejoy serve --ssh :2222               # Listen on port 2222
  triplejoy serve --host-key ./my_host_key  # Use specific host key
  triplejoy serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagEnvFile, "env-file", ".env", "Environment file to load before reading settings")
}

// loadEnv loads path into the process environment. A missing file is not
// an error.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// envString overrides *dst with the env var key unless the flag was set.
func envString(flags *pflag.FlagSet, flag, key string, dst *string) {
	if flags.Changed(flag) {
		return
	}
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// envInt is envString for integer flags.
func envInt(flags *pflag.FlagSet, flag, key string, dst *int) error {
	if flags.Changed(flag) {
		return nil
	}
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// serverConfig resolves the SSH server settings from flags and environment.
func serverConfig(flags *pflag.FlagSet) (tui.SSHServerConfig, error) {
	if err := loadEnv(flagEnvFile); err != nil {
		return tui.SSHServerConfig{}, err
	}

	envString(flags, "ssh", envSSHAddr, &flagSSHAddr)
	envString(flags, "host-key", envHostKey, &flagHostKey)
	envString(flags, "db", envDBPath, &flagDBPath)
	if err := envInt(flags, "idle-timeout", envIdleTimeout, &flagIdleTimeout); err != nil {
		return tui.SSHServerConfig{}, err
	}
	if flagIdleTimeout <= 0 {
		return tui.SSHServerConfig{}, fmt.Errorf("idle timeout must be positive, got %d", flagIdleTimeout)
	}

	return tui.SSHServerConfig{
		Address:       flagSSHAddr,
		HostKeyPath:   flagHostKey,
		DBPath:        flagDBPath,
		IdleTimeout:   time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:      flagFPS,
		DefaultGameID: defaultGameID(),
		Logger:        logger.WithPrefix("triplejoy-ssh"),
	}, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Session logs are the point of a server
	if !cmd.Flags().Changed("log-level") {
		logger.SetLevel(log.InfoLevel)
	}

	cfg, err := serverConfig(cmd.Flags())
	if err != nil {
		return err
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting TripleJoy SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.ListenAndServe(ctx)
}
