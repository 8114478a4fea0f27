package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pixoo_tracker/internal/config"
	"pixoo_tracker/internal/daemon"
)

// runCmd starts the polling loop.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start tracking and rendering flights",
	Long: `Start the tracker loop: poll the flight feed on the configured
interval, select the nearest aircraft, and re-render the display
animation whenever the selected aircraft changes.

The tracker runs until interrupted (Ctrl+C) or it receives SIGTERM.

Example:
  pixoo-tracker run -c config.yaml
  pixoo-tracker run --caffeinate   # keep a macOS host awake while running`,
	RunE: runTracker,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "path to config file (YAML)")
	runCmd.Flags().Bool("caffeinate", false, "re-exec under caffeinate to prevent macOS sleep")
}

func initLogger(cfg *config.Config) {
	var logLevel slog.Level
	switch cfg.Log.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// reexecCaffeinated replaces this run with "caffeinate -i <self> run ..."
// so the host does not sleep while the tracker is up.
func reexecCaffeinated(configFile string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	args := []string{"-i", exe, "run"}
	if configFile != "" {
		args = append(args, "--config", configFile)
	}

	child := exec.Command("caffeinate", args...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	if err := child.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("caffeinate failed: %w", err)
	}

	os.Exit(0)
	return nil
}

func runTracker(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	caffeinate, _ := cmd.Flags().GetBool("caffeinate")

	if caffeinate {
		return reexecCaffeinated(configFile)
	}

	if configFile != "" {
		os.Setenv("PIXOO_TRACKER_CONFIG_PATH", configFile)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	initLogger(cfg)

	d, err := daemon.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize daemon: %w", err)
	}

	if err := d.Start(); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	slog.Info("Received interrupt signal, shutting down...")

	return d.Stop()
}
