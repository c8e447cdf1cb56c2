// cmd/logdeck/root.go
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"logdeck/internal/config"
	"logdeck/internal/docker"
	"logdeck/internal/engine"
	"logdeck/internal/storage"
	"logdeck/internal/tui"
)

var (
	flagConfig     string
	flagDebug      bool
	flagDockerHost string
)

var rootCmd = &cobra.Command{
	Use:   "logdeck",
	Short: "Terminal and web viewer for service logs",
	Long: `logdeck tails the logs of named services, reading from their containers
when the daemon is reachable and from their host log files otherwise.
Without a subcommand it opens the terminal UI; 'logdeck web' serves the
browser front end instead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDockerHost, "docker-host", "", "docker daemon endpoint (overrides config)")
}

func runTUI() error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	// The terminal owns stdout/stderr while the UI runs, so logs go to a
	// file (with --debug) or nowhere.
	closeLog, err := setupTUILogging()
	if err != nil {
		return err
	}
	defer closeLog()

	registry, cleanup, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	p := tea.NewProgram(tui.NewModel(registry), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}

// buildRegistry wires the docker client, preference store and engine
// registry shared by both front ends. The returned cleanup stops follow
// sessions and closes the underlying handles.
func buildRegistry(cfg *config.Config) (*engine.Registry, func(), error) {
	dockerCfg := docker.DefaultConfig()
	if cfg.DockerHost != "" {
		dockerCfg.Host = cfg.DockerHost
	}
	if flagDockerHost != "" {
		dockerCfg.Host = flagDockerHost
	}

	client, err := docker.NewClient(dockerCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating docker client: %w", err)
	}

	// The preference store is a convenience; a broken database should not
	// keep logs from being readable.
	var prefs engine.PrefsStore
	store, err := storage.Open()
	if err != nil {
		log.WithError(err).Warn("preference store unavailable, continuing without persistence")
	} else {
		prefs = store
	}

	registry := engine.NewRegistry(client, cfg.Descriptors(), engine.Options{
		Capacity: cfg.Capacity,
		Tail:     cfg.Tail,
		Prefs:    prefs,
	})

	cleanup := func() {
		registry.Shutdown()
		if store != nil {
			store.Close()
		}
		client.Close()
	}
	return registry, cleanup, nil
}

func setupTUILogging() (func(), error) {
	if !flagDebug {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(homeDir, ".logdeck")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(filepath.Join(dir, "logdeck.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)
	return func() { f.Close() }, nil
}
