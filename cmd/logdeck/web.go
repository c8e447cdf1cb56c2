// cmd/logdeck/web.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"logdeck/internal/config"
	"logdeck/internal/web"
)

var (
	flagListen string
	flagToken  string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the browser front end",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWeb()
	},
}

func init() {
	webCmd.Flags().StringVar(&flagListen, "listen", "", "listen address (overrides config)")
	webCmd.Flags().StringVar(&flagToken, "token", "", "shared access token (overrides config)")
	rootCmd.AddCommand(webCmd)
}

func runWeb() error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if flagDebug {
		log.SetLevel(log.DebugLevel)
	}

	registry, cleanup, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	addr := cfg.Web.Listen
	if flagListen != "" {
		addr = flagListen
	}
	token := cfg.Web.Token
	if flagToken != "" {
		token = flagToken
	}
	if token == "" {
		log.Warn("no access token configured, the API is open to anyone who can reach it")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := web.NewServer(registry, token)
	if err := srv.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
