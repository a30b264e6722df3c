package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/porticus-lab/go-attention/capture"
	"github.com/porticus-lab/go-attention/internal/server"
)

// runServe implements the "serve" command: it starts the HTTP API
// backed by a shared headless browser.
func runServe(log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", envOr("GAZE_ADDR", ":8080"), "listen address")
	apiKey := fs.String("api-key", envOr("GAZE_API_KEY", ""), "require this X-API-Key on /api routes")
	rate := fs.Int("rate", 0, "max requests per client IP per window, 0 disables")
	rateWindow := fs.Duration("rate-window", time.Minute, "rate limit window")
	cascade := fs.String("cascade", "", "face cascade file for analysis")
	browserOpts := browserFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	b, err := capture.NewBrowser(browserOpts()...)
	if err != nil {
		return err
	}
	defer b.Close()

	srv, err := server.New(server.Config{
		Addr:        *addr,
		APIKey:      *apiKey,
		RateLimit:   *rate,
		RateWindow:  *rateWindow,
		CascadePath: *cascade,
	}, log, b, b)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
