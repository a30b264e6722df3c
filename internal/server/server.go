// Package server exposes the attention toolkit over HTTP so
// automation platforms such as n8n can drive captures and analyses
// remotely.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	attention "github.com/porticus-lab/go-attention"
	"github.com/porticus-lab/go-attention/capture"
)

// Screenshotter captures page screenshots. *capture.Browser implements
// it.
type Screenshotter interface {
	Screenshot(ctx context.Context, rawURL string, sc capture.ShotConfig) (*capture.Shot, error)
}

// PDFRenderer renders HTML to PDF. *capture.Browser implements it.
type PDFRenderer interface {
	PrintHTML(ctx context.Context, html string, pg *capture.PageConfig) (*capture.PDF, error)
}

// Config holds the server settings.
type Config struct {
	// Addr is the listen address. Defaults to ":8080".
	Addr string
	// APIKey, when set, is required in the X-API-Key header on all
	// /api routes. The health endpoint stays open.
	APIKey string
	// RateLimit caps requests per client IP per RateWindow. Zero
	// disables limiting.
	RateLimit int
	// RateWindow is the rate limit window. Defaults to one minute.
	RateWindow time.Duration
	// CascadePath optionally points at a face cascade file used to
	// boost detected faces during analysis.
	CascadePath string
}

// Server serves capture, analysis and report endpoints.
type Server struct {
	cfg      Config
	log      zerolog.Logger
	engine   *gin.Engine
	shots    Screenshotter
	pdfs     PDFRenderer
	analyzer *attention.Analyzer
}

// New assembles a Server. The browser dependencies are injected so
// callers can share one headless browser between endpoints.
func New(cfg Config, log zerolog.Logger, shots Screenshotter, pdfs PDFRenderer) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = time.Minute
	}

	var opts []attention.Option
	if cfg.CascadePath != "" {
		opts = append(opts, attention.WithFaceCascade(cfg.CascadePath))
	}
	analyzer, err := attention.New(opts...)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		log:      log,
		shots:    shots,
		pdfs:     pdfs,
		analyzer: analyzer,
	}
	s.engine = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log), cors())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "attention analysis API is running",
		})
	})

	api := r.Group("/api/v1")
	if s.cfg.APIKey != "" {
		api.Use(apiKeyAuth(s.cfg.APIKey))
	}
	if s.cfg.RateLimit > 0 {
		api.Use(rateLimit(s.cfg.RateLimit, s.cfg.RateWindow))
	}
	{
		api.POST("/capture", s.handleCapture)
		api.POST("/analyze", s.handleAnalyze)
		api.POST("/markdown/pdf", s.handleMarkdownPDF)
	}

	return r
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.engine,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
