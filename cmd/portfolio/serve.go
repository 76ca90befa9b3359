package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iamLuCat/portfolio/internal/config"
	"github.com/iamLuCat/portfolio/internal/contact"
	"github.com/iamLuCat/portfolio/internal/handlers"
	"github.com/iamLuCat/portfolio/internal/live"
	"github.com/iamLuCat/portfolio/internal/middleware"
	"github.com/iamLuCat/portfolio/internal/render"
)

const (
	shutdownTimeout = 30 * time.Second
	cleanupInterval = time.Minute
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Serves the rendered site, the JSON API, the live viewport session and Prometheus metrics.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address, overrides SERVER_ADDR")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.Addr, err)
	}
	return serve(ctx, cfg, ln, logger)
}

// server bundles the HTTP server with the limiter it must keep swept
type server struct {
	httpServer *http.Server
	limiter    *middleware.RateLimiter
}

func newServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*server, error) {
	d, err := cfg.LoadPortfolio()
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio data: %w", err)
	}
	rd, err := render.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	opts := contact.Options{
		Relay:       contact.NewEmailJS(cfg.Mail.Endpoint, nil),
		Credentials: cfg.Mail.Credentials(),
		Recipient:   d.Hero.Name,
		Logger:      logger.Named("contact"),
	}
	if v := contact.NewRecaptcha(cfg.Recaptcha.SecretKey, cfg.Recaptcha.VerifyEndpoint, nil); v != nil {
		opts.Verifier = v
	}
	if !cfg.RelayReady() {
		logger.Warn("Email relay credentials are incomplete, contact submissions will fail")
	}

	proxies, err := middleware.NewProxyTrust(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, err
	}

	limiter := middleware.NewRateLimiter(cfg.Contact.RateLimit, cfg.Contact.Burst)
	router := handlers.SetupRoutes(handlers.Dependencies{
		Config:   cfg,
		Data:     d,
		Logger:   logger,
		Contact:  contact.NewService(opts),
		Renderer: rd,
		Limiter:  limiter,
		Proxies:  proxies,
		Live:     live.NewHandler(d, logger.Named("live")).WithBaseContext(ctx),
	})

	return &server{
		httpServer: &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		limiter: limiter,
	}, nil
}

// serve runs until ctx ends, then drains in-flight requests
func serve(ctx context.Context, cfg *config.Config, ln net.Listener, logger *zap.Logger) error {
	srv, err := newServer(ctx, cfg, logger)
	if err != nil {
		_ = ln.Close()
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server starting", zap.String("addr", ln.Addr().String()), zap.String("base_path", cfg.Site.BasePath))
		if err := srv.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := srv.limiter.Cleanup(); n > 0 {
					logger.Debug("Dropped idle rate limit entries", zap.Int("count", n))
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err = g.Wait()
	logger.Info("Server stopped")
	return err
}
