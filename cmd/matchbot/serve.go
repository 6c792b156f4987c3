package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Sakemo/matchmake-bot/internal/discord"
	"github.com/Sakemo/matchmake-bot/internal/middleware"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactions endpoint",
		Long: `Starts the HTTP server that receives Discord interactions on
POST /interactions and reports store health on GET /healthz.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	publicKey, err := middleware.ParsePublicKey(cfg.Discord.PublicKey)
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = st.close() }()

	sessions, err := openSessions(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = sessions.close() }()
	if sessions.janitor != nil {
		sessions.janitor.Start()
		defer sessions.janitor.Stop()
	}

	dg, err := discord.NewSession(cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}

	responder, err := buildResponder(st, sessions.store, platform{
		members:  discord.NewMemberDirectory(dg),
		notifier: discord.NewNotifier(dg),
	}, log)
	if err != nil {
		return err
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		burst := cfg.RateLimit.Burst
		if burst == 0 {
			burst = -1
		}
		limiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
			Rate:   cfg.RateLimit.Rate,
			Burst:  burst,
			Window: cfg.RateLimit.Window,
		})
		defer limiter.Stop()
	}

	endpoint := discord.NewEndpoint(discord.EndpointConfig{
		Responder: responder,
		Limiter:   limiter,
		Logger:    log,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", healthHandler(map[string]func(context.Context) error{
		"database": st.ping,
		"sessions": sessions.ping,
	}, log))
	mux.Handle("/interactions", middleware.VerifySignature(publicKey, log)(endpoint))

	server := &http.Server{
		Addr: ":" + cfg.Server.Port,
		Handler: middleware.Chain(mux,
			middleware.RequestID,
			middleware.Logger(log),
			middleware.Recovery(log),
		),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("port", cfg.Server.Port),
			zap.String("env", cfg.Server.Env),
			zap.String("driver", cfg.Database.Driver),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	log.Info("server exited")
	return nil
}
