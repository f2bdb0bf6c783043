package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/aaronzipp/nova-arcade/internal/catalog"
	"github.com/aaronzipp/nova-arcade/internal/config"
	"github.com/aaronzipp/nova-arcade/internal/handlers"
	"github.com/aaronzipp/nova-arcade/internal/store"
	"github.com/aaronzipp/nova-arcade/web"
)

func main() {
	// A missing .env is fine; the environment may already be set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatal("Failed to load .env:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if cfg.Debug {
		log.Printf("Debug logging enabled")
	}

	templates, err := web.Templates()
	if err != nil {
		log.Fatal("Failed to parse templates:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx := &handlers.Context{
		Sessions:    store.NewSessionStore(),
		Templates:   templates,
		Source:      sourceFor(cfg),
		Static:      web.Static(),
		LoadDelay:   cfg.LoadDelay,
		GamesFile:   cfg.GamesFile,
		PublicURL:   cfg.PublicURL,
		BaseContext: ctx,
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           appCtx.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		// Open event streams end with the process context
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server starting on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sweepSessions(gctx, appCtx.Sessions, cfg.SweepInterval, cfg.SessionTTL)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Printf("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("Server error:", err)
	}
}

// sourceFor picks the remote games list when configured, else the local file
func sourceFor(cfg config.Config) catalog.Source {
	if cfg.GamesURL != "" {
		log.Printf("Loading games from %s", cfg.GamesURL)
		return catalog.HTTPSource{URL: cfg.GamesURL}
	}
	log.Printf("Loading games from %s", cfg.GamesFile)
	return catalog.FileSource{Path: cfg.GamesFile}
}

// sweepSessions evicts idle sessions until ctx is done
func sweepSessions(ctx context.Context, sessions *store.SessionStore, every, ttl time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(ttl); n > 0 {
				log.Printf("Swept %d idle sessions, %d remain", n, sessions.Len())
			}
		}
	}
}
