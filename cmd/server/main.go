package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/swiftex-io/quilex/internal/adapter/in_memory"
	"github.com/swiftex-io/quilex/internal/adapter/pg"
	adapterredis "github.com/swiftex-io/quilex/internal/adapter/redis"
	httpapi "github.com/swiftex-io/quilex/internal/api/http"
	"github.com/swiftex-io/quilex/internal/config"
	"github.com/swiftex-io/quilex/internal/core"
	"github.com/swiftex-io/quilex/internal/domain"
	"github.com/swiftex-io/quilex/internal/feed"
	"github.com/swiftex-io/quilex/internal/logger"
	"github.com/swiftex-io/quilex/internal/middleware"
	"github.com/swiftex-io/quilex/internal/notify"
	"github.com/swiftex-io/quilex/internal/port"
	"github.com/swiftex-io/quilex/internal/session"
	"github.com/swiftex-io/quilex/internal/stream"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file")
	showVersion := flag.Bool("version", false, "show version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("quilex %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.ParseLevel(cfg.Log.Level), os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received signal %v, shutting down", sig)
		cancel()
	}()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server error: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	log.Info("starting %s in %s mode", cfg.App.Name, cfg.App.Environment)

	// session store: redis when configured, in-process otherwise
	var store port.SessionStore
	if cfg.Redis.Addr != "" {
		rs := adapterredis.NewSessionStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL.Std())
		defer rs.Close()
		store = rs
	} else {
		store = in_memory.NewSessionStore()
	}

	// trade archive is optional; the engine tolerates its absence
	var archive port.TradeArchive
	if cfg.Postgres.DSN != "" {
		pgArchive, err := pg.NewArchive(ctx, cfg.Postgres.DSN)
		if err != nil {
			return fmt.Errorf("connect trade archive: %w", err)
		}
		defer pgArchive.Close(ctx)
		archive = pgArchive
	}

	center := notify.NewCenter(notify.DefaultTTL)
	hub := stream.NewHub()
	sink := notify.Tee(center, hub)

	var opts []core.Option
	if archive != nil {
		opts = append(opts, core.WithArchive(archive))
	}
	engine := core.NewEngine(domain.DefaultSeed(), sink, log, opts...)

	sessions := session.NewManager(store, engine, log)
	if _, err := sessions.Initialize(ctx); err != nil {
		log.Warn("session restore failed: %v", err)
	}

	// feed: one walker per base asset with a tradable price
	initial := make(map[string]float64)
	for _, a := range engine.Assets() {
		if a.Symbol != "USDT" {
			initial[a.Symbol] = a.Price
		}
	}
	walker := feed.NewWalker(initial, cfg.Feed.Interval.Std(), log)
	go walker.Run(ctx, func(batch feed.Batch) {
		engine.ApplyTicks(ctx, batch)
		hub.BroadcastTicks(batch)
	})

	server := httpapi.NewHTTPServer(engine, sessions, center, hub, archive)
	rl := middleware.NewRateLimiter(cfg.Server.RateLimit.Std(), cfg.Server.RateBurst)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.Router(rl),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening on %s", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
