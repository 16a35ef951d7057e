package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"blogspot/app/logging"
	"blogspot/app/middleware"
	"blogspot/app/repositories"
	"blogspot/app/routes"
	"blogspot/app/services"
	"blogspot/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App is the assembled blog service: storage, router and HTTP server.
type App struct {
	cfg    *config.Config
	log    *zap.Logger
	store  *repositories.Store
	redis  *redis.Client
	server *http.Server
}

// NewApp opens storage and builds the HTTP handler described by cfg.
func NewApp(cfg *config.Config, log *zap.Logger) (*App, error) {
	store, err := repositories.Open(cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	app := &App{cfg: cfg, log: log, store: store}

	var limiter middleware.Limiter
	if cfg.RateLimit.Enabled {
		limiter = app.newLimiter()
	}

	handler := routes.SetupRoutes(routes.Config{
		Posts:          services.NewPostService(store.Posts),
		Comments:       services.NewCommentService(store.Comments, store.Posts),
		Logger:         log,
		Limiter:        limiter,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	app.server = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorLog:     zap.NewStdLog(log),
	}
	return app, nil
}

func (a *App) newLimiter() middleware.Limiter {
	rl := a.cfg.RateLimit
	if rl.RedisAddr == "" {
		a.log.Info("rate limiting in process", zap.Int("requests", rl.Requests), zap.Duration("window", rl.Window))
		return middleware.NewLocalLimiter(rl.Requests, rl.Window)
	}
	a.redis = redis.NewClient(&redis.Options{Addr: rl.RedisAddr})
	a.log.Info("rate limiting through redis", zap.String("addr", rl.RedisAddr),
		zap.Int("requests", rl.Requests), zap.Duration("window", rl.Window))
	return middleware.NewRedisLimiter(a.redis, rl.Requests, rl.Window)
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run listens on the configured address and serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.cfg.Server.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts the
// server down, letting in-flight requests finish within the shutdown timeout.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("blog service listening", zap.String("addr", ln.Addr().String()))
		errCh <- a.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down", zap.Duration("timeout", a.cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Close releases storage and the redis client.
func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	errs = append(errs, a.store.Close())
	return errors.Join(errs...)
}

// RunAppServer runs the blog service until SIGINT or SIGTERM and returns the
// process exit code.
func RunAppServer(args []string) int {
	configFile, _, ok := parseArgs("serve", args)
	if !ok {
		return 1
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer log.Sync()

	app, err := NewApp(cfg, log)
	if err != nil {
		log.Error("failed to start", zap.Error(err))
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("failed to close storage", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Error("server error", zap.Error(err))
		return 1
	}
	log.Info("server stopped")
	return 0
}
