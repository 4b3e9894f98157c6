// Package app wires configuration, storage, services, and the HTTP server
// into a runnable process.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	authapi "chonggak/cmd/internal/auth/api"
	"chonggak/cmd/internal/auth/session"
	"chonggak/cmd/member"
	"chonggak/cmd/security/password"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// App owns the process-level resources: connection pools, the metrics
// registry, and the HTTP server.
type App struct {
	cfg Config
	log *slog.Logger

	pool *pgxpool.Pool
	rdb  *redis.Client
	srv  *http.Server
}

// New assembles the application. Stores fall back to in-process
// implementations when their backend is not configured, which keeps dev mode
// a single binary; production deployments set both CHONGGAK_DATABASE_URL and
// CHONGGAK_REDIS_ADDR.
func New(ctx context.Context, cfg Config, log *slog.Logger) (*App, error) {
	if err := ValidateSecurityConfig(cfg); err != nil {
		return nil, err
	}

	sessCfg, err := session.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	passwords, err := password.FromEnv()
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: log}

	var memberStore member.Store
	if cfg.DatabaseURL != "" {
		pool, err := NewDBPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.pool = pool

		memberStore, err = member.NewPostgresStore(pool)
		if err != nil {
			a.Close()
			return nil, err
		}
		log.Info("app.members.postgres")
	} else {
		memberStore = member.NewMemoryStore()
		log.Warn("app.members.memory", "reason", "CHONGGAK_DATABASE_URL not set")
	}

	var (
		refreshStore   session.RefreshStore
		blacklistStore session.BlacklistStore
	)
	if cfg.RedisAddr != "" {
		rdb, err := NewRedisClient(ctx, cfg)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.rdb = rdb

		refreshStore, err = session.NewRedisRefreshStore(rdb, sessCfg.RefreshTokenTTL)
		if err != nil {
			a.Close()
			return nil, err
		}
		blacklistStore, err = session.NewRedisBlacklistStore(rdb)
		if err != nil {
			a.Close()
			return nil, err
		}
		log.Info("app.sessions.redis", "addr", cfg.RedisAddr)
	} else {
		refreshStore = session.NewMemoryRefreshStore(sessCfg.RefreshTokenTTL)
		blacklistStore = session.NewMemoryBlacklistStore()
		log.Warn("app.sessions.memory", "reason", "CHONGGAK_REDIS_ADDR not set")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	codec, err := session.NewHMACCodec(sessCfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	sessions, err := session.NewService(sessCfg, session.Deps{
		Codec:     codec,
		Refresh:   refreshStore,
		Blacklist: blacklistStore,
		Members:   memberStore,
		Passwords: passwords,
		Logger:    log,
		Metrics:   session.NewMetrics(registry),
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	members := member.NewService(memberStore, passwords, sessions, log)

	auth, err := authapi.NewHandler(log, authapi.LoadConfigFromEnv(), members, sessions)
	if err != nil {
		a.Close()
		return nil, err
	}

	mux := http.NewServeMux()
	registerHTTP(mux, log, cfg, a.pool, a.rdb, registry, auth)

	gate := authapi.NewGate(sessions, log)
	var handler http.Handler = gate.WithAuthentication(mux)
	handler = WithSecurityHeaders(handler)
	handler = WithRequestLogging(handler, log)

	a.srv = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	return a, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http.listen", "addr", a.cfg.HTTPAddr)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		a.Close()
		return err
	case <-ctx.Done():
	}

	a.log.Info("http.shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	err := a.srv.Shutdown(shutdownCtx)
	a.Close()
	return err
}

// Close releases connection pools. Safe to call more than once.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
		a.rdb = nil
	}
}
