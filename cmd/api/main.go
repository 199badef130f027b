package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"app-vet/internal/adapters/auth/jwtauth"
	"app-vet/internal/adapters/auth/odin"
	notifyadapter "app-vet/internal/adapters/notify"
	"app-vet/internal/adapters/storage"
	"app-vet/internal/config"
	"app-vet/internal/domain/animals"
	"app-vet/internal/platform/logger"
	"app-vet/internal/ports/auth"
	"app-vet/internal/ports/notify"
	"app-vet/internal/router"
)

func main() {
	// Load primero: el .env también puede traer LOG_LEVEL/LOG_FORMAT.
	cfg, err := config.Load()
	log := logger.NewFromEnv()
	if err != nil {
		log.Error("invalid configuration", logger.Fields{"err": err})
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, storage.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN, SQLitePath: cfg.SQLitePath})
	if err != nil {
		log.Error("storage unavailable", logger.Fields{"driver": cfg.DBDriver, "err": err})
		os.Exit(1)
	}
	defer store.Close()

	verifier, issuer, err := authFromConfig(cfg)
	if err != nil {
		log.Error("auth setup failed", logger.Fields{"mode": cfg.AuthMode, "err": err})
		os.Exit(1)
	}

	notifier, async, err := notifierFromConfig(cfg, log)
	if err != nil {
		log.Error("notifier setup failed", logger.Fields{"mode": cfg.NotifyMode, "err": err})
		os.Exit(1)
	}

	h := router.NewRouter(router.Options{
		AuthVerifier:   verifier,
		TokenIssuer:    issuer,
		Store:          store,
		Notifier:       notifier,
		Tokens:         animals.NewRandomTokens(),
		Logger:         log,
		Location:       cfg.Location(),
		CORSOrigins:    cfg.CORSOrigins,
		LoginRateLimit: cfg.LoginRateLimit,
		TrustProxy:     cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("starting server", logger.Fields{
			"addr":   srv.Addr,
			"db":     store.Driver,
			"auth":   cfg.AuthMode,
			"notify": cfg.NotifyMode,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", logger.Fields{"err": err})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown", logger.Fields{"err": err})
	}
	if async != nil {
		if err := async.Wait(shutdownCtx); err != nil {
			log.Warn("pending notifications dropped", logger.Fields{"err": err})
		}
	}
	log.Info("server stopped", nil)
}

// authFromConfig: dev no tiene verifier (headers X-Debug-*) ni login.
func authFromConfig(cfg config.Config) (auth.AuthVerifier, auth.TokenIssuer, error) {
	switch cfg.AuthMode {
	case "jwt":
		ja, err := jwtauth.New(jwtauth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer, TTL: cfg.JWTTTL})
		if err != nil {
			return nil, nil, err
		}
		return ja, ja, nil
	case "odin":
		c, err := odin.NewClient(odin.Config{BaseURL: cfg.OdinBaseURL, APIKey: cfg.OdinAPIKey})
		if err != nil {
			return nil, nil, err
		}
		return odin.NewVerifier(c), nil, nil
	default:
		return nil, nil, nil
	}
}

func notifierFromConfig(cfg config.Config, log logger.Logger) (notify.Notifier, *notifyadapter.Async, error) {
	var base notify.Notifier
	switch cfg.NotifyMode {
	case "none":
		return notifyadapter.Discard{}, nil, nil
	case "webhook":
		wh, err := notifyadapter.NewWebhook(cfg.NotifyWebhookURL, cfg.NotifyTimeout)
		if err != nil {
			return nil, nil, err
		}
		base = wh
	default:
		base = notifyadapter.NewSMSLog(cfg.SMSLogPath)
	}

	async := notifyadapter.NewAsync(base, cfg.NotifyTimeout, log.With(logger.Fields{"module": "notify"}))
	return async, async, nil
}
