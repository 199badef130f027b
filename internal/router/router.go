package router

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "app-vet/docs"
	"app-vet/internal/adapters/storage"
	"app-vet/internal/domain/animals"
	"app-vet/internal/domain/clinics"
	"app-vet/internal/domain/users"
	"app-vet/internal/middleware"
	"app-vet/internal/platform/logger"
	"app-vet/internal/platform/metrics"
	"app-vet/internal/ports/auth"
	"app-vet/internal/ports/notify"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	TokenIssuer  auth.TokenIssuer  // nil: /auth/login responde 501

	// Si es nil se usa un store in-memory.
	Store *storage.Store

	Notifier notify.Notifier
	Tokens   animals.TokenGenerator
	Logger   logger.Logger
	Location *time.Location

	CORSOrigins    []string
	LoginRateLimit int
	// TrustProxy habilita RealIP. Solo con un proxy propio delante.
	TrustProxy bool
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	store := opts.Store
	if store == nil {
		store = storage.Memory()
	}
	metrics.Register()

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.PropagateRequestID)
	r.Use(middleware.Recover(log))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(corsOptions(opts.CORSOrigins)))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo
	usersSvc := users.NewService(store.Users, opts.TokenIssuer)
	clinicsSvc := clinics.NewService(store.Clinics, clinicUserLinker{users: usersSvc}, store)
	animalsSvc := animals.NewService(store.Animals, animals.Dependencies{
		Users:    usersSvc,
		Clinics:  clinicsSvc,
		Notifier: opts.Notifier,
		Tokens:   opts.Tokens,
		Logger:   log.With(logger.Fields{"module": "animals"}),
		Location: opts.Location,
	})

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, opts.LoginRateLimit)
	clinics.RegisterRoutes(r, clinicsSvc)
	animals.RegisterRoutes(r, animalsSvc)

	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Authorization",
			"Content-Type",
			"X-Request-Id",
			middleware.HeaderDebugUserID,
			middleware.HeaderDebugRole,
			middleware.HeaderDebugClinicID,
		},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}
}

// clinicUserLinker traduce los errores de users al vocabulario de clinics.
type clinicUserLinker struct {
	users *users.Service
}

func (l clinicUserLinker) LinkClinic(ctx context.Context, userID, clinicID string) error {
	err := l.users.LinkClinic(ctx, userID, clinicID)
	if errors.Is(err, users.ErrNotFound) || errors.Is(err, users.ErrNotClinicUser) {
		return clinics.ErrInvalidRepresentative
	}
	return err
}

func (l clinicUserLinker) UnlinkClinic(ctx context.Context, userID string) error {
	return l.users.UnlinkClinic(ctx, userID)
}
