package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP
	Port           string
	CORSOrigins    []string
	LoginRateLimit int // intentos por minuto por IP
	// TrustProxy: tomar la IP de X-Forwarded-For/X-Real-IP. Solo detrás de un proxy propio.
	TrustProxy bool

	// Storage: memory | postgres | sqlite
	DBDriver   string
	DBDSN      string
	SQLitePath string

	// Auth: dev | jwt | odin
	AuthMode    string
	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration
	OdinBaseURL string
	OdinAPIKey  string

	// Avisos: log | webhook | none
	NotifyMode       string
	SMSLogPath       string
	NotifyWebhookURL string
	NotifyTimeout    time.Duration

	ScheduleTimezone string
}

// Load lee .env si existe y después el entorno del proceso.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		Port:           getenv("PORT", "8080"),
		CORSOrigins:    getlist("CORS_ORIGINS", []string{"*"}),
		LoginRateLimit: getint("LOGIN_RATE_LIMIT", 10),
		TrustProxy:     getbool("TRUST_PROXY", false),

		DBDriver:   strings.ToLower(getenv("DB_DRIVER", "")),
		DBDSN:      getenv("DB_DSN", ""),
		SQLitePath: getenv("SQLITE_PATH", "data/app-vet.db"),

		AuthMode:    strings.ToLower(getenv("AUTH_MODE", "dev")),
		JWTSecret:   getenv("JWT_SECRET", ""),
		JWTIssuer:   getenv("JWT_ISSUER", "app-vet"),
		JWTTTL:      getdur("JWT_TTL", 12*time.Hour),
		OdinBaseURL: getenv("ODIN_BASE_URL", ""),
		OdinAPIKey:  getenv("ODIN_API_KEY", ""),

		NotifyMode:       strings.ToLower(getenv("NOTIFY_MODE", "log")),
		SMSLogPath:       getenv("SMS_LOG_PATH", "sms.log"),
		NotifyWebhookURL: getenv("NOTIFY_WEBHOOK_URL", ""),
		NotifyTimeout:    getdur("NOTIFY_TIMEOUT", 5*time.Second),

		ScheduleTimezone: getenv("SCHEDULE_TIMEZONE", "UTC"),
	}

	// Compatibilidad: DB_DSN sin DB_DRIVER siempre fue Postgres.
	if cfg.DBDriver == "" {
		cfg.DBDriver = "memory"
		if cfg.DBDSN != "" {
			cfg.DBDriver = "postgres"
		}
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error

	switch c.DBDriver {
	case "memory", "sqlite":
	case "postgres":
		if c.DBDSN == "" {
			errs = append(errs, errors.New("DB_DSN is required for DB_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver))
	}

	switch c.AuthMode {
	case "dev":
	case "jwt":
		if c.JWTSecret == "" {
			errs = append(errs, errors.New("JWT_SECRET is required for AUTH_MODE=jwt"))
		}
	case "odin":
		if c.OdinBaseURL == "" || c.OdinAPIKey == "" {
			errs = append(errs, errors.New("ODIN_BASE_URL and ODIN_API_KEY are required for AUTH_MODE=odin"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode))
	}

	switch c.NotifyMode {
	case "log", "none":
	case "webhook":
		if c.NotifyWebhookURL == "" {
			errs = append(errs, errors.New("NOTIFY_WEBHOOK_URL is required for NOTIFY_MODE=webhook"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown NOTIFY_MODE %q", c.NotifyMode))
	}

	if _, err := time.LoadLocation(c.ScheduleTimezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid SCHEDULE_TIMEZONE: %w", err))
	}

	return errors.Join(errs...)
}

// Location devuelve la zona para fechas sin offset. Validate ya la comprobó.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ScheduleTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}

func getlist(k string, def []string) []string {
	v := os.Getenv(k)
	if strings.TrimSpace(v) == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
