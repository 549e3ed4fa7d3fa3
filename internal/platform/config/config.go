package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultServerURL   = "http://localhost:8000"
	DefaultStoreDriver = "sqlite"
	DefaultPort        = "8000"
	DefaultJWTSecret   = "dev-secret"
	DefaultTokenTTL    = time.Hour
)

var ErrUnknownDriver = errors.New("unknown store driver")

// Drivers soportados para el key-value store del cliente.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Client agrupa la config del CLI / cliente de la API.
type Client struct {
	ServerURL   string
	HTTPTimeout time.Duration
	StoreDriver string
	StoreDSN    string
}

// DevServer agrupa la config del backend de desarrollo.
type DevServer struct {
	Port      string
	JWTSecret string
	TokenTTL  time.Duration
	DBDSN     string // vacío => repos in-memory
}

// LoadDotEnv carga .env si existe. Las variables ya definidas no se pisan.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}

// LoadClient lee la config del cliente desde env:
// - PETSTORE_SERVER_URL (default http://localhost:8000; el cliente agrega /api)
// - PETSTORE_HTTP_TIMEOUT (default 10s)
// - PETSTORE_STORE=memory|sqlite|redis|postgres (default sqlite)
// - PETSTORE_STORE_DSN (default ~/.petstore/state.db para sqlite)
func LoadClient() (Client, error) {
	cfg := Client{
		ServerURL:   envOr("PETSTORE_SERVER_URL", DefaultServerURL),
		StoreDriver: strings.ToLower(envOr("PETSTORE_STORE", DefaultStoreDriver)),
		StoreDSN:    strings.TrimSpace(os.Getenv("PETSTORE_STORE_DSN")),
	}

	timeout, err := durationEnv("PETSTORE_HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return Client{}, err
	}
	cfg.HTTPTimeout = timeout

	switch cfg.StoreDriver {
	case DriverMemory:
	case DriverSQLite:
		if cfg.StoreDSN == "" {
			cfg.StoreDSN = defaultSQLitePath()
		}
	case DriverRedis, DriverPostgres:
		if cfg.StoreDSN == "" {
			return Client{}, fmt.Errorf("PETSTORE_STORE_DSN required for %s store", cfg.StoreDriver)
		}
	default:
		return Client{}, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StoreDriver)
	}

	return cfg, nil
}

// LoadDevServer lee la config del backend de desarrollo:
// - PORT (default 8000)
// - DEVSERVER_JWT_SECRET (default dev-secret)
// - DEVSERVER_TOKEN_TTL (default 1h)
// - DEVSERVER_DB_DSN (opcional, Postgres)
func LoadDevServer() (DevServer, error) {
	ttl, err := durationEnv("DEVSERVER_TOKEN_TTL", DefaultTokenTTL)
	if err != nil {
		return DevServer{}, err
	}
	return DevServer{
		Port:      envOr("PORT", DefaultPort),
		JWTSecret: envOr("DEVSERVER_JWT_SECRET", DefaultJWTSecret),
		TokenTTL:  ttl,
		DBDSN:     strings.TrimSpace(os.Getenv("DEVSERVER_DB_DSN")),
	}, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "petstore-state.db"
	}
	return filepath.Join(home, ".petstore", "state.db")
}
