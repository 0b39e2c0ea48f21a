package cliparse

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

// Config is built once at startup and handed to components by value.
type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	JWTSecret     string
	JWTAlgorithm  string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string
	IPHashSalt    string

	CORSOrigins    []string
	CORSMaxAge     int
	TrustedProxies []string

	RateLimitRequests int
	RateLimitDisabled bool

	LogLevel  string
	LogFormat string
}

// ParseFlags validates flags and fills the rest from the environment.
// A .env file in the working directory is loaded first if present; real
// environment variables always win over it.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// Missing .env is normal outside of local development
	_ = godotenv.Load()

	fs := flag.NewFlagSet("survey-intake", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "JWT signing secret (prefer env)")
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin password (prefer env)")

	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", 8000)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = inferDatabaseType(cfg.DatabaseURL)
	}
	if cfg.DatabaseType != DatabasePostgres && cfg.DatabaseType != DatabaseSQLite {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}
	if len(cfg.JWTSecret) < 32 {
		return Config{}, errors.New("JWT_SECRET must be at least 32 characters")
	}

	cfg.JWTAlgorithm = envString("JWT_ALGORITHM", "HS256")
	switch cfg.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return Config{}, fmt.Errorf("unsupported JWT_ALGORITHM %q", cfg.JWTAlgorithm)
	}

	ttlMinutes, err := envInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	if err != nil {
		return Config{}, err
	}
	if ttlMinutes <= 0 {
		return Config{}, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	cfg.TokenTTL = time.Duration(ttlMinutes) * time.Minute

	cfg.AdminUsername = envString("ADMIN_USERNAME", "")
	if cfg.AdminUsername == "" {
		return Config{}, errors.New("ADMIN_USERNAME required")
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}
	if cfg.AdminPassword == "" {
		return Config{}, errors.New("ADMIN_PASSWORD required")
	}

	// Log fingerprints must not be keyed with the token signing secret
	cfg.IPHashSalt = envString("IP_HASH_SALT", deriveKey(cfg.JWTSecret, "ip-hash"))

	cfg.CORSOrigins = splitList(os.Getenv("CORS_ORIGINS"))
	cfg.TrustedProxies = splitList(os.Getenv("TRUSTED_PROXIES"))
	cfg.CORSMaxAge, err = envInt("CORS_MAX_AGE", 86400)
	if err != nil {
		return Config{}, err
	}

	cfg.RateLimitRequests, err = envInt("RATE_LIMIT_REQUESTS", 60)
	if err != nil {
		return Config{}, err
	}
	cfg.RateLimitDisabled = os.Getenv("RATE_LIMIT_DISABLED") == "true"

	if cfg.LogLevel == "" {
		cfg.LogLevel = envString("LOG_LEVEL", "info")
	}
	cfg.LogFormat = envString("LOG_FORMAT", "json")

	return cfg, nil
}

func inferDatabaseType(url string) string {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return DatabasePostgres
	}
	return DatabaseSQLite
}

// deriveKey returns an HMAC of label under secret, hex encoded.
func deriveKey(secret, label string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(label))
	return hex.EncodeToString(h.Sum(nil))
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
