package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/blog/pkg/httpx"
	"github.com/aussiebroadwan/blog/pkg/jwtx"
	"github.com/spf13/viper"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Issuer        string        // Issuer claim for tokens (default: blog)
	Algorithm     string        // JWT signing algorithm, EdDSA or HS256 (default: EdDSA)
	SigningSecret string        // HS256 shared secret, at least 32 bytes
	NumKeys       int           // Number of EdDSA keys to generate (default: 1, max: 10)
	AccessTTL     time.Duration // Access token lifetime (default: 5m)
	RefreshTTL    time.Duration // Refresh token lifetime (default: 24h)

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseFile   string // SQLite database path (default: blog.db)
	DatabaseURL    string // PostgreSQL URL, required for the postgres driver
	PepperFile     string // Password pepper file (default: pepper)

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // debug, info, warn, error (default: info)
	LogFormat string // json or text (default: json)

	Port                int           // HTTP server port (default: 8080)
	BasePath            string        // Prefix of the API routes (default: /api)
	CORSAllowedOrigins  []string      // Browser origins allowed to call the API
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	LegacySaveErrors    bool          // Report post save failures as 400 (default: false)

	// RateLimits come from RATELIMIT_{STRICT,MODERATE,LENIENT,PUBLIC}_{REQUESTS,WINDOW,BURST}.
	RateLimits httpx.RateLimits
}

// rateLimitProfiles names the config prefix of each router profile.
func rateLimitProfiles(l *httpx.RateLimits) map[string]*httpx.RateLimit {
	return map[string]*httpx.RateLimit{
		"STRICT":   &l.Strict,
		"MODERATE": &l.Moderate,
		"LENIENT":  &l.Lenient,
		"PUBLIC":   &l.Public,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("BLOG_ISSUER", "blog")
	v.SetDefault("BLOG_ALGORITHM", jwtx.AlgorithmEdDSA)
	v.SetDefault("BLOG_SIGNING_SECRET", "")
	v.SetDefault("BLOG_NUM_KEYS", 1)
	v.SetDefault("BLOG_ACCESS_TTL", jwtx.DefaultAccessTokenTTL.String())
	v.SetDefault("BLOG_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL.String())

	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_FILE", "blog.db")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("PEPPER_FILE", "pepper")

	v.SetDefault("ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("PORT", 8080)
	v.SetDefault("BASE_PATH", "/api")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("SHUTDOWN_GRACE_PERIOD", "10s")
	v.SetDefault("LEGACY_SAVE_ERRORS", false)

	defaults := httpx.DefaultRateLimits()
	for name, l := range rateLimitProfiles(&defaults) {
		v.SetDefault("RATELIMIT_"+name+"_REQUESTS", l.Requests)
		v.SetDefault("RATELIMIT_"+name+"_WINDOW", l.Window.String())
		v.SetDefault("RATELIMIT_"+name+"_BURST", l.Burst)
	}
}

// LoadConfig reads configuration from the environment, falling back to an
// optional config.yaml in . or ./config, then to defaults.
func LoadConfig() Config {
	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignore error if no file

	return fromViper(v)
}

func fromViper(v *viper.Viper) Config {
	limits := httpx.DefaultRateLimits()
	for name, l := range rateLimitProfiles(&limits) {
		l.Requests = v.GetInt("RATELIMIT_" + name + "_REQUESTS")
		l.Window = parseDuration(v.GetString("RATELIMIT_"+name+"_WINDOW"), l.Window)
		l.Burst = v.GetInt("RATELIMIT_" + name + "_BURST")
	}

	return Config{
		Issuer:        v.GetString("BLOG_ISSUER"),
		Algorithm:     v.GetString("BLOG_ALGORITHM"),
		SigningSecret: v.GetString("BLOG_SIGNING_SECRET"),
		NumKeys:       v.GetInt("BLOG_NUM_KEYS"),
		AccessTTL:     parseDuration(v.GetString("BLOG_ACCESS_TTL"), jwtx.DefaultAccessTokenTTL),
		RefreshTTL:    parseDuration(v.GetString("BLOG_REFRESH_TTL"), jwtx.DefaultRefreshTokenTTL),

		DatabaseDriver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseFile:   v.GetString("DATABASE_FILE"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		PepperFile:     v.GetString("PEPPER_FILE"),

		Env:       v.GetString("ENV"),
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		Port:                v.GetInt("PORT"),
		BasePath:            v.GetString("BASE_PATH"),
		CORSAllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		ShutdownGracePeriod: parseDuration(v.GetString("SHUTDOWN_GRACE_PERIOD"), 10*time.Second),
		LegacySaveErrors:    v.GetBool("LEGACY_SAVE_ERRORS"),

		RateLimits: limits,
	}
}

// Validate reports configuration that cannot start a server.
func (c Config) Validate() error {
	var errs []error

	switch c.Algorithm {
	case jwtx.AlgorithmEdDSA:
	case jwtx.AlgorithmHS256:
		if len(c.SigningSecret) < jwtx.MinHS256SecretLength {
			errs = append(errs, fmt.Errorf("BLOG_SIGNING_SECRET must be at least %d bytes for HS256", jwtx.MinHS256SecretLength))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported BLOG_ALGORITHM %q (supported: EdDSA, HS256)", c.Algorithm))
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("DATABASE_FILE is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported DATABASE_DRIVER %q (supported: sqlite, postgres)", c.DatabaseDriver))
	}

	if c.Issuer == "" {
		errs = append(errs, errors.New("BLOG_ISSUER must not be empty"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		errs = append(errs, fmt.Errorf("BASE_PATH %q must start with /", c.BasePath))
	}
	for name, l := range rateLimitProfiles(&c.RateLimits) {
		if err := l.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("RATELIMIT_%s: %w", name, err))
		}
	}
	if c.AccessTTL >= c.RefreshTTL {
		errs = append(errs, errors.New("BLOG_ACCESS_TTL must be shorter than BLOG_REFRESH_TTL"))
	}

	return errors.Join(errs...)
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
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
