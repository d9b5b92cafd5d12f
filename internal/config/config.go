package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	CatalogOverlay   string        // path to the catalog overlay yaml (optional, empty = builtin catalog only)
	LandingPath      string        // path of the landing page the /api/go redirect targets (ex: /out)
	DeploymentRegion string        // "CN" | "INTL" — deployment-wide hint when a candidate carries no region
	ReloadInterval   time.Duration // interval to reload the catalog overlay (default: 24h)
	GCInterval       time.Duration // interval to prune orphaned usage counters (default: 24h)
	CacheTTL         time.Duration // TTL for cached resolutions (default: 24h)

	// Launch flow timings. Empirically tuned, not load-bearing.
	AttemptTimeout     time.Duration // per auto-try attempt (default: 2s)
	StoreReturnTimeout time.Duration // per attempt after a store return (default: 3.5s)
	InterAttemptPause  time.Duration // pause between attempts (default: 120ms)
	ReturnSettle       time.Duration // delay before return navigation (default: 300ms)
	StoreReturnWindow  time.Duration // max age of the store-return marker (default: 10m)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("OUTLINK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("OUTLINK_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("OUTLINK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("OUTLINK_PRETTY_LOG", true),

		// Catalog & resolution
		CatalogOverlay:   getenv("OUTLINK_CATALOG_OVERLAY", ""), // Optional, empty = builtin only
		LandingPath:      getenv("OUTLINK_LANDING_PATH", "/out"),
		DeploymentRegion: getenv("OUTLINK_DEPLOYMENT_REGION", "INTL"),
		ReloadInterval:   mustDuration("OUTLINK_RELOAD_INTERVAL", 24*time.Hour),
		GCInterval:       mustDuration("OUTLINK_GC_INTERVAL", 24*time.Hour),
		CacheTTL:         mustDuration("OUTLINK_CACHE_TTL", 24*time.Hour),

		// Launch timings
		AttemptTimeout:     mustDuration("OUTLINK_ATTEMPT_TIMEOUT", 2000*time.Millisecond),
		StoreReturnTimeout: mustDuration("OUTLINK_STORE_RETURN_TIMEOUT", 3500*time.Millisecond),
		InterAttemptPause:  mustDuration("OUTLINK_INTER_ATTEMPT_PAUSE", 120*time.Millisecond),
		ReturnSettle:       mustDuration("OUTLINK_RETURN_SETTLE", 300*time.Millisecond),
		StoreReturnWindow:  mustDuration("OUTLINK_STORE_RETURN_WINDOW", 10*time.Minute),

		// Redis settings
		RedisAddr:             requireEnv("OUTLINK_REDIS_ADDR"),
		RedisUser:             getenv("OUTLINK_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("OUTLINK_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("OUTLINK_REDIS_PASSWORD", ""),
		RedisDB:               requireEnvInt("OUTLINK_REDIS_DB"),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: parseList(getenv("OUTLINK_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseList(getenv("OUTLINK_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("OUTLINK_TRUST_PROXY", true),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: OUTLINK_REDIS_PASSWORD is required when OUTLINK_REDIS_PASSWORD_REQUIRED=true")
	}

	region := strings.ToUpper(cfg.DeploymentRegion)
	if region != "CN" && region != "INTL" {
		panic(fmt.Sprintf("❌ FATAL: OUTLINK_DEPLOYMENT_REGION must be CN or INTL, got %q", cfg.DeploymentRegion))
	}
	cfg.DeploymentRegion = region

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
