package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pkgstrings "checkinhub/pkg/platform/strings"
)

// Config captures everything the server needs from the environment.
type Config struct {
	Addr string

	// DatabaseURL is the Postgres DSN. Empty means in-memory stores,
	// which is how local development and unit tests run.
	DatabaseURL string

	Redis RedisConfig

	Ticketing TicketingConfig

	// JWTSigningKey protects admin endpoints. Empty disables auth, which is
	// acceptable only for local development.
	JWTSigningKey string

	// KafkaBrokers enables the sync audit trail publisher when non-empty.
	KafkaBrokers []string
	AuditTopic   string

	// PreservePetStatusByName carries a pet's vaccine upload status across
	// re-syncs by exact name match instead of resetting it with the
	// full-replace write. Off by default: the ticketing source stays the
	// single source of truth.
	PreservePetStatusByName bool
}

// RedisConfig configures the optional distributed sync lock.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// TicketingConfig configures the external order source client.
type TicketingConfig struct {
	BaseURL      string
	Token        string
	FetchTimeout time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("CHECKINHUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	fetchTimeout := 10 * time.Second
	if raw := os.Getenv("TICKETING_FETCH_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			fetchTimeout = d
		}
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = pkgstrings.DedupeAndTrim(strings.Split(raw, ","))
	}

	auditTopic := os.Getenv("AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "checkinhub.sync-runs"
	}

	return Config{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Ticketing: TicketingConfig{
			BaseURL:      os.Getenv("TICKETING_API_BASE"),
			Token:        os.Getenv("TICKETING_API_TOKEN"),
			FetchTimeout: fetchTimeout,
		},
		JWTSigningKey:           os.Getenv("JWT_SIGNING_KEY"),
		KafkaBrokers:            brokers,
		AuditTopic:              auditTopic,
		PreservePetStatusByName: os.Getenv("PRESERVE_PET_STATUS_BY_NAME") == "true",
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
