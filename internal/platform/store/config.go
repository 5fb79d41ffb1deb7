package store

import (
	"time"

	"babyfood/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string
	// Role names the binary, e.g. "api" or "worker"
	Role string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string
}

// FromConfig reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_* below root
// postgres is required; clickhouse is enabled only when its DSN is set
func FromConfig(root config.Conf, role string) Config {
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	chURL := chCfg.MayString("DBURL", "")
	return Config{
		AppName: "babyfood-" + role,
		Role:    role,
		PG: PGConfig{
			Enabled:        true,
			URL:            pgCfg.MustString("DBURL"),
			MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs:    pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:         pgCfg.MayBool("LOG_SQL", false),
			ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			Enabled: chURL != "" && chCfg.MayBool("ENABLED", true),
			URL:     chURL,
		},
	}
}
