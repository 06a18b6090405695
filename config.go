package mysqlmanager

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dracory/env"
	"github.com/dracory/mysqlmanager/shared/dbclient"
	"github.com/dracory/mysqlmanager/shared/types"
)

// LoadConfig reads flags/env with sensible defaults.
// Flags take precedence over env.
func LoadConfig() (types.Config, error) {
	return loadConfig(flag.CommandLine, os.Args[1:])
}

func loadConfig(fs *flag.FlagSet, args []string) (types.Config, error) {
	var cfg types.Config

	// Optionally load from .env files (missing files are ignored inside the lib)
	env.Load(".env")

	cfg.HTTPPort = env.GetIntOrDefault("HTTP_PORT", 8080)
	cfg.BasePath = env.GetStringOrDefault("BASE_URL", "/")
	cfg.ActionParam = env.GetStringOrDefault("ACTION_PARAM", "action")
	cfg.StoreDriver = env.GetStringOrDefault("STORE_DRIVER", "sqlite")
	cfg.StoreDSN = env.GetStringOrDefault("STORE_DSN", "mysqlmanager.db")
	cfg.RowLimit = env.GetIntOrDefault("ROW_LIMIT", dbclient.DefaultRowLimit)
	cfg.PageSize = env.GetIntOrDefault("PAGE_SIZE", dbclient.DefaultPageSize)
	dialSeconds := env.GetIntOrDefault("DIAL_TIMEOUT_SECONDS", int(dbclient.DefaultDialTimeout/time.Second))
	cfg.AuthJWTSecret = env.GetStringOrDefault("AUTH_JWT_SECRET", "")
	cfg.AuthJWTIssuer = env.GetStringOrDefault("AUTH_JWT_ISSUER", "")

	// Flags
	port := fs.Int("port", cfg.HTTPPort, "HTTP port to listen on")
	base := fs.String("base", cfg.BasePath, "Base path to mount handler under (e.g. /db)")
	storeDriver := fs.String("store-driver", cfg.StoreDriver, "Profile store backend: sqlite, mysql, postgres, sqlserver")
	storeDSN := fs.String("store-dsn", cfg.StoreDSN, "Profile store data source")
	rowLimit := fs.Int("row-limit", cfg.RowLimit, "Maximum rows returned by the SQL terminal (0 = unbounded)")
	dial := fs.Int("dial-timeout", dialSeconds, "Seconds to wait when connecting to a MySQL server")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.HTTPPort = *port
	cfg.BasePath = *base
	cfg.StoreDriver = *storeDriver
	cfg.StoreDSN = *storeDSN
	cfg.RowLimit = *rowLimit
	cfg.DialTimeout = time.Duration(*dial) * time.Second

	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return cfg, fmt.Errorf("invalid HTTP_PORT: %d", cfg.HTTPPort)
	}
	if cfg.StoreDSN == "" {
		return cfg, fmt.Errorf("STORE_DSN is required")
	}
	if cfg.RowLimit < 0 {
		return cfg, fmt.Errorf("ROW_LIMIT must not be negative")
	}
	if cfg.PageSize < 1 || cfg.PageSize > dbclient.MaxPageSize {
		return cfg, fmt.Errorf("PAGE_SIZE must be between 1 and %d", dbclient.MaxPageSize)
	}
	if cfg.DialTimeout <= 0 {
		return cfg, fmt.Errorf("DIAL_TIMEOUT_SECONDS must be positive")
	}
	return cfg, nil
}
