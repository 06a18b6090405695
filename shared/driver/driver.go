// Package driver maps backend names to gorm dialectors.
package driver

import (
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

// Canonical backend names.
const (
	MySQL     = "mysql"
	Postgres  = "postgres"
	SQLite    = "sqlite"
	SQLServer = "sqlserver"
)

// Normalize maps common aliases to canonical names. An empty name is sqlite.
func Normalize(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sqlite", "sqlite3":
		return SQLite
	case "mysql", "mariadb":
		return MySQL
	case "postgres", "pg", "postgresql":
		return Postgres
	case "sqlserver", "mssql":
		return SQLServer
	default:
		return strings.ToLower(name)
	}
}

// Dialector returns the gorm dialector for name and dsn.
func Dialector(name, dsn string) (gorm.Dialector, error) {
	switch Normalize(name) {
	case SQLite:
		return sqlite.Open(dsn), nil
	case MySQL:
		return mysql.Open(dsn), nil
	case Postgres:
		return postgres.Open(dsn), nil
	case SQLServer:
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", name)
	}
}
