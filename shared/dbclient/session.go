package dbclient

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/dracory/mysqlmanager/shared/profile"
	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultDialTimeout bounds how long opening a MySQL session may take.
const DefaultDialTimeout = 10 * time.Second

// Opener opens a new session for a profile, scoped to database when it is
// not empty. The returned handle is owned by the caller.
type Opener func(ctx context.Context, p profile.ConnectionProfile, database string) (*gorm.DB, error)

// DSN builds a go-sql-driver DSN for the profile. An empty database falls
// back to the profile's default database.
func DSN(p profile.ConnectionProfile, database string, dialTimeout time.Duration) string {
	cfg := mysql.NewConfig()
	cfg.User = p.Username
	cfg.Passwd = p.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
	cfg.DBName = p.Database
	if database != "" {
		cfg.DBName = database
	}
	if dialTimeout > 0 {
		cfg.Timeout = dialTimeout
	}
	return cfg.FormatDSN()
}

// MySQLOpener returns the default Opener: a gorm MySQL session with a
// single underlying connection, verified with a ping.
func MySQLOpener(dialTimeout time.Duration) Opener {
	return func(ctx context.Context, p profile.ConnectionProfile, database string) (*gorm.DB, error) {
		db, err := gorm.Open(gormmysql.Open(DSN(p, database, dialTimeout)), &gorm.Config{
			Logger:                 logger.Default.LogMode(logger.Silent),
			SkipDefaultTransaction: true,
		})
		if err != nil {
			return nil, err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)

		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		return db, nil
	}
}

// openSession opens a session and returns a release func that closes it.
func openSession(ctx context.Context, open Opener, p profile.ConnectionProfile, database string) (*gorm.DB, func(), error) {
	db, err := open(ctx, p, database)
	if err != nil {
		return nil, func() {}, &ConnectionError{Err: err}
	}
	release := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, release, nil
}
