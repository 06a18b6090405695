package dbclient_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dracory/mysqlmanager/shared/dbclient"
	"github.com/dracory/mysqlmanager/shared/profile"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqliteOpener stands in for MySQL: every session opens the same sqlite
// file and is recorded so tests can check it was released.
type sqliteOpener struct {
	path string

	mu       sync.Mutex
	sessions []*gorm.DB
}

func setupSQLite(t *testing.T, statements ...string) *sqliteOpener {
	t.Helper()
	o := &sqliteOpener{path: filepath.Join(t.TempDir(), "target.db")}

	db, err := gorm.Open(sqlite.Open(o.path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	return o
}

func (o *sqliteOpener) Open(ctx context.Context, _ profile.ConnectionProfile, _ string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(o.path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	o.mu.Lock()
	o.sessions = append(o.sessions, db)
	o.mu.Unlock()
	return db, nil
}

// requireReleased fails unless every opened session has been closed.
func (o *sqliteOpener) requireReleased(t *testing.T) {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.sessions, "expected at least one session")
	for _, db := range o.sessions {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.Error(t, sqlDB.Ping(), "session was not released")
	}
}

// failingOpener simulates an unreachable server.
func failingOpener(context.Context, profile.ConnectionProfile, string) (*gorm.DB, error) {
	return nil, errors.New("dial tcp 10.0.0.1:3306: connect: connection refused")
}

func testProfile() profile.ConnectionProfile {
	return profile.ConnectionProfile{ID: 1, Alias: "local", Host: "127.0.0.1", Port: 3306, Username: "root", Password: "pw"}
}

var _ dbclient.Opener = (&sqliteOpener{}).Open
