package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/dracory/mysqlmanager/shared/driver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is the single-table profile store. Construct it once and pass it
// to every consumer.
type Store struct {
	db *gorm.DB
}

// Open opens the store backend for the given driver and DSN and migrates
// the profile table. Supported drivers: sqlite, mysql, postgres, sqlserver.
func Open(backend, dsn string) (*Store, error) {
	dialector, err := driver.Dialector(backend, dsn)
	if err != nil {
		return nil, fmt.Errorf("profile store: %w", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open profile store: %w", err)
	}
	return NewStore(db)
}

// NewStore wraps an already opened gorm handle and migrates the profile table.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&ConnectionProfile{}); err != nil {
		return nil, fmt.Errorf("migrate profile store: %w", err)
	}
	return &Store{db: db}, nil
}

// List returns all profiles in ascending alias order.
func (s *Store) List(ctx context.Context) ([]ConnectionProfile, error) {
	var list []ConnectionProfile
	if err := s.db.WithContext(ctx).Order("alias ASC").Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return list, nil
}

// Get fetches one profile. A missing id yields ErrProfileNotFound.
func (s *Store) Get(ctx context.Context, id uint) (ConnectionProfile, error) {
	var p ConnectionProfile
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ConnectionProfile{}, fmt.Errorf("%w: id %d", ErrProfileNotFound, id)
	}
	if err != nil {
		return ConnectionProfile{}, fmt.Errorf("get profile %d: %w", id, err)
	}
	return p, nil
}

// Save inserts the profile when ID is zero (assigning the new ID) and
// otherwise replaces the stored record with the same ID, inserting it if
// it does not exist.
func (s *Store) Save(ctx context.Context, p *ConnectionProfile) error {
	if p == nil {
		return errors.New("save profile: nil profile")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Delete removes the profile with the given id. Deleting a missing id is a no-op.
func (s *Store) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&ConnectionProfile{}).Error; err != nil {
		return fmt.Errorf("delete profile %d: %w", id, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
