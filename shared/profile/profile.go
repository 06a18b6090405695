// Package profile persists saved MySQL connection profiles.
package profile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrProfileNotFound is returned when a referenced profile id is absent.
var ErrProfileNotFound = errors.New("profile not found")

// ConnectionProfile is a saved, named set of MySQL credentials.
type ConnectionProfile struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Alias    string `gorm:"size:255;not null;index" json:"alias"`
	Host     string `gorm:"size:255;not null" json:"host"`
	Port     int    `gorm:"not null" json:"port"`
	Database string `gorm:"size:255" json:"database,omitempty"`
	Username string `gorm:"size:255;not null" json:"username"`
	Password string `gorm:"size:255" json:"-"`
}

// TableName keeps the table name stable regardless of gorm naming strategy.
func (ConnectionProfile) TableName() string {
	return "connection_profiles"
}

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid profile: %s", strings.Join(e.Fields, ", "))
}

// Validate checks the fields the connection form requires.
func (p ConnectionProfile) Validate() error {
	var fields []string
	if strings.TrimSpace(p.Alias) == "" {
		fields = append(fields, "alias is required")
	}
	if strings.TrimSpace(p.Host) == "" {
		fields = append(fields, "host is required")
	}
	if p.Port < 1 || p.Port > 65535 {
		fields = append(fields, "port must be between 1 and 65535")
	}
	if strings.TrimSpace(p.Username) == "" {
		fields = append(fields, "username is required")
	}
	if p.Password == "" {
		fields = append(fields, "password is required")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
