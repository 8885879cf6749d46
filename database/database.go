package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/camden-git/carregistrybackend/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var (
	// ErrConstraint marks a uniqueness, primary key or foreign key violation.
	// The statement had no effect on storage.
	ErrConstraint = errors.New("constraint violation")
	// ErrNotFound is only returned by updates addressing a missing row.
	ErrNotFound      = errors.New("record not found")
	ErrInvalidPerson = errors.New("invalid person")
	ErrInvalidCar    = errors.New("invalid car")
)

const createPersonsTable = `
	CREATE TABLE IF NOT EXISTS persons (
		person_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		age INTEGER NOT NULL,
		email TEXT UNIQUE NOT NULL
	);
`

const createCarsTable = `
	CREATE TABLE IF NOT EXISTS cars (
		car_id INTEGER PRIMARY KEY,
		brand TEXT NOT NULL,
		model TEXT NOT NULL,
		year INTEGER NOT NULL,
		color TEXT NOT NULL,
		owner_id INTEGER,
		FOREIGN KEY (owner_id) REFERENCES persons(person_id) ON DELETE CASCADE
	);
`

// Store owns the single database connection. Every read and write of persons
// and cars goes through it.
type Store struct {
	gdb    *gorm.DB
	db     *sql.DB
	log    *logger.Logger
	path   string
	closed bool
}

// InitSchema creates the persons and cars tables if they are missing.
func (s *Store) InitSchema() error {
	tables := []struct{ name, ddl string }{
		{"persons", createPersonsTable},
		{"cars", createCarsTable},
	}
	for _, t := range tables {
		if _, err := s.db.Exec(t.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", t.name, err)
		}
	}
	s.log.Info("tables created successfully", "path", s.path)
	return nil
}

// Close releases the connection. The store must not be used afterwards.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database %s: %w", s.path, err)
	}
	s.log.Info("database connection closed", "path", s.path)
	return nil
}

// Path returns the data source the store was opened with.
func (s *Store) Path() string {
	return s.path
}

func isConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed")
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
