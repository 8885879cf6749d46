package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/camden-git/carregistrybackend/logger"
)

// Options configures how the store connects.
type Options struct {
	// Path is the SQLite file, or ":memory:".
	Path string
	// SQLDebug traces every statement at debug level.
	SQLDebug bool
}

func dataSourceName(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// Open connects to SQLite through GORM and returns a Store holding exactly one
// connection. Call InitSchema before first use on a fresh database.
func Open(opts Options, log *logger.Logger) (*Store, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("database path must not be empty")
	}
	log = log.With("component", "database")

	level := gormlogger.Warn
	if opts.SQLDebug {
		level = gormlogger.Info
	}
	gormLogger := gormlogger.New(
		log, // io writer
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gdb, err := gorm.Open(sqlite.Open(dataSourceName(opts.Path)), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database using GORM: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}

	// one connection for the lifetime of the store; an in-memory database
	// would otherwise be different on every pooled connection
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	log.Info("database opened", "path", opts.Path)
	return &Store{gdb: gdb, db: sqlDB, log: log, path: opts.Path}, nil
}

// OpenAndInit opens the store and makes sure the schema exists.
func OpenAndInit(opts Options, log *logger.Logger) (*Store, error) {
	store, err := Open(opts, log)
	if err != nil {
		return nil, err
	}
	if err := store.InitSchema(); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
