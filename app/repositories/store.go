package repositories

import (
	"errors"
	"fmt"

	"blogspot/config"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store bundles the post and comment repositories of one backend.
type Store struct {
	Posts    PostRepository
	Comments CommentRepository

	// Badger is set when the store is backed by BadgerDB.
	Badger *badger.DB

	close func() error
}

// Open opens the backend selected by cfg.Driver.
func Open(cfg config.StorageConfig, log *zap.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverBadger:
		db, err := OpenBadger(cfg.BadgerPath, cfg.InMemory, log)
		if err != nil {
			return nil, err
		}
		store, err := NewBadgerStore(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return store, nil
	case config.DriverSQLite:
		return openGorm(sqlite.Open(cfg.DSN), log)
	case config.DriverPostgres:
		return openGorm(postgres.Open(cfg.DSN), log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// OpenBadger opens a Badger database at path, or an in-memory one when
// inMemory is set. Badger's own log output is routed through log.
func OpenBadger(path string, inMemory bool, log *zap.Logger) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithNumVersionsToKeep(1).
		WithLogger(newBadgerLogger(log))
	if inMemory {
		opts = opts.WithDir("").WithValueDir("").WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", path, err)
	}
	return db, nil
}

// NewBadgerStore wraps an open Badger database. Closing the store closes db.
func NewBadgerStore(db *badger.DB) (*Store, error) {
	posts, err := NewBadgerPostRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to open post sequence: %w", err)
	}
	comments, err := NewBadgerCommentRepository(db)
	if err != nil {
		posts.Close()
		return nil, fmt.Errorf("failed to open comment sequence: %w", err)
	}
	return &Store{
		Posts:    posts,
		Comments: comments,
		Badger:   db,
		close: func() error {
			return errors.Join(posts.Close(), comments.Close(), db.Close())
		},
	}, nil
}

func openGorm(dialector gorm.Dialector, log *zap.Logger) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialector.Name(), err)
	}
	store, err := NewGormStore(db)
	if err != nil {
		return nil, err
	}
	if log != nil {
		log.Debug("sql storage ready", zap.String("dialect", dialector.Name()))
	}
	return store, nil
}

// NewGormStore migrates the schema and wraps db. Closing the store closes the
// underlying connection pool.
func NewGormStore(db *gorm.DB) (*Store, error) {
	if err := Migrate(db); err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql pool: %w", err)
	}
	return &Store{
		Posts:    NewGormPostRepository(db),
		Comments: NewGormCommentRepository(db),
		close:    sqlDB.Close,
	}, nil
}

// Close releases the backend.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// badgerLogger adapts zap to badger.Logger.
type badgerLogger struct {
	*zap.SugaredLogger
}

func newBadgerLogger(log *zap.Logger) badger.Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return badgerLogger{log.Named("badger").Sugar()}
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.Warnf(format, args...)
}
