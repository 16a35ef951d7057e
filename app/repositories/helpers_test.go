package repositories

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupBadgerStore(t *testing.T) *Store {
	db, err := OpenBadger("", true, zap.NewNop())
	require.NoError(t, err)
	store, err := NewBadgerStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func setupSQLiteStore(t *testing.T) *Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// Every connection to :memory: is a separate database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store, err := NewGormStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// backends runs fn once per storage backend.
func backends(t *testing.T, fn func(t *testing.T, store *Store)) {
	for name, setup := range map[string]func(*testing.T) *Store{
		"badger": setupBadgerStore,
		"sqlite": setupSQLiteStore,
	} {
		t.Run(name, func(t *testing.T) {
			fn(t, setup(t))
		})
	}
}

func rawKeys(t *testing.T, db *badger.DB) []string {
	var keys []string
	require.NoError(t, db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	}))
	return keys
}
