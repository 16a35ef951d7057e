package service

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blogspot/app/logging"
	"blogspot/app/repositories"
	"blogspot/config"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/sha3"
)

// checksumExt is appended to a backup file name for its SHA3-256 sidecar.
const checksumExt = ".sha3"

var stdin io.Reader = os.Stdin

// HandleCommand runs a database maintenance subcommand and returns an exit
// code.
func HandleCommand(args []string) int {
	if len(args) < 1 {
		printDBHelp()
		return 1
	}

	cmd := args[0]
	switch cmd {
	case "init", "clean", "backup", "restore":
	case "help":
		printDBHelp()
		return 0
	default:
		fmt.Printf("Unknown db command: %s\n\n", cmd)
		printDBHelp()
		return 1
	}

	configFile, rest, ok := parseArgs("db "+cmd, args[1:])
	if !ok {
		return 1
	}
	if cmd == "restore" && len(rest) < 1 {
		fmt.Println("Error: backup file path required for restore")
		return 1
	}

	dbPath, err := badgerPath(configFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	switch cmd {
	case "init":
		err = initDB(dbPath)
	case "clean":
		err = cleanDB(dbPath)
	case "backup":
		err = backupDB(dbPath, filepath.Join(filepath.Dir(dbPath), "backups"))
	case "restore":
		err = restoreDB(dbPath, rest[0])
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	return 0
}

func printDBHelp() {
	helpText := `Usage: blogspot db <command> [--config <file>]

Commands:
  init              Initialize a new empty database
  clean             Remove the database
  backup            Create a backup of the database with a SHA3-256 checksum
  restore <file>    Restore the database from a backup
  help              Display this help message
`
	fmt.Println(helpText)
}

// badgerPath resolves the on-disk Badger directory from configuration.
func badgerPath(configFile string) (string, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return "", err
	}
	if cfg.Storage.Driver != config.DriverBadger || cfg.Storage.InMemory {
		return "", fmt.Errorf("database commands need an on-disk badger store, configured driver is %q", cfg.Storage.Driver)
	}
	return cfg.Storage.BadgerPath, nil
}

// openDB opens the Badger directory with only warnings logged.
func openDB(path string) (*badger.DB, error) {
	log, err := logging.New(config.LogConfig{Level: "warn", Format: "console"})
	if err != nil {
		log = zap.NewNop()
	}
	return repositories.OpenBadger(path, false, log)
}

func confirm(prompt string) bool {
	fmt.Print(prompt + " [y/N] ")
	var response string
	fmt.Fscanln(stdin, &response)
	return response == "y" || response == "Y"
}

// cleanDB removes the database after confirmation.
func cleanDB(dbPath string) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("Database is already clean (does not exist)")
		return nil
	}

	if !confirm("Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Println("Operation cancelled")
		return nil
	}

	if err := os.RemoveAll(dbPath); err != nil {
		return fmt.Errorf("failed to clean database: %w", err)
	}
	fmt.Println("Database cleaned successfully")
	return nil
}

// initDB creates a new empty database with its id sequences.
func initDB(dbPath string) error {
	if _, err := os.Stat(dbPath); err == nil {
		fmt.Println("Database already exists. Use 'clean' first if you want to reinitialize.")
		return nil
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := openDB(dbPath)
	if err != nil {
		return err
	}
	store, err := repositories.NewBadgerStore(db)
	if err != nil {
		db.Close()
		return err
	}
	if err := store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	fmt.Println("Database initialized successfully")
	return nil
}

// backupDB writes a full backup into backupDir. Each backup_<unix>.db file gets
// a SHA3-256 sidecar.
func backupDB(dbPath, backupDir string) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return errors.New("no database exists to backup")
	}

	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	db, err := openDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	f, err := os.Create(backupFile)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	h := sha3.New256()
	if _, err := db.Backup(io.MultiWriter(f, h), 0); err != nil {
		return fmt.Errorf("failed to backup database: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to flush backup file: %w", err)
	}

	sum := hex.EncodeToString(h.Sum(nil))
	if err := os.WriteFile(backupFile+checksumExt, []byte(sum+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write checksum: %w", err)
	}

	fmt.Printf("Database backed up successfully to %s\n", backupFile)
	return nil
}

// verifyChecksum compares backupFile against its sidecar. A missing sidecar
// is not an error.
func verifyChecksum(backupFile string) error {
	want, err := os.ReadFile(backupFile + checksumExt)
	if os.IsNotExist(err) {
		fmt.Println("No checksum found, skipping verification")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read checksum: %w", err)
	}

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	h := sha3.New256()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("failed to hash backup file: %w", err)
	}
	got := hex.EncodeToString(h.Sum(nil))
	if got != strings.TrimSpace(string(want)) {
		return fmt.Errorf("checksum mismatch for %s", backupFile)
	}
	return nil
}

// restoreDB replaces the database with the contents of backupFile.
func restoreDB(dbPath, backupFile string) error {
	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupFile)
	}
	if err != nil {
		return fmt.Errorf("failed to stat backup file: %w", err)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", backupFile)
	}

	if err := verifyChecksum(backupFile); err != nil {
		return err
	}

	if _, err := os.Stat(dbPath); err == nil {
		if !confirm("Existing database found. Do you want to replace it?") {
			fmt.Println("Operation cancelled")
			return nil
		}
		if err := os.RemoveAll(dbPath); err != nil {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := openDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	err = func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic occurred during restore: %v", r)
			}
		}()
		return db.Load(f, 16)
	}()
	if err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}

	fmt.Println("Database restored successfully")
	return nil
}
