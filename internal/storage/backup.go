package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// BackupManager handles database backup and restore operations.
type BackupManager struct {
	dbPath string
}

// NewBackupManager creates a new backup manager for the given database
// path.
func NewBackupManager(dbPath string) *BackupManager {
	return &BackupManager{dbPath: dbPath}
}

// BackupConfig holds configuration for backup operations.
type BackupConfig struct {
	// BackupDir is where backups are stored. Defaults to a "backups"
	// subdirectory next to the database.
	BackupDir string

	// BackupName is the backup file name without extension. Defaults to a
	// timestamp-based name.
	BackupName string

	// VerifyBackup checks the backup's integrity after creation.
	VerifyBackup bool

	// Encryption, when non-nil, encrypts the backup file in place.
	Encryption *EncryptionConfig
}

// DefaultBackupConfig returns a BackupConfig with sensible defaults.
func DefaultBackupConfig() *BackupConfig {
	return &BackupConfig{VerifyBackup: true}
}

// Backup creates a backup of the database using VACUUM INTO, which is
// atomic and doesn't require exclusive locks. Falls back to a file copy
// on older SQLite versions.
func (bm *BackupManager) Backup(config *BackupConfig) (string, error) {
	if config == nil {
		config = DefaultBackupConfig()
	}

	backupDir := config.BackupDir
	if backupDir == "" {
		backupDir = filepath.Join(filepath.Dir(bm.dbPath), "backups")
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupName := config.BackupName
	if backupName == "" {
		backupName = fmt.Sprintf("backup_%s", time.Now().Format("20060102_150405"))
	}
	backupPath := filepath.Join(backupDir, backupName+".db")

	sourceDB, err := sql.Open("sqlite", bm.dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to open source database: %w", err)
	}
	defer func() { _ = sourceDB.Close() }()

	vacuumSQL := fmt.Sprintf("VACUUM INTO %q", backupPath)
	if _, err := sourceDB.Exec(vacuumSQL); err != nil {
		if _, copyErr := bm.backupByCopy(backupPath); copyErr != nil {
			return "", copyErr
		}
	}

	if config.VerifyBackup {
		if err := bm.VerifyBackup(backupPath); err != nil {
			_ = os.Remove(backupPath)
			return "", fmt.Errorf("backup verification failed: %w", err)
		}
	}

	if config.Encryption != nil {
		encryptedPath := backupPath + ".enc"
		if err := EncryptFile(backupPath, encryptedPath, config.Encryption); err != nil {
			_ = os.Remove(backupPath)
			return "", fmt.Errorf("backup encryption failed: %w", err)
		}
		if err := os.Remove(backupPath); err != nil {
			return "", fmt.Errorf("failed to remove plaintext backup: %w", err)
		}
		return encryptedPath, nil
	}

	return backupPath, nil
}

// backupByCopy copies the database file directly. Fallback when VACUUM
// INTO is unavailable.
func (bm *BackupManager) backupByCopy(backupPath string) (string, error) {
	sourceFile, err := os.Open(bm.dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to open source database file: %w", err)
	}
	defer func() { _ = sourceFile.Close() }()

	destFile, err := os.Create(backupPath)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer func() { _ = destFile.Close() }()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return "", fmt.Errorf("failed to copy database: %w", err)
	}
	return backupPath, nil
}

// VerifyBackup opens the backup and runs an integrity check.
func (bm *BackupManager) VerifyBackup(backupPath string) error {
	db, err := sql.Open("sqlite", backupPath)
	if err != nil {
		return fmt.Errorf("failed to open backup: %w", err)
	}
	defer func() { _ = db.Close() }()

	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("integrity check failed: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check returned %q", result)
	}
	return nil
}

// Restore replaces the database with the backup at backupPath. Encrypted
// backups require config.Encryption.
func (bm *BackupManager) Restore(backupPath string, config *BackupConfig) error {
	if config == nil {
		config = DefaultBackupConfig()
	}

	sourcePath := backupPath
	encrypted, err := IsEncryptedBackup(backupPath)
	if err != nil {
		return err
	}
	if encrypted {
		if config.Encryption == nil {
			return fmt.Errorf("backup is encrypted; encryption config required")
		}
		tmpFile, err := os.CreateTemp(filepath.Dir(bm.dbPath), "restore-*.db")
		if err != nil {
			return fmt.Errorf("failed to create temp file: %w", err)
		}
		tmpPath := tmpFile.Name()
		_ = tmpFile.Close()
		defer func() { _ = os.Remove(tmpPath) }()

		if err := DecryptFile(backupPath, tmpPath, config.Encryption); err != nil {
			return err
		}
		sourcePath = tmpPath
	}

	if err := bm.VerifyBackup(sourcePath); err != nil {
		return fmt.Errorf("refusing to restore: %w", err)
	}

	sourceFile, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open backup: %w", err)
	}
	defer func() { _ = sourceFile.Close() }()

	destFile, err := os.Create(bm.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database for restore: %w", err)
	}
	defer func() { _ = destFile.Close() }()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}
	return nil
}

// Checksum returns the SHA-256 hex digest of a backup file.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
