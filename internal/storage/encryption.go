package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"os"

	"golang.org/x/crypto/argon2"
)

const (
	// EncryptionMagicHeader is prepended to encrypted backups for
	// identification.
	EncryptionMagicHeader = "WAYLENC1"

	// Argon2 parameters (RFC 9106 recommendations).
	defaultArgon2Time    = 1
	defaultArgon2Memory  = 64 * 1024 // 64 MB
	defaultArgon2Threads = 4
	defaultArgon2KeyLen  = 32 // 256 bits for AES-256

	saltLength = 32
)

// EncryptionConfig holds configuration for backup encryption.
type EncryptionConfig struct {
	// Password is the encryption passphrase.
	Password string

	// Argon2Time is the number of KDF iterations. Default: 1
	Argon2Time uint32

	// Argon2Memory is the KDF memory in KB. Default: 64 MB
	Argon2Memory uint32

	// Argon2Threads is the KDF parallelism. Default: 4
	Argon2Threads uint8
}

// DefaultEncryptionConfig returns encryption config with secure defaults.
func DefaultEncryptionConfig(password string) *EncryptionConfig {
	return &EncryptionConfig{
		Password:      password,
		Argon2Time:    defaultArgon2Time,
		Argon2Memory:  defaultArgon2Memory,
		Argon2Threads: defaultArgon2Threads,
	}
}

// deriveKey derives an AES key from a password using Argon2id.
func deriveKey(password string, salt []byte, config *EncryptionConfig) []byte {
	if config == nil {
		config = DefaultEncryptionConfig(password)
	}
	return argon2.IDKey(
		[]byte(password),
		salt,
		config.Argon2Time,
		config.Argon2Memory,
		config.Argon2Threads,
		defaultArgon2KeyLen,
	)
}

// EncryptData encrypts data using AES-256-GCM with password-based key
// derivation. Output layout: salt || nonce || ciphertext (with auth tag).
func EncryptData(plaintext []byte, config *EncryptionConfig) ([]byte, error) {
	if config == nil || config.Password == "" {
		return nil, fmt.Errorf("encryption config with password required")
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := deriveKey(config.Password, salt, config)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	result := make([]byte, 0, len(salt)+len(nonce)+len(ciphertext))
	result = append(result, salt...)
	result = append(result, nonce...)
	result = append(result, ciphertext...)
	return result, nil
}

// DecryptData decrypts data produced by EncryptData.
func DecryptData(encrypted []byte, config *EncryptionConfig) ([]byte, error) {
	if config == nil || config.Password == "" {
		return nil, fmt.Errorf("encryption config with password required")
	}

	// Minimum: salt + 12-byte nonce + 16-byte auth tag.
	minSize := saltLength + 12 + 16
	if len(encrypted) < minSize {
		return nil, fmt.Errorf("encrypted data too short")
	}

	salt := encrypted[:saltLength]
	encrypted = encrypted[saltLength:]

	key := deriveKey(config.Password, salt, config)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(encrypted) < nonceSize {
		return nil, fmt.Errorf("encrypted data too short for nonce")
	}
	nonce := encrypted[:nonceSize]
	ciphertext := encrypted[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed (wrong password or corrupted data): %w", err)
	}
	return plaintext, nil
}

// EncryptFile encrypts sourcePath and writes the result to destPath with
// the magic header prepended.
func EncryptFile(sourcePath, destPath string, config *EncryptionConfig) error {
	plaintext, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}

	encrypted, err := EncryptData(plaintext, config)
	if err != nil {
		return fmt.Errorf("encryption failed: %w", err)
	}

	destFile, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() { _ = destFile.Close() }()

	if _, err := destFile.Write([]byte(EncryptionMagicHeader)); err != nil {
		return fmt.Errorf("failed to write magic header: %w", err)
	}
	if _, err := destFile.Write(encrypted); err != nil {
		return fmt.Errorf("failed to write encrypted data: %w", err)
	}
	return nil
}

// DecryptFile decrypts an encrypted backup and writes the plaintext to
// destPath.
func DecryptFile(sourcePath, destPath string, config *EncryptionConfig) error {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read encrypted file: %w", err)
	}

	header := []byte(EncryptionMagicHeader)
	if len(data) < len(header) || string(data[:len(header)]) != EncryptionMagicHeader {
		return fmt.Errorf("not an encrypted backup (missing magic header)")
	}

	plaintext, err := DecryptData(data[len(header):], config)
	if err != nil {
		return err
	}

	if err := os.WriteFile(destPath, plaintext, 0o600); err != nil {
		return fmt.Errorf("failed to write decrypted file: %w", err)
	}
	return nil
}

// IsEncryptedBackup reports whether the file at path carries the
// encryption magic header.
func IsEncryptedBackup(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	header := make([]byte, len(EncryptionMagicHeader))
	n, err := f.Read(header)
	if err != nil || n < len(header) {
		return false, nil
	}
	return string(header) == EncryptionMagicHeader, nil
}
