// Package file stores client storage entries as one file per key under a
// directory, optionally sealed with XChaCha20-Poly1305.
package file

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/vault42/console/internal/api/metrics"
	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

const (
	driverName = "file"
	fileMode   = 0o600
	dirMode    = 0o700
)

var errCorrupt = errors.New("storage entry is corrupt or sealed with another key")

type Storage struct {
	dir  string
	aead aeadCipher
}

type aeadCipher interface {
	NonceSize() int
	Seal(dst, nonce, plaintext, additionalData []byte) []byte
	Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
}

// New creates the directory if needed. A non-empty passphrase enables
// encryption at rest.
func New(dir, passphrase string) (*Storage, error) {
	if dir == "" {
		return nil, errors.New("file storage: empty directory")
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("file storage: create %s: %w", dir, err)
	}
	s := &Storage{dir: dir}
	if passphrase != "" {
		key, err := deriveKey(passphrase)
		if err != nil {
			return nil, err
		}
		aead, err := chacha20poly1305.NewX(key)
		if err != nil {
			return nil, fmt.Errorf("file storage: cipher: %w", err)
		}
		s.aead = aead
	}
	return s, nil
}

var _ ports.ClientStorage = (*Storage)(nil)

func (s *Storage) Get(_ context.Context, key string) (string, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", domain.ErrStorageKeyNotFound
	}
	if err != nil {
		metrics.StorageErrorsTotal.WithLabelValues(driverName, "get").Inc()
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	plain, err := s.open(data)
	if err != nil {
		metrics.StorageErrorsTotal.WithLabelValues(driverName, "get").Inc()
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return string(plain), nil
}

// Set writes through a temp file and rename so readers never observe a
// partial value.
func (s *Storage) Set(_ context.Context, key, value string) error {
	data, err := s.seal([]byte(value))
	if err != nil {
		metrics.StorageErrorsTotal.WithLabelValues(driverName, "set").Inc()
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		metrics.StorageErrorsTotal.WithLabelValues(driverName, "set").Inc()
		return fmt.Errorf("write %s: %w", key, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		metrics.StorageErrorsTotal.WithLabelValues(driverName, "set").Inc()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		metrics.StorageErrorsTotal.WithLabelValues(driverName, "set").Inc()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		metrics.StorageErrorsTotal.WithLabelValues(driverName, "set").Inc()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		metrics.StorageErrorsTotal.WithLabelValues(driverName, "set").Inc()
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Remove(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		metrics.StorageErrorsTotal.WithLabelValues(driverName, "remove").Inc()
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Ping checks the directory is still there and writable.
func (s *Storage) Ping(_ context.Context) error {
	f, err := os.CreateTemp(s.dir, ".ping-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// path hashes the key so arbitrary key strings map to safe file names.
func (s *Storage) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:8])+".json")
}

func (s *Storage) seal(plain []byte) ([]byte, error) {
	if s.aead == nil {
		return plain, nil
	}
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plain, nil), nil
}

func (s *Storage) open(data []byte) ([]byte, error) {
	if s.aead == nil {
		return data, nil
	}
	n := s.aead.NonceSize()
	if len(data) < n {
		return nil, errCorrupt
	}
	plain, err := s.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return nil, errCorrupt
	}
	return plain, nil
}

func deriveKey(passphrase string) ([]byte, error) {
	h := hkdf.New(sha256.New, []byte(passphrase), nil, []byte("vault42-client-storage"))
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(h, key); err != nil {
		return nil, fmt.Errorf("file storage: derive key: %w", err)
	}
	return key, nil
}
