// Package vault encrypts and decrypts files in place with a locally stored
// symmetric key. The cipher is XChaCha20-Poly1305; a fresh random nonce is
// prepended to every ciphertext, so encrypting the same file twice never
// yields the same bytes.
package vault

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"

	"curator/internal/services"
)

// KeySize is the length in bytes of a vault key file.
const KeySize = chacha20poly1305.KeySize

// GenerateKey writes a fresh random key to path with owner-only permissions.
// It refuses to overwrite an existing key: losing a key means losing every
// file encrypted under it.
func GenerateKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return services.Wrap(services.ErrIO, "vault", "keygen", "key already exists at "+path, nil)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return services.Wrap(services.ErrIO, "vault", "keygen", "failed to stat "+path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return services.Wrap(services.ErrIO, "vault", "keygen", "failed to create key directory", err)
	}

	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return services.Wrap(services.ErrIO, "vault", "keygen", "failed to read entropy", err)
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return services.Wrap(services.ErrIO, "vault", "keygen", "failed to write key file", err)
	}
	return nil
}

// LoadKey reads and validates the key at path. A missing key is a not-found
// error so callers can abort before touching any file.
func LoadKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "vault", "load key", "no key at "+path+" (run keygen first)", err)
		}
		return nil, services.Wrap(services.ErrIO, "vault", "load key", "failed to read key file", err)
	}
	if len(key) != KeySize {
		return nil, services.Wrap(services.ErrIO, "vault", "load key", fmt.Sprintf("key file is %d bytes, want %d", len(key), KeySize), nil)
	}
	return key, nil
}

// EncryptFile replaces path's contents with their encryption under the key
// at keyPath. The key is loaded and validated before the file is read, so a
// bad key setup never mutates anything.
func EncryptFile(path, keyPath string) error {
	key, err := LoadKey(keyPath)
	if err != nil {
		return err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return services.Wrap(services.ErrIO, "vault", "encrypt", "failed to build cipher", err)
	}

	plaintext, err := readTarget(path, "encrypt")
	if err != nil {
		return err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return services.Wrap(services.ErrIO, "vault", "encrypt", "failed to read entropy", err)
	}
	ciphertext := aead.Seal(nonce, nonce, plaintext, nil)
	return replaceContents(path, ciphertext, "encrypt")
}

// DecryptFile reverses EncryptFile. Tampered or foreign ciphertext fails
// authentication and leaves the file untouched.
func DecryptFile(path, keyPath string) error {
	key, err := LoadKey(keyPath)
	if err != nil {
		return err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return services.Wrap(services.ErrIO, "vault", "decrypt", "failed to build cipher", err)
	}

	ciphertext, err := readTarget(path, "decrypt")
	if err != nil {
		return err
	}
	if len(ciphertext) < aead.NonceSize() {
		return services.Wrap(services.ErrIO, "vault", "decrypt", path+" is too short to be vault ciphertext", nil)
	}
	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return services.Wrap(services.ErrIO, "vault", "decrypt", "authentication failed for "+path+" (wrong key or corrupted file)", err)
	}
	return replaceContents(path, plaintext, "decrypt")
}

func readTarget(path, op string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "vault", op, "file does not exist: "+path, err)
		}
		return nil, services.Wrap(services.ErrIO, "vault", op, "failed to read "+path, err)
	}
	return data, nil
}

// replaceContents writes via a sibling temp file and renames over the
// original, so a crash mid-write cannot leave a half-transformed file.
func replaceContents(path string, data []byte, op string) error {
	info, err := os.Stat(path)
	if err != nil {
		return services.Wrap(services.ErrIO, "vault", op, "failed to stat "+path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vault-*")
	if err != nil {
		return services.Wrap(services.ErrIO, "vault", op, "failed to create temp file", err)
	}
	tmpPath := tmp.Name()
	_, writeErr := tmp.Write(data)
	if chmodErr := tmp.Chmod(info.Mode().Perm()); writeErr == nil {
		writeErr = chmodErr
	}
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = os.Rename(tmpPath, path)
	}
	if writeErr != nil {
		os.Remove(tmpPath)
		return services.Wrap(services.ErrIO, "vault", op, "failed to replace "+path, writeErr)
	}
	return nil
}
