// Package auth provides session tokens, password hashing, the Spotify
// OAuth flow, and at-rest encryption for Spotify credentials.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// PASETO v4 and ChaCha20-Poly1305 both want a 256-bit key.
	keyLength = 32
	// 32 bytes hex-encoded.
	keyHexLength = 64
)

// Keys holds the two symmetric keys the server needs: one for access
// tokens, one for encrypting Spotify refresh tokens at rest.
type Keys struct {
	AccessToken []byte
	TokenCipher []byte
}

// LoadOrGenerateKeys loads the server's symmetric keys from basePath,
// generating and persisting any that are missing. Keys are stored
// hex-encoded with owner-only permissions.
func LoadOrGenerateKeys(basePath string) (*Keys, error) {
	access, err := loadOrGenerateKey(basePath, "auth.key")
	if err != nil {
		return nil, fmt.Errorf("access token key: %w", err)
	}
	cipher, err := loadOrGenerateKey(basePath, "spotify.key")
	if err != nil {
		return nil, fmt.Errorf("token cipher key: %w", err)
	}
	return &Keys{AccessToken: access, TokenCipher: cipher}, nil
}

func loadOrGenerateKey(basePath, filename string) ([]byte, error) {
	keyPath := filepath.Join(basePath, filename)

	//#nosec G304 -- Key path is derived from validated data path
	if keyBytes, err := os.ReadFile(keyPath); err == nil {
		keyHex := strings.TrimSpace(string(keyBytes))
		if len(keyHex) != keyHexLength {
			return nil, fmt.Errorf("invalid key length in %s: expected %d hex chars, got %d", filename, keyHexLength, len(keyHex))
		}
		key, err := hex.DecodeString(keyHex)
		if err != nil {
			return nil, fmt.Errorf("invalid key format in %s: not valid hex: %w", filename, err)
		}
		return key, nil
	}

	key := make([]byte, keyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	if err := os.MkdirAll(basePath, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, fmt.Errorf("failed to save key: %w", err)
	}
	return key, nil
}
