package service

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/foodnjam/foodnjam-server/internal/auth"
	"github.com/foodnjam/foodnjam-server/internal/cache"
	"github.com/foodnjam/foodnjam-server/internal/logger"
	"github.com/foodnjam/foodnjam-server/internal/pairing"
	"github.com/foodnjam/foodnjam-server/internal/store/sqlite"
	"github.com/foodnjam/foodnjam-server/internal/validation"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Writer: io.Discard, Format: "json"})
}

func newTestSQLite(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.Open(t.TempDir(), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func newTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	key := bytes.Repeat([]byte{0x42}, 32)
	ts, err := auth.NewTokenService(key, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)
	return ts
}

func newTestCipher(t *testing.T) *auth.TokenCipher {
	t.Helper()
	cipher, err := auth.NewTokenCipher(bytes.Repeat([]byte{0x17}, 32))
	require.NoError(t, err)
	return cipher
}

func newTestTable(t *testing.T) *pairing.Table {
	t.Helper()
	table, err := pairing.NewTable()
	require.NoError(t, err)
	return table
}

func newTestValidator() *validation.Validator {
	return validation.New()
}
