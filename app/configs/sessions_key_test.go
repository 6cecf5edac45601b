package configs

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSessionKeys_FallsBackToSessionKey(t *testing.T) {
	keys, err := LoadSessionKeys(ENV{SessionKey: "plain-secret"})
	require.NoError(t, err)
	assert.Equal(t, []byte("plain-secret"), keys.AuthKey)
	assert.Len(t, keys.KeyPairs(), 1)
}

func TestLoadSessionKeys_DecodesBase64Pair(t *testing.T) {
	auth := base64.URLEncoding.EncodeToString([]byte(strings.Repeat("a", 64)))
	enc := base64.URLEncoding.EncodeToString([]byte(strings.Repeat("b", 32)))

	keys, err := LoadSessionKeys(ENV{AppAuthKey: auth, AppEncKey: enc})
	require.NoError(t, err)
	assert.Len(t, keys.AuthKey, 64)
	assert.Len(t, keys.EncKey, 32)
	assert.Len(t, keys.KeyPairs(), 2)
}

func TestLoadSessionKeys_RejectsBadEncKeyLength(t *testing.T) {
	auth := base64.URLEncoding.EncodeToString([]byte("auth"))
	enc := base64.URLEncoding.EncodeToString([]byte("short"))

	_, err := LoadSessionKeys(ENV{AppAuthKey: auth, AppEncKey: enc})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid length")
}

func TestLoadSessionKeys_RequiresBothKeys(t *testing.T) {
	_, err := LoadSessionKeys(ENV{AppAuthKey: "abc"})
	require.Error(t, err)
}

func TestGenerateAndPrintSessionKeys_WritesEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env.new_keys")
	require.NoError(t, GenerateAndPrintSessionKeys(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "APP_AUTH_KEY=")
	assert.Contains(t, string(content), "APP_ENC_KEY=")
	assert.Contains(t, string(content), "CSRF_KEY=")
}

func TestDialectorFor_RejectsUnknownDriver(t *testing.T) {
	_, err := dialectorFor(ENV{DBDriver: "oracle"})
	require.Error(t, err)
}

func TestOpenConnection_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "test.db")
	db, err := OpenConnection(ENV{DBDriver: "sqlite", DBPath: path})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
