package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadClient_Defaults(t *testing.T) {
	t.Setenv("PETSTORE_SERVER_URL", "")
	t.Setenv("PETSTORE_HTTP_TIMEOUT", "")
	t.Setenv("PETSTORE_STORE", "")
	t.Setenv("PETSTORE_STORE_DSN", "")

	cfg, err := LoadClient()
	require.NoError(t, err)
	require.Equal(t, DefaultServerURL, cfg.ServerURL)
	require.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	require.Equal(t, DriverSQLite, cfg.StoreDriver)
	require.NotEmpty(t, cfg.StoreDSN)
}

func TestLoadClient_RedisRequiresDSN(t *testing.T) {
	t.Setenv("PETSTORE_STORE", "redis")
	t.Setenv("PETSTORE_STORE_DSN", "")

	_, err := LoadClient()
	require.Error(t, err)
}

func TestLoadClient_UnknownDriver(t *testing.T) {
	t.Setenv("PETSTORE_STORE", "etcd")

	_, err := LoadClient()
	require.ErrorIs(t, err, ErrUnknownDriver)
}

func TestLoadClient_BadTimeout(t *testing.T) {
	t.Setenv("PETSTORE_STORE", "memory")
	t.Setenv("PETSTORE_HTTP_TIMEOUT", "soon")

	_, err := LoadClient()
	require.Error(t, err)
}

func TestLoadDotEnv_DoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PETSTORE_SERVER_URL=http://from-file\nDEVSERVER_JWT_SECRET=file-secret\n"), 0o600))

	t.Setenv("PETSTORE_SERVER_URL", "http://from-env")
	t.Setenv("DEVSERVER_JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("DEVSERVER_JWT_SECRET"))

	require.NoError(t, LoadDotEnv(path))
	require.Equal(t, "http://from-env", os.Getenv("PETSTORE_SERVER_URL"))

	dev, err := LoadDevServer()
	require.NoError(t, err)
	require.Equal(t, "file-secret", dev.JWTSecret)
	require.Equal(t, DefaultTokenTTL, dev.TokenTTL)
}

func TestLoadDevServer_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEVSERVER_JWT_SECRET", "s3cret")
	t.Setenv("DEVSERVER_TOKEN_TTL", "15m")
	t.Setenv("DEVSERVER_DB_DSN", "  postgres://petstore@localhost/petstore  ")

	dev, err := LoadDevServer()
	require.NoError(t, err)
	require.Equal(t, DevServer{
		Port:      "9090",
		JWTSecret: "s3cret",
		TokenTTL:  15 * time.Minute,
		DBDSN:     "postgres://petstore@localhost/petstore",
	}, dev)

	t.Setenv("DEVSERVER_TOKEN_TTL", "-1s")
	_, err = LoadDevServer()
	require.Error(t, err)
}

func TestLoadDotEnv_MissingFileIsFine(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}
