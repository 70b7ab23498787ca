package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/healthplanner/internal/client/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_ProcessEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	withArgs(t)
	t.Setenv("HEALTHPLANNER_API_BASE", "http://env:9")
	t.Setenv("HEALTHPLANNER_CREDENTIAL_STORE", "keyring")
	t.Setenv("HEALTHPLANNER_REQUEST_TIMEOUT", "750ms")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "http://env:9", cfg.APIBase)
	assert.Equal(t, credentials.KindKeyring, cfg.CredentialStore)
	assert.Equal(t, 750*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, ".healthplanner", cfg.DataDir)
}

func TestParseEnv_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nHEALTHPLANNER_DATA_DIR=\"/srv/hp\"\n"), 0o600))
	withArgs(t, "-env", path)

	cfg := &Config{}
	parseEnv(cfg)

	assert.Equal(t, "/srv/hp", cfg.DataDir)
	_, leaked := os.LookupEnv("HEALTHPLANNER_DATA_DIR")
	assert.False(t, leaked, "dotenv values must not leak into the process environment")
}

func TestParseEnv_MissingDefaultFileIsFine(t *testing.T) {
	t.Chdir(t.TempDir())
	withArgs(t)

	cfg := &Config{APIBase: "keep"}
	require.NotPanics(t, func() { parseEnv(cfg) })
	assert.Equal(t, "keep", cfg.APIBase)
}

func TestParseEnv_MissingExplicitFilePanics(t *testing.T) {
	t.Chdir(t.TempDir())
	withArgs(t, "-e", "does-not-exist.env")

	require.Panics(t, func() { parseEnv(&Config{}) })
}

func TestApplyEnv_BadValuesPanic(t *testing.T) {
	require.Panics(t, func() { applyEnv(&Config{}, map[string]string{envRequestTimeout: "soon"}) })
	require.Panics(t, func() { applyEnv(&Config{}, map[string]string{envDebug: "maybe"}) })
}
