package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:     AppConfig{Environment: "development"},
		Logger:  LoggerConfig{Level: "info"},
		Storage: StorageConfig{DataPath: "/tmp/shelfmark"},
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	bad := validConfig()
	bad.App.Environment = "testing"
	assert.Error(t, bad.Validate())

	bad = validConfig()
	bad.Logger.Level = "verbose"
	assert.Error(t, bad.Validate())

	bad = validConfig()
	bad.Storage.DataPath = ""
	assert.Error(t, bad.Validate())
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("SHELFMARK_TEST_KEY", "from-env")

	// Flag wins over env; env wins over default.
	assert.Equal(t, "from-flag", getConfigValue("from-flag", "SHELFMARK_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "SHELFMARK_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "SHELFMARK_TEST_UNSET", "default"))
}

func TestGetBoolConfigValue(t *testing.T) {
	t.Setenv("SHELFMARK_TEST_BOOL", "yes")
	assert.True(t, getBoolConfigValue("", "SHELFMARK_TEST_BOOL", false))

	t.Setenv("SHELFMARK_TEST_BOOL", "nope")
	assert.False(t, getBoolConfigValue("", "SHELFMARK_TEST_BOOL", true))

	assert.True(t, getBoolConfigValue("", "SHELFMARK_TEST_BOOL_UNSET", true))
}

func TestParseDurationValue(t *testing.T) {
	d, err := parseDurationValue("", "SHELFMARK_TEST_DUR_UNSET", "15s")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, d)

	t.Setenv("SHELFMARK_TEST_DUR", "2m")
	d, err = parseDurationValue("", "SHELFMARK_TEST_DUR", "15s")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d)

	t.Setenv("SHELFMARK_TEST_DUR", "soon")
	_, err = parseDurationValue("", "SHELFMARK_TEST_DUR", "15s")
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment\nSHELFMARK_ENVFILE_A=hello\nSHELFMARK_ENVFILE_B=\"quoted\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0644))

	t.Setenv("SHELFMARK_ENVFILE_A", "")
	t.Setenv("SHELFMARK_ENVFILE_B", "")
	os.Unsetenv("SHELFMARK_ENVFILE_A")
	os.Unsetenv("SHELFMARK_ENVFILE_B")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "hello", os.Getenv("SHELFMARK_ENVFILE_A"))
	assert.Equal(t, "quoted", os.Getenv("SHELFMARK_ENVFILE_B"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := expandPath("~/shelfmark-data", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "shelfmark-data"), expanded)

	expanded, err = expandPath("", "/srv/default")
	require.NoError(t, err)
	assert.Equal(t, "/srv/default", expanded)
}
