package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hobbyhub/hobbies/pkg/profile"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := profile.DefaultConfig()
	assert.Equal(t, "http://127.0.0.1:8000/", cfg.BaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "/", cfg.LogoutNext)
	assert.Empty(t, cfg.Cookies)
	assert.Empty(t, cfg.Proxy)
	assert.Equal(t, "Ada Lovelace", cfg.FormatDisplayname("Ada", "Lovelace"))
	assert.Equal(t, "Ada", cfg.FormatDisplayname("Ada", ""))
	assert.Empty(t, cfg.FormatDisplayname("", ""))
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := profile.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, profile.DefaultConfig().BaseURL, cfg.BaseURL)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
base_url: https://hobbies.example.com/api/
cookies: "sessionid=abc; csrftoken=def"
log_level: debug
`)

	cfg, err := profile.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://hobbies.example.com/api/", cfg.BaseURL)
	assert.Equal(t, "sessionid=abc; csrftoken=def", cfg.Cookies)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Keys the file leaves out keep their defaults.
	assert.Equal(t, "/", cfg.LogoutNext)
	assert.Equal(t, "Ada Lovelace", cfg.FormatDisplayname("Ada", "Lovelace"))
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("HOBBY_BASE_URL", "http://env.example.com/")
	t.Setenv("HOBBY_LOGOUT_NEXT", "/login/")
	t.Setenv("HOBBY_DISPLAYNAME_TEMPLATE", "{{.FirstName}}")
	path := writeConfig(t, "base_url: http://file.example.com/\n")

	cfg, err := profile.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example.com/", cfg.BaseURL)
	assert.Equal(t, "/login/", cfg.LogoutNext)
	assert.Equal(t, "Ada", cfg.FormatDisplayname("Ada", "Lovelace"))
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := profile.LoadConfig(writeConfig(t, "base_url: [unterminated\n"))
	require.Error(t, err)

	_, err = profile.LoadConfig(writeConfig(t, `displayname_template: "{{.FirstName"`))
	require.ErrorContains(t, err, "displayname_template")

	t.Setenv("HOBBY_DISPLAYNAME_TEMPLATE", "{{end}}")
	_, err = profile.LoadConfig("")
	require.ErrorContains(t, err, "displayname_template")
}

func TestFormatDisplaynameWithoutTemplate(t *testing.T) {
	t.Parallel()

	var cfg profile.Config
	require.Equal(t, "Ada Lovelace", cfg.FormatDisplayname("Ada", "Lovelace"))
	require.Equal(t, "Lovelace", cfg.FormatDisplayname("", "Lovelace"))
}
