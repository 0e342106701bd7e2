package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"profile_path": "profile.yaml",
		"profile_id": "550e8400-e29b-41d4-a716-446655440000",
		"driver": "rod",
		"browser_timeout": "45s",
		"iframe_recheck_delay": 1500,
		"port": 9090,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "profile.yaml", cfg.ProfilePath)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", cfg.ProfileID)
	assert.Equal(t, "rod", cfg.Driver)
	assert.Equal(t, 45*time.Second, cfg.BrowserTimeout.Std())
	assert.Equal(t, 1500*time.Millisecond, cfg.IframeRecheckDelay.Std())
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_BadDuration(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"browser_timeout": "soon"}`), 0644))

	_, err := LoadConfig(tmpFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("AUTOFILL_PROFILE", "/tmp/p.json")
	t.Setenv("DATABASE_URL", "postgres://localhost/autofill")
	t.Setenv("AUTOFILL_DRIVER", "rod")
	t.Setenv("AUTOFILL_BROWSER_TIMEOUT", "10s")
	t.Setenv("AUTOFILL_IFRAME_RECHECK_DELAY", "bogus")
	t.Setenv("PORT", "3000")

	cfg := FromEnv()
	assert.Equal(t, "/tmp/p.json", cfg.ProfilePath)
	assert.Equal(t, "postgres://localhost/autofill", cfg.DatabaseURL)
	assert.Equal(t, "rod", cfg.Driver)
	assert.Equal(t, 10*time.Second, cfg.BrowserTimeout.Std())
	assert.Zero(t, cfg.IframeRecheckDelay)
	assert.Equal(t, 3000, cfg.Port)
	assert.True(t, cfg.UsesDatabase())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "valid file source", cfg: Config{ProfilePath: "p.json", Driver: "chromedp"}},
		{name: "valid database source", cfg: Config{DatabaseURL: "postgres://x", ProfileID: "550e8400-e29b-41d4-a716-446655440000"}},
		{name: "unknown driver", cfg: Config{ProfilePath: "p.json", Driver: "selenium"}, wantErr: "unknown driver"},
		{name: "negative timeout", cfg: Config{ProfilePath: "p.json", BrowserTimeout: -1}, wantErr: "browser_timeout"},
		{name: "negative recheck", cfg: Config{ProfilePath: "p.json", IframeRecheckDelay: -1}, wantErr: "iframe_recheck_delay"},
		{name: "port out of range", cfg: Config{ProfilePath: "p.json", Port: 70000}, wantErr: "port"},
		{name: "no profile source", cfg: Config{}, wantErr: "no profile source"},
		{name: "bad profile id", cfg: Config{DatabaseURL: "postgres://x", ProfileID: "me"}, wantErr: "profile_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		ProfilePath: "custom.yaml",
		Driver:      "rod",
		Verbose:     true,
	}

	merged := partial.MergeWithDefaults(Defaults())

	assert.Equal(t, "custom.yaml", merged.ProfilePath)
	assert.Equal(t, "rod", merged.Driver)
	assert.True(t, merged.Verbose)

	assert.Equal(t, DefaultBrowserTimeout, merged.BrowserTimeout.Std())
	assert.Equal(t, DefaultIframeRecheckDelay, merged.IframeRecheckDelay.Std())
	assert.Equal(t, DefaultPort, merged.Port)
	assert.NoError(t, merged.Validate())
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{ProfilePath: "p.json"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "p.json", merged.ProfilePath)
	assert.Empty(t, merged.Driver)
	assert.Zero(t, merged.Port)
}
