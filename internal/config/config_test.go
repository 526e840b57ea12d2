package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DOCQA_CONFIG", "")
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:8000", cfg.Backend.BaseURL)
	require.Equal(t, time.Duration(0), cfg.Backend.Timeout)
	require.Equal(t, 20*time.Millisecond, cfg.UI.TypingInterval)
	require.Equal(t, "15:04", cfg.UI.TimeFormat)
	require.False(t, cfg.UI.DarkMode)
	require.Equal(t, ":8000", cfg.Server.Addr)
	require.Equal(t, filepath.Join(home, ".local", "share", "docqa", "docqa.db"), cfg.Store.Path)
	require.Equal(t, 500, cfg.Documents.ChunkSize)
	require.Equal(t, 3, cfg.Retrieval.TopK)
	require.Equal(t, "groq", cfg.LLM.Provider)
	require.InDelta(t, 0.2, cfg.LLM.Temperature, 1e-9)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "docqa.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[backend]
base_url = "https://qa.example.com"
timeout = "5s"

[ui]
typing_interval = "35ms"
dark_mode = true
panel_width = 10

[llm]
provider = " Gemini "
api_key_env = "MY_KEY"
`), 0o644))
	t.Setenv("DOCQA_SERVER_ADDR", "127.0.0.1:9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://qa.example.com", cfg.Backend.BaseURL)
	require.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	require.Equal(t, 35*time.Millisecond, cfg.UI.TypingInterval)
	require.True(t, cfg.UI.DarkMode)
	require.Equal(t, 24, cfg.UI.PanelWidth)
	require.Equal(t, "gemini", cfg.LLM.Provider)
	require.Equal(t, "MY_KEY", cfg.LLM.APIKeyEnv)
	require.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "out", "config.toml")

	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Backend.BaseURL = "https://hosted.example.org"
	cfg.UI.DarkMode = true
	cfg.Retrieval.TopK = 5
	require.NoError(t, Save(path, cfg))

	again, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}

func TestDefaultsIgnoresConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "docqa.toml")
	require.NoError(t, os.WriteFile(path, []byte("[retrieval]\ntop_k = 9\n"), 0o644))
	t.Setenv("DOCQA_CONFIG", path)
	t.Setenv("DOCQA_BACKEND_BASE_URL", "http://10.0.0.2:8000")

	cfg, err := Defaults()
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Retrieval.TopK)
	require.Equal(t, "http://10.0.0.2:8000", cfg.Backend.BaseURL)
}
