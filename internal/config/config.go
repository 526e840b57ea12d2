package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Backend   BackendConfig   `mapstructure:"backend"`
	UI        UIConfig        `mapstructure:"ui"`
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Documents DocumentsConfig `mapstructure:"documents"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Log       LogConfig       `mapstructure:"log"`
}

// BackendConfig points the chat panel at a question-answering service.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	TypingInterval time.Duration `mapstructure:"typing_interval"`
	TimeFormat     string        `mapstructure:"time_format"`
	DarkMode       bool          `mapstructure:"dark_mode"`
	PanelX         int           `mapstructure:"panel_x"`
	PanelY         int           `mapstructure:"panel_y"`
	PanelWidth     int           `mapstructure:"panel_width"`
	PanelHeight    int           `mapstructure:"panel_height"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// StoreConfig holds sqlite settings.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type DocumentsConfig struct {
	Dir       string `mapstructure:"dir"`
	ChunkSize int    `mapstructure:"chunk_size"`
}

type RetrievalConfig struct {
	TopK int `mapstructure:"top_k"`
}

// LLMConfig holds provider settings.
type LLMConfig struct {
	Provider    string  `mapstructure:"provider"`
	Model       string  `mapstructure:"model"`
	APIKeyEnv   string  `mapstructure:"api_key_env"`
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float64 `mapstructure:"temperature"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "docqa")
}

// DefaultPath is where Load looks for config.toml when DOCQA_CONFIG is unset.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "docqa", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.base_url", "http://127.0.0.1:8000")
	v.SetDefault("backend.timeout", "0s")
	v.SetDefault("ui.typing_interval", "20ms")
	v.SetDefault("ui.time_format", "15:04")
	v.SetDefault("ui.dark_mode", false)
	v.SetDefault("ui.panel_x", 4)
	v.SetDefault("ui.panel_y", 2)
	v.SetDefault("ui.panel_width", 60)
	v.SetDefault("ui.panel_height", 20)
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("store.path", filepath.Join(dataDir(), "docqa.db"))
	v.SetDefault("documents.dir", filepath.Join("data", "documents"))
	v.SetDefault("documents.chunk_size", 500)
	v.SetDefault("retrieval.top_k", 3)
	v.SetDefault("llm.provider", "groq")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key_env", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dataDir(), "docqa.log"))
}

// Load reads configuration from file and env. Env var overrides use prefix DOCQA_.
// An explicit path wins over DOCQA_CONFIG; a missing default file is not an error.
func Load(path string) (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("DOCQA_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "read config")
		}
	}
	return decode(v)
}

// Defaults returns the built-in configuration with DOCQA_ env overrides applied and no file read.
func Defaults() (Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)
	return decode(v)
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("DOCQA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	return c.normalized(), nil
}

func (c Config) normalized() Config {
	if c.UI.TypingInterval <= 0 {
		c.UI.TypingInterval = 20 * time.Millisecond
	}
	if c.UI.PanelWidth < 24 {
		c.UI.PanelWidth = 24
	}
	if c.UI.PanelHeight < 8 {
		c.UI.PanelHeight = 8
	}
	if c.Documents.ChunkSize <= 0 {
		c.Documents.ChunkSize = 500
	}
	if c.Retrieval.TopK <= 0 {
		c.Retrieval.TopK = 3
	}
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	return c
}

// Save writes the provided config to path (DefaultPath when empty), creating the
// directory if needed. The API key is written in plain text; prefer env vars.
func Save(path string, cfg Config) error {
	if path == "" {
		path = os.Getenv("DOCQA_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "mkdir config dir")
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("backend.base_url", cfg.Backend.BaseURL)
	v.Set("backend.timeout", cfg.Backend.Timeout.String())
	v.Set("ui.typing_interval", cfg.UI.TypingInterval.String())
	v.Set("ui.time_format", cfg.UI.TimeFormat)
	v.Set("ui.dark_mode", cfg.UI.DarkMode)
	v.Set("ui.panel_x", cfg.UI.PanelX)
	v.Set("ui.panel_y", cfg.UI.PanelY)
	v.Set("ui.panel_width", cfg.UI.PanelWidth)
	v.Set("ui.panel_height", cfg.UI.PanelHeight)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("store.path", cfg.Store.Path)
	v.Set("documents.dir", cfg.Documents.Dir)
	v.Set("documents.chunk_size", cfg.Documents.ChunkSize)
	v.Set("retrieval.top_k", cfg.Retrieval.TopK)
	v.Set("llm.provider", cfg.LLM.Provider)
	v.Set("llm.model", cfg.LLM.Model)
	v.Set("llm.api_key_env", cfg.LLM.APIKeyEnv)
	v.Set("llm.api_key", cfg.LLM.APIKey)
	v.Set("llm.base_url", cfg.LLM.BaseURL)
	v.Set("llm.temperature", cfg.LLM.Temperature)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}
