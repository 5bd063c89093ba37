package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is where the journal analysis service listens by default.
const DefaultBaseURL = "http://localhost:8001"

// ServerConfig holds the remote service settings.
type ServerConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DraftsConfig controls local draft autosave.
type DraftsConfig struct {
	Autosave bool `mapstructure:"autosave"`
}

// RemindersConfig controls the cue scheduling acknowledgement.
type RemindersConfig struct {
	Notify bool `mapstructure:"notify"`
}

// ShellConfig holds prompt integration settings.
type ShellConfig struct {
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	TodayIcon   string        `mapstructure:"today_icon"`
	NoTodayIcon string        `mapstructure:"no_today_icon"`
	StreakIcon  string        `mapstructure:"streak_icon"`
	ShowRisk    bool          `mapstructure:"show_risk"`
}

// ThemeConfig holds a preset name and optional colour overrides.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	Background    string `mapstructure:"background"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// Config holds the application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DataDir   string          `mapstructure:"data_dir"`
	Editor    string          `mapstructure:"editor"`
	MaxWidth  int             `mapstructure:"max_width"`
	LogFile   string          `mapstructure:"log_file"`
	Drafts    DraftsConfig    `mapstructure:"drafts"`
	Reminders RemindersConfig `mapstructure:"reminders"`
	Shell     ShellConfig     `mapstructure:"shell"`
	Theme     ThemeConfig     `mapstructure:"theme"`
}

// DefaultDataDir returns the default data directory (~/.moodctl/).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".moodctl")
	}
	return filepath.Join(home, ".moodctl")
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.base_url", DefaultBaseURL)
	v.SetDefault("server.timeout", "0s")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("editor", "")
	v.SetDefault("max_width", 100)
	v.SetDefault("log_file", "")
	v.SetDefault("drafts.autosave", true)
	v.SetDefault("reminders.notify", false)
	v.SetDefault("shell.cache_ttl", "5m")
	v.SetDefault("shell.today_icon", "✓")
	v.SetDefault("shell.no_today_icon", "✗")
	v.SetDefault("shell.streak_icon", "🔥")
	v.SetDefault("shell.show_risk", false)
	v.SetDefault("theme.preset", "default-dark")
	v.SetDefault("theme.markdown_style", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "moodctl"))
		}
		v.AddConfigPath(DefaultDataDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// MOODCTL_DATA_DIR, MOODCTL_SERVER_BASE_URL, ...
	v.SetEnvPrefix("MOODCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
