package manager

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hoppxi/runa/internal/discovery"
	"github.com/hoppxi/runa/pkg/search"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	AppName    = "runa"
	configName = "runa.yaml"
	envPrefix  = "RUNA"
)

type ShellConfig struct {
	Command  string `mapstructure:"command" yaml:"command"`
	IconPath string `mapstructure:"icon_path" yaml:"icon_path,omitempty"`
	Alias    string `mapstructure:"alias" yaml:"alias"`
	AliasLC  string `mapstructure:"alias_lc" yaml:"alias_lc,omitempty"`
}

type BufferRules struct {
	ClearOnHide  bool `mapstructure:"clear_on_hide" yaml:"clear_on_hide"`
	ClearOnEnter bool `mapstructure:"clear_on_enter" yaml:"clear_on_enter"`
}

type ClipboardSettings struct {
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	MaxItems     int           `mapstructure:"max_items" yaml:"max_items"`
	SeedCliphist bool          `mapstructure:"seed_cliphist" yaml:"seed_cliphist"`
}

type EmojiSettings struct {
	Columns int `mapstructure:"columns" yaml:"columns"`
}

type LogSettings struct {
	JSON  bool   `mapstructure:"json" yaml:"json"`
	Level string `mapstructure:"level" yaml:"level"`
}

// Settings is the decoded runa.yaml.
type Settings struct {
	SearchURL   string `mapstructure:"search_url" yaml:"search_url"`
	Placeholder string `mapstructure:"placeholder" yaml:"placeholder"`
	Ranking     string `mapstructure:"ranking" yaml:"ranking"`

	Shells []ShellConfig `mapstructure:"shells" yaml:"shells,omitempty"`

	// IndexDirs entries are "path[:depth]".
	IndexDirs            []string `mapstructure:"index_dirs" yaml:"index_dirs,omitempty"`
	IndexExcludePatterns []string `mapstructure:"index_exclude_patterns" yaml:"index_exclude_patterns,omitempty"`
	IndexIncludePatterns []string `mapstructure:"index_include_patterns" yaml:"index_include_patterns,omitempty"`
	DesktopEntries       bool     `mapstructure:"desktop_entries" yaml:"desktop_entries"`
	PathBins             bool     `mapstructure:"path_bins" yaml:"path_bins"`

	BufferRules   BufferRules       `mapstructure:"buffer_rules" yaml:"buffer_rules"`
	Clipboard     ClipboardSettings `mapstructure:"clipboard" yaml:"clipboard"`
	Emoji         EmojiSettings     `mapstructure:"emoji" yaml:"emoji"`
	Log           LogSettings       `mapstructure:"log" yaml:"log"`
	Notifications bool              `mapstructure:"notifications" yaml:"notifications"`
}

// Defaults is what an absent or empty config file means.
func Defaults() Settings {
	return Settings{
		SearchURL:      search.DefaultSearchURL,
		Placeholder:    "Time to be productive!",
		Ranking:        "alphabetical",
		DesktopEntries: true,
		BufferRules:    BufferRules{ClearOnHide: true, ClearOnEnter: true},
		Clipboard: ClipboardSettings{
			PollInterval: time.Second,
			MaxItems:     search.DefaultHistorySize,
			SeedCliphist: true,
		},
		Emoji:         EmojiSettings{Columns: search.DefaultEmojiColumns},
		Log:           LogSettings{Level: "info"},
		Notifications: true,
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("search_url", d.SearchURL)
	v.SetDefault("placeholder", d.Placeholder)
	v.SetDefault("ranking", d.Ranking)
	v.SetDefault("desktop_entries", d.DesktopEntries)
	v.SetDefault("path_bins", d.PathBins)
	v.SetDefault("buffer_rules.clear_on_hide", d.BufferRules.ClearOnHide)
	v.SetDefault("buffer_rules.clear_on_enter", d.BufferRules.ClearOnEnter)
	v.SetDefault("clipboard.poll_interval", d.Clipboard.PollInterval)
	v.SetDefault("clipboard.max_items", d.Clipboard.MaxItems)
	v.SetDefault("clipboard.seed_cliphist", d.Clipboard.SeedCliphist)
	v.SetDefault("emoji.columns", d.Emoji.Columns)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("notifications", d.Notifications)
}

// Validate rejects settings that would break discovery or layout.
func (s Settings) Validate() error {
	var errs []error
	for _, d := range s.IndexDirs {
		if _, err := discovery.ParseIndexDir(d); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.patterns().Validate(); err != nil {
		errs = append(errs, err)
	}
	if s.Emoji.Columns < 1 {
		errs = append(errs, fmt.Errorf("emoji.columns must be positive, got %d", s.Emoji.Columns))
	}
	if s.Clipboard.MaxItems < 1 {
		errs = append(errs, fmt.Errorf("clipboard.max_items must be positive, got %d", s.Clipboard.MaxItems))
	}
	return errors.Join(errs...)
}

func (s Settings) patterns() discovery.Patterns {
	return discovery.Patterns{Exclude: s.IndexExcludePatterns, Include: s.IndexIncludePatterns}
}

// DiscoveryOptions maps the settings onto a catalog build.
func (s Settings) DiscoveryOptions(version string) discovery.Options {
	opts := discovery.Options{
		PathBins:  s.PathBins,
		IndexDirs: s.IndexDirs,
		Patterns:  s.patterns(),
		Version:   version,
	}
	if !s.DesktopEntries {
		opts.DataDirs = []string{}
	}
	for _, sh := range s.Shells {
		opts.Shells = append(opts.Shells, discovery.Shell(sh))
	}
	return opts
}

func (s Settings) SearchOptions() search.Options {
	return search.Options{
		Ranking:      search.ParseRanking(s.Ranking),
		EmojiColumns: s.Emoji.Columns,
	}
}

func (s Settings) Rules() search.BufferRules {
	return search.BufferRules(s.BufferRules)
}

// ConfigManager owns the viper instance behind runa.yaml.
type ConfigManager struct {
	path string

	once sync.Once
	mu   sync.Mutex
	v    *viper.Viper
	err  error
}

var Config = &ConfigManager{}

// NewConfigManager reads from path instead of the default location.
func NewConfigManager(path string) *ConfigManager {
	return &ConfigManager{path: path}
}

// DefaultConfigPath is $XDG_CONFIG_HOME/runa/runa.yaml.
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(configDir, AppName, configName)
}

func (c *ConfigManager) Path() string {
	if c.path == "" {
		return DefaultConfigPath()
	}
	return c.path
}

// Load reads the config once. A missing file is not an error; defaults
// and RUNA_* environment overrides apply.
func (c *ConfigManager) Load() (*viper.Viper, error) {
	c.once.Do(func() {
		path := c.Path()

		envFile := filepath.Join(filepath.Dir(path), ".env")
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.err = fmt.Errorf("load %s: %w", envFile, err)
			return
		}

		v := viper.New()
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
		setDefaults(v)

		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.err = fmt.Errorf("failed to read config: %w", err)
			return
		}
		c.v = v
	})
	return c.v, c.err
}

// Settings decodes the current config.
func (c *ConfigManager) Settings() (Settings, error) {
	v, err := c.Load()
	if err != nil {
		return Settings{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

// Reload re-reads the file from disk.
func (c *ConfigManager) Reload() error {
	v, err := c.Load()
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func (c *ConfigManager) Watch(onChange func()) {
	v, err := c.Load()
	if err != nil {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		onChange()
	})
	v.WatchConfig()
}
