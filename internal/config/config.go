// Package config loads ~/.intime/config.yaml.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"intime-cli/internal/fsutil"
)

const fileName = "config.yaml"

type Config struct {
	// Backend selects the key-value store: sqlite, file, redis or memory.
	Backend string `json:"backend" yaml:"backend" mapstructure:"backend"`
	// Dir holds the sqlite/file data. Empty means the config dir.
	Dir   string      `json:"dir,omitempty" yaml:"dir,omitempty" mapstructure:"dir"`
	Redis RedisConfig `json:"redis" yaml:"redis" mapstructure:"redis"`
	Log   LogConfig   `json:"log" yaml:"log" mapstructure:"log"`
	TUI   TUIConfig   `json:"tui" yaml:"tui" mapstructure:"tui"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr" mapstructure:"addr"`
	Password string `json:"password,omitempty" yaml:"password,omitempty" mapstructure:"password"`
	DB       int    `json:"db" yaml:"db" mapstructure:"db"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty" mapstructure:"prefix"`
}

type LogConfig struct {
	// Level is a zap level name, or "off".
	Level string `json:"level" yaml:"level" mapstructure:"level"`
	// File defaults to intime.log in the config dir.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`
}

type TUIConfig struct {
	// Profile is the appearance profile id ("default", "mono").
	Profile string `json:"profile" yaml:"profile" mapstructure:"profile"`
}

func Default() *Config {
	return &Config{
		Backend: "sqlite",
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Log: LogConfig{
			Level: "info",
		},
		TUI: TUIConfig{
			Profile: "default",
		},
	}
}

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.intime).
	if v := strings.TrimSpace(os.Getenv("INTIME_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".intime"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("backend", d.Backend)
	v.SetDefault("dir", d.Dir)
	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("redis.prefix", d.Redis.Prefix)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("tui.profile", d.TUI.Profile)
}

// Load reads path (or the default path when empty) over the defaults, then applies
// INTIME_* env overrides (INTIME_BACKEND, INTIME_REDIS_ADDR, INTIME_LOG_LEVEL, ...).
// A missing file is not an error.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("INTIME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg as YAML to path (or the default path when empty).
func Save(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return fsutil.AtomicWriteFile(dir, fileName+".*.tmp", path, b, 0o600)
}

// DataDir resolves where the sqlite/file backends keep their data. A leading ~ is
// expanded.
func (c *Config) DataDir() (string, error) {
	dir := strings.TrimSpace(c.Dir)
	if dir == "" {
		return Dir()
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	return dir, nil
}

// LogPath resolves the log file location.
func (c *Config) LogPath() (string, error) {
	if f := strings.TrimSpace(c.Log.File); f != "" {
		return f, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "intime.log"), nil
}
