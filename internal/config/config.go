package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// EnvConfig names the environment variable holding an optional config file path.
const EnvConfig = "MVC_CONFIG"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Registry RegistryConfig `mapstructure:"registry"`
	Arena    ArenaConfig    `mapstructure:"arena"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RegistryConfig holds model registry settings.
type RegistryConfig struct {
	LazyGet bool `mapstructure:"lazy_get"`
}

// ArenaConfig holds the example arena settings.
type ArenaConfig struct {
	Players []string `mapstructure:"players"`
}

// Load reads configuration from file and env. Env var overrides use prefix MVC_;
// MVC_LAZY_GET is accepted as a short form of MVC_REGISTRY_LAZY_GET.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("registry.lazy_get", false)
	v.SetDefault("arena.players", []string{"ada", "grace"})

	v.SetConfigType("yaml")

	v.SetEnvPrefix("MVC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv("registry.lazy_get", "MVC_REGISTRY_LAZY_GET", "MVC_LAZY_GET"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	// an explicitly named file must be readable
	if cfgPath := os.Getenv(EnvConfig); cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Arena.Players = cleanNames(c.Arena.Players)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first setting that is out of range.
func (c Config) Validate() error {
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		return fmt.Errorf("%w: log.level %q (want debug, info, warn or error)", ErrInvalid, c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalid, c.Log.Format)
	}
	if len(c.Arena.Players) == 0 {
		return fmt.Errorf("%w: arena.players is empty", ErrInvalid)
	}
	return nil
}

// cleanNames trims the names and drops blanks.
func cleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
