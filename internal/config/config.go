// Package config loads vectorkit settings from defaults, an optional
// vectorkit.toml, VECTORKIT_* environment variables and CLI flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultListen    = "127.0.0.1:8080"
	defaultMaxBody   = 2 << 20
	defaultMaxVecs   = 10000
	defaultFormat    = ""
	defaultBaud      = 115200
	defaultTimeoutMS = 500

	// EnvPrefix prefixes every environment override, e.g.
	// VECTORKIT_SERVER_LISTEN.
	EnvPrefix = "VECTORKIT"
)

// Config is the full vectorkit configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Display DisplayConfig `mapstructure:"display"`
	Link    LinkConfig    `mapstructure:"link"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Listen     string `mapstructure:"listen"`
	MaxBody    int64  `mapstructure:"max_body"`
	MaxVectors int    `mapstructure:"max_vectors"`
}

// DisplayConfig holds the default per-number format spec used by the CLI.
type DisplayConfig struct {
	Format string `mapstructure:"format"`
}

// LinkConfig holds serial link settings.
type LinkConfig struct {
	Port      string `mapstructure:"port"`
	Baud      int    `mapstructure:"baud"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	Debug  bool `mapstructure:"debug"`
	Pretty bool `mapstructure:"pretty"`
	JSON   bool `mapstructure:"json"`
}

// NewDefaultConfig returns a Config holding every default value.
func NewDefaultConfig() *Config {
	return &Config{
		Server:  ServerConfig{Listen: defaultListen, MaxBody: defaultMaxBody, MaxVectors: defaultMaxVecs},
		Display: DisplayConfig{Format: defaultFormat},
		Link:    LinkConfig{Baud: defaultBaud, TimeoutMS: defaultTimeoutMS},
		Log:     LogConfig{Pretty: true},
	}
}

// InitViper returns a viper instance with defaults registered, the config
// file read (when path is non-empty, or when vectorkit.toml exists in the
// working directory) and environment overrides enabled.
//
// Precedence, highest first: bound flags, environment, file, defaults.
func InitViper(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("vectorkit")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v, nil
}

func setDefaults(v *viper.Viper) {
	d := NewDefaultConfig()
	v.SetDefault("server.listen", d.Server.Listen)
	v.SetDefault("server.max_body", d.Server.MaxBody)
	v.SetDefault("server.max_vectors", d.Server.MaxVectors)
	v.SetDefault("display.format", d.Display.Format)
	v.SetDefault("link.port", d.Link.Port)
	v.SetDefault("link.baud", d.Link.Baud)
	v.SetDefault("link.timeout_ms", d.Link.TimeoutMS)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("log.pretty", d.Log.Pretty)
	v.SetDefault("log.json", d.Log.JSON)
}

// BindFlags binds each flag name in keys to its dotted config key. Flags
// missing from fs are ignored so commands can share one key map.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for name, key := range keys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %q: %w", name, err)
		}
	}
	return nil
}

// Load unmarshals v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
