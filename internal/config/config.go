package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "METALAND"

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Store    StoreConfig    `mapstructure:"store" yaml:"store"`
	Chain    ChainConfig    `mapstructure:"chain" yaml:"chain"`
	Registry RegistryConfig `mapstructure:"registry" yaml:"registry"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
	DSN    string `mapstructure:"dsn" yaml:"dsn"`
	// MigrationsDir replaces the embedded schema when set.
	MigrationsDir string `mapstructure:"migrations_dir" yaml:"migrations_dir"`
}

type ChainConfig struct {
	GenesisUnix          int64 `mapstructure:"genesis_unix" yaml:"genesis_unix"`
	BlockIntervalSeconds int   `mapstructure:"block_interval_seconds" yaml:"block_interval_seconds"`
}

type RegistryConfig struct {
	// Authority is applied once at startup when the store has none yet.
	Authority string `mapstructure:"authority" yaml:"authority"`
	// DeniedParcels entries look like "metaverse|coordinates=code" with a
	// non-zero code. The metaverse part ends at the first "|".
	DeniedParcels []string `mapstructure:"denied_parcels" yaml:"denied_parcels"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

func Defaults() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Store: StoreConfig{Driver: DriverMemory},
		Chain: ChainConfig{BlockIntervalSeconds: 600},
		Log:   LogConfig{Level: "info"},
	}
}

func (c ChainConfig) Genesis() time.Time {
	return time.Unix(c.GenesisUnix, 0).UTC()
}

func (c ChainConfig) BlockInterval() time.Duration {
	return time.Duration(c.BlockIntervalSeconds) * time.Second
}

// SetDefaults registers every key so env overrides reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.dsn", d.Store.DSN)
	v.SetDefault("store.migrations_dir", d.Store.MigrationsDir)
	v.SetDefault("chain.genesis_unix", d.Chain.GenesisUnix)
	v.SetDefault("chain.block_interval_seconds", d.Chain.BlockIntervalSeconds)
	v.SetDefault("registry.authority", d.Registry.Authority)
	v.SetDefault("registry.denied_parcels", d.Registry.DeniedParcels)
	v.SetDefault("log.level", d.Log.Level)
}

// Load reads path when given, applies METALAND_* env overrides and validates.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var ErrInvalidConfig = errors.New("invalid config")

func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return fmt.Errorf("%w: store.dsn is required for the postgres driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store.driver %q", ErrInvalidConfig, c.Store.Driver)
	}
	if c.Chain.BlockIntervalSeconds <= 0 {
		return fmt.Errorf("%w: chain.block_interval_seconds must be positive", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalidConfig)
	}
	return nil
}

func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	b, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	if err := os.WriteFile(configPath, b, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
