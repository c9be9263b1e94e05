// Package config holds the dexd node configuration, read from
// $HOME/.simpledex/config/config.toml and DEXD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cosmossdk.io/math"
	"github.com/spf13/viper"

	"github.com/simpledex/simpledex/app/telemetry"
)

const (
	EnvPrefix      = "DEXD"
	ConfigDir      = "config"
	DataDir        = "data"
	ConfigFileName = "config.toml"
	GenesisFile    = "genesis.json"

	DBBackendMemDB   = "memdb"
	DBBackendLevelDB = "goleveldb"

	LogFormatPlain = "plain"
	LogFormatJSON  = "json"
)

// Config is the full node configuration.
type Config struct {
	Log       LogConfig        `mapstructure:"log"`
	DB        DBConfig         `mapstructure:"db"`
	API       APIConfig        `mapstructure:"api"`
	Dex       DexConfig        `mapstructure:"dex"`
	App       AppConfig        `mapstructure:"app"`
	Health    HealthConfig     `mapstructure:"health"`
	Telemetry telemetry.Config `mapstructure:"telemetry"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DBConfig selects the store backend. Dir is relative to the home directory
// unless absolute.
type DBConfig struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
}

type APIConfig struct {
	Address         string        `mapstructure:"address"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	RateLimitRPS    float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst  int           `mapstructure:"rate_limit_burst"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DexConfig seeds the dex genesis params written by `dexd init`.
type DexConfig struct {
	SwapFee string `mapstructure:"swap_fee"`
}

type AppConfig struct {
	ChainID        string `mapstructure:"chain_id"`
	InvariantCheck bool   `mapstructure:"invariant_check"`
}

type HealthConfig struct {
	MaxCommitAge  time.Duration `mapstructure:"max_commit_age"`
	CacheDuration time.Duration `mapstructure:"cache_duration"`
}

// DefaultConfig returns the configuration written by `dexd init`.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: LogFormatPlain},
		DB:  DBConfig{Backend: DBBackendLevelDB, Dir: DataDir},
		API: APIConfig{
			Address:         "127.0.0.1:1317",
			CORSOrigins:     []string{"http://localhost:3000"},
			RateLimitRPS:    100,
			RateLimitBurst:  200,
			MaxBodyBytes:    1 << 20,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Dex: DexConfig{SwapFee: "0"},
		App: AppConfig{ChainID: "simpledex-local", InvariantCheck: true},
		Health: HealthConfig{
			CacheDuration: 5 * time.Second,
		},
		Telemetry: telemetry.Config{
			OTLPEndpoint: "localhost:4318",
			SampleRate:   1.0,
			Environment:  "development",
		},
	}
}

// SwapFee parses the configured fee.
func (c *Config) SwapFee() (math.LegacyDec, error) {
	return math.LegacyNewDecFromStr(strings.TrimSpace(c.Dex.SwapFee))
}

// DBPath resolves the database directory against home.
func (c *Config) DBPath(home string) string {
	if filepath.IsAbs(c.DB.Dir) {
		return c.DB.Dir
	}
	return filepath.Join(home, c.DB.Dir)
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case LogFormatPlain, LogFormatJSON:
	default:
		return fmt.Errorf("log.format must be %q or %q, got %q", LogFormatPlain, LogFormatJSON, c.Log.Format)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	switch c.DB.Backend {
	case DBBackendMemDB, DBBackendLevelDB:
	default:
		return fmt.Errorf("db.backend must be %q or %q, got %q", DBBackendMemDB, DBBackendLevelDB, c.DB.Backend)
	}
	if c.DB.Backend == DBBackendLevelDB && c.DB.Dir == "" {
		return errors.New("db.dir is required for goleveldb")
	}

	if c.API.Address == "" {
		return errors.New("api.address cannot be empty")
	}
	if c.API.RateLimitRPS < 0 || c.API.RateLimitBurst < 0 {
		return errors.New("api rate limits cannot be negative")
	}
	if c.API.RateLimitRPS > 0 && c.API.RateLimitBurst == 0 {
		return errors.New("api.rate_limit_burst must be positive when rate limiting is enabled")
	}
	if c.API.MaxBodyBytes <= 0 {
		return errors.New("api.max_body_bytes must be positive")
	}

	fee, err := c.SwapFee()
	if err != nil {
		return fmt.Errorf("dex.swap_fee: %w", err)
	}
	if fee.IsNegative() || fee.GTE(math.LegacyOneDec()) {
		return fmt.Errorf("dex.swap_fee must be in [0, 1), got %s", fee)
	}

	if c.App.ChainID == "" {
		return errors.New("app.chain_id cannot be empty")
	}

	return telemetry.ValidateConfig(c.Telemetry)
}

// NewViper returns a viper instance with defaults and environment overrides
// for every key. Environment keys replace dots with underscores, so
// DEXD_API_ADDRESS overrides api.address.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setValues(v.SetDefault, DefaultConfig())
	return v
}

// ConfigFilePath is home/config/config.toml.
func ConfigFilePath(home string) string {
	return filepath.Join(home, ConfigDir, ConfigFileName)
}

// Load reads home/config/config.toml into v, if present, and decodes the
// merged configuration.
func Load(v *viper.Viper, home string) (*Config, error) {
	v.SetConfigFile(ConfigFilePath(home))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// WriteConfigFile writes cfg as TOML to path, creating parent directories.
func WriteConfigFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	v := viper.New()
	v.SetConfigType("toml")
	setValues(v.Set, cfg)
	return v.WriteConfigAs(path)
}

// setValues is the single table of config keys.
func setValues(set func(key string, value interface{}), cfg *Config) {
	set("log.level", cfg.Log.Level)
	set("log.format", cfg.Log.Format)

	set("db.backend", cfg.DB.Backend)
	set("db.dir", cfg.DB.Dir)

	set("api.address", cfg.API.Address)
	set("api.cors_origins", cfg.API.CORSOrigins)
	set("api.rate_limit_rps", cfg.API.RateLimitRPS)
	set("api.rate_limit_burst", cfg.API.RateLimitBurst)
	set("api.max_body_bytes", cfg.API.MaxBodyBytes)
	set("api.read_timeout", cfg.API.ReadTimeout.String())
	set("api.write_timeout", cfg.API.WriteTimeout.String())
	set("api.request_timeout", cfg.API.RequestTimeout.String())
	set("api.shutdown_timeout", cfg.API.ShutdownTimeout.String())

	set("dex.swap_fee", cfg.Dex.SwapFee)

	set("app.chain_id", cfg.App.ChainID)
	set("app.invariant_check", cfg.App.InvariantCheck)

	set("health.max_commit_age", cfg.Health.MaxCommitAge.String())
	set("health.cache_duration", cfg.Health.CacheDuration.String())

	set("telemetry.enabled", cfg.Telemetry.Enabled)
	set("telemetry.otlp_endpoint", cfg.Telemetry.OTLPEndpoint)
	set("telemetry.sample_rate", cfg.Telemetry.SampleRate)
	set("telemetry.environment", cfg.Telemetry.Environment)
}
