package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/aminus/internal/artifact"
	"github.com/udisondev/aminus/internal/combat"
	"github.com/udisondev/aminus/internal/model"
)

// Data sources for character and weapon base stats.
const (
	SourceEmbedded = "embedded"
	SourceRemote   = "remote"
	SourcePostgres = "postgres"
)

// ErrInvalid wraps every configuration validation failure.
var ErrInvalid = fmt.Errorf("%w: invalid config", model.ErrValidation)

// Config holds all configuration for the aminus CLI.
type Config struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// Source picks the base stat lookup: embedded, remote or postgres.
	Source string `yaml:"source" env:"SOURCE"`

	Remote    RemoteConfig    `yaml:"remote" envPrefix:"REMOTE_"`
	Database  DatabaseConfig  `yaml:"database" envPrefix:"DB_"`
	Target    TargetConfig    `yaml:"target" envPrefix:"TARGET_"`
	Optimizer OptimizerConfig `yaml:"optimizer" envPrefix:"OPTIMIZER_"`
}

// RemoteConfig points at an HTTP API serving characters.json and weapons.json.
type RemoteConfig struct {
	BaseURL string        `yaml:"base_url" env:"BASE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// TargetConfig describes the enemy damage is calculated against.
type TargetConfig struct {
	CharacterLevel  int     `yaml:"character_level" env:"CHARACTER_LEVEL"`
	EnemyLevel      int     `yaml:"enemy_level" env:"ENEMY_LEVEL"`
	EnemyResistance float32 `yaml:"enemy_resistance" env:"ENEMY_RESISTANCE"`
}

// Target converts the section into a combat target.
func (t TargetConfig) Target() combat.Target {
	return combat.Target{
		CharacterLevel:  t.CharacterLevel,
		EnemyLevel:      t.EnemyLevel,
		EnemyResistance: t.EnemyResistance,
	}
}

// OptimizerConfig tunes substat allocation.
type OptimizerConfig struct {
	// Quality of every fluid roll: LOW, MID, HIGH, MAX or AVG.
	Quality string `yaml:"quality" env:"QUALITY"`
	// ERRequirement is the total energy recharge to reach before rolling
	// damage stats (1.0 = 100%).
	ERRequirement float32 `yaml:"er_requirement" env:"ER_REQUIREMENT"`
}

// RollQuality parses Quality.
func (o OptimizerConfig) RollQuality() (artifact.RollQuality, error) {
	return artifact.ParseQuality(o.Quality)
}

// Default returns Config with sensible defaults.
func Default() Config {
	target := combat.DefaultTarget()
	return Config{
		LogLevel: "info",
		Source:   SourceEmbedded,
		Remote: RemoteConfig{
			BaseURL: "https://www.irminsul.moe/api",
			Timeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "aminus",
			Password: "aminus",
			DBName:   "aminus",
			SSLMode:  "disable",
		},
		Target: TargetConfig{
			CharacterLevel:  target.CharacterLevel,
			EnemyLevel:      target.EnemyLevel,
			EnemyResistance: target.EnemyResistance,
		},
		Optimizer: OptimizerConfig{
			Quality:       artifact.Avg.String(),
			ERRequirement: 1.0,
		},
	}
}

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AMINUS_"

// Load reads config from a YAML file and applies AMINUS_* environment
// overrides. If the file doesn't exist, overrides apply to the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Source {
	case SourceEmbedded, SourceRemote, SourcePostgres:
	default:
		return fmt.Errorf("%w: source %q", ErrInvalid, c.Source)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Source == SourceRemote && c.Remote.BaseURL == "" {
		return fmt.Errorf("%w: remote.base_url is required for the remote source", ErrInvalid)
	}
	t := c.Target
	if t.CharacterLevel < combat.MinCharacterLevel || t.CharacterLevel > combat.MaxCharacterLevel {
		return fmt.Errorf("%w: target.character_level %d", ErrInvalid, t.CharacterLevel)
	}
	if t.EnemyLevel < combat.MinEnemyLevel {
		return fmt.Errorf("%w: target.enemy_level %d", ErrInvalid, t.EnemyLevel)
	}
	if _, err := c.Optimizer.RollQuality(); err != nil {
		return fmt.Errorf("%w: optimizer.quality: %w", ErrInvalid, err)
	}
	if c.Optimizer.ERRequirement < 0 {
		return fmt.Errorf("%w: optimizer.er_requirement %g", ErrInvalid, c.Optimizer.ERRequirement)
	}
	return nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}
