package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"NovelEngine/internal/novel"
	"NovelEngine/internal/typewriter"
)

// EnvPrefix is prepended to every environment variable read into AppConfig.
const EnvPrefix = "NOVEL_"

// AppConfig is the resolved server configuration.
type AppConfig struct {
	Addr              string  `yaml:"addr" env:"ADDR"`
	SimHz             float64 `yaml:"sim_hz" env:"SIM_HZ"`
	UpdateRateHz      float64 `yaml:"update_rate_hz" env:"UPDATE_RATE_HZ"`
	RevealIntervalS   float64 `yaml:"reveal_interval_s" env:"REVEAL_INTERVAL_S"`
	DefaultPlayerName string  `yaml:"default_player_name" env:"DEFAULT_PLAYER_NAME"`
	IdleTimeoutS      float64 `yaml:"idle_timeout_s" env:"IDLE_TIMEOUT_S"`
	AssetsDir         string  `yaml:"assets_dir" env:"ASSETS_DIR"`
	StoryPath         string  `yaml:"story_path" env:"STORY_PATH"` // Empty = built-in story
	Debug             bool    `yaml:"debug" env:"DEBUG"`
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		Addr:              ":8080",
		SimHz:             novel.SimHz,
		UpdateRateHz:      novel.UpdateRateHz,
		RevealIntervalS:   typewriter.DefaultInterval,
		DefaultPlayerName: novel.DefaultPlayerName,
		IdleTimeoutS:      novel.IdleTimeoutS,
		AssetsDir:         "assets",
	}
}

// ConfigSources names where LoadAppConfig reads from. Empty paths are skipped.
type ConfigSources struct {
	FilePath string // YAML file
	EnvFile  string // dotenv file
}

func DefaultConfigSources() ConfigSources {
	return ConfigSources{
		FilePath: "configs/novel.yaml",
		EnvFile:  ".env",
	}
}

// ConfigOverrides represents optional command-line overrides.
type ConfigOverrides struct {
	Addr              *string
	SimHz             *float64
	UpdateRateHz      *float64
	RevealIntervalS   *float64
	DefaultPlayerName *string
	IdleTimeoutS      *float64
	AssetsDir         *string
	StoryPath         *string
	Debug             *bool
}

func (o ConfigOverrides) apply(base AppConfig) AppConfig {
	if o.Addr != nil {
		base.Addr = *o.Addr
	}
	if o.SimHz != nil {
		base.SimHz = *o.SimHz
	}
	if o.UpdateRateHz != nil {
		base.UpdateRateHz = *o.UpdateRateHz
	}
	if o.RevealIntervalS != nil {
		base.RevealIntervalS = *o.RevealIntervalS
	}
	if o.DefaultPlayerName != nil {
		base.DefaultPlayerName = *o.DefaultPlayerName
	}
	if o.IdleTimeoutS != nil {
		base.IdleTimeoutS = *o.IdleTimeoutS
	}
	if o.AssetsDir != nil {
		base.AssetsDir = *o.AssetsDir
	}
	if o.StoryPath != nil {
		base.StoryPath = *o.StoryPath
	}
	if o.Debug != nil {
		base.Debug = *o.Debug
	}
	return SanitizeAppConfig(base)
}

// LoadAppConfig layers defaults, the YAML file, the dotenv file, NOVEL_*
// environment variables and finally overrides. A missing file is not an error.
func LoadAppConfig(src ConfigSources, overrides ConfigOverrides) (AppConfig, error) {
	cfg, err := loadConfigFile(src.FilePath, DefaultAppConfig())
	if err != nil {
		return overrides.apply(cfg), err
	}
	if err := loadDotEnv(src.EnvFile); err != nil {
		return overrides.apply(cfg), err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return overrides.apply(cfg), fmt.Errorf("parse environment: %w", err)
	}
	return overrides.apply(cfg), nil
}

func loadConfigFile(path string, base AppConfig) (AppConfig, error) {
	if path == "" {
		return base, nil
	}
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, fmt.Errorf("read config %q: %w", cleanPath, err)
	}
	// Unmarshal over the defaults so absent keys keep them.
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parse config %q: %w", cleanPath, err)
	}
	return cfg, nil
}

// loadDotEnv exports the file's variables without replacing ones already set.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %q: %w", path, err)
	}
	return nil
}

// SanitizeAppConfig replaces unusable values with defaults and clamps rates.
func SanitizeAppConfig(cfg AppConfig) AppConfig {
	def := DefaultAppConfig()
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if !(cfg.SimHz > 0) {
		cfg.SimHz = def.SimHz
	}
	cfg.SimHz = clamp(cfg.SimHz, 1, 240)
	if !(cfg.UpdateRateHz > 0) {
		cfg.UpdateRateHz = def.UpdateRateHz
	}
	cfg.UpdateRateHz = clamp(cfg.UpdateRateHz, 1, cfg.SimHz)
	if !(cfg.RevealIntervalS > 0) {
		cfg.RevealIntervalS = def.RevealIntervalS
	}
	cfg.RevealIntervalS = clamp(cfg.RevealIntervalS, 0.005, 2)
	cfg.DefaultPlayerName = strings.TrimSpace(cfg.DefaultPlayerName)
	if cfg.DefaultPlayerName == "" {
		cfg.DefaultPlayerName = def.DefaultPlayerName
	}
	if !(cfg.IdleTimeoutS > 0) {
		cfg.IdleTimeoutS = def.IdleTimeoutS
	}
	cfg.AssetsDir = strings.TrimSpace(cfg.AssetsDir)
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = def.AssetsDir
	}
	cfg.StoryPath = strings.TrimSpace(cfg.StoryPath)
	return cfg
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
