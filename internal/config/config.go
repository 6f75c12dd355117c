// Package config loads casepairs settings from defaults, an optional YAML
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raphaelgruber/casepairs/internal/collector"
	"github.com/raphaelgruber/casepairs/internal/writer"
)

// Environment variable names.
const (
	EnvConfigFile   = "CASEPAIRS_CONFIG"
	EnvDatasetRoot  = "CASEPAIRS_DATASET_ROOT"
	EnvOutputName   = "CASEPAIRS_OUTPUT_NAME"
	EnvJudgementDir = "CASEPAIRS_JUDGEMENT_DIR"
	EnvSummaryDir   = "CASEPAIRS_SUMMARY_DIR"
	EnvExtension    = "CASEPAIRS_EXTENSION"
	EnvLogFile      = "CASEPAIRS_LOG_FILE"
	EnvLogLevel     = "CASEPAIRS_LOG_LEVEL"
)

// ErrNoDatasetRoot is returned by Validate when no root was configured.
var ErrNoDatasetRoot = errors.New("dataset root is not set")

// Config holds all configuration values.
type Config struct {
	// Dataset layout
	DatasetRoot  string `yaml:"dataset_root"`
	OutputName   string `yaml:"output_name"`
	JudgementDir string `yaml:"judgement_dir"`
	SummaryDir   string `yaml:"summary_dir"`
	Extension    string `yaml:"extension"`

	// Logging
	LogFile  string     `yaml:"log_file"`
	LogLevel slog.Level `yaml:"-"`

	// Raw level name as read from file or env; parsed into LogLevel.
	LogLevelName string `yaml:"log_level"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		OutputName:   writer.DefaultFileName,
		JudgementDir: collector.DefaultJudgementDir,
		SummaryDir:   collector.DefaultSummaryDir,
		Extension:    collector.DefaultExtension,
		LogLevelName: "INFO",
		LogLevel:     slog.LevelInfo,
	}
}

// Load builds the configuration: defaults, then the YAML file (configFile, or
// CASEPAIRS_CONFIG when empty), then environment variables.
func Load(configFile string) (Config, error) {
	cfg := Defaults()

	if configFile == "" {
		configFile = os.Getenv(EnvConfigFile)
	}
	if configFile != "" {
		if err := cfg.mergeFile(configFile); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()
	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)
	return cfg, nil
}

// mergeFile overlays the non-empty values of a YAML file onto cfg.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	c.DatasetRoot = pick(file.DatasetRoot, c.DatasetRoot)
	c.OutputName = pick(file.OutputName, c.OutputName)
	c.JudgementDir = pick(file.JudgementDir, c.JudgementDir)
	c.SummaryDir = pick(file.SummaryDir, c.SummaryDir)
	c.Extension = pick(file.Extension, c.Extension)
	c.LogFile = pick(file.LogFile, c.LogFile)
	c.LogLevelName = pick(file.LogLevelName, c.LogLevelName)
	return nil
}

func (c *Config) applyEnv() {
	c.DatasetRoot = getEnv(EnvDatasetRoot, c.DatasetRoot)
	c.OutputName = getEnv(EnvOutputName, c.OutputName)
	c.JudgementDir = getEnv(EnvJudgementDir, c.JudgementDir)
	c.SummaryDir = getEnv(EnvSummaryDir, c.SummaryDir)
	c.Extension = getEnv(EnvExtension, c.Extension)
	c.LogFile = getEnv(EnvLogFile, c.LogFile)
	c.LogLevelName = getEnv(EnvLogLevel, c.LogLevelName)
}

// Validate checks that the values needed for a run are usable.
func (c Config) Validate() error {
	if c.DatasetRoot == "" {
		return ErrNoDatasetRoot
	}
	if c.OutputName == "" || strings.ContainsAny(c.OutputName, `/\`) {
		return fmt.Errorf("invalid output name %q: must be a plain file name", c.OutputName)
	}
	for _, name := range []string{c.JudgementDir, c.SummaryDir} {
		if name == "" || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("invalid directory name %q", name)
		}
	}
	if c.JudgementDir == c.SummaryDir {
		return fmt.Errorf("judgement and summary directories must differ, both are %q", c.JudgementDir)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func pick(val, fallback string) string {
	if val != "" {
		return val
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
