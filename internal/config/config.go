package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration. Values load from
// LOANLENS_* environment variables first; a YAML file, when given, then
// overrides whatever keys it contains. The credentials file of the
// original deployment (host/database/user/password/port) maps onto the
// database section.
type Config struct {
	Database DatabaseConfig `yaml:"database" envconfig:"DATABASE"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// DatabaseConfig holds the relational source connection parameters.
type DatabaseConfig struct {
	Driver   string `yaml:"driver" envconfig:"DRIVER" default:"postgres" validate:"oneof=postgres sqlite"`
	Host     string `yaml:"host" envconfig:"HOST"`
	Database string `yaml:"database" envconfig:"DATABASE"`
	User     string `yaml:"user" envconfig:"USER"`
	Password string `yaml:"password" envconfig:"PASSWORD"`
	Port     int    `yaml:"port" envconfig:"PORT" default:"5432" validate:"gte=0,lte=65535"`
	Table    string `yaml:"table" envconfig:"TABLE" default:"loan_payments"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/loanlens.log"`
}

// PathsConfig holds the output directories the batch tools write into.
type PathsConfig struct {
	DataDir  string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	PlotsDir string `yaml:"plots_dir" envconfig:"PLOTS_DIR" default:"plots"`
}

var validate = validator.New()

// Load builds the configuration from environment variables and, when file
// is non-empty and exists, the YAML file on top. The result is validated
// before it is returned.
func Load(file string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("LOANLENS", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if file != "" {
		if _, err := os.Stat(file); err == nil {
			if err := loadFile(file, &cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config file: %w", err)
		}
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func loadFile(file string, cfg *Config) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", file, err)
	}
	return nil
}

// EnsureDirectories creates the output directories the tools write into,
// including the log file's directory.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Paths.DataDir,
		c.Paths.PlotsDir,
		filepath.Dir(c.Logging.FilePath),
	}
	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DataPath joins a filename onto the data directory.
func (c *Config) DataPath(filename string) string {
	return filepath.Join(c.Paths.DataDir, filename)
}

// PlotPath joins a filename onto the plots directory.
func (c *Config) PlotPath(filename string) string {
	return filepath.Join(c.Paths.PlotsDir, filename)
}
