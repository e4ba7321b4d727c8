package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/fgoexport/internal/atlas"
	"github.com/udisondev/fgoexport/internal/skill"
)

// EnvPrefix prefixes every environment override, e.g. FGOEXPORT_REGION.
const EnvPrefix = "FGOEXPORT_"

// Exporter holds all configuration for one pipeline run.
type Exporter struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// Source
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
	Region  string `yaml:"region" env:"REGION"`
	DataDir string `yaml:"data_dir" env:"DATA_DIR"`
	Fetch   Fetch  `yaml:"fetch" envPrefix:"FETCH_"`

	// Output
	OutputDir string `yaml:"output_dir" env:"OUTPUT_DIR"`
	Files     Files  `yaml:"files" envPrefix:"FILE_"`

	// Normalization
	Schema        atlas.Schema         `yaml:"schema" env:"SCHEMA"`
	CooldownMode  skill.CooldownMode   `yaml:"cooldown_mode" env:"COOLDOWN_MODE"`
	PlayableTypes []string             `yaml:"playable_types" env:"PLAYABLE_TYPES"`
	NameOverrides []atlas.NameOverride `yaml:"name_overrides"`

	// Optional PostgreSQL sink
	Database DatabaseConfig `yaml:"database" envPrefix:"DATABASE_"`
}

// Fetch holds download retry and cache settings.
type Fetch struct {
	Retries      uint          `yaml:"retries" env:"RETRIES"`
	RetryDelay   time.Duration `yaml:"retry_delay" env:"RETRY_DELAY"`
	MinCacheSize int64         `yaml:"min_cache_size" env:"MIN_CACHE_SIZE"` // bytes
	Timeout      time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// Files names the export documents and the output files.
type Files struct {
	ServantExport    string `yaml:"servant_export" env:"SERVANT_EXPORT"`
	MysticCodeExport string `yaml:"mystic_code_export" env:"MYSTIC_CODE_EXPORT"`
	ServantOutput    string `yaml:"servant_output" env:"SERVANT_OUTPUT"`
	MysticCodeOutput string `yaml:"mystic_code_output" env:"MYSTIC_CODE_OUTPUT"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
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

// ExportURL returns the download URL of an export file.
func (c Exporter) ExportURL(file string) string {
	return fmt.Sprintf("%s/export/%s/%s", c.BaseURL, c.Region, file)
}

// DefaultExporter returns config for the JP nice exports.
func DefaultExporter() Exporter {
	return Exporter{
		LogLevel:  "info",
		BaseURL:   "https://api.atlasacademy.io",
		Region:    "JP",
		DataDir:   "data",
		OutputDir: "out",
		Fetch: Fetch{
			Retries:      3,
			RetryDelay:   time.Second,
			MinCacheSize: 10_000,
			Timeout:      2 * time.Minute,
		},
		Files: Files{
			ServantExport:    "nice_servant.json",
			MysticCodeExport: "nice_mystic_code.json",
			ServantOutput:    "servant_data.json",
			MysticCodeOutput: "mystic_code_data.json",
		},
		Schema:        atlas.SchemaNice,
		CooldownMode:  skill.CooldownMilestone,
		PlayableTypes: []string{"heroine", "normal"},
		NameOverrides: atlas.DefaultNameOverrides(),
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "fgoexport",
			Password: "fgoexport",
			DBName:   "fgoexport",
			SSLMode:  "disable",
		},
	}
}

// LoadExporter loads config from a YAML file and applies FGOEXPORT_*
// environment overrides. If the file doesn't exist, defaults are used.
func LoadExporter(path string) (Exporter, error) {
	cfg := DefaultExporter()

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
		return cfg, fmt.Errorf("parsing env overrides: %w", err)
	}

	return cfg, nil
}

// AtlasOptions returns the entity builder options.
func (c Exporter) AtlasOptions() atlas.Options {
	return atlas.Options{
		Schema:        c.Schema,
		CooldownMode:  c.CooldownMode,
		PlayableTypes: c.PlayableTypes,
		NameOverrides: c.NameOverrides,
	}
}
