// Package config loads qgen settings from an optional YAML file, a .env
// file and QGEN_-prefixed environment variables, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable: log.level is read
// from QGEN_LOG_LEVEL.
const EnvPrefix = "QGEN"

// Config holds all qgen settings.
type Config struct {
	Log      Log      `mapstructure:"log"`
	Pipeline Pipeline `mapstructure:"pipeline"`
	Taxonomy Taxonomy `mapstructure:"taxonomy"`
}

// Log configures the slog observer.
type Log struct {
	// Format is "compact" or "json".
	Format string `mapstructure:"format"`
	// Level is TRACE, DEBUG, INFO, WARN or ERROR.
	Level string `mapstructure:"level"`
}

// Pipeline configures the recovery pipeline.
type Pipeline struct {
	// ConvertHTML turns HTML-looking fields into markdown.
	ConvertHTML bool `mapstructure:"convert_html"`
}

// Taxonomy points at an alternate grade/Bloom's table.
type Taxonomy struct {
	// File is a YAML file replacing the embedded tables; empty keeps them.
	File string `mapstructure:"file"`
}

// Load reads configuration. configFile may be empty, in which case
// .qgen.yaml is looked up in the working and home directories and a
// missing file is not an error. A .env file in the working directory is
// loaded first without overriding variables already set.
func Load(configFile string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
		v.SetConfigName(".qgen")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown log formats and levels.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "compact", "json":
	default:
		return fmt.Errorf("invalid log.format %q: want compact or json", c.Log.Format)
	}
	switch strings.ToUpper(c.Log.Level) {
	case "TRACE", "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.format", "compact")
	v.SetDefault("log.level", "info")
	v.SetDefault("pipeline.convert_html", false)
	v.SetDefault("taxonomy.file", "")
}
