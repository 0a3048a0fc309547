package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	settingsName   = "appsettings"
	urlTemplateKey = "VinDecoder.ApiUrlTemplate"
)

// Config holds the runtime settings of every command
type Config struct {
	VinDecoder VinDecoderConfig
	Server     ServerConfig
	Database   DatabaseConfig
}

// VinDecoderConfig configures the decode client
type VinDecoderConfig struct {
	// ApiUrlTemplate contains a {vin} placeholder. Empty means every request fails.
	ApiUrlTemplate string        `env:"VIN_API_URL_TEMPLATE"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" envDefault:"100s"`
}

type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
}

type DatabaseConfig struct {
	URL string `env:"DATABASE_URL"`
}

// Load reads the settings file and then the environment. When path is empty,
// appsettings.json is searched for in the working directory and ./conf; a
// missing file is not an error. Environment values win over the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(settingsName)
		v.SetConfigType("json")
		v.AddConfigPath(".")
		v.AddConfigPath("./conf")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read settings file: %w", err)
		}
	}
	cfg.VinDecoder.ApiUrlTemplate = v.GetString(urlTemplateKey)

	fileTemplate := cfg.VinDecoder.ApiUrlTemplate
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.VinDecoder.ApiUrlTemplate == "" {
		cfg.VinDecoder.ApiUrlTemplate = fileTemplate
	}

	return cfg, nil
}

// HistoryEnabled reports whether lookups should be recorded
func (c *Config) HistoryEnabled() bool {
	return c.Database.URL != ""
}
