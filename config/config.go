// Package config loads pipeline configuration from YAML files and
// DIARIZE_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Recognizer configures the long-running speech recognition client.
type Recognizer struct {
	URL             string        `mapstructure:"url"`
	LanguageCode    string        `mapstructure:"language_code"`
	MinSpeakerCount int           `mapstructure:"min_speaker_count"`
	MaxSpeakerCount int           `mapstructure:"max_speaker_count"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
}

// Storage configures the temporary object store client.
type Storage struct {
	URL string `mapstructure:"url"`
}

// Cache configures the on-disk recognition response cache.
type Cache struct {
	Dir     string `mapstructure:"dir"`
	Enabled bool   `mapstructure:"enabled"`
}

// Transcript configures the segmentation and refinement core.
type Transcript struct {
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
	PolicyFile          string  `mapstructure:"policy_file"`
}

type Root struct {
	LogLevel   string     `mapstructure:"log_level"`
	OutputDir  string     `mapstructure:"output_dir"`
	Recognizer Recognizer `mapstructure:"recognizer"`
	Storage    Storage    `mapstructure:"storage"`
	Cache      Cache      `mapstructure:"cache"`
	Transcript Transcript `mapstructure:"transcript"`
}

// Load reads configuration from path when given, otherwise from
// config/<CONFIG_ENV>/config.yaml or ./config.yaml. A missing file in
// search mode falls back to defaults; an explicit path must exist.
func Load(path string) (*Root, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("DIARIZE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		env := os.Getenv("CONFIG_ENV")
		if env == "" {
			env = "dev"
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join("config", env))
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("output_dir", "output")
	v.SetDefault("recognizer.url", "http://localhost:8085")
	v.SetDefault("recognizer.language_code", "en-US")
	v.SetDefault("recognizer.min_speaker_count", 2)
	v.SetDefault("recognizer.max_speaker_count", 10)
	v.SetDefault("recognizer.poll_interval", 5*time.Second)
	v.SetDefault("storage.url", "http://localhost:8086")
	v.SetDefault("cache.dir", "cache")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("transcript.confidence_threshold", 0.8)
	v.SetDefault("transcript.policy_file", "")
}
