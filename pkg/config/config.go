// Package config resolves product advertising credentials from a
// configuration file and the environment.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds the account credentials and locale consumed by the client.
type Config struct {
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	AssociateTag string `mapstructure:"associate_tag"`
	Locale       string `mapstructure:"locale"`
}

// Load reads credentials from the given file, or, when path is empty, from
// `.amazon-product-api.yaml` in the working directory or the home directory.
// Environment variables prefixed with APA_ (APA_ACCESS_KEY, APA_SECRET_KEY,
// APA_ASSOCIATE_TAG, APA_LOCALE) override file values; a missing file is
// fine when the environment supplies everything.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("locale", "us")

	v.SetEnvPrefix("APA")
	v.AutomaticEnv()
	for _, key := range []string{"access_key", "secret_key", "associate_tag", "locale"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env: %w", err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(".amazon-product-api")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Locale == "" {
		return fmt.Errorf("locale is required")
	}
	if cfg.AccessKey == "" {
		return fmt.Errorf("access_key is required")
	}
	return nil
}
