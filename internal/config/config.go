// Copyright 2025 ccxguard contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads ccxguardctl's configuration from a file and the
// environment, the way the CRM service's pkg/config package does.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds ccxguardctl's configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	// Checker names the Checker variant ccxguardctl evaluates inquiries
	// with: "exact", "fuzzy", "regex" or "rules".
	Checker string       `mapstructure:"checker"`
	Regex   RegexConfig  `mapstructure:"regex"`
	Logger  LoggerConfig `mapstructure:"logger"`
}

// StorageConfig selects and configures a Storage backend.
type StorageConfig struct {
	// Backend is "memory" or "mongo".
	Backend string      `mapstructure:"backend"`
	Mongo   MongoConfig `mapstructure:"mongo"`
}

// MongoConfig configures the Mongo storage backend.
type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	Collection     string        `mapstructure:"collection"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// RegexConfig configures RegexChecker.
type RegexConfig struct {
	StartTag  string `mapstructure:"start_tag"`
	EndTag    string `mapstructure:"end_tag"`
	CacheSize int    `mapstructure:"cache_size"`
}

// LoggerConfig configures the CLI's log output.
type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from configPath (if non-empty; otherwise
// ccxguardctl.yaml in . or $HOME/.ccxguard), environment variables prefixed
// CCXGUARD_, and defaults. Environment variables override the file, and the
// file overrides the defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("ccxguardctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.ccxguard")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("ccxguard")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", "memory")
	v.SetDefault("checker", "regex")
	v.SetDefault("storage.mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("storage.mongo.database", "ccxguard")
	v.SetDefault("storage.mongo.collection", "vakt_policies")
	v.SetDefault("storage.mongo.connect_timeout", 10*time.Second)

	v.SetDefault("regex.start_tag", "<")
	v.SetDefault("regex.end_tag", ">")
	v.SetDefault("regex.cache_size", 1024)

	v.SetDefault("logger.level", "info")
}
