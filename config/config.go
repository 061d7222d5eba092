/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads dxerrors settings from the environment.
//
// Values are read from variables with the prefix "DX_", for example:
//
//	DX_LOG_LEVEL=debug DX_INTERNAL_SUBSCRIPTION=true DX_RETRY_MAX_ATTEMPTS=3
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix.
const Prefix = "DX"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("dxerrors: invalid config")

// Retry groups the retry policy tunables. Defaults follow the database
// SDK's retry options: 9 attempts within a 30s budget.
type Retry struct {
	MaxAttempts     int           `envconfig:"MAX_ATTEMPTS"     default:"9"`
	InitialInterval time.Duration `envconfig:"INITIAL_INTERVAL" default:"100ms"`
	MaxInterval     time.Duration `envconfig:"MAX_INTERVAL"     default:"5s"`
	MaxWait         time.Duration `envconfig:"MAX_WAIT"         default:"30s"`
}

// Config holds all settings.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// InternalSubscription feeds present.Context.
	InternalSubscription bool `envconfig:"INTERNAL_SUBSCRIPTION" default:"false"`

	// ConsoleMaxEntries bounds the notification console.
	ConsoleMaxEntries int `envconfig:"CONSOLE_MAX_ENTRIES" default:"500"`

	// MetricsNamespace prefixes every metric name.
	MetricsNamespace string `envconfig:"METRICS_NAMESPACE" default:"dataexplorer"`

	Retry Retry `envconfig:"RETRY"`
}

// Load populates Config from environment variables (prefix DX_) and
// validates it.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c Config) Validate() error {
	switch {
	case c.ConsoleMaxEntries <= 0:
		return fmt.Errorf("%w: console max entries must be positive, got %d", ErrInvalidConfig, c.ConsoleMaxEntries)
	case c.Retry.MaxAttempts <= 0:
		return fmt.Errorf("%w: retry max attempts must be positive, got %d", ErrInvalidConfig, c.Retry.MaxAttempts)
	case c.Retry.InitialInterval < 0 || c.Retry.MaxInterval < 0 || c.Retry.MaxWait < 0:
		return fmt.Errorf("%w: retry durations must not be negative", ErrInvalidConfig)
	case c.Retry.MaxInterval > 0 && c.Retry.InitialInterval > c.Retry.MaxInterval:
		return fmt.Errorf("%w: retry initial interval %s exceeds max interval %s", ErrInvalidConfig, c.Retry.InitialInterval, c.Retry.MaxInterval)
	}
	return nil
}
