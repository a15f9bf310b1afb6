// Package config loads the YAML configuration shared by the views commands.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/views/deferred"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the root of the configuration file.
type Config struct {
	Profiles    Server   `yaml:"profiles"`
	Echo        Server   `yaml:"echo"`
	Deferred    Deferred `yaml:"deferred"`
	Limits      Limits   `yaml:"limits"`
	MetricsAddr string   `yaml:"metricsAddr"`
}

// Server configures one HTTP server.
type Server struct {
	Addr  string `yaml:"addr"`
	Debug bool   `yaml:"debug"`
}

// Deferred configures the deferred value producer.
type Deferred struct {
	Delay time.Duration `yaml:"delay"`
	Value int           `yaml:"value"`
}

// Limits configures request admission. A zero Rate disables rate limiting.
type Limits struct {
	BodyBytes int64   `yaml:"bodyBytes"`
	Rate      float64 `yaml:"rate"`
	Burst     int     `yaml:"burst"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Profiles: Server{Addr: ":8000"},
		Echo:     Server{Addr: ":9999", Debug: true},
		Deferred: Deferred{Delay: deferred.DefaultDelay, Value: deferred.DefaultValue},
		Limits:   Limits{BodyBytes: 100 << 20},
	}
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values no component can honour.
func (c Config) Validate() error {
	var errs []error

	if c.Profiles.Addr == "" {
		errs = append(errs, fmt.Errorf("%w: profiles.addr is empty", ErrInvalid))
	}
	if c.Echo.Addr == "" {
		errs = append(errs, fmt.Errorf("%w: echo.addr is empty", ErrInvalid))
	}
	if c.Deferred.Delay < 0 {
		errs = append(errs, fmt.Errorf("%w: deferred.delay %s is negative", ErrInvalid, c.Deferred.Delay))
	}
	if c.Limits.BodyBytes < 0 {
		errs = append(errs, fmt.Errorf("%w: limits.bodyBytes %d is negative", ErrInvalid, c.Limits.BodyBytes))
	}
	if c.Limits.Rate < 0 {
		errs = append(errs, fmt.Errorf("%w: limits.rate %g is negative", ErrInvalid, c.Limits.Rate))
	}
	if c.Limits.Rate > 0 && c.Limits.Burst < 1 {
		errs = append(errs, fmt.Errorf("%w: limits.burst must be at least 1 when limits.rate is set", ErrInvalid))
	}

	return errors.Join(errs...)
}
