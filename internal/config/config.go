// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config loads the startup configuration of the drive daemon and
// the bench shell.
//
// Values come from Default, then the optional YAML file, then environment
// variables. The configuration is read-only: nothing is ever written back.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// Indicator kinds.
const (
	IndicatorNone    = "none"
	IndicatorPCA9633 = "pca9633"
	IndicatorGPIO    = "gpio"
	IndicatorConsole = "console"
)

// Config is the whole configuration.
type Config struct {
	// I2CBus is the periph name of the motor bus, empty for the first one.
	I2CBus string `yaml:"i2c_bus" env:"DIFFDRIVE_I2C_BUS"`
	// SPIPort is the periph name of the pad port, empty for the first one.
	SPIPort string `yaml:"spi_port" env:"DIFFDRIVE_SPI_PORT"`

	Motors     MotorsConfig    `yaml:"motors"`
	Loop       LoopConfig      `yaml:"loop"`
	Indicators IndicatorConfig `yaml:"indicators"`
}

// MotorsConfig configures both motor drivers.
type MotorsConfig struct {
	Left  MotorConfig `yaml:"left"`
	Right MotorConfig `yaml:"right"`
}

// MotorConfig configures one DRV8830.
type MotorConfig struct {
	Address  uint16 `yaml:"address"`
	MaxSpeed uint8  `yaml:"max_speed"`
}

// LoopConfig configures the control loop.
type LoopConfig struct {
	IntervalMs  int `yaml:"interval_ms" env:"DIFFDRIVE_INTERVAL_MS"`
	FixedSpeed  int `yaml:"fixed_speed"`
	TrimInitial int `yaml:"trim_initial"`
}

// Interval returns IntervalMs as a duration.
func (l LoopConfig) Interval() time.Duration {
	return time.Duration(l.IntervalMs) * time.Millisecond
}

// IndicatorConfig selects and configures the status lights.
type IndicatorConfig struct {
	Kind  string      `yaml:"kind" env:"DIFFDRIVE_INDICATOR"`
	Left  LightConfig `yaml:"left"`
	Right LightConfig `yaml:"right"`
}

// LightConfig configures one status light. Address and Channels are used by
// the pca9633 kind, Pins and ActiveLow by the gpio kind.
type LightConfig struct {
	Address   uint16   `yaml:"address"`
	Channels  []int    `yaml:"channels,flow"`
	TotemPole bool     `yaml:"totem_pole"`
	Pins      []string `yaml:"pins,flow"`
	ActiveLow bool     `yaml:"active_low"`
}

// Default returns the configuration matching the reference wiring: left
// driver with A1/A0 low, right driver with A1 high and A0 low, a 100ms loop
// and no status lights.
func Default() *Config {
	return &Config{
		Motors: MotorsConfig{
			Left:  MotorConfig{Address: 0x60, MaxSpeed: 0x3F},
			Right: MotorConfig{Address: 0x66, MaxSpeed: 0x3F},
		},
		Loop: LoopConfig{
			IntervalMs:  100,
			FixedSpeed:  40,
			TrimInitial: 50,
		},
		Indicators: IndicatorConfig{
			Kind:  IndicatorNone,
			Left:  LightConfig{Address: 0x10, Channels: []int{0, 1, 2}},
			Right: LightConfig{Address: 0x11, Channels: []int{0, 1, 2}},
		},
	}
}

// Load returns the configuration read from path, with environment
// overrides applied. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := Decode(f, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	return cfg, nil
}

// Decode reads YAML from r into cfg. Keys absent from the document keep
// their value in cfg; unknown keys are rejected.
func Decode(r io.Reader, cfg *Config) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
