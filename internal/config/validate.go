// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"fmt"
)

// Validate checks configuration correctness. It does not mutate cfg.
func Validate(cfg *Config) error {
	motors := []struct {
		name string
		m    MotorConfig
	}{
		{"left", cfg.Motors.Left},
		{"right", cfg.Motors.Right},
	}
	used := map[uint16]string{}
	for _, m := range motors {
		if m.m.Address < 0x60 || m.m.Address > 0x68 {
			return fmt.Errorf("motors.%s: address %#x outside 0x60-0x68", m.name, m.m.Address)
		}
		if m.m.MaxSpeed > 0x3F {
			return fmt.Errorf("motors.%s: max_speed %d above 63", m.name, m.m.MaxSpeed)
		}
		if other, ok := used[m.m.Address]; ok {
			return fmt.Errorf("motors.%s: address %#x already used by motors.%s", m.name, m.m.Address, other)
		}
		used[m.m.Address] = "motors." + m.name
	}

	if cfg.Loop.IntervalMs <= 0 {
		return fmt.Errorf("loop: interval_ms must be positive, got %d", cfg.Loop.IntervalMs)
	}
	if cfg.Loop.FixedSpeed < 1 || cfg.Loop.FixedSpeed > 0x3F {
		return fmt.Errorf("loop: fixed_speed %d outside 1-63", cfg.Loop.FixedSpeed)
	}
	if cfg.Loop.TrimInitial < 10 || cfg.Loop.TrimInitial > 100 {
		return fmt.Errorf("loop: trim_initial %d outside 10-100", cfg.Loop.TrimInitial)
	}

	lights := []struct {
		name string
		l    LightConfig
	}{
		{"left", cfg.Indicators.Left},
		{"right", cfg.Indicators.Right},
	}
	switch cfg.Indicators.Kind {
	case IndicatorNone, IndicatorConsole:
	case IndicatorPCA9633:
		for _, l := range lights {
			if l.l.Address == 0 || l.l.Address > 0x7F {
				return fmt.Errorf("indicators.%s: invalid address %#x", l.name, l.l.Address)
			}
			if other, ok := used[l.l.Address]; ok {
				return fmt.Errorf("indicators.%s: address %#x already used by %s", l.name, l.l.Address, other)
			}
			used[l.l.Address] = "indicators." + l.name
			if len(l.l.Channels) != 3 {
				return fmt.Errorf("indicators.%s: channels needs 3 entries, got %d", l.name, len(l.l.Channels))
			}
			seen := map[int]bool{}
			for _, ch := range l.l.Channels {
				if ch < 0 || ch > 3 || seen[ch] {
					return fmt.Errorf("indicators.%s: invalid channel map %v", l.name, l.l.Channels)
				}
				seen[ch] = true
			}
		}
	case IndicatorGPIO:
		for _, l := range lights {
			if len(l.l.Pins) != 3 {
				return fmt.Errorf("indicators.%s: pins needs 3 entries, got %d", l.name, len(l.l.Pins))
			}
			for i, p := range l.l.Pins {
				if p == "" {
					return fmt.Errorf("indicators.%s: pin %d not set", l.name, i)
				}
			}
		}
	default:
		return fmt.Errorf("indicators: unknown kind %q", cfg.Indicators.Kind)
	}
	return nil
}
