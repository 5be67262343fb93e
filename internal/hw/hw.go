// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hw opens the buses and devices named by a config.Config.
package hw

import (
	"errors"
	"fmt"
	"io"

	"github.com/GermanBionicSystems/diffdrive/drive"
	"github.com/GermanBionicSystems/diffdrive/drv8830"
	"github.com/GermanBionicSystems/diffdrive/indicator"
	"github.com/GermanBionicSystems/diffdrive/internal/config"
	"github.com/GermanBionicSystems/diffdrive/psxpad"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Platform holds the opened devices.
type Platform struct {
	Pad   *psxpad.Dev
	Left  *drv8830.Dev
	Right *drv8830.Dev
	// LeftLight and RightLight are nil when no indicator is configured.
	LeftLight  drive.Indicator
	RightLight drive.Indicator

	i2c i2c.BusCloser
	spi spi.PortCloser
	// console is set for the console kind, written to out or stdout.
	console *indicator.Console
	out     io.Writer
}

// Open initializes periph and opens every device in cfg.
func Open(cfg *config.Config) (*Platform, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	p := &Platform{}
	var err error
	if p.i2c, err = i2creg.Open(cfg.I2CBus); err != nil {
		return nil, fmt.Errorf("failed to open I²C: %w", err)
	}
	if p.spi, err = spireg.Open(cfg.SPIPort); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to open SPI: %w", err)
	}
	if err := p.init(cfg); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func (p *Platform) init(cfg *config.Config) error {
	var err error
	if p.Pad, err = psxpad.NewSPI(p.spi); err != nil {
		return err
	}
	m := cfg.Motors
	if p.Left, err = drv8830.New(p.i2c, m.Left.Address, &drv8830.Opts{MaxSpeed: m.Left.MaxSpeed}); err != nil {
		return err
	}
	if p.Right, err = drv8830.New(p.i2c, m.Right.Address, &drv8830.Opts{MaxSpeed: m.Right.MaxSpeed}); err != nil {
		return err
	}

	ind := cfg.Indicators
	switch ind.Kind {
	case config.IndicatorPCA9633:
		l, err := openPCA9633(p.i2c, ind.Left)
		if err != nil {
			return err
		}
		p.LeftLight = l
		r, err := openPCA9633(p.i2c, ind.Right)
		if err != nil {
			return err
		}
		p.RightLight = r
	case config.IndicatorGPIO:
		l, err := openRGB(ind.Left)
		if err != nil {
			return err
		}
		p.LeftLight = l
		r, err := openRGB(ind.Right)
		if err != nil {
			return err
		}
		p.RightLight = r
	case config.IndicatorConsole:
		p.console = indicator.NewConsole(p.out, 2, nil)
		p.LeftLight, p.RightLight = p.console.Light(0), p.console.Light(1)
	}
	return nil
}

// Loop returns the control loop over the platform devices.
func (p *Platform) Loop(cfg *config.Config) *drive.Loop {
	return drive.New(p.Pad,
		drive.LeftSide(p.Left, p.LeftLight),
		drive.RightSide(p.Right, p.RightLight),
		&drive.Opts{
			Interval:    cfg.Loop.Interval(),
			FixedSpeed:  cfg.Loop.FixedSpeed,
			TrimInitial: cfg.Loop.TrimInitial,
		})
}

// Close halts the motors and lights and closes the buses.
func (p *Platform) Close() error {
	var errs []error
	for _, m := range []*drv8830.Dev{p.Left, p.Right} {
		if m != nil {
			errs = append(errs, m.Halt())
		}
	}
	for _, l := range []drive.Indicator{p.LeftLight, p.RightLight} {
		if l != nil {
			errs = append(errs, l.SetColor(indicator.Off))
		}
	}
	if p.console != nil {
		errs = append(errs, p.console.Halt())
	}
	if p.spi != nil {
		errs = append(errs, p.spi.Close())
	}
	if p.i2c != nil {
		errs = append(errs, p.i2c.Close())
	}
	return errors.Join(errs...)
}

func openPCA9633(bus i2c.Bus, l config.LightConfig) (*indicator.PCA9633, error) {
	opts := indicator.PCA9633Opts{TotemPole: l.TotemPole}
	copy(opts.Channels[:], l.Channels)
	return indicator.NewPCA9633(bus, l.Address, &opts)
}

func openRGB(l config.LightConfig) (*indicator.RGB, error) {
	if len(l.Pins) != 3 {
		return nil, fmt.Errorf("need 3 pins, got %d", len(l.Pins))
	}
	var pins [3]gpio.PinOut
	for i, name := range l.Pins {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("unknown pin %q", name)
		}
		pins[i] = p
	}
	return indicator.NewRGB(pins[0], pins[1], pins[2], l.ActiveLow)
}
