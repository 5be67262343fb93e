// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package indicator

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// ledMode is the two bit output state of one PCA9633 channel.
type ledMode byte

const (
	ledOff ledMode = iota
	ledOn
	ledPWM
)

const (
	// Register offsets from the datasheet.
	regMode1  byte = 0x00
	regMode2  byte = 0x01
	regPWM0   byte = 0x02
	regLEDOut byte = 0x08

	// Oscillator on, responds to the All Call address.
	mode1Default byte = 0x81
	// Outputs change on STOP, open-drain.
	mode2Default byte = 0x05
	mode2Totem   byte = 0x08
	mode2Invert  byte = 0x10
)

// PCA9633Opts describes how the RGB LED is wired to the controller.
type PCA9633Opts struct {
	// Channels lists the output channel (0-3) driving red, green and blue.
	Channels [3]int
	// TotemPole selects totem pole outputs instead of open-drain.
	TotemPole bool
	// Invert inverts the outputs, for LEDs driven through a transistor.
	Invert bool
}

// DefaultPCA9633Opts drives red, green and blue from channels 0, 1 and 2
// with open-drain outputs.
var DefaultPCA9633Opts = PCA9633Opts{Channels: [3]int{0, 1, 2}}

// PCA9633 is an RGB status light on an NXP PCA9633 four channel LED PWM
// controller.
//
// Datasheet: https://www.nxp.com/docs/en/data-sheet/PCA9633.pdf
type PCA9633 struct {
	d        *i2c.Dev
	channels [3]int
	modes    [4]ledMode
	color    Color
}

// NewPCA9633 initializes the controller at addr and turns the light off.
func NewPCA9633(bus i2c.Bus, addr uint16, opts *PCA9633Opts) (*PCA9633, error) {
	if opts == nil {
		opts = &DefaultPCA9633Opts
	}
	seen := 0
	for _, ch := range opts.Channels {
		if ch < 0 || ch > 3 || seen&(1<<ch) != 0 {
			return nil, errors.New("indicator: invalid PCA9633 channel map")
		}
		seen |= 1 << ch
	}
	mode2 := mode2Default
	if opts.TotemPole {
		mode2 |= mode2Totem
	}
	if opts.Invert {
		mode2 |= mode2Invert
	}
	p := &PCA9633{d: &i2c.Dev{Bus: bus, Addr: addr}, channels: opts.Channels}
	// Bit 4 of MODE1 must be cleared to start the PWM oscillator.
	if err := p.d.Tx([]byte{regMode1, mode1Default}, nil); err != nil {
		return nil, wrapPCA(err)
	}
	if err := p.d.Tx([]byte{regMode2, mode2}, nil); err != nil {
		return nil, wrapPCA(err)
	}
	if err := p.d.Tx([]byte{regLEDOut, 0}, nil); err != nil {
		return nil, wrapPCA(err)
	}
	return p, nil
}

// SetColor shows c.
//
// Channels at zero intensity are switched off and channels at full intensity
// are switched fully on, without touching their PWM register.
func (p *PCA9633) SetColor(c Color) error {
	rgb := c.NRGBA()
	levels := [3]uint8{rgb.R, rgb.G, rgb.B}
	modes := p.modes
	for i, level := range levels {
		ch := p.channels[i]
		switch level {
		case 0:
			modes[ch] = ledOff
		case 0xFF:
			modes[ch] = ledOn
		default:
			modes[ch] = ledPWM
			if err := p.d.Tx([]byte{regPWM0 + byte(ch), level}, nil); err != nil {
				return wrapPCA(err)
			}
		}
	}
	if err := p.setModes(modes); err != nil {
		return err
	}
	p.color = c
	return nil
}

// Color returns the color last shown.
func (p *PCA9633) Color() Color {
	return p.color
}

// Halt turns the light off.
//
// Halt implements conn.Resource.
func (p *PCA9633) Halt() error {
	return p.SetColor(Off)
}

// String implements conn.Resource.
func (p *PCA9633) String() string {
	return fmt.Sprintf("PCA9633{%#x}", p.d.Addr)
}

func (p *PCA9633) setModes(modes [4]ledMode) error {
	if modes == p.modes {
		return nil
	}
	var v byte
	for i, m := range modes {
		v |= byte(m) << (i * 2)
	}
	if err := p.d.Tx([]byte{regLEDOut, v}, nil); err != nil {
		return wrapPCA(err)
	}
	p.modes = modes
	return nil
}

func wrapPCA(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("indicator: pca9633: %w", err)
}

var _ conn.Resource = &PCA9633{}
