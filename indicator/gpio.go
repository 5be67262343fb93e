// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package indicator

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// RGB is a status light made of three LEDs, each on its own GPIO pin.
//
// A channel is lit when its palette component is at least half intensity.
type RGB struct {
	pins      [3]gpio.PinOut
	activeLow bool
	color     Color
}

// NewRGB returns a light driving r, g and b. With activeLow set, a pin is
// driven low to light its LED (common anode wiring).
//
// The light is turned off.
func NewRGB(r, g, b gpio.PinOut, activeLow bool) (*RGB, error) {
	if r == nil || g == nil || b == nil {
		return nil, errors.New("indicator: missing RGB pin")
	}
	l := &RGB{pins: [3]gpio.PinOut{r, g, b}, activeLow: activeLow}
	if err := l.SetColor(Off); err != nil {
		return nil, err
	}
	return l, nil
}

// SetColor shows c.
func (l *RGB) SetColor(c Color) error {
	rgb := c.NRGBA()
	for i, v := range [3]uint8{rgb.R, rgb.G, rgb.B} {
		lit := v >= 0x80
		if err := l.pins[i].Out(gpio.Level(lit != l.activeLow)); err != nil {
			return fmt.Errorf("indicator: %s: %w", l.pins[i], err)
		}
	}
	l.color = c
	return nil
}

// Color returns the color last shown.
func (l *RGB) Color() Color {
	return l.color
}

// Halt turns the light off.
//
// Halt implements conn.Resource.
func (l *RGB) Halt() error {
	return l.SetColor(Off)
}

// String implements conn.Resource.
func (l *RGB) String() string {
	return fmt.Sprintf("RGB{%s, %s, %s}", l.pins[0], l.pins[1], l.pins[2])
}

var _ conn.Resource = &RGB{}
