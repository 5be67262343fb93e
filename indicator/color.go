// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package indicator

import (
	"fmt"
	"image/color"
)

// Color is one of the discrete status colors.
type Color uint8

const (
	// Off means the motor is stopped.
	Off Color = iota
	// Forward means the motor is driven forward.
	Forward
	// Backward means the motor is driven in reverse.
	Backward
	// Brake means the brake override is held.
	Brake
)

// palette maps each Color to the RGB value shown by the light.
var palette = [...]color.NRGBA{
	Off:      {0x00, 0x00, 0x00, 0xFF},
	Forward:  {0x00, 0xFF, 0x00, 0xFF},
	Backward: {0x00, 0x00, 0xFF, 0xFF},
	Brake:    {0xFF, 0x00, 0x00, 0xFF},
}

// NRGBA returns the light color. Unknown values are shown as Off.
func (c Color) NRGBA() color.NRGBA {
	if int(c) >= len(palette) {
		return palette[Off]
	}
	return palette[c]
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

func (c Color) String() string {
	switch c {
	case Off:
		return "Off"
	case Forward:
		return "Forward"
	case Backward:
		return "Backward"
	case Brake:
		return "Brake"
	default:
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
}

var _ color.Color = Off
