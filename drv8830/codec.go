// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package drv8830

import (
	"fmt"
	"math"
)

// Direction is the H-bridge state stored in the two low bits of the control
// register.
type Direction byte

const (
	// Coast leaves both bridge outputs in high impedance.
	Coast Direction = 0
	// Forward drives OUT1 high and OUT2 low.
	Forward Direction = 1
	// Reverse drives OUT1 low and OUT2 high.
	Reverse Direction = 2
	// Brake shorts the motor terminals.
	Brake Direction = 3
)

const (
	// MaxMagnitude is the largest output voltage setting accepted by the
	// driver.
	MaxMagnitude uint8 = 0x3F

	directionMask byte = 0x03
	magnitudeMask      = 0x3F
)

func (d Direction) String() string {
	switch d {
	case Coast:
		return "Coast"
	case Forward:
		return "Forward"
	case Reverse:
		return "Reverse"
	case Brake:
		return "Brake"
	default:
		return fmt.Sprintf("Direction(%d)", byte(d))
	}
}

// Command is one value of the control register.
//
// Magnitude is meaningless when Direction is Coast or Brake.
type Command struct {
	Direction Direction
	Magnitude uint8
}

// Encode packs the command into a control register byte. Magnitude is
// silently truncated to 6 bits.
func (c Command) Encode() byte {
	return (c.Magnitude&magnitudeMask)<<2 | byte(c.Direction)&directionMask
}

// Speed returns the signed speed represented by the command.
func (c Command) Speed() int {
	switch c.Direction {
	case Forward:
		return int(c.Magnitude)
	case Reverse:
		return -int(c.Magnitude)
	default:
		return 0
	}
}

func (c Command) String() string {
	return fmt.Sprintf("%s(%d)", c.Direction, c.Magnitude)
}

// DecodeCommand unpacks a control register byte.
func DecodeCommand(b byte) Command {
	return Command{Direction: Direction(b & directionMask), Magnitude: b >> 2}
}

// SpeedCommand converts a signed speed into a command.
//
// The sign selects the direction and zero means Coast. The magnitude is the
// low 6 bits of |speed|, then clamped to limit.
func SpeedCommand(speed int, limit uint8) Command {
	var c Command
	switch {
	case speed > 0:
		c.Direction = Forward
		c.Magnitude = uint8(speed & magnitudeMask)
	case speed < 0:
		c.Direction = Reverse
		c.Magnitude = uint8(-speed & magnitudeMask)
	default:
		return c
	}
	if limit > MaxMagnitude {
		limit = MaxMagnitude
	}
	if c.Magnitude > limit {
		c.Magnitude = limit
	}
	return c
}

// EncodeSpeed returns the control register byte for a signed speed limited
// to limit.
func EncodeSpeed(speed int, limit uint8) byte {
	return SpeedCommand(speed, limit).Encode()
}

// DecodeSpeed returns the signed speed held in a control register byte.
// Coast and Brake decode to 0.
func DecodeSpeed(b byte) int {
	return DecodeCommand(b).Speed()
}

// EncodeBrake returns the control register byte that brakes the motor.
func EncodeBrake() byte {
	return Command{Direction: Brake}.Encode()
}

// RateToSpeed scales a rate in percent, clamped to [-100, 100], to a signed
// speed in [-limit, limit], rounding to the nearest step.
func RateToSpeed(rate int, limit uint8) int {
	if rate > 100 {
		rate = 100
	} else if rate < -100 {
		rate = -100
	}
	return int(math.Round(float64(limit) * float64(rate) / 100))
}
