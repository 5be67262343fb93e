// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package drive

import (
	"testing"

	"github.com/GermanBionicSystems/diffdrive/drv8830"
	"github.com/GermanBionicSystems/diffdrive/indicator"
	"github.com/GermanBionicSystems/diffdrive/psxpad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/spi/spitest"
)

var probe = []byte{0x80, 0x42, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

// hardware wires the loop to the real drivers on recorded buses.
type hardware struct {
	spi    *spitest.Playback
	i2c    *i2ctest.Playback
	lPins  [3]*gpiotest.Pin
	loop   *Loop
	lLight *indicator.RGB
}

func newHardware(t *testing.T, frames []conntest.IO, writes []i2ctest.IO) *hardware {
	t.Helper()
	h := &hardware{
		spi: &spitest.Playback{Playback: conntest.Playback{Ops: frames, DontPanic: true}},
		i2c: &i2ctest.Playback{Ops: writes, DontPanic: true},
	}
	pad, err := psxpad.NewSPI(h.spi)
	require.NoError(t, err)
	left, err := drv8830.New(h.i2c, drv8830.Addr00, nil)
	require.NoError(t, err)
	right, err := drv8830.New(h.i2c, drv8830.Addr10, nil)
	require.NoError(t, err)
	for i, n := range []string{"R", "G", "B"} {
		h.lPins[i] = &gpiotest.Pin{N: n}
	}
	h.lLight, err = indicator.NewRGB(h.lPins[0], h.lPins[1], h.lPins[2], false)
	require.NoError(t, err)
	h.loop = New(pad, LeftSide(left, h.lLight), RightSide(right, nil), nil)
	return h
}

func (h *hardware) close(t *testing.T) {
	t.Helper()
	require.NoError(t, h.spi.Close())
	require.NoError(t, h.i2c.Close())
}

func TestHardwareAnalogForward(t *testing.T) {
	// Analog, both sticks centered, Up held: the left motor runs forward at
	// the initial trim of 50%, round(63*50/100) = 32.
	h := newHardware(t,
		[]conntest.IO{
			{W: probe, R: []byte{0xFF, 0xCE, 0x5A, 0xF7, 0xFF, 0x80, 0x80, 0x80, 0x80}},
		},
		[]i2ctest.IO{
			{Addr: drv8830.Addr00, W: []byte{0x00, 32<<2 | 0x01}},
			{Addr: drv8830.Addr10, W: []byte{0x00, 0x00}},
		},
	)
	require.NoError(t, h.loop.Tick())
	h.close(t)

	assert.Equal(t, indicator.Forward, h.lLight.Color())
	assert.Equal(t, gpio.High, h.lPins[1].L)
}

func TestHardwareLinkDown(t *testing.T) {
	// No frame recorded: every poll fails on the bus. Nothing is written
	// until the fifth failure.
	h := newHardware(t, nil,
		[]i2ctest.IO{
			{Addr: drv8830.Addr00, W: []byte{0x00, 0x00}},
			{Addr: drv8830.Addr10, W: []byte{0x00, 0x00}},
		},
	)
	for range psxpad.MaxFailures {
		require.NoError(t, h.loop.Tick())
	}
	h.close(t)
	assert.Equal(t, indicator.Off, h.lLight.Color())
}

func TestHardwareDigitalBrakeIgnored(t *testing.T) {
	h := newHardware(t,
		[]conntest.IO{
			// Triangle and R1 held, digital mode.
			{W: probe, R: []byte{0xFF, 0x82, 0x5A, 0xFF, 0xE7, 0x80, 0x80, 0x80, 0x80}},
			// Same buttons, analog mode: R1 brakes the right side.
			{W: probe, R: []byte{0xFF, 0xCE, 0x5A, 0xFF, 0xE7, 0x80, 0x80, 0x80, 0x80}},
		},
		[]i2ctest.IO{
			{Addr: drv8830.Addr00, W: []byte{0x00, 0x00}},
			{Addr: drv8830.Addr10, W: []byte{0x00, 40<<2 | 0x01}},
			{Addr: drv8830.Addr00, W: []byte{0x00, 0x00}},
			{Addr: drv8830.Addr10, W: []byte{0x00, 0x03}},
		},
	)
	require.NoError(t, h.loop.Tick())
	require.NoError(t, h.loop.Tick())
	h.close(t)
}
