// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package indicator

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/maruel/ansi256"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestColor(t *testing.T) {
	for _, test := range []struct {
		c    Color
		want color.NRGBA
		name string
	}{
		{Off, color.NRGBA{0, 0, 0, 0xFF}, "Off"},
		{Forward, color.NRGBA{0, 0xFF, 0, 0xFF}, "Forward"},
		{Backward, color.NRGBA{0, 0, 0xFF, 0xFF}, "Backward"},
		{Brake, color.NRGBA{0xFF, 0, 0, 0xFF}, "Brake"},
		{Color(9), color.NRGBA{0, 0, 0, 0xFF}, "Color(9)"},
	} {
		if got := test.c.NRGBA(); got != test.want {
			t.Errorf("%s.NRGBA() = %v, want %v", test.name, got, test.want)
		}
		if got := test.c.String(); got != test.name {
			t.Errorf("String() = %q, want %q", got, test.name)
		}
	}
}

var pcaRecording = map[string][]i2ctest.IO{
	"TestPCA9633": {
		{Addr: 0x10, W: []byte{0x00, 0x81}},
		{Addr: 0x10, W: []byte{0x01, 0x05}},
		{Addr: 0x10, W: []byte{0x08, 0x00}},
		// Forward: green on channel 1.
		{Addr: 0x10, W: []byte{0x08, 0x04}},
		// Forward again: no change.
		// Backward: blue on channel 2.
		{Addr: 0x10, W: []byte{0x08, 0x10}},
		// Brake: red on channel 0.
		{Addr: 0x10, W: []byte{0x08, 0x01}},
		// Halt.
		{Addr: 0x10, W: []byte{0x08, 0x00}},
	},
	"TestPCA9633Remapped": {
		{Addr: 0x11, W: []byte{0x00, 0x81}},
		{Addr: 0x11, W: []byte{0x01, 0x1D}},
		{Addr: 0x11, W: []byte{0x08, 0x00}},
		// Brake: red on channel 3.
		{Addr: 0x11, W: []byte{0x08, 0x40}},
	},
}

func TestPCA9633(t *testing.T) {
	bus := &i2ctest.Playback{Ops: pcaRecording["TestPCA9633"], DontPanic: true}
	dev, err := NewPCA9633(bus, 0x10, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []Color{Forward, Forward, Backward, Brake} {
		if err := dev.SetColor(c); err != nil {
			t.Fatal(err)
		}
		if dev.Color() != c {
			t.Fatalf("Color() = %s, want %s", dev.Color(), c)
		}
	}
	if err := dev.Halt(); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
	if s := dev.String(); s != "PCA9633{0x10}" {
		t.Fatalf("String() = %q", s)
	}
}

func TestPCA9633Remapped(t *testing.T) {
	bus := &i2ctest.Playback{Ops: pcaRecording["TestPCA9633Remapped"], DontPanic: true}
	opts := PCA9633Opts{Channels: [3]int{3, 1, 0}, TotemPole: true, Invert: true}
	dev, err := NewPCA9633(bus, 0x11, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.SetColor(Brake); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestPCA9633InvalidChannels(t *testing.T) {
	for _, channels := range [][3]int{{0, 0, 1}, {0, 1, 4}, {-1, 1, 2}} {
		opts := PCA9633Opts{Channels: channels}
		if _, err := NewPCA9633(&i2ctest.Playback{DontPanic: true}, 0x10, &opts); err == nil {
			t.Errorf("channels %v accepted", channels)
		}
	}
}

func TestPCA9633BusFailure(t *testing.T) {
	bus := &i2ctest.Playback{DontPanic: true}
	if _, err := NewPCA9633(bus, 0x10, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestRGB(t *testing.T) {
	for _, test := range []struct {
		name      string
		activeLow bool
		c         Color
		want      [3]gpio.Level
	}{
		{"off", false, Off, [3]gpio.Level{gpio.Low, gpio.Low, gpio.Low}},
		{"forward", false, Forward, [3]gpio.Level{gpio.Low, gpio.High, gpio.Low}},
		{"backward", false, Backward, [3]gpio.Level{gpio.Low, gpio.Low, gpio.High}},
		{"brake", false, Brake, [3]gpio.Level{gpio.High, gpio.Low, gpio.Low}},
		{"off active low", true, Off, [3]gpio.Level{gpio.High, gpio.High, gpio.High}},
		{"forward active low", true, Forward, [3]gpio.Level{gpio.High, gpio.Low, gpio.High}},
	} {
		t.Run(test.name, func(t *testing.T) {
			r := &gpiotest.Pin{N: "R"}
			g := &gpiotest.Pin{N: "G"}
			b := &gpiotest.Pin{N: "B"}
			l, err := NewRGB(r, g, b, test.activeLow)
			if err != nil {
				t.Fatal(err)
			}
			if err := l.SetColor(test.c); err != nil {
				t.Fatal(err)
			}
			got := [3]gpio.Level{r.L, g.L, b.L}
			if got != test.want {
				t.Fatalf("levels = %v, want %v", got, test.want)
			}
			if l.Color() != test.c {
				t.Fatalf("Color() = %s", l.Color())
			}
		})
	}
}

func TestRGBMissingPin(t *testing.T) {
	if _, err := NewRGB(&gpiotest.Pin{}, nil, &gpiotest.Pin{}, false); err == nil {
		t.Fatal("expected error")
	}
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, 2, nil)
	left, right := c.Light(0), c.Light(1)
	if err := left.SetColor(Forward); err != nil {
		t.Fatal(err)
	}
	if err := right.SetColor(Brake); err != nil {
		t.Fatal(err)
	}
	if left.Color() != Forward || right.Color() != Brake {
		t.Fatal("colors not kept")
	}
	p := ansi256.Default
	want := "\r\033[0m" + p.Block(Forward.NRGBA()) + p.Block(Off.NRGBA()) + "\033[0m " +
		"\r\033[0m" + p.Block(Forward.NRGBA()) + p.Block(Brake.NRGBA()) + "\033[0m "
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
	buf.Reset()
	if err := c.Halt(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "\033[0m") || left.Color() != Off {
		t.Fatalf("Halt output = %q", buf.String())
	}
}

func TestConsoleLightOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewConsole(&bytes.Buffer{}, 2, nil).Light(2)
}
