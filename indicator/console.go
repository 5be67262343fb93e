// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package indicator

import (
	"bytes"
	"fmt"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Console emulates a row of status lights on a terminal using ANSI color
// codes.
//
// Useful on a bench where the real LEDs are not wired yet.
type Console struct {
	w       io.Writer
	palette *ansi256.Palette
	cells   []Color
	buf     bytes.Buffer
}

// NewConsole returns a row of n lights written to w. When w is nil, the
// lights are written to stdout. When palette is nil, ansi256.Default is used.
func NewConsole(w io.Writer, n int, palette *ansi256.Palette) *Console {
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	if palette == nil {
		palette = ansi256.Default
	}
	return &Console{w: w, palette: palette, cells: make([]Color, n)}
}

// Light returns the light at position i, counting from the left.
func (c *Console) Light(i int) *ConsoleLight {
	if i < 0 || i >= len(c.cells) {
		panic(fmt.Sprintf("indicator: console light %d out of range", i))
	}
	return &ConsoleLight{c: c, i: i}
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes so the console is not left colored.
func (c *Console) Halt() error {
	for i := range c.cells {
		c.cells[i] = Off
	}
	_, err := c.w.Write([]byte("\n\033[0m"))
	return err
}

func (c *Console) String() string {
	return "Console"
}

func (c *Console) refresh() error {
	c.buf.Reset()
	_, _ = c.buf.WriteString("\r\033[0m")
	for _, cell := range c.cells {
		_, _ = io.WriteString(&c.buf, c.palette.Block(cell.NRGBA()))
	}
	_, _ = c.buf.WriteString("\033[0m ")
	_, err := c.buf.WriteTo(c.w)
	return err
}

// ConsoleLight is one light of a Console.
type ConsoleLight struct {
	c *Console
	i int
}

// SetColor shows col and redraws the whole row.
func (l *ConsoleLight) SetColor(col Color) error {
	l.c.cells[l.i] = col
	return l.c.refresh()
}

// Color returns the color last shown.
func (l *ConsoleLight) Color() Color {
	return l.c.cells[l.i]
}

func (l *ConsoleLight) String() string {
	return fmt.Sprintf("Console[%d]", l.i)
}
