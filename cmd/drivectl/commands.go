// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/GermanBionicSystems/diffdrive/drive"
	"github.com/GermanBionicSystems/diffdrive/drv8830"
	"github.com/GermanBionicSystems/diffdrive/indicator"
	"github.com/GermanBionicSystems/diffdrive/internal/hw"
	"github.com/GermanBionicSystems/diffdrive/psxpad"
	"github.com/abiosoft/ishell"
)

type motor interface {
	drive.Motor
	Speed() (int, error)
	Fault() (drv8830.Fault, error)
	ClearFault() error
}

type pad interface {
	Update() (psxpad.State, error)
	Failures() int
}

// bench holds the devices the commands act on.
type bench struct {
	pad    pad
	motors map[string]motor
	lights map[string]drive.Indicator
}

func newBench(p *hw.Platform) *bench {
	b := &bench{
		pad:    p.Pad,
		motors: map[string]motor{"left": p.Left, "right": p.Right},
		lights: map[string]drive.Indicator{},
	}
	if p.LeftLight != nil {
		b.lights["left"] = p.LeftLight
	}
	if p.RightLight != nil {
		b.lights["right"] = p.RightLight
	}
	return b
}

// sides returns the motor names selected by arg: "left", "right" or "both".
func (b *bench) sides(arg string) ([]string, error) {
	if arg == "both" {
		return []string{"left", "right"}, nil
	}
	if _, ok := b.motors[arg]; !ok {
		return nil, fmt.Errorf("unknown side %q, want left, right or both", arg)
	}
	return []string{arg}, nil
}

func (b *bench) show(side string, c indicator.Color) error {
	if l, ok := b.lights[side]; ok {
		return l.SetColor(c)
	}
	return nil
}

func colorOf(v int) indicator.Color {
	switch {
	case v > 0:
		return indicator.Forward
	case v < 0:
		return indicator.Backward
	}
	return indicator.Off
}

// each runs fn on every side selected by args[0].
func (b *bench) each(args []string, want int, fn func(side string, m motor) error) error {
	if len(args) != want {
		return errors.New("wrong number of arguments")
	}
	sides, err := b.sides(args[0])
	if err != nil {
		return err
	}
	var errs []error
	for _, s := range sides {
		if err := fn(s, b.motors[s]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s, err))
		}
	}
	return errors.Join(errs...)
}

func (b *bench) speed(args []string) (string, error) {
	err := b.each(args, 2, func(side string, m motor) error {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		if err := m.SetSpeed(v); err != nil {
			return err
		}
		return b.show(side, colorOf(v))
	})
	return "", err
}

func (b *bench) rate(args []string) (string, error) {
	err := b.each(args, 2, func(side string, m motor) error {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		if err := m.SetSpeedRate(v); err != nil {
			return err
		}
		return b.show(side, colorOf(v))
	})
	return "", err
}

func (b *bench) brake(args []string) (string, error) {
	err := b.each(args, 1, func(side string, m motor) error {
		if err := m.Brake(); err != nil {
			return err
		}
		return b.show(side, indicator.Brake)
	})
	return "", err
}

func (b *bench) stop(args []string) (string, error) {
	if len(args) == 0 {
		args = []string{"both"}
	}
	return b.speed([]string{args[0], "0"})
}

func (b *bench) get(args []string) (string, error) {
	var lines []string
	err := b.each(args, 1, func(side string, m motor) error {
		v, err := m.Speed()
		if err != nil {
			return err
		}
		lines = append(lines, fmt.Sprintf("%s: %d", side, v))
		return nil
	})
	return strings.Join(lines, "\n"), err
}

func (b *bench) fault(args []string) (string, error) {
	var lines []string
	err := b.each(args, 1, func(side string, m motor) error {
		f, err := m.Fault()
		if err != nil {
			return err
		}
		lines = append(lines, fmt.Sprintf("%s: %s", side, f))
		return nil
	})
	return strings.Join(lines, "\n"), err
}

func (b *bench) clear(args []string) (string, error) {
	return "", b.each(args, 1, func(_ string, m motor) error {
		return m.ClearFault()
	})
}

func (b *bench) light(args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New("wrong number of arguments")
	}
	colors := map[string]indicator.Color{
		"off":      indicator.Off,
		"forward":  indicator.Forward,
		"backward": indicator.Backward,
		"brake":    indicator.Brake,
	}
	c, ok := colors[args[1]]
	if !ok {
		return "", fmt.Errorf("unknown color %q", args[1])
	}
	sides, err := b.sides(args[0])
	if err != nil {
		return "", err
	}
	for _, s := range sides {
		if _, ok := b.lights[s]; !ok {
			return "", fmt.Errorf("%s: no light configured", s)
		}
		if err := b.show(s, c); err != nil {
			return "", fmt.Errorf("%s: %w", s, err)
		}
	}
	return "", nil
}

func (b *bench) poll(args []string) (string, error) {
	if len(args) != 0 {
		return "", errors.New("wrong number of arguments")
	}
	s, err := b.pad.Update()
	if err != nil {
		return "", fmt.Errorf("%w (%d consecutive failures)", err, b.pad.Failures())
	}
	return fmt.Sprintf("%s LX:%d RX:%d", s, s.LeftHorizontal(), s.RightHorizontal()), nil
}

type command struct {
	help string
	fn   func(args []string) (string, error)
}

func (b *bench) commands() map[string]command {
	return map[string]command{
		"speed": {"SIDE SPEED  drive at a native speed in [-63, 63]", b.speed},
		"rate":  {"SIDE RATE   drive at a rate in percent of the max speed", b.rate},
		"brake": {"SIDE        brake", b.brake},
		"stop":  {"[SIDE]      let the motors coast", b.stop},
		"get":   {"SIDE        read back the speed", b.get},
		"fault": {"SIDE        read the fault register", b.fault},
		"clear": {"SIDE        clear the fault register", b.clear},
		"light": {"SIDE COLOR  show off, forward, backward or brake", b.light},
		"pad":   {"            poll the pad once", b.poll},
	}
}

func newShell(p *hw.Platform) *ishell.Shell {
	sh := ishell.New()
	sh.SetPrompt("drivectl > ")
	cmds := newBench(p).commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := cmds[name]
		sh.AddCmd(&ishell.Cmd{
			Name: name,
			Help: cmd.help,
			Func: func(c *ishell.Context) {
				out, err := cmd.fn(c.Args)
				if err != nil {
					c.Err(err)
					return
				}
				if out != "" {
					c.Println(out)
				}
			},
		})
	}
	return sh
}
