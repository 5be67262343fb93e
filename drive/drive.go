// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package drive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GermanBionicSystems/diffdrive/indicator"
	"github.com/GermanBionicSystems/diffdrive/psxpad"
	"github.com/golang/glog"
)

// Trim limits, in percent of the motor maximum speed.
const (
	TrimMin  = 10
	TrimMax  = 100
	TrimStep = 10
)

// Controller is the pad polled every tick. *psxpad.Dev implements it.
type Controller interface {
	Update() (psxpad.State, error)
	LinkDown() bool
	ResetFailureCount()
}

// Motor is one side's motor driver. *drv8830.Dev implements it.
type Motor interface {
	SetSpeed(speed int) error
	SetSpeedRate(rate int) error
	Brake() error
}

// Indicator is one side's status light. The types in package indicator
// implement it.
type Indicator interface {
	SetColor(c indicator.Color) error
}

// Side is one track of the platform.
type Side struct {
	// Name is used in errors and logs.
	Name string
	// Motor is required.
	Motor Motor
	// Light is optional.
	Light Indicator

	Forward  psxpad.Button
	Backward psxpad.Button
	// Brake overrides Forward and Backward in analog mode.
	Brake psxpad.Button
}

// LeftSide returns the left track driven by the D-pad up/down buttons with
// L1 as brake.
func LeftSide(m Motor, light Indicator) Side {
	return Side{
		Name:     "left",
		Motor:    m,
		Light:    light,
		Forward:  psxpad.ButtonUp,
		Backward: psxpad.ButtonDown,
		Brake:    psxpad.ButtonL1,
	}
}

// RightSide returns the right track driven by the triangle/cross buttons with
// R1 as brake.
func RightSide(m Motor, light Indicator) Side {
	return Side{
		Name:     "right",
		Motor:    m,
		Light:    light,
		Forward:  psxpad.ButtonTriangle,
		Backward: psxpad.ButtonCross,
		Brake:    psxpad.ButtonR1,
	}
}

// Opts tunes the loop. Zero fields take the value from DefaultOpts.
type Opts struct {
	// Interval is the tick period used by Run.
	Interval time.Duration
	// FixedSpeed is the native motor speed used in digital mode.
	FixedSpeed int
	// TrimInitial is the trim rate at start, clamped to [TrimMin, TrimMax].
	TrimInitial int
	// TrimUp and TrimDown adjust the trim rate by TrimStep every tick while
	// held.
	TrimUp   psxpad.Button
	TrimDown psxpad.Button
}

// DefaultOpts ticks every 100ms.
var DefaultOpts = Opts{
	Interval:    100 * time.Millisecond,
	FixedSpeed:  40,
	TrimInitial: 50,
	TrimUp:      psxpad.ButtonR2,
	TrimDown:    psxpad.ButtonL2,
}

// Loop is the control loop. It is not safe for concurrent use; Tick must not
// be called while a previous Tick is running.
type Loop struct {
	pad   Controller
	sides [2]Side
	opts  Opts
	trim  int
	mode  psxpad.Mode
}

// New returns a loop driving left and right from pad.
func New(pad Controller, left, right Side, opts *Opts) *Loop {
	o := DefaultOpts
	if opts != nil {
		if opts.Interval > 0 {
			o.Interval = opts.Interval
		}
		if opts.FixedSpeed != 0 {
			o.FixedSpeed = opts.FixedSpeed
		}
		if opts.TrimInitial != 0 {
			o.TrimInitial = opts.TrimInitial
		}
		if opts.TrimUp != 0 {
			o.TrimUp = opts.TrimUp
		}
		if opts.TrimDown != 0 {
			o.TrimDown = opts.TrimDown
		}
	}
	return &Loop{
		pad:   pad,
		sides: [2]Side{left, right},
		opts:  o,
		trim:  clampTrim(o.TrimInitial),
	}
}

// Trim returns the current trim rate in percent.
func (l *Loop) Trim() int {
	return l.trim
}

// Mode returns the pad mode seen by the last Tick.
func (l *Loop) Mode() psxpad.Mode {
	return l.mode
}

// Tick runs one iteration.
//
// A failed poll is not an error of the tick: it only stops the motors once
// the pad link is down. The returned error joins the motor and light errors
// of both sides; a failing side does not prevent the other from being
// commanded.
func (l *Loop) Tick() error {
	s, err := l.pad.Update()
	if s.Mode != l.mode {
		glog.Infof("pad mode %s -> %s", l.mode, s.Mode)
		l.mode = s.Mode
	}
	if err != nil {
		glog.V(1).Infof("pad poll failed: %v", err)
		if !l.pad.LinkDown() {
			return nil
		}
		l.pad.ResetFailureCount()
		glog.Warningf("pad link down after %d failed polls, stopping motors", psxpad.MaxFailures)
		return l.Stop()
	}
	switch s.Mode {
	case psxpad.ModeDigital:
		return l.fixedSpeed(s)
	case psxpad.ModeAnalog:
		return l.variableRate(s)
	}
	return nil
}

// Run calls Tick every Interval until ctx is canceled, then stops both
// motors.
//
// Ticks never overlap: a slow tick delays the next one.
func (l *Loop) Run(ctx context.Context) error {
	t := time.NewTicker(l.opts.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			if err := l.Stop(); err != nil {
				glog.Errorf("stop: %v", err)
			}
			return ctx.Err()
		case <-t.C:
			if err := l.Tick(); err != nil {
				glog.Errorf("tick: %v", err)
			}
		}
	}
}

// Stop lets both motors coast and turns both lights off.
func (l *Loop) Stop() error {
	var errs []error
	for i := range l.sides {
		errs = append(errs, l.setSpeed(&l.sides[i], 0))
	}
	return errors.Join(errs...)
}

// fixedSpeed drives each side at FixedSpeed in the direction of its held
// button.
func (l *Loop) fixedSpeed(s psxpad.State) error {
	glog.V(2).Infof("digital %s", s)
	var errs []error
	for i := range l.sides {
		sd := &l.sides[i]
		errs = append(errs, l.setSpeed(sd, direction(s, sd)*l.opts.FixedSpeed))
	}
	return errors.Join(errs...)
}

// variableRate adjusts the trim then drives each side at the trim rate, or
// brakes it.
func (l *Loop) variableRate(s psxpad.State) error {
	// Level triggered: the trim moves every tick while the button is held.
	if s.Pressed(l.opts.TrimUp) {
		l.trim += TrimStep
	}
	if s.Pressed(l.opts.TrimDown) {
		l.trim -= TrimStep
	}
	l.trim = clampTrim(l.trim)
	glog.V(2).Infof("analog %s trim=%d", s, l.trim)

	var errs []error
	for i := range l.sides {
		sd := &l.sides[i]
		if s.Pressed(sd.Brake) {
			errs = append(errs, l.brake(sd))
			continue
		}
		if dir := direction(s, sd); dir != 0 {
			errs = append(errs, l.setSpeedRate(sd, dir*l.trim))
		} else {
			errs = append(errs, l.setSpeed(sd, 0))
		}
	}
	return errors.Join(errs...)
}

func (l *Loop) setSpeed(sd *Side, speed int) error {
	err := sd.Motor.SetSpeed(speed)
	return joinSide(sd, err, show(sd, colorOf(speed)))
}

func (l *Loop) setSpeedRate(sd *Side, rate int) error {
	err := sd.Motor.SetSpeedRate(rate)
	return joinSide(sd, err, show(sd, colorOf(rate)))
}

func (l *Loop) brake(sd *Side) error {
	err := sd.Motor.Brake()
	return joinSide(sd, err, show(sd, indicator.Brake))
}

// direction returns 1 when the side's forward button is held, -1 when only
// backward is, 0 otherwise.
func direction(s psxpad.State, sd *Side) int {
	switch {
	case s.Pressed(sd.Forward):
		return 1
	case s.Pressed(sd.Backward):
		return -1
	default:
		return 0
	}
}

// colorOf maps a commanded speed or rate to the light color. It depends on
// the sign only, never on the magnitude the motor driver ends up using.
func colorOf(v int) indicator.Color {
	switch {
	case v > 0:
		return indicator.Forward
	case v < 0:
		return indicator.Backward
	default:
		return indicator.Off
	}
}

func show(sd *Side, c indicator.Color) error {
	if sd.Light == nil {
		return nil
	}
	return sd.Light.SetColor(c)
}

func joinSide(sd *Side, motorErr, lightErr error) error {
	var errs []error
	if motorErr != nil {
		errs = append(errs, fmt.Errorf("%s motor: %w", sd.Name, motorErr))
	}
	if lightErr != nil {
		errs = append(errs, fmt.Errorf("%s light: %w", sd.Name, lightErr))
	}
	return errors.Join(errs...)
}

func clampTrim(v int) int {
	if v < TrimMin {
		return TrimMin
	}
	if v > TrimMax {
		return TrimMax
	}
	return v
}
