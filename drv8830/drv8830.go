// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package drv8830

import (
	"errors"
	"fmt"
	"strings"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// I²C addresses selected by the A1 and A0 pins. Each pin may be tied low
// (0), left open, or tied high (1). The name lists A1 first.
const (
	Addr00       uint16 = 0x60
	Addr0Open    uint16 = 0x61
	Addr01       uint16 = 0x62
	AddrOpen0    uint16 = 0x63
	AddrOpenOpen uint16 = 0x64
	AddrOpen1    uint16 = 0x65
	Addr10       uint16 = 0x66
	Addr1Open    uint16 = 0x67
	Addr11       uint16 = 0x68
)

const (
	regControl byte = 0x00
	regFault   byte = 0x01

	faultClear byte = 0x80
)

var (
	// ErrInvalidAddress is returned by New when the address is not one of
	// the nine addresses the A0/A1 pins can select.
	ErrInvalidAddress = errors.New("drv8830: invalid I²C address")
)

// Opts holds the per-motor configuration.
type Opts struct {
	// MaxSpeed limits every magnitude sent to the driver. Values above
	// MaxMagnitude are clamped.
	MaxSpeed uint8
}

// DefaultOpts lets the motor use the full output range.
var DefaultOpts = Opts{MaxSpeed: MaxMagnitude}

// Fault is the content of the FAULT register.
type Fault byte

// Fault flags.
const (
	FaultAny          Fault = 0x01
	FaultOverCurrent  Fault = 0x02
	FaultUnderVoltage Fault = 0x04
	FaultOverTemp     Fault = 0x08
	FaultCurrentLimit Fault = 0x10
)

func (f Fault) String() string {
	if f&0x1F == 0 {
		return "OK"
	}
	var names []string
	for _, flag := range []struct {
		f    Fault
		name string
	}{
		{FaultAny, "FAULT"},
		{FaultOverCurrent, "OCP"},
		{FaultUnderVoltage, "UVLO"},
		{FaultOverTemp, "OTS"},
		{FaultCurrentLimit, "ILIMIT"},
	} {
		if f&flag.f != 0 {
			names = append(names, flag.name)
		}
	}
	return strings.Join(names, "|")
}

// Dev is a handle to one DRV8830 on a shared bus.
//
// Every method issues exactly one bus transaction and does not retry.
type Dev struct {
	d   *i2c.Dev
	limit uint8
}

// New returns a handle to the DRV8830 at addr.
//
// No bus transaction is done; the driver has no identification register to
// probe.
func New(bus i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	if addr < Addr00 || addr > Addr11 {
		return nil, fmt.Errorf("%w: %#x", ErrInvalidAddress, addr)
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	limit := opts.MaxSpeed
	if limit > MaxMagnitude {
		limit = MaxMagnitude
	}
	return &Dev{d: &i2c.Dev{Bus: bus, Addr: addr}, limit: limit}, nil
}

// MaxSpeed returns the magnitude limit applied to every command.
func (d *Dev) MaxSpeed() uint8 {
	return d.limit
}

// SetSpeed drives the motor at a signed speed. Positive is forward, negative
// is reverse and zero lets the motor coast.
func (d *Dev) SetSpeed(speed int) error {
	return d.writeControl(EncodeSpeed(speed, d.limit))
}

// SetSpeedRate drives the motor at a signed rate in percent of MaxSpeed.
func (d *Dev) SetSpeedRate(rate int) error {
	return d.SetSpeed(RateToSpeed(rate, d.limit))
}

// Brake shorts the motor terminals.
func (d *Dev) Brake() error {
	return d.writeControl(EncodeBrake())
}

// Speed reads back the signed speed currently held by the control register.
func (d *Dev) Speed() (int, error) {
	var r [1]byte
	if err := d.d.Tx([]byte{regControl}, r[:]); err != nil {
		return 0, wrap(err)
	}
	return DecodeSpeed(r[0]), nil
}

// Fault reads the FAULT register.
func (d *Dev) Fault() (Fault, error) {
	var r [1]byte
	if err := d.d.Tx([]byte{regFault}, r[:]); err != nil {
		return 0, wrap(err)
	}
	return Fault(r[0]), nil
}

// ClearFault clears the latched fault flags.
func (d *Dev) ClearFault() error {
	return wrap(d.d.Tx([]byte{regFault, faultClear}, nil))
}

// Halt lets the motor coast.
//
// Halt implements conn.Resource.
func (d *Dev) Halt() error {
	return d.SetSpeed(0)
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return fmt.Sprintf("DRV8830{%#x}", d.d.Addr)
}

func (d *Dev) writeControl(v byte) error {
	return wrap(d.d.Tx([]byte{regControl, v}, nil))
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("drv8830: %w", err)
}

var _ conn.Resource = &Dev{}
