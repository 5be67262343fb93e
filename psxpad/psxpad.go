// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package psxpad

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Clock is the SPI clock used to poll the pad.
const Clock = 200 * physic.KiloHertz

// probe is the poll request: start byte then the read data command.
var probe = [FrameSize]byte{0x80, 0x42}

// Dev is a handle to a pad on an SPI port.
type Dev struct {
	c   spi.Conn
	dec Decoder
	r   [FrameSize]byte
}

// NewSPI connects to a pad on p.
//
// The bus runs in mode 0 with the clock idle low. No transaction is done, a
// pad may be plugged in later.
func NewSPI(p spi.Port) (*Dev, error) {
	c, err := p.Connect(Clock, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("psxpad: %w", err)
	}
	return &Dev{c: c}, nil
}

// Update polls the pad once.
//
// A bus error counts as a failed poll, the same as a frame that does not
// decode.
func (d *Dev) Update() (State, error) {
	w := probe
	if err := d.c.Tx(w[:], d.r[:]); err != nil {
		return d.dec.Fail(fmt.Errorf("psxpad: %w", err))
	}
	return d.dec.Update(d.r[:])
}

// State returns the state decoded by the last Update.
func (d *Dev) State() State {
	return d.dec.State()
}

// Mode returns the current link mode.
func (d *Dev) Mode() Mode {
	return d.dec.Mode()
}

// Failures returns the number of consecutive failed polls.
func (d *Dev) Failures() int {
	return d.dec.Failures()
}

// LinkDown reports whether MaxFailures consecutive polls failed.
func (d *Dev) LinkDown() bool {
	return d.dec.LinkDown()
}

// ResetFailureCount acknowledges a link down condition.
func (d *Dev) ResetFailureCount() {
	d.dec.ResetFailureCount()
}

// Halt implements conn.Resource. It is a no-op, the pad is only read.
func (d *Dev) Halt() error {
	return nil
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return fmt.Sprintf("psxpad{%s}", d.c)
}

var _ conn.Resource = &Dev{}
