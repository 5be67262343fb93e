// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package psxpad

import (
	"errors"
	"fmt"
	"strings"
)

// FrameSize is the length of one poll transaction.
const FrameSize = 9

// MaxFailures is the number of consecutive failed polls after which the link
// is considered down.
const MaxFailures = 5

const (
	posMode   = 1
	posAck    = 2
	posUpper  = 3
	posLower  = 4
	posRightY = 5
	posRightX = 6
	posLeftX  = 7
	posLeftY  = 8
)

const (
	ackOK       byte = 0x5A
	modeDigital byte = 0x82
	modeAnalog  byte = 0xCE

	// AxisCenter is the raw reading of a centered stick.
	AxisCenter byte = 0x80
)

var (
	// ErrShortFrame is returned when fewer than FrameSize bytes are decoded.
	ErrShortFrame = errors.New("psxpad: short frame")
	// ErrNotAcknowledged is returned when the pad did not answer with the
	// acknowledgement byte.
	ErrNotAcknowledged = errors.New("psxpad: pad did not acknowledge")
	// ErrUnknownMode is returned when the mode byte is neither digital nor
	// analog.
	ErrUnknownMode = errors.New("psxpad: unknown pad mode")
)

// Mode is the link mode after the last poll.
type Mode int8

const (
	// ModeUnknown is the mode before any poll completed.
	ModeUnknown Mode = iota
	// ModeError means the last poll failed.
	ModeError
	// ModeDigital means the pad reports buttons only.
	ModeDigital
	// ModeAnalog means the pad reports buttons and sticks.
	ModeAnalog
)

func (m Mode) String() string {
	switch m {
	case ModeUnknown:
		return "Unknown"
	case ModeError:
		return "Error"
	case ModeDigital:
		return "Digital"
	case ModeAnalog:
		return "Analog"
	default:
		return fmt.Sprintf("Mode(%d)", int8(m))
	}
}

// Button is a bitmask over both button bytes. The upper group occupies the
// low byte and the lower group the high byte. Several buttons can be or'ed
// together; the combination is pressed only when all of them are.
type Button uint16

// Upper group.
const (
	ButtonLeft Button = 1 << iota
	ButtonDown
	ButtonRight
	ButtonUp
	ButtonStart
	ButtonR3
	ButtonL3
	ButtonSelect
)

// Lower group.
const (
	ButtonSquare Button = 1 << (iota + 8)
	ButtonCross
	ButtonCircle
	ButtonTriangle
	ButtonR1
	ButtonL1
	ButtonR2
	ButtonL2
)

var buttonNames = []string{
	"Left", "Down", "Right", "Up", "Start", "R3", "L3", "Select",
	"Square", "Cross", "Circle", "Triangle", "R1", "L1", "R2", "L2",
}

func (b Button) String() string {
	if b == 0 {
		return "None"
	}
	var names []string
	for i, name := range buttonNames {
		if b&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// State is the pad state decoded from the last successful poll, tagged with
// the current mode.
//
// The raw bytes are kept as received. Button bytes are active-low: a cleared
// bit means the button is held.
type State struct {
	Mode   Mode
	Upper  byte
	Lower  byte
	RightX byte
	RightY byte
	LeftX  byte
	LeftY  byte
}

// releasedState is the state before any frame was decoded: nothing held and
// both sticks centered.
var releasedState = State{
	Upper:  0xFF,
	Lower:  0xFF,
	RightX: AxisCenter,
	RightY: AxisCenter,
	LeftX:  AxisCenter,
	LeftY:  AxisCenter,
}

// Pressed reports whether every button in b is held.
//
// It always returns false unless the mode is ModeDigital or ModeAnalog, even
// if stale button bytes say otherwise. The empty set is never pressed.
func (s State) Pressed(b Button) bool {
	if b == 0 || (s.Mode != ModeDigital && s.Mode != ModeAnalog) {
		return false
	}
	bits := uint16(s.Lower)<<8 | uint16(s.Upper)
	return ^bits&uint16(b) == uint16(b)
}

// Held returns the set of held buttons.
func (s State) Held() Button {
	if s.Mode != ModeDigital && s.Mode != ModeAnalog {
		return 0
	}
	return Button(^(uint16(s.Lower)<<8 | uint16(s.Upper)))
}

// RightVertical returns the right stick vertical position in approximately
// [-100, 100].
func (s State) RightVertical() int {
	return Axis(s.RightY)
}

// LeftVertical returns the left stick vertical position in approximately
// [-100, 100].
func (s State) LeftVertical() int {
	return Axis(s.LeftY)
}

// RightHorizontal returns the right stick horizontal position in
// approximately [-100, 100].
func (s State) RightHorizontal() int {
	return Axis(s.RightX)
}

// LeftHorizontal returns the left stick horizontal position in approximately
// [-100, 100].
func (s State) LeftHorizontal() int {
	return Axis(s.LeftX)
}

func (s State) String() string {
	return fmt.Sprintf("%s{held:%s L:%d R:%d}", s.Mode, s.Held(), s.LeftVertical(), s.RightVertical())
}

// Axis converts a raw stick reading to approximately [-100, 100]. The low bit
// is noise and is discarded.
func Axis(raw byte) int {
	const center = int(AxisCenter)
	return (int(raw&0xFE) - center) * 100 / center
}

// Decoder decodes frames and tracks link health.
//
// The zero value is ready to use. It is not safe for concurrent use.
type Decoder struct {
	state    State
	failures int
	init     bool
}

// Update decodes one frame.
//
// On success the failure count is reset and the new state is returned. On
// failure the failure count is incremented, the mode becomes ModeError and
// the previous button and stick bytes are kept.
func (d *Decoder) Update(frame []byte) (State, error) {
	d.lazyInit()
	if len(frame) < FrameSize {
		return d.Fail(fmt.Errorf("%w: %d bytes", ErrShortFrame, len(frame)))
	}
	if frame[posAck] != ackOK {
		return d.Fail(fmt.Errorf("%w: %#x", ErrNotAcknowledged, frame[posAck]))
	}
	var mode Mode
	switch frame[posMode] {
	case modeDigital:
		mode = ModeDigital
	case modeAnalog:
		mode = ModeAnalog
	default:
		return d.Fail(fmt.Errorf("%w: %#x", ErrUnknownMode, frame[posMode]))
	}
	d.state = State{
		Mode:   mode,
		Upper:  frame[posUpper],
		Lower:  frame[posLower],
		RightX: frame[posRightX],
		RightY: frame[posRightY],
		LeftX:  frame[posLeftX],
		LeftY:  frame[posLeftY],
	}
	d.failures = 0
	return d.state, nil
}

// Fail records a failed poll that did not produce a frame, such as a bus
// error. It returns the resulting state and err.
func (d *Decoder) Fail(err error) (State, error) {
	d.lazyInit()
	d.failures++
	d.state.Mode = ModeError
	return d.state, err
}

// State returns the state after the last Update or Fail.
func (d *Decoder) State() State {
	d.lazyInit()
	return d.state
}

// Mode returns the current link mode.
func (d *Decoder) Mode() Mode {
	return d.state.Mode
}

// Failures returns the number of consecutive failed polls.
func (d *Decoder) Failures() int {
	return d.failures
}

// LinkDown reports whether MaxFailures consecutive polls failed.
//
// It stays true until ResetFailureCount is called or a poll succeeds.
func (d *Decoder) LinkDown() bool {
	return d.failures >= MaxFailures
}

// ResetFailureCount acknowledges a link down condition.
func (d *Decoder) ResetFailureCount() {
	d.failures = 0
}

func (d *Decoder) lazyInit() {
	if !d.init {
		d.state = releasedState
		d.init = true
	}
}
