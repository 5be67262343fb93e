// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package psxpad polls a PlayStation style gamepad over SPI.
//
// Every poll is a single 9 byte full-duplex transaction. The response carries
// the pad mode, an acknowledgement byte, two active-low button bytes and four
// analog stick bytes. The constants in this package are expressed in the bit
// order seen by a most-significant-bit-first SPI master.
//
// Decoder holds the link health state machine and can be used on its own
// with frames obtained from any transport; Dev wires it to an spi.Port.
package psxpad
