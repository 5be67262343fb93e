// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package drv8830 controls TI DRV8830 brushed DC motor drivers via I²C.
//
// The driver exposes a single control register holding a 6 bit output
// voltage setting and a 2 bit bridge direction. The package separates the
// pure register codec (EncodeSpeed, DecodeSpeed, RateToSpeed) from Dev, which
// sequences the bus transactions.
//
// Up to nine drivers can share one bus; the address is selected by the
// tri-state A0 and A1 pins. See the Addr* constants.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/drv8830.pdf
package drv8830
