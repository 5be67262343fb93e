// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package indicator drives the per-side status lights of the platform.
//
// A status light shows one of four discrete colors. Three implementations
// are provided: an RGB LED on a PCA9633 PWM controller sharing the motor I²C
// bus, an RGB LED wired to three GPIO pins, and a terminal emulator that
// prints colored blocks using ANSI escape codes.
package indicator
