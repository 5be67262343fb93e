// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package diffdrive is the control core of a two motor differential drive
// platform steered by a PlayStation style pad.
//
// The device drivers live in drv8830 (motors), psxpad (pad) and indicator
// (status lights); drive runs the control loop. cmd/diffdrive is the daemon
// and cmd/drivectl a bench shell.
package diffdrive
