// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package drive runs the control loop of a differential drive platform.
//
// Once per tick the loop polls the pad, maps the buttons held to a command
// for each side and sends it to that side's motor, then shows the commanded
// direction on the side's status light.
//
// In digital mode each side runs at a fixed speed. In analog mode each side
// runs at the trim rate, which two buttons raise or lower while held, and a
// per-side button overrides the side with a brake. When the pad link is
// lost for psxpad.MaxFailures consecutive polls both motors are stopped.
package drive
