// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hd44780i2c is a container for the HD44780 character LCD driver and
// the I/O expanders used to reach it.
//
// The driver lives in package hd44780. Packages pcf857x, mcp23xxx and
// nxp74hc595 drive the expanders found on common backpacks, and lcdsim is a
// simulated display for tests and development without hardware.
package hd44780i2c
