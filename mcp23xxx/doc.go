// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mcp23xxx drives the I²C members of the MCP23XXX family of GPIO
// expanders as plain output ports. Port A is used; on the 16 bit parts port B
// is left as input.
//
// The Adafruit I2C/SPI character LCD backpack uses an MCP23008 this way.
//
// # Datasheet
//
// https://ww1.microchip.com/downloads/en/DeviceDoc/20001952C.pdf
package mcp23xxx
