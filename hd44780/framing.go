// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import "time"

const (
	// Minimum E high time is 450ns. 1µs covers it on any clock.
	delayEnablePulse = time.Microsecond
	// Execution time of most instructions is 37µs.
	delaySettle = 50 * time.Microsecond
)

// Layout maps the controller lines onto the expander's output bits. Each field
// is a single bit mask.
type Layout struct {
	RS byte
	RW byte
	E  byte
	BL byte
	// Data lines D4..D7, in that order.
	D [4]byte
}

var (
	// PCF8574Layout is the wiring used by the common LCD1602/LCD2004
	// backpacks:
	//
	//	bit |  7 |  6 |  5 |  4 |  3 | 2 |  1 |  0
	//	    | D7 | D6 | D5 | D4 | BL | E | RW | RS
	PCF8574Layout = Layout{RS: 0x01, RW: 0x02, E: 0x04, BL: 0x08, D: [4]byte{0x10, 0x20, 0x40, 0x80}}

	// AdafruitI2CLayout is the MCP23008 side of the Adafruit I2C/SPI backpack.
	// R/W is tied to ground.
	AdafruitI2CLayout = Layout{RS: 0x02, E: 0x04, BL: 0x80, D: [4]byte{0x08, 0x10, 0x20, 0x40}}

	// AdafruitSPILayout is the 74HC595 side of the same backpack. The data
	// lines are wired in reverse order.
	AdafruitSPILayout = Layout{RS: 0x02, E: 0x04, BL: 0x80, D: [4]byte{0x40, 0x20, 0x10, 0x08}}
)

// ControlByte packs the low 4 bits of nibble onto the data lines together
// with the control lines. R/W is always low since the driver never reads.
func (l *Layout) ControlByte(nibble byte, rs, enable, backlight bool) byte {
	var v byte
	for ix, mask := range l.D {
		if nibble&(1<<ix) != 0 {
			v |= mask
		}
	}
	if rs {
		v |= l.RS
	}
	if enable {
		v |= l.E
	}
	if backlight {
		v |= l.BL
	}
	return v &^ l.RW
}

// write sends one expander value, wrapping any failure in a BusError.
func (lcd *Dev) write(value byte) error {
	if err := lcd.w.SendByte(lcd.addr, value); err != nil {
		return &BusError{Addr: lcd.addr, Err: err}
	}
	return nil
}

// sendNibble presents nibble on D4..D7 and strobes E. The controller latches
// on the falling edge. RS and BL are held across all three writes.
func (lcd *Dev) sendNibble(nibble byte, rs bool) error {
	if err := lcd.write(lcd.layout.ControlByte(nibble, rs, false, lcd.backlight)); err != nil {
		return err
	}
	if err := lcd.write(lcd.layout.ControlByte(nibble, rs, true, lcd.backlight)); err != nil {
		return err
	}
	lcd.clock.Sleep(delayEnablePulse)
	if err := lcd.write(lcd.layout.ControlByte(nibble, rs, false, lcd.backlight)); err != nil {
		return err
	}
	lcd.clock.Sleep(delaySettle)
	return nil
}

// sendByte sends b as two nibbles, high first.
func (lcd *Dev) sendByte(b byte, rs bool) error {
	if err := lcd.sendNibble(b>>4, rs); err != nil {
		return err
	}
	return lcd.sendNibble(b&0x0f, rs)
}
