// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hd44780 controls the Hitachi HD44780U LCD controller through a GPIO
// expander backpack, typically a PCF8574 on I²C.
//
// The controller is driven in 4-bit mode. Every byte is sent as two nibbles on
// D4..D7, each latched by a pulse on E. The expander also carries RS, R/W and
// the backlight transistor, so every write to the expander updates all of
// them at once.
//
// The driver holds no lock. If the bus is shared, the caller must serialize
// each call, Init in particular must not be interleaved with other traffic.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
package hd44780

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// Opts holds the construction parameters. Zero fields take their value from
// DefaultOpts.
type Opts struct {
	// Addr is the 7 bit address of the expander.
	Addr uint16
	Rows int
	Cols int
	// Layout maps the controller lines to expander bits.
	Layout *Layout
	// Clock performs the protocol delays.
	Clock Clock
}

// DefaultOpts describes a PCF8574 backed 20x4 display at 0x27.
var DefaultOpts = Opts{
	Addr:   0x27,
	Rows:   4,
	Cols:   20,
	Layout: &PCF8574Layout,
	Clock:  HostClock{},
}

// Dev is an HD44780U display.
//
// Implements periph.io/x/conn/v3/display.TextDisplay and
// display.DisplayBacklight.
type Dev struct {
	w      BusWriter
	clock  Clock
	layout Layout
	addr   uint16
	rows   int
	cols   int

	// Display control state, as last acknowledged by the bus.
	on        bool
	cursor    bool
	blink     bool
	autoShift bool
	backlight bool

	// Tracked DDRAM position.
	row int
	col int

	initialized bool
}

// New returns an uninitialized display writing through w. Call Init before
// anything else; until then only SetBacklight is accepted.
func New(w BusWriter, opts *Opts) (*Dev, error) {
	o := DefaultOpts
	if opts != nil {
		if opts.Addr != 0 {
			o.Addr = opts.Addr
		}
		if opts.Rows != 0 {
			o.Rows = opts.Rows
		}
		if opts.Cols != 0 {
			o.Cols = opts.Cols
		}
		if opts.Layout != nil {
			o.Layout = opts.Layout
		}
		if opts.Clock != nil {
			o.Clock = opts.Clock
		}
	}
	if err := checkGeometry(o.Rows, o.Cols); err != nil {
		return nil, err
	}
	return &Dev{
		w:         w,
		clock:     o.Clock,
		layout:    *o.Layout,
		addr:      o.Addr,
		rows:      o.Rows,
		cols:      o.Cols,
		on:        true,
		backlight: true,
	}, nil
}

// NewI2C returns an initialized display on a PCF8574 style backpack at
// opts.Addr.
func NewI2C(bus i2c.Bus, opts *Opts) (*Dev, error) {
	return newBackpack(&I2CWriter{Bus: bus}, opts)
}

// Rows in DDRAM are 40 bytes long. Displays with more than two rows split
// the first two DDRAM rows in half, so they can't be wider than 20.
func checkGeometry(rows, cols int) error {
	if rows < 1 || rows > 4 || cols < 1 || cols > 40 {
		return fmt.Errorf("%w: %dx%d", ErrUnsupportedGeometry, cols, rows)
	}
	if rows > 2 && cols > 20 {
		return fmt.Errorf("%w: %dx%d", ErrUnsupportedGeometry, cols, rows)
	}
	return nil
}

// Addr returns the bus address of the expander.
func (lcd *Dev) Addr() uint16 {
	return lcd.addr
}

// Cols returns the number of columns the display supports.
func (lcd *Dev) Cols() int {
	return lcd.cols
}

// Rows returns the number of rows the display supports.
func (lcd *Dev) Rows() int {
	return lcd.rows
}

// Position returns the tracked cursor position, 0 based.
func (lcd *Dev) Position() (row, col int) {
	return lcd.row, lcd.col
}

func (lcd *Dev) String() string {
	return fmt.Sprintf("HD44780::0x%02x - Rows: %d, Cols: %d", lcd.addr, lcd.rows, lcd.cols)
}

func (lcd *Dev) checkInit() error {
	if !lcd.initialized {
		return ErrNotInitialized
	}
	return nil
}
