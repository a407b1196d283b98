// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
)

// AutoScroll makes the display shift left on each character instead of the
// cursor advancing.
func (lcd *Dev) AutoScroll(enabled bool) error {
	if err := lcd.checkInit(); err != nil {
		return err
	}
	if err := lcd.sendCommand(EntryModeSet(true, enabled)); err != nil {
		return err
	}
	lcd.autoShift = enabled
	return nil
}

// Cursor sets the cursor mode. You can pass multiple arguments.
// Cursor(CursorUnderline, CursorBlink)
//
// The HD44780 underline is the cursor and its block is the blink, so
// CursorBlock and CursorBlink are the same thing.
func (lcd *Dev) Cursor(modes ...display.CursorMode) error {
	var cursor, blink bool
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
			cursor, blink = false, false
		case display.CursorUnderline:
			cursor = true
		case display.CursorBlink, display.CursorBlock:
			blink = true
		default:
			return fmt.Errorf("%s: unexpected cursor: %d", packageName, mode)
		}
	}
	return lcd.SetDisplay(lcd.on, cursor, blink)
}

// Display turns the display on or off. DDRAM is preserved.
func (lcd *Dev) Display(on bool) error {
	return lcd.SetDisplay(on, lcd.cursor, lcd.blink)
}

// MinCol returns the min column position.
func (lcd *Dev) MinCol() int {
	return 1
}

// MinRow returns the min row position.
func (lcd *Dev) MinRow() int {
	return 1
}

// Move moves the cursor one position in dir. Up and Down wrap around the
// rows, and Backward from the first column goes to the end of the row above.
func (lcd *Dev) Move(dir display.CursorDirection) error {
	if err := lcd.checkInit(); err != nil {
		return err
	}
	switch dir {
	case display.Forward:
		if err := lcd.sendCommand(CursorShift(false, true)); err != nil {
			return err
		}
		lcd.col++
	case display.Backward:
		if lcd.col == 0 {
			// The address counter would step into the hidden part of DDRAM.
			return lcd.SetCursor((lcd.row+lcd.rows-1)%lcd.rows, lcd.cols-1)
		}
		if err := lcd.sendCommand(CursorShift(false, false)); err != nil {
			return err
		}
		lcd.col--
	case display.Up:
		return lcd.SetCursor((lcd.row+lcd.rows-1)%lcd.rows, min(lcd.col, lcd.cols-1))
	case display.Down:
		return lcd.SetCursor((lcd.row+1)%lcd.rows, min(lcd.col, lcd.cols-1))
	default:
		return ErrNotImplemented
	}
	return nil
}

// MoveTo moves the cursor to row, col, counted from MinRow and MinCol.
func (lcd *Dev) MoveTo(row, col int) error {
	return lcd.SetCursor(row-lcd.MinRow(), col-lcd.MinCol())
}

// Halt clears the display and turns it and the backlight off. It stops at
// the first failed write.
func (lcd *Dev) Halt() error {
	if lcd.initialized {
		if err := lcd.Clear(); err != nil {
			return err
		}
		if err := lcd.Display(false); err != nil {
			return err
		}
	}
	return lcd.SetBacklight(false)
}

var _ display.TextDisplay = &Dev{}
var _ display.DisplayBacklight = &Dev{}
var _ conn.Resource = &Dev{}
