// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"bytes"
	"fmt"
)

// Clear blanks the display and moves the cursor to (0, 0).
func (lcd *Dev) Clear() error {
	if err := lcd.checkInit(); err != nil {
		return err
	}
	if err := lcd.sendCommand(CmdClear); err != nil {
		return err
	}
	lcd.row, lcd.col = 0, 0
	return nil
}

// Home moves the cursor to (0, 0) and undoes any display shift.
func (lcd *Dev) Home() error {
	if err := lcd.checkInit(); err != nil {
		return err
	}
	if err := lcd.sendCommand(CmdReturnHome); err != nil {
		return err
	}
	lcd.row, lcd.col = 0, 0
	return nil
}

// SetCursor moves the cursor to row, col. Both are 0 based.
func (lcd *Dev) SetCursor(row, col int) error {
	if err := lcd.checkInit(); err != nil {
		return err
	}
	if row < 0 || row >= lcd.rows || col < 0 || col >= lcd.cols {
		return fmt.Errorf("%w: (%d,%d) on %dx%d", ErrOutOfBounds, row, col, lcd.cols, lcd.rows)
	}
	if err := lcd.setDDRAMAddress(row, col); err != nil {
		return err
	}
	lcd.row, lcd.col = row, col
	return nil
}

// Write sends p as character codes, starting at the cursor. Writing past the
// last column continues on the next row, and past the last row on row 0. A
// '\n' moves to the start of the next row.
//
// Bytes are sent unchanged. Use WriteString for text.
func (lcd *Dev) Write(p []byte) (n int, err error) {
	if err = lcd.checkInit(); err != nil {
		return
	}
	for _, b := range p {
		if b == '\n' {
			if err = lcd.nextRow(); err != nil {
				return
			}
			n++
			continue
		}
		if lcd.col >= lcd.cols {
			if err = lcd.nextRow(); err != nil {
				return
			}
		}
		if err = lcd.sendByte(b, true); err != nil {
			return
		}
		lcd.col++
		n++
	}
	return
}

// WriteString folds text to the character ROM and writes it. n counts the
// bytes of text consumed, so n < len(text) only with an error.
func (lcd *Dev) WriteString(text string) (int, error) {
	if err := lcd.checkInit(); err != nil {
		return 0, err
	}
	strip := foldAccents()
	for off, r := range text {
		if _, err := lcd.Write([]byte{encodeRune(strip, r)}); err != nil {
			return off, err
		}
	}
	return len(text), nil
}

// WriteText writes text at the cursor with wrapping.
func (lcd *Dev) WriteText(text string) error {
	_, err := lcd.WriteString(text)
	return err
}

func (lcd *Dev) nextRow() error {
	row := (lcd.row + 1) % lcd.rows
	if err := lcd.setDDRAMAddress(row, 0); err != nil {
		return err
	}
	lcd.row, lcd.col = row, 0
	return nil
}

// SetBacklight turns the backlight on or off with a single write to the
// expander. It doesn't involve the controller, so it is accepted before Init.
func (lcd *Dev) SetBacklight(on bool) error {
	if err := lcd.write(lcd.layout.ControlByte(0, false, false, on)); err != nil {
		return err
	}
	lcd.backlight = on
	return nil
}

// BacklightOn reports the backlight state.
func (lcd *Dev) BacklightOn() bool {
	return lcd.backlight
}

// SetDisplay sets the display, cursor and blink flags in one instruction.
func (lcd *Dev) SetDisplay(on, cursor, blink bool) error {
	if err := lcd.checkInit(); err != nil {
		return err
	}
	if err := lcd.sendCommand(DisplayControl(on, cursor, blink)); err != nil {
		return err
	}
	lcd.on, lcd.cursor, lcd.blink = on, cursor, blink
	return nil
}

// DisplayState returns the display, cursor and blink flags.
func (lcd *Dev) DisplayState() (on, cursor, blink bool) {
	return lcd.on, lcd.cursor, lcd.blink
}

// DisplayOn turns the display on.
func (lcd *Dev) DisplayOn() error {
	return lcd.SetDisplay(true, lcd.cursor, lcd.blink)
}

// DisplayOff blanks the display. DDRAM is preserved.
func (lcd *Dev) DisplayOff() error {
	return lcd.SetDisplay(false, lcd.cursor, lcd.blink)
}

// CursorOn shows the underline cursor.
func (lcd *Dev) CursorOn() error {
	return lcd.SetDisplay(lcd.on, true, lcd.blink)
}

// CursorOff hides the underline cursor.
func (lcd *Dev) CursorOff() error {
	return lcd.SetDisplay(lcd.on, false, lcd.blink)
}

// BlinkOn turns blinking on. The cursor is turned on with it.
func (lcd *Dev) BlinkOn() error {
	return lcd.SetDisplay(lcd.on, true, true)
}

// BlinkOff stops blinking. The underline cursor is left as is.
func (lcd *Dev) BlinkOff() error {
	return lcd.SetDisplay(lcd.on, lcd.cursor, false)
}

// WriteWrapped writes text from the start of row, breaking lines between
// words. A word longer than a row is split. Text that doesn't fit on the
// remaining rows is dropped. It returns the first row left untouched.
func (lcd *Dev) WriteWrapped(text string, row int) (int, error) {
	if err := lcd.checkInit(); err != nil {
		return row, err
	}
	if row < 0 || row >= lcd.rows {
		return row, fmt.Errorf("%w: row %d", ErrOutOfBounds, row)
	}
	words := bytes.Fields(Encode(text))
	for ; row < lcd.rows; row++ {
		var line []byte
		for len(words) > 0 {
			w := words[0]
			sep := 0
			if len(line) > 0 {
				sep = 1
			}
			if len(line)+sep+len(w) > lcd.cols {
				break
			}
			if sep > 0 {
				line = append(line, ' ')
			}
			line = append(line, w...)
			words = words[1:]
		}
		if len(line) == 0 {
			if len(words) == 0 {
				return row, nil
			}
			line = words[0][:lcd.cols]
			words[0] = words[0][lcd.cols:]
		}
		if err := lcd.SetCursor(row, 0); err != nil {
			return row, err
		}
		if _, err := lcd.Write(line); err != nil {
			return row, err
		}
	}
	return row, nil
}

// WriteLeft writes text at the start of row. Text wider than the display is
// cut.
func (lcd *Dev) WriteLeft(text string, row int) error {
	return lcd.writeAligned(Encode(text), row, func(int) int { return 0 })
}

// WriteCenter writes text centered on row. Text wider than the display is cut.
func (lcd *Dev) WriteCenter(text string, row int) error {
	return lcd.writeAligned(Encode(text), row, func(n int) int { return (lcd.cols - n) / 2 })
}

// WriteRight writes text aligned to the end of row. Text wider than the
// display is cut.
//
// Empty text writes nothing for all aligned writes, but row is still checked.
func (lcd *Dev) WriteRight(text string, row int) error {
	return lcd.writeAligned(Encode(text), row, func(n int) int { return lcd.cols - n })
}

func (lcd *Dev) writeAligned(p []byte, row int, column func(n int) int) error {
	if err := lcd.checkInit(); err != nil {
		return err
	}
	if row < 0 || row >= lcd.rows {
		return fmt.Errorf("%w: row %d", ErrOutOfBounds, row)
	}
	if len(p) == 0 {
		return nil
	}
	if len(p) > lcd.cols {
		p = p[:lcd.cols]
	}
	if err := lcd.SetCursor(row, column(len(p))); err != nil {
		return err
	}
	_, err := lcd.Write(p)
	return err
}
