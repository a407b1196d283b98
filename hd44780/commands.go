// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import "time"

// Command is an HD44780U instruction byte.
type Command byte

const (
	CmdClear           Command = 0x01
	CmdReturnHome      Command = 0x02
	CmdEntryModeSet    Command = 0x04
	CmdDisplayControl  Command = 0x08
	CmdCursorShift     Command = 0x10
	CmdFunctionSet     Command = 0x20
	CmdSetDDRAMAddress Command = 0x80
)

const (
	entryIncrement byte = 0x02
	entryShift     byte = 0x01

	controlDisplay byte = 0x04
	controlCursor  byte = 0x02
	controlBlink   byte = 0x01

	shiftDisplay byte = 0x08
	shiftRight   byte = 0x04

	functionLines byte = 0x08
)

const (
	delayPowerOn = 50 * time.Millisecond
	// Clear and Return Home take 1.52ms.
	delayClear = 2 * time.Millisecond
)

// The reset sequence from figure 24 of the datasheet. Three 8-bit Function
// Sets bring the controller to 8-bit mode from any state, then one nibble
// switches it to 4-bit. Only the high nibble is wired, so each is a single
// strobe.
var initNibbles = []struct {
	nibble byte
	delay  time.Duration
}{
	{0x03, 4500 * time.Microsecond},
	{0x03, 4500 * time.Microsecond},
	{0x03, 150 * time.Microsecond},
	{0x02, 0},
}

// EntryModeSet returns the Entry Mode Set instruction. With shift the display
// scrolls instead of the cursor moving.
func EntryModeSet(increment, shift bool) Command {
	c := CmdEntryModeSet
	if increment {
		c |= Command(entryIncrement)
	}
	if shift {
		c |= Command(entryShift)
	}
	return c
}

// DisplayControl returns the Display On/Off Control instruction.
func DisplayControl(on, cursor, blink bool) Command {
	c := CmdDisplayControl
	if on {
		c |= Command(controlDisplay)
	}
	if cursor {
		c |= Command(controlCursor)
	}
	if blink {
		c |= Command(controlBlink)
	}
	return c
}

// CursorShift moves the cursor, or the whole display, one position.
func CursorShift(display, right bool) Command {
	c := CmdCursorShift
	if display {
		c |= Command(shiftDisplay)
	}
	if right {
		c |= Command(shiftRight)
	}
	return c
}

// FunctionSet returns the 4-bit Function Set instruction with the 5x8 font.
func FunctionSet(twoLines bool) Command {
	c := CmdFunctionSet
	if twoLines {
		c |= Command(functionLines)
	}
	return c
}

// SetDDRAMAddress returns the Set DDRAM Address instruction. Only the low 7
// bits of addr are used.
func SetDDRAMAddress(addr byte) Command {
	return CmdSetDDRAMAddress | Command(addr&0x7f)
}

// Init runs the power-on reset sequence and leaves the display cleared, on,
// with the cursor hidden and the address incrementing.
//
// It can be called again at any time to recover from a failed write. The
// backlight keeps its current state.
func (lcd *Dev) Init() error {
	lcd.initialized = false
	lcd.clock.Sleep(delayPowerOn)
	for _, step := range initNibbles {
		if err := lcd.sendNibble(step.nibble, false); err != nil {
			return err
		}
		lcd.clock.Sleep(step.delay)
	}
	cmds := []Command{
		FunctionSet(lcd.rows > 1),
		DisplayControl(true, false, false),
		CmdClear,
		EntryModeSet(true, false),
	}
	for _, cmd := range cmds {
		if err := lcd.sendCommand(cmd); err != nil {
			return err
		}
	}
	lcd.on, lcd.cursor, lcd.blink = true, false, false
	lcd.autoShift = false
	lcd.row, lcd.col = 0, 0
	lcd.initialized = true
	return nil
}

// sendCommand sends cmd with RS low and waits out the long instructions.
func (lcd *Dev) sendCommand(cmd Command) error {
	if err := lcd.sendByte(byte(cmd), false); err != nil {
		return err
	}
	if cmd == CmdClear || cmd == CmdReturnHome {
		lcd.clock.Sleep(delayClear)
	}
	return nil
}

// rowOffset returns the DDRAM address of the first column of row. Rows 2 and
// 3 continue rows 0 and 1 past the visible width.
func (lcd *Dev) rowOffset(row int) byte {
	switch row {
	case 1:
		return 0x40
	case 2:
		return byte(lcd.cols)
	case 3:
		return 0x40 + byte(lcd.cols)
	}
	return 0
}

func (lcd *Dev) setDDRAMAddress(row, col int) error {
	return lcd.sendCommand(SetDDRAMAddress(lcd.rowOffset(row) + byte(col)))
}
