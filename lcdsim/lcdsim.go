// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdsim emulates an HD44780 character LCD behind a PCF8574 backpack.
//
// Dev accepts the same byte stream a real backpack would, latches nibbles on
// the falling edge of E and executes the resulting instructions against its
// own DDRAM. The result can be inspected as text, printed at the terminal
// with ANSI color codes, or drawn to an image.
//
// Useful while you are waiting for your LCD2004 to come by mail.
package lcdsim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Expander bits, as wired on PCF8574 backpacks.
const (
	bitRS byte = 0x01
	bitE  byte = 0x04
	bitBL byte = 0x08
)

const ddramSize = 0x80

// ErrNoAck is returned for writes to an address other than the emulated one.
var ErrNoAck = errors.New("lcdsim: no acknowledge")

// Opts represents the options available for this display. Zero fields take
// the values of DefaultOpts.
type Opts struct {
	Addr    uint16
	Rows    int
	Cols    int
	Palette *ansi256.Palette
	// W receives Refresh output. Defaults to a colorable stdout.
	W io.Writer

	_ struct{}
}

// DefaultOpts is a 2x16 display at the usual PCF8574 address.
var DefaultOpts = Opts{Addr: 0x27, Rows: 2, Cols: 16}

// Op is an instruction or data byte as executed by the controller.
type Op struct {
	RS    bool
	Value byte
}

// Dev is an emulated HD44780 on a PCF8574 backpack.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	addr    uint16
	rows    int
	cols    int

	mu        sync.Mutex
	last      byte
	writes    int
	fourBit   bool
	half      bool
	high      byte
	ddram     [ddramSize]byte
	ac        byte
	increment bool
	shift     bool
	on        bool
	cursor    bool
	blink     bool
	twoLine   bool
	backlight bool
	ops       []Op

	buf bytes.Buffer
}

// New returns a Dev in the controller's power-on state: 8-bit interface,
// display off, DDRAM blank.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	o := *opts
	if o.Addr == 0 {
		o.Addr = DefaultOpts.Addr
	}
	if o.Rows == 0 {
		o.Rows = DefaultOpts.Rows
	}
	if o.Cols == 0 {
		o.Cols = DefaultOpts.Cols
	}
	opts = &o
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	d := &Dev{
		w:         w,
		palette:   *p,
		addr:      opts.Addr,
		rows:      opts.Rows,
		cols:      opts.Cols,
		increment: true,
	}
	d.clear()
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("lcdsim::0x%02x %dx%d", d.addr, d.cols, d.rows)
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so it is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m"))
	return err
}

// SendByte accepts one expander write.
func (d *Dev) SendByte(addr uint16, b byte) error {
	if addr != d.addr {
		return fmt.Errorf("%w: 0x%02x", ErrNoAck, addr)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writes++
	d.backlight = b&bitBL != 0
	if d.last&bitE != 0 && b&bitE == 0 {
		d.latch(d.last>>4, d.last&bitRS != 0)
	}
	d.last = b
	return nil
}

// latch takes the nibble present on D4..D7 at the falling edge of E.
func (d *Dev) latch(nibble byte, rs bool) {
	if !d.fourBit {
		// D0..D3 aren't connected and read as 0.
		d.execute(nibble<<4, rs)
		return
	}
	if !d.half {
		d.high = nibble
		d.half = true
		return
	}
	d.half = false
	d.execute(d.high<<4|nibble, rs)
}

func (d *Dev) execute(v byte, rs bool) {
	d.ops = append(d.ops, Op{RS: rs, Value: v})
	if rs {
		d.ddram[d.ac] = v
		d.step()
		return
	}
	switch {
	case v&0x80 != 0:
		d.ac = v & 0x7f
	case v&0x40 != 0:
		// CGRAM address.
	case v&0x20 != 0:
		d.fourBit = v&0x10 == 0
		d.half = false
		d.twoLine = v&0x08 != 0
	case v&0x10 != 0:
		if v&0x08 == 0 {
			if v&0x04 != 0 {
				d.ac = d.next(d.ac)
			} else {
				d.ac = d.prev(d.ac)
			}
		}
	case v&0x08 != 0:
		d.on = v&0x04 != 0
		d.cursor = v&0x02 != 0
		d.blink = v&0x01 != 0
	case v&0x04 != 0:
		d.increment = v&0x02 != 0
		d.shift = v&0x01 != 0
	case v&0x02 != 0:
		d.ac = 0
	case v&0x01 != 0:
		d.clear()
		d.ac = 0
		d.increment = true
	}
}

func (d *Dev) clear() {
	for ix := range d.ddram {
		d.ddram[ix] = ' '
	}
}

func (d *Dev) step() {
	if d.increment {
		d.ac = d.next(d.ac)
	} else {
		d.ac = d.prev(d.ac)
	}
}

// In 2-line mode DDRAM is 0x00-0x27 and 0x40-0x67, and the address counter
// jumps between the two. In 1-line mode it is 0x00-0x4f.
func (d *Dev) next(a byte) byte {
	if !d.twoLine {
		return (a + 1) % 0x50
	}
	switch a {
	case 0x27:
		return 0x40
	case 0x67:
		return 0x00
	}
	return a + 1
}

func (d *Dev) prev(a byte) byte {
	if !d.twoLine {
		return (a + 0x4f) % 0x50
	}
	switch a {
	case 0x00:
		return 0x67
	case 0x40:
		return 0x27
	}
	return a - 1
}

func (d *Dev) rowOffset(row int) byte {
	switch row {
	case 1:
		return 0x40
	case 2:
		return byte(d.cols)
	case 3:
		return 0x40 + byte(d.cols)
	}
	return 0
}

// Text returns the visible characters, one string per row.
func (d *Dev) Text() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text()
}

func (d *Dev) text() []string {
	lines := make([]string, d.rows)
	for row := range d.rows {
		base := int(d.rowOffset(row))
		r := make([]rune, d.cols)
		for col := range d.cols {
			r[col] = romRune(d.ddram[base+col])
		}
		lines[row] = string(r)
	}
	return lines
}

// Cursor returns the visible position of the address counter. ok is false if
// it points outside the visible area.
func (d *Dev) Cursor() (row, col int, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.position()
}

func (d *Dev) position() (row, col int, ok bool) {
	for row = range d.rows {
		base := d.rowOffset(row)
		if d.ac >= base && int(d.ac) < int(base)+d.cols {
			return row, int(d.ac - base), true
		}
	}
	return 0, 0, false
}

// Address returns the raw DDRAM address counter.
func (d *Dev) Address() byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ac
}

// Display returns the display, cursor and blink flags.
func (d *Dev) Display() (on, cursor, blink bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.on, d.cursor, d.blink
}

// Backlight reports the backlight bit of the last write.
func (d *Dev) Backlight() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.backlight
}

// FourBit reports whether the interface is in 4-bit mode.
func (d *Dev) FourBit() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fourBit
}

// TwoLine reports whether Function Set selected 2-line mode.
func (d *Dev) TwoLine() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.twoLine
}

// EntryMode returns the increment and shift flags.
func (d *Dev) EntryMode() (increment, shift bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.increment, d.shift
}

// Ops returns every instruction and data byte executed so far.
func (d *Dev) Ops() []Op {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Op(nil), d.ops...)
}

// Writes returns the number of bus writes accepted.
func (d *Dev) Writes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes
}

// Glyphs of the A00 character ROM outside of ASCII.
var romA00 = map[byte]rune{
	0x5c: '¥',
	0x7e: '→',
	0x7f: '←',
	0xdf: '°',
	0xe0: 'α',
	0xe1: 'ä',
	0xe2: 'β',
	0xe3: 'ε',
	0xe4: 'µ',
	0xe5: 'σ',
	0xe6: 'ρ',
	0xe8: '√',
	0xec: '¢',
	0xee: 'ñ',
	0xef: 'ö',
	0xf2: 'θ',
	0xf3: '∞',
	0xf4: 'Ω',
	0xf5: 'ü',
	0xf6: 'Σ',
	0xf7: 'π',
	0xfd: '÷',
	0xff: '█',
}

func romRune(b byte) rune {
	if r, ok := romA00[b]; ok {
		return r
	}
	if b >= 0x20 && b < 0x80 {
		return rune(b)
	}
	return '?'
}
