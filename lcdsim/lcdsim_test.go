// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

const testAddr = 0x27

func newTestDev(rows, cols int) (*Dev, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return New(&Opts{Addr: testAddr, Rows: rows, Cols: cols, W: buf}), buf
}

// strobe presents nibble with the backlight on and pulses E.
func strobe(t *testing.T, d *Dev, nibble byte, rs bool) {
	v := nibble<<4 | bitBL
	if rs {
		v |= bitRS
	}
	for _, b := range []byte{v, v | bitE, v} {
		if err := d.SendByte(testAddr, b); err != nil {
			t.Fatal(err)
		}
	}
}

func send(t *testing.T, d *Dev, b byte, rs bool) {
	strobe(t, d, b>>4, rs)
	strobe(t, d, b&0x0f, rs)
}

func initialize(t *testing.T, d *Dev) {
	for _, n := range []byte{3, 3, 3, 2} {
		strobe(t, d, n, false)
	}
	for _, c := range []byte{0x28, 0x0c, 0x01, 0x06} {
		send(t, d, c, false)
	}
}

func TestInitSequence(t *testing.T) {
	d, _ := newTestDev(4, 20)
	if d.FourBit() {
		t.Fatal("expected 8-bit mode at power on")
	}
	initialize(t, d)
	if !d.FourBit() || !d.TwoLine() {
		t.Errorf("FourBit()=%t TwoLine()=%t", d.FourBit(), d.TwoLine())
	}
	on, cursor, blink := d.Display()
	if !on || cursor || blink {
		t.Errorf("Display()=%t,%t,%t expected true,false,false", on, cursor, blink)
	}
	if inc, shift := d.EntryMode(); !inc || shift {
		t.Errorf("EntryMode()=%t,%t", inc, shift)
	}
	ops := d.Ops()
	expected := []byte{0x30, 0x30, 0x30, 0x20, 0x28, 0x0c, 0x01, 0x06}
	if len(ops) != len(expected) {
		t.Fatalf("expected %d ops, received %#v", len(expected), ops)
	}
	for ix, op := range ops {
		if op.RS || op.Value != expected[ix] {
			t.Errorf("op %d expected 0x%02x, received %#v", ix, expected[ix], op)
		}
	}
	if w := d.Writes(); w != 4*3+4*6 {
		t.Errorf("Writes()=%d", w)
	}
	if !d.Backlight() {
		t.Error("expected backlight on")
	}
}

func TestDataAndAddressing(t *testing.T) {
	d, _ := newTestDev(4, 20)
	initialize(t, d)
	send(t, d, 0x80|0x54, false)
	for _, c := range []byte("Hi") {
		send(t, d, c, true)
	}
	lines := d.Text()
	if !strings.HasPrefix(lines[3], "Hi") {
		t.Errorf("row 3 = %q", lines[3])
	}
	if row, col, ok := d.Cursor(); !ok || row != 3 || col != 2 {
		t.Errorf("Cursor()=%d,%d,%t expected 3,2,true", row, col, ok)
	}
	// 0x27 continues at 0x40.
	send(t, d, 0x80|0x27, false)
	send(t, d, 'x', true)
	if a := d.Address(); a != 0x40 {
		t.Errorf("Address()=0x%x expected 0x40", a)
	}
	// Return home.
	send(t, d, 0x02, false)
	if a := d.Address(); a != 0 {
		t.Errorf("Address()=0x%x after home", a)
	}
	// Cursor shift right then left.
	send(t, d, 0x14, false)
	send(t, d, 0x14, false)
	send(t, d, 0x10, false)
	if a := d.Address(); a != 1 {
		t.Errorf("Address()=0x%x after shifts", a)
	}
	// Clear blanks everything.
	send(t, d, 0x01, false)
	for ix, line := range d.Text() {
		if strings.TrimSpace(line) != "" {
			t.Errorf("row %d not blank after clear: %q", ix, line)
		}
	}
}

func TestRomRunes(t *testing.T) {
	d, _ := newTestDev(2, 16)
	initialize(t, d)
	for _, c := range []byte{'2', '1', 0xdf, 'C', 0x5c, 0x7e, 0x01} {
		send(t, d, c, true)
	}
	line := d.Text()[0]
	if !strings.HasPrefix(line, "21°C¥→?") {
		t.Errorf("row 0 = %q", line)
	}
}

func TestNewDefaults(t *testing.T) {
	d := New(nil)
	if d.addr != 0x27 || d.rows != 2 || d.cols != 16 {
		t.Errorf("nil opts expected 0x27 2x16, received 0x%02x %dx%d", d.addr, d.rows, d.cols)
	}
	if text := d.Text(); len(text) != 2 || text[0] != strings.Repeat(" ", 16) {
		t.Errorf("unexpected blank text %q", text)
	}
	d = New(&Opts{Cols: 20, W: &bytes.Buffer{}})
	if d.addr != 0x27 || d.rows != 2 || d.cols != 20 {
		t.Errorf("partial opts: 0x%02x %dx%d", d.addr, d.rows, d.cols)
	}
}

func TestNoAck(t *testing.T) {
	d, _ := newTestDev(2, 16)
	err := d.SendByte(0x3f, 0)
	if !errors.Is(err, ErrNoAck) {
		t.Errorf("expected ErrNoAck, received %v", err)
	}
	if d.Writes() != 0 {
		t.Error("write to another address was counted")
	}
}

func TestRefresh(t *testing.T) {
	d, buf := newTestDev(2, 16)
	initialize(t, d)
	for _, c := range []byte("periph") {
		send(t, d, c, true)
	}
	if err := d.Refresh(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "periph") {
		t.Errorf("Refresh() output missing text: %q", out)
	}
	if n := strings.Count(out, "\n"); n != 2 {
		t.Errorf("expected 2 rows, found %d", n)
	}

	// Display off hides the text.
	send(t, d, 0x08, false)
	buf.Reset()
	if err := d.Refresh(); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "periph") {
		t.Error("text shown with the display off")
	}
	if err := d.Halt(); err != nil {
		t.Error(err)
	}
}

func TestImage(t *testing.T) {
	d, _ := newTestDev(2, 16)
	initialize(t, d)
	send(t, d, 'A', true)
	img, err := d.Image()
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dx() != 2*margin+16*cellW || b.Dy() != 2*margin+2*cellH {
		t.Errorf("unexpected bounds %v", b)
	}
	// The margin shows the backlight color.
	r, g, _, _ := img.At(1, 1).RGBA()
	if r>>8 != uint32(lit.R) || g>>8 != uint32(lit.G) {
		t.Errorf("expected lit background, received %d,%d", r>>8, g>>8)
	}
}
