// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim

import (
	"image/color"
	"io"
	"strings"
)

var (
	lit   = color.NRGBA{0x9a, 0xcd, 0x32, 255}
	unlit = color.NRGBA{0x30, 0x38, 0x20, 255}
)

// Refresh prints the panel to the terminal. A colored block on each row shows
// the backlight.
func (d *Dev) Refresh() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	bl := unlit
	if d.backlight {
		bl = lit
	}
	block := d.palette.Block(bl)
	blank := strings.Repeat(" ", d.cols)
	for _, line := range d.text() {
		if !d.on {
			line = blank
		}
		_, _ = d.buf.WriteString("\r\033[0m")
		_, _ = io.WriteString(&d.buf, block)
		_, _ = d.buf.WriteString("\033[0m ")
		_, _ = d.buf.WriteString(line)
		_, _ = d.buf.WriteString(" \n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}
