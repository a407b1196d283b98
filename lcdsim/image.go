// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim

import (
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	cellW  = 12
	cellH  = 20
	margin = 8
)

var (
	ink     = color.NRGBA{0x10, 0x18, 0x08, 255}
	faceErr error
	face    font.Face
	once    sync.Once
)

func monoFace() (font.Face, error) {
	once.Do(func() {
		f, err := truetype.Parse(gomono.TTF)
		if err != nil {
			faceErr = err
			return
		}
		face = truetype.NewFace(f, &truetype.Options{Size: 16, DPI: 72})
	})
	return face, faceErr
}

// Image draws the panel as it would look, one cell per character.
func (d *Dev) Image() (image.Image, error) {
	ff, err := monoFace()
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	lines := d.text()
	on, cursor, blink, bl := d.on, d.cursor, d.blink, d.backlight
	row, col, visible := d.position()
	d.mu.Unlock()

	dc := gg.NewContext(2*margin+d.cols*cellW, 2*margin+d.rows*cellH)
	if bl {
		dc.SetColor(lit)
	} else {
		dc.SetColor(unlit)
	}
	dc.Clear()
	if !on {
		return dc.Image(), nil
	}
	dc.SetFontFace(ff)
	dc.SetColor(ink)
	for r, line := range lines {
		y := float64(margin + (r+1)*cellH - 5)
		for c, ch := range []rune(line) {
			dc.DrawString(string(ch), float64(margin+c*cellW), y)
		}
	}
	if visible {
		x := float64(margin + col*cellW)
		y := float64(margin + row*cellH)
		if blink {
			dc.DrawRectangle(x, y, cellW-1, cellH-1)
			dc.Fill()
		}
		if cursor {
			dc.DrawRectangle(x, y+cellH-3, cellW-1, 2)
			dc.Fill()
		}
	}
	return dc.Image(), nil
}

// SavePNG writes Image to path.
func (d *Dev) SavePNG(path string) error {
	img, err := d.Image()
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}
