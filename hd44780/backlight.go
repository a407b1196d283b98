// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import "periph.io/x/conn/v3/display"

// Backlight turns the backlight off for intensity 0 and on otherwise. The
// backpack transistor can't dim.
func (lcd *Dev) Backlight(intensity display.Intensity) error {
	return lcd.SetBacklight(intensity > 0)
}
