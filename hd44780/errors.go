// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/display"
)

const packageName = "hd44780"

var (
	// ErrOutOfBounds is returned when a row or column lies outside the
	// configured geometry. Nothing is written to the bus.
	ErrOutOfBounds = errors.New("hd44780: position out of bounds")
	// ErrNotInitialized is returned by any operation that talks to the
	// controller before Init completed successfully.
	ErrNotInitialized = errors.New("hd44780: display not initialized")
	// ErrUnsupportedGeometry is returned by New for rows/cols the controller
	// can't address.
	ErrUnsupportedGeometry = errors.New("hd44780: unsupported geometry")
	// ErrNoDevice is returned by FindAddress when no candidate acknowledged.
	ErrNoDevice = errors.New("hd44780: no device found")
	// ErrNotImplemented is returned for TextDisplay features the controller
	// lacks. It matches display.ErrNotImplemented with errors.Is.
	ErrNotImplemented = fmt.Errorf("%s: %w", packageName, display.ErrNotImplemented)
)

// BusError reports a failed write to the expander. The controller is left in
// an unknown state and Init must be run again to recover.
type BusError struct {
	Addr uint16
	Err  error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("%s: write to 0x%02x failed: %v", packageName, e.Addr, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}
