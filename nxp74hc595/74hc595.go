// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// The 74HC595 is a serial shift register. It converts a serial stream to a
// parallel output. For example, you can use it as an SPI => Parallel
// converter.
//
// # Datasheet
//
// https://www.nexperia.com/product/74HC595D
//
// There's a nice tutorial on the device here:
//
// https://docs.arduino.cc/tutorials/communication/guide-to-shift-out/
package nxp74hc595

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/spi"
)

const devName = "74HC595"

var ErrHalted = errors.New("nxp74hc595: device halted")

// Dev represents a 74hc595 device.
type Dev struct {
	mu    sync.Mutex
	conn  spi.Conn
	value byte
}

// New accepts an spi.Conn and returns a new HC74595 device.
func New(conn spi.Conn) (*Dev, error) {
	return &Dev{conn: conn}, nil
}

// Out shifts value into the register and latches it on the outputs.
func (dev *Dev) Out(value byte) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.conn == nil {
		return ErrHalted
	}
	if err := dev.conn.Tx([]byte{value}, nil); err != nil {
		return fmt.Errorf("nxp74hc595: %w", err)
	}
	dev.value = value
	return nil
}

// SendByte is Out for callers that address their writes. SPI selects the
// device with the chip select line, so addr is ignored.
func (dev *Dev) SendByte(addr uint16, b byte) error {
	return dev.Out(b)
}

// Value returns the last value latched.
func (dev *Dev) Value() byte {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.value
}

// Halt disables the device
func (dev *Dev) Halt() (err error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.conn = nil
	return
}

func (dev *Dev) String() string {
	return devName
}
