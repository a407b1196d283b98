// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// This package provides a driver for the TI/NXP PCF857X I2C I/O Expander. These
// devices provide 8 pins (PCF8574) or 16 pins (PCF8575) of
// "quasi-bidirectional" output. This device is commonly used in LCD
// backpacks, particularly those sold as LCD2004, LCD1602.
//
// The PCF8575 is a 16-pin device that is functionally identical to the PCF8574.
// When communicating with the PCF8575 writes are 2 bytes wide, while they're
// one byte wide with the PCF8574.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/pcf8574.pdf
//
// A good description of the I2C LCD backpack usage can be found here:
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
//
// # Notes
//
// This chip doesn't implement normal i2c register architectures. You write 8 or
// 16 bits out, and that sets the corresponding pins.
//
// Every write goes to the bus, even when the value is unchanged. An LCD
// strobes data with repeated writes, so skipping them would break it.
package pcf857x

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
)

// Variant represents the actual chip model.
type Variant string

const (
	PCF8574 Variant = "PCF8574"
	PCF8575 Variant = "PCF8575"

	DefaultAddress uint16 = 0x20
)

var (
	ErrUnknownVariant = errors.New("pcf857x: unknown variant")
)

// Dev is representation of a PCF857x device.
type Dev struct {
	chipType Variant
	width    int

	mu    sync.Mutex
	bus   i2c.Bus
	addr  uint16
	value uint16
}

// New creates a new PCF857x io expander and returns it. chip should be one of
// the Variant constants above. Nothing is written until the first Out.
func New(bus i2c.Bus, address uint16, chip Variant) (*Dev, error) {
	dev := &Dev{bus: bus, addr: address, chipType: chip}
	switch chip {
	case PCF8574:
		dev.width = 8
	case PCF8575:
		dev.width = 16
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, chip)
	}
	// Power on state is all pins high.
	dev.value = uint16((1 << dev.width) - 1)
	return dev, nil
}

// Out sets all the pins of the device.
func (dev *Dev) Out(value uint16) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.write(dev.addr, value)
}

// SendByte sets the low 8 pins of the expander at addr. On a PCF8575 the high
// 8 pins keep their last value. It lets the device serve as a single byte
// bus writer.
func (dev *Dev) SendByte(addr uint16, b byte) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.write(addr, dev.value&0xff00|uint16(b))
}

// Value returns the last value successfully written.
func (dev *Dev) Value() uint16 {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.value
}

// write performs the low-level write to the device.
func (dev *Dev) write(addr uint16, value uint16) error {
	if dev.bus == nil {
		return errors.New("pcf857x: device halted")
	}
	byteCount := dev.width / 8
	w := make([]byte, byteCount)
	for ix := range byteCount {
		w[ix] = byte(value >> (ix * 8))
	}
	if err := dev.bus.Tx(addr, w, nil); err != nil {
		return fmt.Errorf("pcf857x: %w", err)
	}
	if addr == dev.addr {
		dev.value = value & uint16((1<<dev.width)-1)
	}
	return nil
}

// Halt releases the bus. The device can't be used after this call.
func (dev *Dev) Halt() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.bus = nil
	return nil
}

func (dev *Dev) String() string {
	return fmt.Sprintf("%s_%x", dev.chipType, dev.addr)
}
