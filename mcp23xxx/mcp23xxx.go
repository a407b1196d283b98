// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp23xxx

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
)

// Variant is the chip model.
type Variant string

const (
	MCP23008 Variant = "MCP23008"
	MCP23017 Variant = "MCP23017"

	DefaultAddress uint16 = 0x20
)

var ErrUnknownVariant = errors.New("mcp23xxx: unknown variant")

// Register addresses of port A, with IOCON.BANK=0 on the 16 bit parts.
type registers struct {
	iodir byte
	olat  byte
}

var variantRegisters = map[Variant]registers{
	MCP23008: {iodir: 0x00, olat: 0x0a},
	MCP23017: {iodir: 0x00, olat: 0x14},
}

// Dev is an MCP23XXX expander with port A configured as outputs.
type Dev struct {
	variant Variant
	regs    registers

	mu         sync.Mutex
	bus        i2c.Bus
	addr       uint16
	configured map[uint16]bool
	value      byte
}

// NewI2C returns a device at address with port A set to outputs.
func NewI2C(bus i2c.Bus, variant Variant, address uint16) (*Dev, error) {
	regs, ok := variantRegisters[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
	dev := &Dev{
		variant:    variant,
		regs:       regs,
		bus:        bus,
		addr:       address,
		configured: make(map[uint16]bool),
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if err := dev.configure(address); err != nil {
		return nil, err
	}
	return dev, nil
}

// configure switches every pin of port A at addr to output.
func (dev *Dev) configure(addr uint16) error {
	if dev.configured[addr] {
		return nil
	}
	if err := dev.bus.Tx(addr, []byte{dev.regs.iodir, 0x00}, nil); err != nil {
		return fmt.Errorf("mcp23xxx: %w", err)
	}
	dev.configured[addr] = true
	return nil
}

// Out writes value to the output latch of port A.
func (dev *Dev) Out(value byte) error {
	return dev.SendByte(dev.addr, value)
}

// SendByte writes b to the output latch of port A of the expander at addr,
// configuring it first if this is the first write there.
func (dev *Dev) SendByte(addr uint16, b byte) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.bus == nil {
		return errors.New("mcp23xxx: device halted")
	}
	if err := dev.configure(addr); err != nil {
		return err
	}
	if err := dev.bus.Tx(addr, []byte{dev.regs.olat, b}, nil); err != nil {
		return fmt.Errorf("mcp23xxx: %w", err)
	}
	if addr == dev.addr {
		dev.value = b
	}
	return nil
}

// Value returns the last value written to port A.
func (dev *Dev) Value() byte {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.value
}

// Halt releases the bus. The device can't be used after this call.
func (dev *Dev) Halt() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.bus = nil
	return nil
}

func (dev *Dev) String() string {
	return fmt.Sprintf("%s_%x", dev.variant, dev.addr)
}
