// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"github.com/GermanBionicSystems/hd44780i2c/mcp23xxx"
	"github.com/GermanBionicSystems/hd44780i2c/nxp74hc595"
	"github.com/GermanBionicSystems/hd44780i2c/pcf857x"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"
)

// NewPCF857xBackpack returns an initialized display on a PCF8574 backpack.
//
// # Product Information
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
//
// These are the common blue/green LCD1602 and LCD2004 modules. The address is
// 0x27 for a PCF8574 and 0x3f for a PCF8574A, unless the solder jumpers were
// changed.
func NewPCF857xBackpack(bus i2c.Bus, address uint16, rows, cols int) (*Dev, error) {
	pcf, err := pcf857x.New(bus, address, pcf857x.PCF8574)
	if err != nil {
		return nil, err
	}
	return newBackpack(pcf, &Opts{Addr: address, Rows: rows, Cols: cols, Layout: &PCF8574Layout})
}

// NewAdafruitI2CBackpack returns an initialized display on the I2C side of the
// Adafruit I2C/SPI LCD Backpack.
//
// # Product Information
//
// https://www.adafruit.com/product/292
//
// The I2C side of this backpack uses an MCP23008 I/O expander, default
// address 0x20.
func NewAdafruitI2CBackpack(bus i2c.Bus, address uint16, rows, cols int) (*Dev, error) {
	mcp, err := mcp23xxx.NewI2C(bus, mcp23xxx.MCP23008, address)
	if err != nil {
		return nil, err
	}
	return newBackpack(mcp, &Opts{Addr: address, Rows: rows, Cols: cols, Layout: &AdafruitI2CLayout})
}

// NewAdafruitSPIBackpack returns an initialized display on the SPI side of
// the Adafruit I2C/SPI backpack. The SPI side uses a 74HC595 Serial->Parallel
// shift register.
func NewAdafruitSPIBackpack(conn spi.Conn, rows, cols int) (*Dev, error) {
	chip, err := nxp74hc595.New(conn)
	if err != nil {
		return nil, err
	}
	return newBackpack(chip, &Opts{Rows: rows, Cols: cols, Layout: &AdafruitSPILayout})
}

func newBackpack(w BusWriter, opts *Opts) (*Dev, error) {
	lcd, err := New(w, opts)
	if err != nil {
		return nil, err
	}
	if err = lcd.Init(); err != nil {
		return nil, err
	}
	return lcd, nil
}

var _ BusWriter = &pcf857x.Dev{}
var _ BusWriter = &mcp23xxx.Dev{}
var _ BusWriter = &nxp74hc595.Dev{}
