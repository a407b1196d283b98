// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780_test

import (
	"bytes"
	"testing"

	"github.com/GermanBionicSystems/hd44780i2c/hd44780"
	"github.com/GermanBionicSystems/hd44780i2c/lcdsim"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spitest"
)

// remap translates an expander value from layout to the PCF8574 wiring the
// simulator understands.
func remap(v byte, from hd44780.Layout) byte {
	to := hd44780.PCF8574Layout
	pairs := [][2]byte{{from.RS, to.RS}, {from.E, to.E}, {from.BL, to.BL}}
	for ix := range from.D {
		pairs = append(pairs, [2]byte{from.D[ix], to.D[ix]})
	}
	var out byte
	for _, p := range pairs {
		if v&p[0] != 0 {
			out |= p[1]
		}
	}
	return out
}

func newSim(addr uint16, rows, cols int) *lcdsim.Dev {
	return lcdsim.New(&lcdsim.Opts{Addr: addr, Rows: rows, Cols: cols, W: &bytes.Buffer{}})
}

func TestPCF857xBackpack(t *testing.T) {
	rec := &i2ctest.Record{}
	lcd, err := hd44780.NewPCF857xBackpack(rec, 0x27, 2, 16)
	if err != nil {
		t.Fatal(err)
	}
	if err = lcd.WriteText("pcf8574"); err != nil {
		t.Fatal(err)
	}
	sim := newSim(0x27, 2, 16)
	replay(t, rec.Ops, sim)
	checkText(t, sim, "pcf8574         ")
}

func TestAdafruitI2CBackpack(t *testing.T) {
	rec := &i2ctest.Record{}
	lcd, err := hd44780.NewAdafruitI2CBackpack(rec, 0x20, 2, 16)
	if err != nil {
		t.Fatal(err)
	}
	if err = lcd.WriteText("mcp23008"); err != nil {
		t.Fatal(err)
	}
	if len(rec.Ops) == 0 || !bytes.Equal(rec.Ops[0].W, []byte{0x00, 0x00}) {
		t.Fatalf("expected IODIR configuration first, received %#v", rec.Ops)
	}
	sim := newSim(0x20, 2, 16)
	for _, op := range rec.Ops[1:] {
		if len(op.W) != 2 || op.W[0] != 0x0a {
			t.Fatalf("expected OLAT write, received %#v", op)
		}
		if err = sim.SendByte(op.Addr, remap(op.W[1], hd44780.AdafruitI2CLayout)); err != nil {
			t.Fatal(err)
		}
	}
	checkText(t, sim, "mcp23008        ")
}

func TestAdafruitSPIBackpack(t *testing.T) {
	rec := &spitest.Record{Ops: make([]conntest.IO, 0)}
	defer rec.Close()
	conn, err := rec.Connect(physic.MegaHertz, spi.Mode1, 8)
	if err != nil {
		t.Fatal(err)
	}
	lcd, err := hd44780.NewAdafruitSPIBackpack(conn, 2, 16)
	if err != nil {
		t.Fatal(err)
	}
	if err = lcd.WriteText("74hc595"); err != nil {
		t.Fatal(err)
	}
	sim := newSim(lcd.Addr(), 2, 16)
	for _, op := range rec.Ops {
		if len(op.W) != 1 {
			t.Fatalf("expected single byte writes, received %#v", op)
		}
		if err = sim.SendByte(lcd.Addr(), remap(op.W[0], hd44780.AdafruitSPILayout)); err != nil {
			t.Fatal(err)
		}
	}
	checkText(t, sim, "74hc595         ")
}
