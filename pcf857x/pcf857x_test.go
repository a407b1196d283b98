// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf857x

import (
	"errors"
	"strings"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
)

// failBus rejects every transaction.
type failBus struct{}

var errNack = errors.New("nack")

func (failBus) String() string                    { return "failBus" }
func (failBus) Tx(addr uint16, w, r []byte) error { return errNack }
func (failBus) SetSpeed(f physic.Frequency) error { return nil }

// Test basic dev functions.
func TestBasic(t *testing.T) {
	bus := &i2ctest.Playback{DontPanic: true}
	dev, err := New(bus, DefaultAddress, PCF8575)
	if err != nil {
		t.Fatal(err)
	}
	s := dev.String()
	if len(s) == 0 {
		t.Error("String() failure")
	}
	if !strings.HasPrefix(s, string(PCF8575)) {
		t.Errorf("String()=%s expected prefix %s", s, PCF8575)
	}
	if v := dev.Value(); v != 0xffff {
		t.Errorf("power on value expected 0xffff, received 0x%x", v)
	}
	if _, err = New(bus, DefaultAddress, Variant("PCF8573")); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, received %v", err)
	}
	if err = dev.Halt(); err != nil {
		t.Error(err)
	}
	if err = dev.Out(0); err == nil {
		t.Error("expected error writing to a halted device")
	}
}

func TestOut(t *testing.T) {
	var tests = []struct {
		variant Variant
		value   uint16
		w       []byte
	}{
		{variant: PCF8574, value: 0x00a5, w: []byte{0xa5}},
		{variant: PCF8574, value: 0xff0f, w: []byte{0x0f}},
		{variant: PCF8575, value: 0x1234, w: []byte{0x34, 0x12}},
	}
	for _, test := range tests {
		bus := &i2ctest.Playback{Ops: []i2ctest.IO{{Addr: 0x27, W: test.w}}, DontPanic: true}
		dev, err := New(bus, 0x27, test.variant)
		if err != nil {
			t.Fatal(err)
		}
		if err = dev.Out(test.value); err != nil {
			t.Errorf("%s Out(0x%x): %v", test.variant, test.value, err)
		}
		if err = bus.Close(); err != nil {
			t.Error(err)
		}
	}
}

// Repeated values must reach the bus, an LCD strobe depends on them.
func TestSendByteRepeats(t *testing.T) {
	ops := []i2ctest.IO{
		{Addr: 0x27, W: []byte{0x38}},
		{Addr: 0x27, W: []byte{0x38}},
		{Addr: 0x27, W: []byte{0x3c}},
	}
	bus := &i2ctest.Playback{Ops: ops, DontPanic: true}
	dev, err := New(bus, 0x27, PCF8574)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range []byte{0x38, 0x38, 0x3c} {
		if err = dev.SendByte(0x27, b); err != nil {
			t.Error(err)
		}
	}
	if err = bus.Close(); err != nil {
		t.Error(err)
	}
	if v := dev.Value(); v != 0x3c {
		t.Errorf("Value() expected 0x3c, received 0x%x", v)
	}
}

// On a PCF8575, SendByte only changes the low port.
func TestSendByteKeepsHighPort(t *testing.T) {
	ops := []i2ctest.IO{
		{Addr: DefaultAddress, W: []byte{0x00, 0xa0}},
		{Addr: DefaultAddress, W: []byte{0x5a, 0xa0}},
	}
	bus := &i2ctest.Playback{Ops: ops, DontPanic: true}
	dev, err := New(bus, DefaultAddress, PCF8575)
	if err != nil {
		t.Fatal(err)
	}
	if err = dev.Out(0xa000); err != nil {
		t.Fatal(err)
	}
	if err = dev.SendByte(DefaultAddress, 0x5a); err != nil {
		t.Fatal(err)
	}
	if v := dev.Value(); v != 0xa05a {
		t.Errorf("Value() expected 0xa05a, received 0x%x", v)
	}
}

func TestWriteError(t *testing.T) {
	dev, err := New(failBus{}, DefaultAddress, PCF8574)
	if err != nil {
		t.Fatal(err)
	}
	err = dev.SendByte(DefaultAddress, 0)
	if !errors.Is(err, errNack) {
		t.Errorf("expected wrapped nack, received %v", err)
	}
	if !strings.HasPrefix(err.Error(), "pcf857x:") {
		t.Errorf("error not prefixed: %s", err)
	}
	if v := dev.Value(); v != 0xff {
		t.Errorf("failed write changed Value() to 0x%x", v)
	}
}
