// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/host/v3/cpu"
)

// BusWriter writes a single byte to the device at addr. It is the only
// transport capability the driver needs; the controller is never read back.
type BusWriter interface {
	SendByte(addr uint16, b byte) error
}

// Clock blocks the caller for at least d. Implementations must honour
// microsecond durations; a millisecond-only clock violates the enable pulse
// and settle timings.
type Clock interface {
	Sleep(d time.Duration)
}

// I2CWriter adapts an i2c.Bus to BusWriter. Each byte is sent as its own
// write transaction, which is what PCF8574 style backpacks expect.
type I2CWriter struct {
	Bus i2c.Bus
}

// SendByte implements BusWriter.
func (w *I2CWriter) SendByte(addr uint16, b byte) error {
	return w.Bus.Tx(addr, []byte{b}, nil)
}

func (w *I2CWriter) String() string {
	return w.Bus.String()
}

// HostClock sleeps using the host. Durations under a millisecond are spun
// since the kernel scheduler can't be trusted with them.
type HostClock struct{}

// Sleep implements Clock.
func (HostClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if d < time.Millisecond {
		cpu.Nanospin(d)
		return
	}
	time.Sleep(d)
}

// DefaultAddresses are the addresses PCF8574 (0x27) and PCF8574A (0x3f)
// backpacks ship with.
var DefaultAddresses = []uint16{0x27, 0x3f}

// FindAddress probes each candidate with a single write that leaves E low and
// returns the first address that acknowledged. With no candidates,
// DefaultAddresses are tried.
func FindAddress(w BusWriter, candidates ...uint16) (uint16, error) {
	if len(candidates) == 0 {
		candidates = DefaultAddresses
	}
	for _, addr := range candidates {
		if err := w.SendByte(addr, PCF8574Layout.BL); err == nil {
			return addr, nil
		}
	}
	return 0, ErrNoDevice
}

var _ BusWriter = &I2CWriter{}
var _ Clock = HostClock{}
