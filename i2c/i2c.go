// Package i2c provides bus transports for the expander package: the Linux
// i2c-dev interface and a tracing wrapper around any bus.
package i2c

import (
	"github.com/makbe/makbe/expander"
	"github.com/makbe/makbe/internal/log"
)

// Traced forwards every transaction to a bus and records it in a raw
// logger. Failed transactions are not recorded.
type Traced struct {
	bus expander.Bus
	raw log.RawLogger
}

func NewTraced(bus expander.Bus, raw log.RawLogger) *Traced {
	return &Traced{bus: bus, raw: raw}
}

func (t *Traced) Write(addr uint8, data []byte) error {
	if err := t.bus.Write(addr, data); err != nil {
		return err
	}
	t.raw.Log(addr, false, data)
	return nil
}

func (t *Traced) WriteRead(addr uint8, out, in []byte) error {
	if err := t.bus.WriteRead(addr, out, in); err != nil {
		return err
	}
	t.raw.Log(addr, false, out)
	t.raw.Log(addr, true, in)
	return nil
}
