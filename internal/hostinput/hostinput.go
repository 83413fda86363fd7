// Package hostinput lets a keyboard attached to the host stand in for the
// switches of a layout: host key events press and release the expander pins
// of an emulated bus.
package hostinput

import (
	"fmt"

	"github.com/makbe/makbe/keyswitch"
	"github.com/makbe/makbe/layout"
	"github.com/makbe/makbe/virtualbus"
)

// Key event values of the Linux input subsystem.
const (
	ValueRelease int32 = 0
	ValuePress   int32 = 1
	ValueRepeat  int32 = 2
)

// Driver maps host key codes to the pins of the switches they stand for.
type Driver struct {
	kb  *layout.Keyboard
	bus *virtualbus.Bus
}

func NewDriver(kb *layout.Keyboard, bus *virtualbus.Bus) *Driver {
	return &Driver{kb: kb, bus: bus}
}

// Key applies one host key event and reports whether code is mapped to a
// switch. Repeats are ignored.
func (d *Driver) Key(code uint16, value int32) (bool, error) {
	ref, ok := d.kb.HostKey(int(code))
	if !ok {
		return false, nil
	}
	if value == ValueRepeat {
		return true, nil
	}
	return true, d.Switch(ref, value == ValuePress)
}

// Switch presses or releases every pin ref is wired to.
func (d *Driver) Switch(ref keyswitch.Ref, pressed bool) error {
	pins := d.kb.Pins(ref)
	if len(pins) == 0 {
		return fmt.Errorf("switch %q is not wired to any pin", d.kb.Pool.Name(ref))
	}
	for _, p := range pins {
		addr := d.kb.Devices[p.Device].Address()
		var err error
		if pressed {
			err = d.bus.Press(addr, p.Pin)
		} else {
			err = d.bus.Release(addr, p.Pin)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
