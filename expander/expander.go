// Package expander drives the TCA9554/TCA9555 family of I2C I/O expanders
// that the key switches are wired to.
//
// Both chips share the same register map and differ only in width: the
// TCA9554 (and PCA9554) has one 8-bit port, the TCA9555 two. A Device is one
// chip on the bus together with its debouncer and its pin to switch bindings.
package expander

import (
	"fmt"

	"github.com/makbe/makbe/debounce"
	"github.com/makbe/makbe/event"
	"github.com/makbe/makbe/keyswitch"
)

// BaseAddress is the bus address of a chip with all address pins low.
const BaseAddress = 0x20

// Register addresses.
const (
	RegInput0  = 0x00
	RegInput1  = 0x01
	RegConfig0 = 0x06
	RegConfig1 = 0x07
)

// Bus is the synchronous I2C transport the devices are polled over.
type Bus interface {
	Write(addr uint8, data []byte) error
	WriteRead(addr uint8, out, in []byte) error
}

// Family selects the chip variant.
type Family uint8

const (
	TCA9554 Family = iota
	TCA9555
)

// Pins returns the number of I/O pins of the family.
func (f Family) Pins() int {
	if f == TCA9555 {
		return 16
	}
	return 8
}

// Width returns the number of input register bytes of the family.
func (f Family) Width() int { return f.Pins() / 8 }

func (f Family) String() string {
	if f == TCA9555 {
		return "tca9555"
	}
	return "tca9554"
}

// ParseFamily accepts the chip names used in layout files.
func ParseFamily(s string) (Family, error) {
	switch s {
	case "tca9554", "pca9554", "TCA9554", "PCA9554":
		return TCA9554, nil
	case "tca9555", "pca9555", "TCA9555", "PCA9555":
		return TCA9555, nil
	default:
		return TCA9554, fmt.Errorf("unknown expander chip %q", s)
	}
}

// PinRangeError is returned when binding a pin the chip does not have.
type PinRangeError struct {
	Pin  int
	Pins int
}

func (e *PinRangeError) Error() string {
	return fmt.Sprintf("pin %d out of range (device has %d pins)", e.Pin, e.Pins)
}

// Device is one expander chip.
type Device struct {
	family    Family
	addr      uint8
	pool      *keyswitch.Pool
	debouncer *debounce.Debouncer
	switches  [debounce.MaxPins]keyswitch.Ref
	events    event.KeyEvents
	in        [2]byte
	reg       [1]byte
}

// New returns a device of the given family at BaseAddress+offset. Switch
// references bound with Assign are resolved against pool. debounceLimit is
// the number of extra agreeing polls required before a pin change is
// accepted.
func New(family Family, pool *keyswitch.Pool, offset uint8, debounceLimit uint16) *Device {
	return &Device{
		family:    family,
		addr:      BaseAddress + offset,
		pool:      pool,
		debouncer: debounce.New(family.Pins(), debounceLimit),
		events:    event.NewKeyEvents(),
	}
}

func NewTCA9554(pool *keyswitch.Pool, offset uint8, debounceLimit uint16) *Device {
	return New(TCA9554, pool, offset, debounceLimit)
}

func NewTCA9555(pool *keyswitch.Pool, offset uint8, debounceLimit uint16) *Device {
	return New(TCA9555, pool, offset, debounceLimit)
}

func (d *Device) Family() Family { return d.family }

func (d *Device) Address() uint8 { return d.addr }

func (d *Device) String() string {
	return fmt.Sprintf("%s@0x%02x", d.family, d.addr)
}

// Init configures every pin as an input.
func (d *Device) Init(bus Bus) error {
	if err := bus.Write(d.addr, []byte{RegConfig0, 0xFF}); err != nil {
		return fmt.Errorf("%s: configure port 0: %w", d, err)
	}
	if err := bus.Write(d.addr, []byte{RegConfig1, 0xFF}); err != nil {
		return fmt.Errorf("%s: configure port 1: %w", d, err)
	}
	return nil
}

// Read polls the input registers. Inputs are active low: a pressed switch
// pulls its pin to 0.
func (d *Device) Read(bus Bus) (State, error) {
	d.reg[0] = RegInput0
	in := d.in[:d.family.Width()]
	if err := bus.WriteRead(d.addr, d.reg[:], in); err != nil {
		return State{}, fmt.Errorf("%s: read inputs: %w", d, err)
	}
	var st State
	if d.family == TCA9555 {
		st.Kind = Pins16
	} else {
		st.Kind = Pins8
	}
	for i := 0; i < d.family.Pins(); i++ {
		st.Pins[i] = in[i/8]&(1<<(i%8)) == 0
	}
	return st, nil
}

// Assign binds pin to the switch ref.
func (d *Device) Assign(pin int, ref keyswitch.Ref) error {
	if pin < 0 || pin >= d.family.Pins() {
		return &PinRangeError{Pin: pin, Pins: d.family.Pins()}
	}
	d.switches[pin] = ref
	return nil
}

// Binding returns the switch bound to pin, DummyRef when unbound.
func (d *Device) Binding(pin int) keyswitch.Ref {
	if pin < 0 || pin >= d.family.Pins() {
		return keyswitch.DummyRef
	}
	return d.switches[pin]
}

// HasAssigned reports whether any bound switch has at least one action.
func (d *Device) HasAssigned() bool {
	for i := 0; i < d.family.Pins(); i++ {
		if d.pool.HasActions(d.switches[i]) {
			return true
		}
	}
	return false
}

// PickEvents debounces a polled state and returns the switch events it
// produced. Reserved value states produce nothing. The returned slice is
// reused by the next call.
func (d *Device) PickEvents(st State) []event.KeyEvent {
	d.events.Reset()
	pins := st.PinSlice()
	if pins == nil {
		return d.events.Items()
	}
	for _, ie := range d.debouncer.Events(pins) {
		ref := d.Binding(ie.Index)
		if ie.Kind == event.Pressed {
			d.events.Push(event.Press(ref))
		} else {
			d.events.Push(event.Release(ref))
		}
	}
	return d.events.Items()
}
