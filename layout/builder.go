package layout

import (
	"errors"
	"fmt"

	"github.com/makbe/makbe/expander"
	"github.com/makbe/makbe/keycode"
	"github.com/makbe/makbe/keyswitch"
	"github.com/makbe/makbe/virtualbus"
)

// Keyboard is a built layout: the switch pool and the expanders wired to it.
type Keyboard struct {
	Name     string
	Debounce uint16
	Pool     *keyswitch.Pool
	Devices  []*expander.Device

	hostKeys map[int]keyswitch.Ref
	pins     map[keyswitch.Ref][]Pin
	unbound  int
}

// Pin locates one expander pin: the index of its device in Devices and the
// pin number on that device.
type Pin struct {
	Device int
	Pin    int
}

// Pins returns every pin ref is wired to.
func (k *Keyboard) Pins(ref keyswitch.Ref) []Pin { return k.pins[ref] }

// HostKey returns the switch mapped to a Linux input key code.
func (k *Keyboard) HostKey(code int) (keyswitch.Ref, bool) {
	ref, ok := k.hostKeys[code]
	return ref, ok
}

// HostKeys returns the number of switches with a host key.
func (k *Keyboard) HostKeys() int { return len(k.hostKeys) }

// Unbound returns the number of device pins without a switch, counting both
// empty names and pins past the end of a device's list.
func (k *Keyboard) Unbound() int { return k.unbound }

// NewVirtualBus returns an emulated bus populated with one chip per device.
func (k *Keyboard) NewVirtualBus() (*virtualbus.Bus, error) {
	bus := virtualbus.New()
	for _, d := range k.Devices {
		if _, err := bus.Add(d.Family(), d.Address()-expander.BaseAddress); err != nil {
			return nil, err
		}
	}
	return bus, nil
}

type deviceDef struct {
	family expander.Family
	offset uint8
	pins   []string
}

// Builder assembles a Keyboard in code. Errors are collected and returned
// together by Build.
type Builder struct {
	name     string
	debounce uint16
	pool     *keyswitch.Pool
	devices  []deviceDef
	hostKeys map[int]keyswitch.Ref
	errs     []error
}

func NewBuilder(name string) *Builder {
	return &Builder{
		name:     name,
		debounce: DefaultDebounce,
		pool:     keyswitch.NewPool(),
		hostKeys: make(map[int]keyswitch.Ref),
	}
}

// Debounce sets the debounce limit of every device.
func (b *Builder) Debounce(ticks uint16) *Builder {
	b.debounce = ticks
	return b
}

// Switch adds a named switch.
func (b *Builder) Switch(name string, s keyswitch.Switch) *Builder {
	if _, err := b.pool.Add(name, s); err != nil {
		b.errs = append(b.errs, located("switch "+name, err))
	}
	return b
}

// HostKey maps a host keyboard key to the named switch for host mode.
func (b *Builder) HostKey(name string, c keycode.Code) *Builder {
	ref, ok := b.pool.Lookup(name)
	if !ok {
		b.errs = append(b.errs, problemf("switch "+name, "host key for unknown switch"))
		return b
	}
	code, ok := c.Linux()
	if !ok {
		b.errs = append(b.errs, problemf("switch "+name, "no host key for %s", c))
		return b
	}
	if other, dup := b.hostKeys[code]; dup {
		b.errs = append(b.errs, problemf("switch "+name, "host key %s already used by %s", c, b.pool.Name(other)))
		return b
	}
	b.hostKeys[code] = ref
	return b
}

// Device adds an expander at BaseAddress+offset. pins lists the switch
// wired to each pin in order; an empty name leaves the pin unbound.
func (b *Builder) Device(family expander.Family, offset uint8, pins ...string) *Builder {
	b.devices = append(b.devices, deviceDef{family: family, offset: offset, pins: pins})
	return b
}

// Build wires every device and returns the keyboard.
func (b *Builder) Build() (*Keyboard, error) {
	kb := &Keyboard{
		Name:     b.name,
		Debounce: b.debounce,
		Pool:     b.pool,
		hostKeys: b.hostKeys,
		pins:     make(map[keyswitch.Ref][]Pin),
	}
	errs := append([]error(nil), b.errs...)

	offsets := make(map[uint8]int)
	for i, def := range b.devices {
		at := fmt.Sprintf("devices[%d]", i)
		if def.offset > 7 {
			errs = append(errs, problemf(at, "offset %d out of range 0-7", def.offset))
			continue
		}
		if prev, dup := offsets[def.offset]; dup {
			errs = append(errs, problemf(at, "offset %d already used by devices[%d]", def.offset, prev))
			continue
		}
		offsets[def.offset] = i

		d := expander.New(def.family, b.pool, def.offset, b.debounce)
		idx := len(kb.Devices)
		for pin, name := range def.pins {
			if name == "" {
				kb.unbound++
				continue
			}
			ref, ok := b.pool.Lookup(name)
			if !ok {
				errs = append(errs, problemf(fmt.Sprintf("%s.pins[%d]", at, pin), "unknown switch %q", name))
				continue
			}
			if err := d.Assign(pin, ref); err != nil {
				errs = append(errs, located(fmt.Sprintf("%s.pins[%d]", at, pin), err))
				continue
			}
			kb.pins[ref] = append(kb.pins[ref], Pin{Device: idx, Pin: pin})
		}
		// pins past the end of the list are unbound as well
		kb.unbound += max(def.family.Pins()-len(def.pins), 0)
		kb.Devices = append(kb.Devices, d)
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Problems: errs}
	}
	return kb, nil
}

// IsValidation reports whether err is a layout validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
