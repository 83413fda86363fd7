// Package virtualbus emulates an I2C bus populated with TCA9554/TCA9555
// expanders.
//
// Each emulated chip keeps a register file with the same layout as the real
// parts; switch presses are injected by pulling input pins low. A chip can be
// made to fail its transactions to exercise bus error handling.
package virtualbus

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/makbe/makbe/expander"
)

// ErrNoDevice is returned when no chip acknowledges an address.
var ErrNoDevice = errors.New("no device acknowledged address")

const registerCount = 8

type chip struct {
	family expander.Family
	regs   [registerCount]byte
	fail   error
	writes [][]byte
}

func newChip(family expander.Family) *chip {
	c := &chip{family: family}
	c.regs[expander.RegInput0] = 0xFF
	c.regs[expander.RegInput1] = 0xFF
	c.regs[expander.RegConfig0] = 0xFF
	c.regs[expander.RegConfig1] = 0xFF
	return c
}

// Bus is an emulated I2C bus. It is safe for concurrent use so pins can be
// driven from another goroutine while the scan loop polls.
type Bus struct {
	mutex sync.Mutex
	chips map[uint8]*chip
	reads uint64
}

func New() *Bus {
	return &Bus{chips: make(map[uint8]*chip)}
}

// Add attaches a chip at BaseAddress+offset and returns its address.
func (b *Bus) Add(family expander.Family, offset uint8) (uint8, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	addr := expander.BaseAddress + offset
	if _, ok := b.chips[addr]; ok {
		return 0, fmt.Errorf("address 0x%02x already in use", addr)
	}
	b.chips[addr] = newChip(family)
	return addr, nil
}

// Remove detaches the chip at addr.
func (b *Bus) Remove(addr uint8) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if _, ok := b.chips[addr]; !ok {
		return fmt.Errorf("0x%02x: %w", addr, ErrNoDevice)
	}
	delete(b.chips, addr)
	return nil
}

// Addresses returns the attached chip addresses in ascending order.
func (b *Bus) Addresses() []uint8 {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	out := make([]uint8, 0, len(b.chips))
	for a := range b.chips {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Press pulls pin low.
func (b *Bus) Press(addr uint8, pin int) error {
	return b.setPin(addr, pin, true)
}

// Release lets pin float high.
func (b *Bus) Release(addr uint8, pin int) error {
	return b.setPin(addr, pin, false)
}

func (b *Bus) setPin(addr uint8, pin int, pressed bool) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	c, ok := b.chips[addr]
	if !ok {
		return fmt.Errorf("0x%02x: %w", addr, ErrNoDevice)
	}
	if pin < 0 || pin >= c.family.Pins() {
		return &expander.PinRangeError{Pin: pin, Pins: c.family.Pins()}
	}
	reg := expander.RegInput0 + pin/8
	mask := byte(1) << (pin % 8)
	if pressed {
		c.regs[reg] &^= mask
	} else {
		c.regs[reg] |= mask
	}
	return nil
}

// SetInputs sets every input level at once; bit i low means pin i pressed.
func (b *Bus) SetInputs(addr uint8, levels uint16) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	c, ok := b.chips[addr]
	if !ok {
		return fmt.Errorf("0x%02x: %w", addr, ErrNoDevice)
	}
	c.regs[expander.RegInput0] = byte(levels)
	c.regs[expander.RegInput1] = byte(levels >> 8)
	return nil
}

// Fail makes every transaction with addr return err. A nil err heals the chip.
func (b *Bus) Fail(addr uint8, err error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if c, ok := b.chips[addr]; ok {
		c.fail = err
	}
}

// Register returns the current content of a register.
func (b *Bus) Register(addr uint8, reg uint8) (byte, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	c, ok := b.chips[addr]
	if !ok {
		return 0, fmt.Errorf("0x%02x: %w", addr, ErrNoDevice)
	}
	if int(reg) >= registerCount {
		return 0, fmt.Errorf("0x%02x: no register 0x%02x", addr, reg)
	}
	return c.regs[reg], nil
}

// Writes returns a copy of every Write payload addr received, in order.
func (b *Bus) Writes(addr uint8) [][]byte {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	c, ok := b.chips[addr]
	if !ok {
		return nil
	}
	out := make([][]byte, len(c.writes))
	for i, w := range c.writes {
		out[i] = append([]byte(nil), w...)
	}
	return out
}

// Reads returns the number of successful write-read transactions.
func (b *Bus) Reads() uint64 {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.reads
}

// Write implements expander.Bus. The first byte selects the register; the
// following bytes are stored at consecutive registers.
func (b *Bus) Write(addr uint8, data []byte) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	c, err := b.lookup(addr)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	c.writes = append(c.writes, append([]byte(nil), data...))
	reg := int(data[0])
	for _, v := range data[1:] {
		if reg >= registerCount {
			return fmt.Errorf("0x%02x: no register 0x%02x", addr, reg)
		}
		// input registers are read-only
		if reg > expander.RegInput1 {
			c.regs[reg] = v
		}
		reg++
	}
	return nil
}

// WriteRead implements expander.Bus. out selects the register, in is filled
// from consecutive registers.
func (b *Bus) WriteRead(addr uint8, out, in []byte) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	c, err := b.lookup(addr)
	if err != nil {
		return err
	}
	reg := 0
	if len(out) > 0 {
		reg = int(out[0])
	}
	for i := range in {
		if reg+i >= registerCount {
			return fmt.Errorf("0x%02x: no register 0x%02x", addr, reg+i)
		}
		in[i] = c.regs[reg+i]
	}
	b.reads++
	return nil
}

func (b *Bus) lookup(addr uint8) (*chip, error) {
	c, ok := b.chips[addr]
	if !ok {
		return nil, fmt.Errorf("0x%02x: %w", addr, ErrNoDevice)
	}
	if c.fail != nil {
		return nil, c.fail
	}
	return c, nil
}
