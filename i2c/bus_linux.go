//go:build linux

package i2c

import (
	"fmt"
	"os"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// i2c-dev ioctl requests and message flags from linux/i2c-dev.h and
// linux/i2c.h.
const (
	ioctlRDWR = 0x0707
	flagRead  = 0x0001
)

type i2cMsg struct {
	addr  uint16
	flags uint16
	len   uint16
	buf   unsafe.Pointer
}

type rdwrData struct {
	msgs  unsafe.Pointer
	nmsgs uint32
}

// Bus is an adapter exposed through /dev/i2c-N. Every transaction is a
// single combined I2C_RDWR transfer, so a write-read keeps the bus between
// its two messages.
type Bus struct {
	f *os.File
}

// Open opens /dev/i2c-<n>.
func Open(n int) (*Bus, error) {
	return OpenPath(fmt.Sprintf("/dev/i2c-%d", n))
}

func OpenPath(path string) (*Bus, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open i2c adapter: %w", err)
	}
	return &Bus{f: f}, nil
}

func (b *Bus) Close() error { return b.f.Close() }

func (b *Bus) Write(addr uint8, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	msgs := [1]i2cMsg{{
		addr: uint16(addr),
		len:  uint16(len(data)),
		buf:  unsafe.Pointer(&data[0]),
	}}
	err := b.transfer(msgs[:])
	runtime.KeepAlive(data)
	if err != nil {
		return fmt.Errorf("i2c write 0x%02x: %w", addr, err)
	}
	return nil
}

func (b *Bus) WriteRead(addr uint8, out, in []byte) error {
	if len(out) == 0 || len(in) == 0 {
		return fmt.Errorf("i2c write-read 0x%02x: empty buffer", addr)
	}
	msgs := [2]i2cMsg{
		{
			addr: uint16(addr),
			len:  uint16(len(out)),
			buf:  unsafe.Pointer(&out[0]),
		},
		{
			addr:  uint16(addr),
			flags: flagRead,
			len:   uint16(len(in)),
			buf:   unsafe.Pointer(&in[0]),
		},
	}
	err := b.transfer(msgs[:])
	runtime.KeepAlive(out)
	runtime.KeepAlive(in)
	if err != nil {
		return fmt.Errorf("i2c write-read 0x%02x: %w", addr, err)
	}
	return nil
}

func (b *Bus) transfer(msgs []i2cMsg) error {
	data := rdwrData{
		msgs:  unsafe.Pointer(&msgs[0]),
		nmsgs: uint32(len(msgs)),
	}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, b.f.Fd(), ioctlRDWR, uintptr(unsafe.Pointer(&data)))
	runtime.KeepAlive(msgs)
	if errno != 0 {
		return errno
	}
	return nil
}
