//go:build !linux

package i2c

import "errors"

var errUnsupported = errors.New("i2c-dev is only available on linux")

// Bus is unavailable on this platform.
type Bus struct{}

func Open(int) (*Bus, error) { return nil, errUnsupported }

func OpenPath(string) (*Bus, error) { return nil, errUnsupported }

func (b *Bus) Close() error { return nil }

func (b *Bus) Write(uint8, []byte) error { return errUnsupported }

func (b *Bus) WriteRead(uint8, []byte, []byte) error { return errUnsupported }
