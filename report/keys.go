package report

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/makbe/makbe/keycode"
)

// KeyDevice is a virtual keyboard taking Linux input key codes.
type KeyDevice interface {
	KeyDown(key int) error
	KeyUp(key int) error
}

// Keys turns key code sets into press and release calls on a KeyDevice.
// Releases are sent before presses; presses follow activation order.
type Keys struct {
	dev    KeyDevice
	logger *slog.Logger
	down   InputState
}

func NewKeys(dev KeyDevice, logger *slog.Logger) *Keys {
	if logger == nil {
		logger = slog.Default()
	}
	return &Keys{dev: dev, logger: logger}
}

func (k *Keys) Report(codes []keycode.Code) error {
	next := FromCodes(codes)
	var errs []error
	for i := 0; i < 256; i++ {
		c := keycode.Code(i)
		if !k.down.Pressed(c) || next.Pressed(c) {
			continue
		}
		if err := k.send(c, false); err != nil {
			errs = append(errs, err)
			continue
		}
		k.down.Clear(c)
	}
	// a failed send leaves its code untouched in down, so the next report
	// retries it
	for _, c := range codes {
		if c == keycode.No || k.down.Pressed(c) {
			continue
		}
		if err := k.send(c, true); err != nil {
			errs = append(errs, err)
			continue
		}
		k.down.Set(c)
	}
	return errors.Join(errs...)
}

// ReleaseAll releases every key still held.
func (k *Keys) ReleaseAll() error {
	return k.Report(nil)
}

func (k *Keys) send(c keycode.Code, down bool) error {
	code, ok := c.Linux()
	if !ok {
		k.logger.Debug("no host key for code", "code", c)
		return nil
	}
	var err error
	if down {
		err = k.dev.KeyDown(code)
	} else {
		err = k.dev.KeyUp(code)
	}
	if err != nil {
		return fmt.Errorf("send %s: %w", c, err)
	}
	return nil
}
