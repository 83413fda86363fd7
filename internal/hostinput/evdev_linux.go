//go:build linux

package hostinput

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	evdev "github.com/gvalkov/golang-evdev"
)

// FindKeyboard returns the first input device whose name mentions a
// keyboard.
func FindKeyboard() (string, error) {
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return "", fmt.Errorf("failed to list input devices: %w", err)
	}
	for _, path := range paths {
		dev, err := evdev.Open(path)
		if err != nil {
			continue
		}
		name := dev.Name
		_ = dev.File.Close()
		if strings.Contains(strings.ToLower(name), "keyboard") {
			return path, nil
		}
	}
	return "", errors.New("no keyboard input device found")
}

// Run feeds key events of the input device at path to d until ctx is done.
// With grab set the device is taken exclusively so its keys do not also
// reach the desktop.
func Run(ctx context.Context, path string, grab bool, d *Driver, logger *slog.Logger) error {
	dev, err := evdev.Open(path)
	if err != nil {
		return fmt.Errorf("open input device: %w", err)
	}
	if grab {
		if err := dev.Grab(); err != nil {
			_ = dev.File.Close()
			return fmt.Errorf("grab %s: %w", dev.Name, err)
		}
	}
	logger.Info("Reading host keyboard", "device", dev.Name, "path", path, "grab", grab)

	// ReadOne blocks; closing the file is the only way to interrupt it.
	stop := context.AfterFunc(ctx, func() {
		if grab {
			_ = dev.Release()
		}
		_ = dev.File.Close()
	})
	defer stop()

	for {
		ev, err := dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read %s: %w", dev.Name, err)
		}
		if ev.Type != evdev.EV_KEY {
			continue
		}
		mapped, err := d.Key(ev.Code, ev.Value)
		if err != nil {
			logger.Warn("failed to drive pin", "code", ev.Code, "error", err)
			continue
		}
		if !mapped {
			logger.Debug("unmapped host key", "code", ev.Code)
		}
	}
}
