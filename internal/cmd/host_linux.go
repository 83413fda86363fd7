//go:build linux

package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/makbe/makbe/i2c"
	"github.com/makbe/makbe/internal/hostinput"
	"github.com/makbe/makbe/internal/log"
)

func (c *Host) Run(logger *slog.Logger, raw log.RawLogger) error {
	kb, err := c.keyboard(logger)
	if err != nil {
		return err
	}
	if kb.HostKeys() == 0 {
		return errors.New("layout maps no host keys")
	}
	bus, err := kb.NewVirtualBus()
	if err != nil {
		return err
	}

	path := c.Device
	if path == "" {
		if path, err = hostinput.FindKeyboard(); err != nil {
			return err
		}
	}

	out, closer, err := newOutput(c.Output, kb.Name, outputOptions{Uinput: c.Uinput}, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inputErr := make(chan error, 1)
	go func() {
		err := hostinput.Run(ctx, path, c.Grab, hostinput.NewDriver(kb, bus), logger)
		// losing the keyboard ends the session
		cancel()
		inputErr <- err
	}()

	logger.Info("Starting makbe host mode", "layout", kb.Name, "host_keys", kb.HostKeys(), "output", c.Output)
	scanErr := scan(ctx, i2c.NewTraced(bus, raw), kb, out, c.Interval, logger)
	cancel()
	return errors.Join(scanErr, <-inputErr)
}
