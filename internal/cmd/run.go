package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/makbe/makbe/evaluator"
	"github.com/makbe/makbe/expander"
	"github.com/makbe/makbe/i2c"
	"github.com/makbe/makbe/internal/log"
	"github.com/makbe/makbe/layout"
	"github.com/makbe/makbe/report"
	"github.com/makbe/makbe/scanner"
)

// Run scans real expanders on a Linux I2C bus.
type Run struct {
	LayoutFlag `embed:""`
	Bus        int           `help:"I2C bus number (/dev/i2c-N)" default:"1" env:"MAKBE_BUS"`
	Interval   time.Duration `help:"Scan interval" default:"1ms" env:"MAKBE_INTERVAL"`
	Output     string        `help:"Where key reports go" enum:"hid,uinput,log" default:"hid" env:"MAKBE_OUTPUT"`
	HIDDevice  string        `name:"hid-device" help:"USB HID gadget device" default:"/dev/hidg0" env:"MAKBE_HID_DEVICE"`
	HIDFormat  string        `name:"hid-format" help:"HID report format" enum:"nkro,boot" default:"nkro" env:"MAKBE_HID_FORMAT"`
	Uinput     string        `help:"uinput device" default:"/dev/uinput" env:"MAKBE_UINPUT"`
}

func (c *Run) Run(logger *slog.Logger, raw log.RawLogger) error {
	kb, err := c.keyboard(logger)
	if err != nil {
		return err
	}
	bus, err := i2c.Open(c.Bus)
	if err != nil {
		return err
	}
	defer bus.Close()

	out, closer, err := newOutput(c.Output, kb.Name, outputOptions{
		HIDDevice: c.HIDDevice,
		HIDFormat: c.HIDFormat,
		Uinput:    c.Uinput,
	}, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting makbe", "layout", kb.Name, "bus", c.Bus, "output", c.Output)
	return scan(ctx, i2c.NewTraced(bus, raw), kb, out, c.Interval, logger)
}

// scan initializes the devices of kb on bus and scans until ctx is done.
// Devices that fail to initialize are logged and scanned anyway; they are
// reported as failing until they answer.
func scan(ctx context.Context, bus expander.Bus, kb *layout.Keyboard, out report.Reporter, interval time.Duration, logger *slog.Logger) error {
	s := scanner.New(bus, kb.Devices, evaluator.New(kb.Pool), report.NewDiff(out), logger)
	if err := s.Init(); err != nil {
		logger.Error("Device initialization failed", "error", err)
	}
	return s.Run(ctx, interval)
}
