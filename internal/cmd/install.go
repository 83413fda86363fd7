package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Install registers a system service that runs the scan loop at boot.
type Install struct {
	LayoutFlag `embed:""`
	Bus        int    `help:"I2C bus number (/dev/i2c-N)" default:"1"`
	Output     string `help:"Where key reports go" enum:"hid,uinput,log" default:"hid"`
}

func (c *Install) Run(logger *slog.Logger) error {
	layoutPath, err := filepath.Abs(c.Layout)
	if err != nil {
		return err
	}
	if _, err := os.Stat(layoutPath); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return install(serviceArgs{layout: layoutPath, bus: c.Bus, output: c.Output}, logger)
}

// Uninstall removes the service registered by Install.
type Uninstall struct{}

func (c *Uninstall) Run(logger *slog.Logger) error {
	return uninstall(logger)
}

type serviceArgs struct {
	layout string
	bus    int
	output string
}

func currentExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(exe)
}
