package cmd

import (
	"errors"
	"log/slog"

	"github.com/makbe/makbe/layout"
)

// CLI is the root command line of makbe.
type CLI struct {
	ConfigFile string     `name:"config" help:"Path to a config file (json, yaml or toml)" env:"MAKBE_CONFIG"`
	Log        LogOptions `embed:"" prefix:"log."`

	Run       Run           `cmd:"" help:"Scan the expanders on an I2C bus and report keys"`
	Simulate  Simulate      `cmd:"" help:"Replay a script of switch presses against a layout"`
	Host      Host          `cmd:"" help:"Drive a layout from a keyboard attached to this machine"`
	Check     Check         `cmd:"" help:"Validate a layout file"`
	Config    ConfigCommand `cmd:"" help:"Configuration file helpers"`
	Install   Install       `cmd:"" help:"Install makbe as a systemd service"`
	Uninstall Uninstall     `cmd:"" help:"Remove the makbe systemd service"`
}

type LogOptions struct {
	Level   string `help:"Log level" enum:"trace,debug,info,warn,warning,error" default:"info" env:"MAKBE_LOG_LEVEL"`
	File    string `help:"Also write logs to this file" env:"MAKBE_LOG_FILE"`
	Format  string `help:"Log line format" enum:"text,json" default:"text" env:"MAKBE_LOG_FORMAT"`
	RawFile string `help:"Write raw I2C bus traffic to this file" env:"MAKBE_LOG_RAW_FILE"`
}

// LayoutFlag selects the layout file of a command.
type LayoutFlag struct {
	Layout string `help:"Layout file (yaml, toml or json)" required:"" env:"MAKBE_LAYOUT"`
}

func (l LayoutFlag) keyboard(logger *slog.Logger) (*layout.Keyboard, error) {
	f, err := layout.Load(l.Layout)
	if err != nil {
		return nil, err
	}
	kb, err := f.Build()
	if err != nil {
		var ve *layout.ValidationError
		if errors.As(err, &ve) {
			ve.Source = l.Layout
		}
		return nil, err
	}
	logger.Debug("Layout loaded", "file", l.Layout, "name", kb.Name, "switches", kb.Pool.Len(), "devices", len(kb.Devices))
	return kb, nil
}
