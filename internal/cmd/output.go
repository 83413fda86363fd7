package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/makbe/makbe/report"
)

// outputOptions locates the report sinks.
type outputOptions struct {
	HIDDevice string
	HIDFormat string
	Uinput    string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newOutput builds the reporter chain for kind. Key sets are always logged;
// at debug level for a device sink, at info level when kind is "log".
func newOutput(kind, name string, opts outputOptions, logger *slog.Logger) (report.Reporter, io.Closer, error) {
	debugLog := report.NewLog(logger, slog.LevelDebug)
	switch kind {
	case "log":
		return report.NewLog(logger, slog.LevelInfo), nopCloser{}, nil
	case "hid":
		format, err := report.ParseFormat(opts.HIDFormat)
		if err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(opts.HIDDevice, os.O_RDWR, 0)
		if err != nil {
			return nil, nil, fmt.Errorf("open HID gadget: %w", err)
		}
		go watchLEDs(f, logger)
		logger.Info("Reporting to HID gadget", "device", opts.HIDDevice, "format", format)
		return report.Multi{report.NewHID(f, format), debugLog}, f, nil
	case "uinput":
		u, closer, err := newUinput(opts.Uinput, name, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Reporting to virtual keyboard", "device", opts.Uinput, "name", name)
		return report.Multi{u, debugLog}, closer, nil
	default:
		return nil, nil, fmt.Errorf("unknown output %q", kind)
	}
}

// watchLEDs logs the host's LED output reports until r is closed.
func watchLEDs(r io.Reader, logger *slog.Logger) {
	err := report.WatchLEDs(r, func(st report.LEDState) {
		logger.Info("Host LEDs changed",
			"num_lock", st.NumLock,
			"caps_lock", st.CapsLock,
			"scroll_lock", st.ScrollLock,
			"compose", st.Compose,
			"kana", st.Kana)
	})
	if err != nil {
		logger.Debug("LED watch stopped", "error", err)
	}
}
