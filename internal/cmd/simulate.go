package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/makbe/makbe/evaluator"
	"github.com/makbe/makbe/i2c"
	"github.com/makbe/makbe/internal/hostinput"
	"github.com/makbe/makbe/internal/log"
	"github.com/makbe/makbe/keycode"
	"github.com/makbe/makbe/layout"
	"github.com/makbe/makbe/report"
	"github.com/makbe/makbe/scanner"

	"golang.org/x/term"
	yaml "gopkg.in/yaml.v3"
)

// Simulate replays a script against a layout on an emulated bus.
type Simulate struct {
	LayoutFlag `embed:""`
	Script     string `arg:"" help:"Script of steps (yaml)" type:"existingfile"`
	Style      string `help:"Output style" enum:"auto,table,plain" default:"auto" env:"MAKBE_SIMULATE_STYLE"`
}

// Script is a sequence of steps applied to the switches of a layout.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step changes switch and device states, then runs Ticks scan cycles. A
// step without ticks runs one cycle. Fail and Heal take device indexes in
// layout order.
type Step struct {
	Press   []string `yaml:"press"`
	Release []string `yaml:"release"`
	Fail    []int    `yaml:"fail"`
	Heal    []int    `yaml:"heal"`
	Ticks   int      `yaml:"ticks"`
}

// Frame is one changed key code set.
type Frame struct {
	Tick  uint64
	Layer int
	Codes []keycode.Code
}

var errInjected = errors.New("injected fault")

func (c *Simulate) Run(logger *slog.Logger, raw log.RawLogger) error {
	kb, err := c.keyboard(logger)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(c.Script)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	script, err := ParseScript(data)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Script, err)
	}
	frames, err := simulate(kb, script, raw, logger)
	if err != nil {
		return err
	}

	table := c.Style == "table"
	if c.Style == "auto" {
		table = term.IsTerminal(int(os.Stdout.Fd()))
	}
	return printFrames(os.Stdout, frames, table)
}

// ParseScript decodes a YAML script. Unknown step fields are rejected.
func ParseScript(data []byte) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	for i, st := range s.Steps {
		if st.Ticks < 0 {
			return Script{}, fmt.Errorf("steps[%d]: negative ticks", i)
		}
	}
	return s, nil
}

// simulate runs script on an emulated bus hosting the devices of kb and
// returns every changed report.
func simulate(kb *layout.Keyboard, script Script, raw log.RawLogger, logger *slog.Logger) ([]Frame, error) {
	bus, err := kb.NewVirtualBus()
	if err != nil {
		return nil, err
	}
	drv := hostinput.NewDriver(kb, bus)

	var (
		s      *scanner.Scanner
		frames []Frame
	)
	record := scanner.ReporterFunc(func(codes []keycode.Code) error {
		frames = append(frames, Frame{
			Tick:  s.Ticks(),
			Layer: s.Evaluator().CurrentLayer(),
			Codes: slices.Clone(codes),
		})
		return nil
	})
	s = scanner.New(i2c.NewTraced(bus, raw), kb.Devices, evaluator.New(kb.Pool), report.NewDiff(record), logger)
	if err := s.Init(); err != nil {
		return nil, err
	}

	for i, st := range script.Steps {
		at := fmt.Sprintf("steps[%d]", i)
		for _, d := range st.Heal {
			addr, err := deviceAddr(kb, d)
			if err != nil {
				return nil, fmt.Errorf("%s.heal: %w", at, err)
			}
			bus.Fail(addr, nil)
		}
		for _, d := range st.Fail {
			addr, err := deviceAddr(kb, d)
			if err != nil {
				return nil, fmt.Errorf("%s.fail: %w", at, err)
			}
			bus.Fail(addr, errInjected)
		}
		if err := setSwitches(kb, drv, st.Release, false); err != nil {
			return nil, fmt.Errorf("%s.release: %w", at, err)
		}
		if err := setSwitches(kb, drv, st.Press, true); err != nil {
			return nil, fmt.Errorf("%s.press: %w", at, err)
		}
		for range max(st.Ticks, 1) {
			if err := s.Tick(); err != nil {
				return nil, err
			}
		}
	}
	return frames, nil
}

func setSwitches(kb *layout.Keyboard, drv *hostinput.Driver, names []string, pressed bool) error {
	for _, name := range names {
		ref, ok := kb.Pool.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown switch %q", name)
		}
		if err := drv.Switch(ref, pressed); err != nil {
			return err
		}
	}
	return nil
}

func deviceAddr(kb *layout.Keyboard, i int) (uint8, error) {
	if i < 0 || i >= len(kb.Devices) {
		return 0, fmt.Errorf("no device %d, layout has %d", i, len(kb.Devices))
	}
	return kb.Devices[i].Address(), nil
}

func printFrames(w io.Writer, frames []Frame, table bool) error {
	if !table {
		for _, f := range frames {
			if _, err := fmt.Fprintf(w, "tick=%d layer=%d keys=%s\n", f.Tick, f.Layer, keyList(f.Codes)); err != nil {
				return err
			}
		}
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TICK\tLAYER\tKEYS")
	for _, f := range frames {
		fmt.Fprintf(tw, "%d\t%d\t%s\n", f.Tick, f.Layer, keyList(f.Codes))
	}
	return tw.Flush()
}

func keyList(codes []keycode.Code) string {
	if len(codes) == 0 {
		return "-"
	}
	return strings.Join(report.Names(codes), ",")
}
