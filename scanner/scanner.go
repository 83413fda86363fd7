// Package scanner drives the scan loop: it polls every expander, feeds the
// resulting switch events to the evaluator and hands each key code set to a
// reporter.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/makbe/makbe/evaluator"
	"github.com/makbe/makbe/expander"
	"github.com/makbe/makbe/keycode"
)

// Reporter receives the active key codes, in activation order. The slice is
// only valid during the call.
type Reporter interface {
	Report(codes []keycode.Code) error
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(codes []keycode.Code) error

func (f ReporterFunc) Report(codes []keycode.Code) error { return f(codes) }

// Scanner owns the bus, the devices, the evaluator and the reporter. It is
// not safe for concurrent use.
type Scanner struct {
	bus      expander.Bus
	devices  []*expander.Device
	failures []uint64
	eval     *evaluator.Evaluator
	reporter Reporter
	logger   *slog.Logger
	ticks    uint64
}

// New returns a scanner polling devices on bus in the given order.
func New(bus expander.Bus, devices []*expander.Device, eval *evaluator.Evaluator, reporter Reporter, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		bus:      bus,
		devices:  devices,
		failures: make([]uint64, len(devices)),
		eval:     eval,
		reporter: reporter,
		logger:   logger,
	}
}

// Init configures every device. A device that fails is reported in the
// returned error but does not stop the others from being initialized.
func (s *Scanner) Init() error {
	var errs []error
	for _, d := range s.devices {
		if !d.HasAssigned() {
			s.logger.Warn("device has no switch with actions", "device", d)
		}
		if err := d.Init(s.bus); err != nil {
			errs = append(errs, fmt.Errorf("init: %w", err))
			continue
		}
		s.logger.Debug("device initialized", "device", d)
	}
	return errors.Join(errs...)
}

// Tick runs one scan cycle. A device whose read fails is skipped for this
// cycle; the remaining devices are still polled. The returned error is the
// first reporter failure.
func (s *Scanner) Tick() error {
	s.ticks++
	var reportErr error
	for i, d := range s.devices {
		st, err := d.Read(s.bus)
		if err != nil {
			s.readFailed(i, err)
			continue
		}
		if s.failures[i] > 0 {
			s.logger.Info("device recovered", "device", d, "failed_ticks", s.failures[i])
			s.failures[i] = 0
		}
		for _, ev := range d.PickEvents(st) {
			if err := s.reporter.Report(s.eval.Eval(ev)); err != nil && reportErr == nil {
				reportErr = err
			}
		}
	}
	if err := s.reporter.Report(s.eval.Tick()); err != nil && reportErr == nil {
		reportErr = err
	}
	return reportErr
}

func (s *Scanner) readFailed(i int, err error) {
	s.failures[i]++
	if s.failures[i] == 1 {
		s.logger.Warn("device read failed", "device", s.devices[i], "error", err)
		return
	}
	s.logger.Debug("device still failing", "device", s.devices[i], "failed_ticks", s.failures[i], "error", err)
}

// Run calls Tick every interval until ctx is done. Reporter errors are
// logged and scanning continues.
func (s *Scanner) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid scan interval %s", interval)
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	s.logger.Info("Scanning", "devices", len(s.devices), "interval", interval)
	reportFailing := false
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scan loop stopped", "ticks", s.ticks)
			return nil
		case <-t.C:
			err := s.Tick()
			switch {
			case err != nil && !reportFailing:
				s.logger.Warn("report failed", "error", err)
				reportFailing = true
			case err == nil && reportFailing:
				s.logger.Info("report recovered")
				reportFailing = false
			}
		}
	}
}

// Ticks returns the number of completed scan cycles.
func (s *Scanner) Ticks() uint64 { return s.ticks }

func (s *Scanner) Evaluator() *evaluator.Evaluator { return s.eval }

func (s *Scanner) Devices() []*expander.Device { return s.devices }

// Failing reports whether the device at index i failed its last read.
func (s *Scanner) Failing(i int) bool { return s.failures[i] > 0 }
