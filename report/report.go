// Package report delivers key code sets to their destination: a USB HID
// gadget, a virtual host keyboard or a log.
package report

import (
	"errors"
	"slices"

	"github.com/makbe/makbe/keycode"
)

// Reporter accepts the active key codes in activation order. The slice is
// only valid during the call.
type Reporter interface {
	Report(codes []keycode.Code) error
}

// Builder is implemented by states that encode into a HID input report.
type Builder interface {
	// BuildReport encodes the state into a byte slice for the interrupt endpoint.
	BuildReport() []byte
}

// Diff forwards a key code set only when it differs from the previously
// forwarded one. The initial set is empty.
type Diff struct {
	next Reporter
	last []keycode.Code
}

func NewDiff(next Reporter) *Diff {
	return &Diff{next: next, last: make([]keycode.Code, 0, 32)}
}

func (d *Diff) Report(codes []keycode.Code) error {
	if slices.Equal(d.last, codes) {
		return nil
	}
	if err := d.next.Report(codes); err != nil {
		// keep the old set so the next report retries
		return err
	}
	d.last = append(d.last[:0], codes...)
	return nil
}

// Last returns the last forwarded set.
func (d *Diff) Last() []keycode.Code { return d.last }

// Multi hands every set to all of its reporters.
type Multi []Reporter

func (m Multi) Report(codes []keycode.Code) error {
	var errs []error
	for _, r := range m {
		if err := r.Report(codes); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Names returns the display names of codes.
func Names(codes []keycode.Code) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = c.String()
	}
	return out
}
