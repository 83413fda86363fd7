package layout

import (
	"fmt"
	"strings"

	"github.com/makbe/makbe/action"
	"github.com/makbe/makbe/expander"
	"github.com/makbe/makbe/keycode"
	"github.com/makbe/makbe/keyswitch"
)

// Build checks the layout semantically and assembles the keyboard.
func (f *File) Build() (*Keyboard, error) {
	b := NewBuilder(f.Name).Debounce(f.DebounceLimit())
	r := &resolver{named: f.Actions, done: map[string]action.Action{}, active: map[string]bool{}}
	var errs []error

	for i, spec := range f.Switches {
		at := fmt.Sprintf("switches[%d]", i)
		s, err := r.switchOf(spec, at)
		if err != nil {
			errs = append(errs, err...)
			continue
		}
		b.Switch(spec.Name, s)
		if spec.HostKey != "" {
			c, ok := keycode.Parse(spec.HostKey)
			if !ok {
				errs = append(errs, problemf(at+".host_key", "unknown key %q", spec.HostKey))
				continue
			}
			b.HostKey(spec.Name, c)
		}
	}
	for i, spec := range f.Devices {
		family, err := expander.ParseFamily(spec.Chip)
		if err != nil {
			errs = append(errs, located(fmt.Sprintf("devices[%d].chip", i), err))
			continue
		}
		b.Device(family, spec.Offset, spec.Pins...)
	}

	kb, err := b.Build()
	if err != nil {
		if ve, ok := err.(*ValidationError); ok {
			errs = append(errs, ve.Problems...)
		} else {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Problems: errs}
	}
	return kb, nil
}

func (r *resolver) switchOf(spec SwitchSpec, at string) (keyswitch.Switch, []error) {
	w, h := 1.0, 1.0
	if spec.W != nil {
		w = *spec.W
	}
	if spec.H != nil {
		h = *spec.H
	}

	var s keyswitch.Switch
	switch {
	case spec.Shape == "iso_enter" && spec.W == nil && spec.H == nil:
		s = keyswitch.NewWithShape(keyswitch.IsoEnter, spec.X, spec.Y)
	case spec.Shape == "iso_enter":
		s = keyswitch.NewWithSize(spec.X, spec.Y, w, h)
		s.Shape = keyswitch.IsoEnter
	default:
		s = keyswitch.NewWithSize(spec.X, spec.Y, w, h)
	}

	if spec.R != nil {
		if spec.RX == nil && spec.RY == nil {
			s.Rotate(*spec.R)
		} else {
			rx, ry := spec.X, spec.Y
			if spec.RX != nil {
				rx = *spec.RX
			}
			if spec.RY != nil {
				ry = *spec.RY
			}
			s.RotateAt(*spec.R, rx, ry)
		}
	}

	var errs []error
	for i, as := range spec.Actions {
		a, err := r.resolve(as, fmt.Sprintf("%s.actions[%d]", at, i))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		s.AppendAction(a)
	}
	if spec.DefaultAction != nil {
		a, err := r.resolve(*spec.DefaultAction, at+".default_action")
		if err != nil {
			errs = append(errs, err)
		} else {
			s.SetDefaultAction(a)
		}
	}
	return s, errs
}

// resolver turns action specs into actions, expanding shared "@name"
// references once each.
type resolver struct {
	named  map[string]ActionSpec
	done   map[string]action.Action
	active map[string]bool
}

func (r *resolver) resolve(spec ActionSpec, at string) (action.Action, error) {
	if spec.Name != "" {
		return r.resolveName(spec.Name, at)
	}
	switch {
	case spec.Key != "":
		c, ok := keycode.Parse(spec.Key)
		if !ok {
			return action.NoOp, problemf(at, "unknown key %q", spec.Key)
		}
		return action.K(c), nil
	case spec.Keys != nil:
		codes := make([]keycode.Code, len(spec.Keys))
		for i, k := range spec.Keys {
			c, ok := keycode.Parse(k)
			if !ok {
				return action.NoOp, problemf(fmt.Sprintf("%s.keys[%d]", at, i), "unknown key %q", k)
			}
			codes[i] = c
		}
		return action.Ks(codes...), nil
	case spec.Layer != nil:
		return action.L(*spec.Layer), nil
	case spec.DefaultLayer != nil:
		return action.D(*spec.DefaultLayer), nil
	case spec.Multi != nil:
		subs := make([]action.Action, len(spec.Multi))
		for i, m := range spec.Multi {
			a, err := r.resolve(m, fmt.Sprintf("%s.multi[%d]", at, i))
			if err != nil {
				return action.NoOp, err
			}
			subs[i] = a
		}
		a := action.M(subs...)
		if holdTaps(a) > 1 {
			return action.NoOp, problemf(at, "more than one hold_tap in multi")
		}
		return a, nil
	case spec.HoldTap != nil:
		hold, err := r.resolve(spec.HoldTap.Hold, at+".hold_tap.hold")
		if err != nil {
			return action.NoOp, err
		}
		tap, err := r.resolve(spec.HoldTap.Tap, at+".hold_tap.tap")
		if err != nil {
			return action.NoOp, err
		}
		return action.HT(spec.HoldTap.Timeout, hold, tap), nil
	default:
		return action.NoOp, problemf(at, "empty action")
	}
}

func (r *resolver) resolveName(name, at string) (action.Action, error) {
	switch strings.ToLower(name) {
	case "trans", "transparent":
		return action.Trans, nil
	case "noop", "none":
		return action.NoOp, nil
	}
	if ref, ok := strings.CutPrefix(name, "@"); ok {
		if a, ok := r.done[ref]; ok {
			return a, nil
		}
		spec, ok := r.named[ref]
		if !ok {
			return action.NoOp, problemf(at, "undefined action %q", name)
		}
		if r.active[ref] {
			return action.NoOp, problemf(at, "action %q refers to itself", name)
		}
		r.active[ref] = true
		a, err := r.resolve(spec, "actions."+ref)
		delete(r.active, ref)
		if err != nil {
			return action.NoOp, err
		}
		r.done[ref] = a
		return a, nil
	}
	c, ok := keycode.Parse(name)
	if !ok {
		return action.NoOp, problemf(at, "unknown key %q", name)
	}
	return action.K(c), nil
}

// holdTaps counts the hold-taps a single dispatch of a would start.
func holdTaps(a action.Action) int {
	switch a.Kind {
	case action.KindHoldTap:
		return 1
	case action.KindMultipleActions:
		n := 0
		for _, sub := range a.Actions {
			n += holdTaps(sub)
		}
		return n
	default:
		return 0
	}
}
