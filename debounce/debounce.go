// Package debounce filters contact bounce out of raw pin snapshots.
//
// A new snapshot is only accepted once it has been observed on more than
// limit consecutive polls. Every accepted change is reported as the set of
// pins that went down or up.
package debounce

import (
	"github.com/makbe/makbe/event"
)

// MaxPins is the widest pin group a Debouncer handles.
const MaxPins = 16

// Keys is a snapshot of a pin group, true meaning pressed. Keys values are
// comparable with ==.
type Keys struct {
	pressed [MaxPins]bool
	n       uint8
}

// KeysFrom copies pins into a snapshot. Pins beyond MaxPins are ignored.
func KeysFrom(pins []bool) Keys {
	var k Keys
	n := copy(k.pressed[:], pins)
	k.n = uint8(n)
	return k
}

// Released returns a snapshot of n released pins.
func Released(n int) Keys {
	if n > MaxPins {
		n = MaxPins
	}
	return Keys{n: uint8(n)}
}

func (k Keys) Len() int { return int(k.n) }

func (k Keys) Pressed(i int) bool {
	if i < 0 || i >= int(k.n) {
		return false
	}
	return k.pressed[i]
}

// Debouncer tracks one pin group.
type Debouncer struct {
	cur       Keys
	candidate Keys
	count     uint32 // wider than limit so limit+1 is reachable
	limit     uint16
	events    event.IndexEvents
}

// New returns a debouncer for a group of pins, all initially released. A new
// snapshot must be seen on limit+1 consecutive polls before it is accepted.
func New(pins int, limit uint16) *Debouncer {
	return &Debouncer{
		cur:       Released(pins),
		candidate: Released(pins),
		limit:     limit,
		events:    event.NewIndexEvents(),
	}
}

func (d *Debouncer) Limit() uint16 { return d.limit }

// Stable returns the last accepted snapshot.
func (d *Debouncer) Stable() Keys { return d.cur }

// Update feeds one snapshot and reports whether it caused the stable state to
// change.
func (d *Debouncer) Update(next Keys) bool {
	if next == d.cur {
		d.count = 0
		return false
	}
	if next == d.candidate {
		d.count++
	} else {
		d.candidate = next
		d.count = 1
	}
	if d.count <= uint32(d.limit) {
		return false
	}
	d.cur, d.candidate = d.candidate, d.cur
	d.count = 0
	return true
}

// Events feeds one raw snapshot and returns the transitions it caused, in pin
// order. The returned slice is reused by the next call.
func (d *Debouncer) Events(pins []bool) []event.IndexEvent {
	d.events.Reset()
	if !d.Update(KeysFrom(pins)) {
		return d.events.Items()
	}
	prev, cur := d.candidate, d.cur
	n := prev.Len()
	if cur.Len() < n {
		n = cur.Len()
	}
	for i := 0; i < n; i++ {
		switch {
		case !prev.pressed[i] && cur.pressed[i]:
			d.events.Push(event.PressedAt(i))
		case prev.pressed[i] && !cur.pressed[i]:
			d.events.Push(event.ReleasedAt(i))
		}
	}
	return d.events.Items()
}
