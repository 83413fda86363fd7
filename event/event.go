// Package event holds the press/release events flowing from the debouncers
// through the expander devices to the evaluator.
package event

import (
	"fmt"

	"github.com/makbe/makbe/internal/bounded"
	"github.com/makbe/makbe/keyswitch"
)

// Capacity bounds every per-poll event buffer. Events beyond it are dropped.
const Capacity = 64

type Kind uint8

const (
	Pressed Kind = iota
	Released
)

func (k Kind) String() string {
	if k == Released {
		return "released"
	}
	return "pressed"
}

// IndexEvent is a debouncer transition addressed by pin index.
type IndexEvent struct {
	Kind  Kind
	Index int
}

func PressedAt(i int) IndexEvent { return IndexEvent{Kind: Pressed, Index: i} }

func ReleasedAt(i int) IndexEvent { return IndexEvent{Kind: Released, Index: i} }

// KeyEvent is a transition of a bound switch.
type KeyEvent struct {
	Kind   Kind
	Switch keyswitch.Ref
}

func Press(ref keyswitch.Ref) KeyEvent { return KeyEvent{Kind: Pressed, Switch: ref} }

func Release(ref keyswitch.Ref) KeyEvent { return KeyEvent{Kind: Released, Switch: ref} }

func (e KeyEvent) IsPressed() bool { return e.Kind == Pressed }

func (e KeyEvent) IsReleased() bool { return e.Kind == Released }

func (e KeyEvent) String() string {
	return fmt.Sprintf("%s(#%d)", e.Kind, e.Switch)
}

// IndexEvents is a bounded list of IndexEvent.
type IndexEvents = bounded.List[IndexEvent]

// KeyEvents is a bounded list of KeyEvent.
type KeyEvents = bounded.List[KeyEvent]

func NewIndexEvents() IndexEvents { return bounded.NewList[IndexEvent](Capacity) }

func NewKeyEvents() KeyEvents { return bounded.NewList[KeyEvent](Capacity) }
