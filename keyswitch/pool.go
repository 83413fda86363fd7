package keyswitch

import (
	"errors"
	"fmt"

	"github.com/makbe/makbe/action"
)

// Ref is a stable reference to a switch stored in a Pool.
type Ref uint16

// DummyRef refers to the action-less switch every pool starts with.
const DummyRef Ref = 0

var ErrDuplicateName = errors.New("duplicate switch name")

// Pool is the arena holding every switch of a keyboard. Switches are added
// at configuration time and never change or move afterwards, so a Ref stays
// valid for the life of the pool.
type Pool struct {
	switches []Switch
	names    []string
	byName   map[string]Ref
}

func NewPool() *Pool {
	return &Pool{
		switches: []Switch{Dummy()},
		names:    []string{""},
		byName:   make(map[string]Ref),
	}
}

// Add stores s under name and returns its reference.
func (p *Pool) Add(name string, s Switch) (Ref, error) {
	if name == "" {
		return DummyRef, errors.New("switch name must not be empty")
	}
	if _, ok := p.byName[name]; ok {
		return DummyRef, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if len(p.switches) > int(^Ref(0)) {
		return DummyRef, errors.New("switch pool is full")
	}
	ref := Ref(len(p.switches))
	s.Actions = append([]action.Action(nil), s.Actions...)
	p.switches = append(p.switches, s)
	p.names = append(p.names, name)
	p.byName[name] = ref
	return ref, nil
}

// MustAdd is like Add but panics on error. It is meant for static layouts
// built in code.
func (p *Pool) MustAdd(name string, s Switch) Ref {
	ref, err := p.Add(name, s)
	if err != nil {
		panic(err)
	}
	return ref
}

// Get returns a copy of the switch. Unknown references yield the dummy switch.
func (p *Pool) Get(ref Ref) Switch {
	if int(ref) >= len(p.switches) {
		return p.switches[DummyRef]
	}
	return p.switches[ref]
}

// ActionAt returns the action of switch ref on layer.
func (p *Pool) ActionAt(ref Ref, layer int) (action.Action, bool) {
	if int(ref) >= len(p.switches) {
		return action.NoOp, false
	}
	return p.switches[ref].ActionAt(layer)
}

func (p *Pool) HasActions(ref Ref) bool {
	if int(ref) >= len(p.switches) {
		return false
	}
	return p.switches[ref].HasActions()
}

func (p *Pool) Lookup(name string) (Ref, bool) {
	ref, ok := p.byName[name]
	return ref, ok
}

// Name returns the name a switch was added with; the dummy switch has none.
func (p *Pool) Name(ref Ref) string {
	if int(ref) >= len(p.names) {
		return ""
	}
	return p.names[ref]
}

// Len returns the number of switches, the dummy switch excluded.
func (p *Pool) Len() int { return len(p.switches) - 1 }

// Refs returns every named switch reference in insertion order.
func (p *Pool) Refs() []Ref {
	out := make([]Ref, 0, p.Len())
	for i := 1; i < len(p.switches); i++ {
		out = append(out, Ref(i))
	}
	return out
}
