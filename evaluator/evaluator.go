// Package evaluator turns switch events into the set of active key codes.
//
// It resolves per-layer actions, layer modifiers and hold-tap decisions. A
// hold-tap press is ambiguous until its switch is released or its timeout
// expires; while such a decision is pending, later events wait in a bounded
// queue and are replayed in arrival order once it is settled. Time is counted
// in scan ticks only.
//
// An Evaluator is not safe for concurrent use; it is driven by a single scan
// loop.
package evaluator

import (
	"github.com/makbe/makbe/action"
	"github.com/makbe/makbe/event"
	"github.com/makbe/makbe/internal/bounded"
	"github.com/makbe/makbe/keycode"
	"github.com/makbe/makbe/keyswitch"
)

const (
	// StackCapacity is the number of events that can wait behind a pending
	// hold-tap decision. Pushing more evicts the oldest one.
	StackCapacity = 16
	// MaxKeyStates bounds the active key contributions.
	MaxKeyStates = 32
	// MaxKeyCodes bounds the reported key code list.
	MaxKeyCodes = 32
)

type StateKind uint8

const (
	NormalKey StateKind = iota
	LayerModifier
)

// KeyState is one active contribution of a pressed switch: either a key
// code or a layer offset. It lives until its switch is released.
type KeyState struct {
	Kind   StateKind
	Switch keyswitch.Ref
	Code   keycode.Code
	Layer  int
}

// WaitingState is the pending hold-tap decision.
type WaitingState struct {
	Switch  keyswitch.Ref
	Timeout uint16 // ticks left before the hold branch wins
	Hold    action.Action
	Tap     action.Action
}

// Stacked is a queued event and the number of ticks it has waited.
type Stacked struct {
	Event event.KeyEvent
	Since uint16
}

type Evaluator struct {
	pool         *keyswitch.Pool
	states       bounded.List[KeyState]
	waiting      WaitingState
	hasWaiting   bool
	stack        bounded.Ring[Stacked]
	defaultLayer int
	codes        bounded.List[keycode.Code]
}

// New returns an evaluator resolving switch references against pool.
func New(pool *keyswitch.Pool) *Evaluator {
	return &Evaluator{
		pool:   pool,
		states: bounded.NewList[KeyState](MaxKeyStates),
		stack:  bounded.NewRing[Stacked](StackCapacity),
		codes:  bounded.NewList[keycode.Code](MaxKeyCodes),
	}
}

// Eval accepts one switch event and returns the resulting key codes. The
// returned slice is reused by the next call.
func (e *Evaluator) Eval(ev event.KeyEvent) []keycode.Code {
	if old, evicted := e.stack.Push(Stacked{Event: ev}); evicted {
		// The queue is saturated: settle the pending decision as a hold so
		// the oldest event can be processed now.
		e.resolveHold()
		e.unstack(old)
	}
	if e.hasWaiting && ev.IsReleased() && ev.Switch == e.waiting.Switch {
		e.resolveTap()
	}
	return e.KeyCodes()
}

// Tick advances time by one scan cycle and returns the resulting key codes.
// The returned slice is reused by the next call.
func (e *Evaluator) Tick() []keycode.Code {
	e.refresh()
	for i := 0; i < e.stack.Len(); i++ {
		s := e.stack.At(i)
		if s.Since < ^uint16(0) {
			s.Since++
		}
	}
	if e.hasWaiting {
		if e.waiting.Timeout > 0 {
			e.waiting.Timeout--
		}
		if e.waiting.Timeout == 0 {
			e.resolveHold()
		}
	} else if s, ok := e.stack.Pop(); ok {
		e.unstack(s)
	}
	return e.KeyCodes()
}

// refresh is where time-dependent key states would be updated; none exist yet.
func (e *Evaluator) refresh() {}

func (e *Evaluator) unstack(s Stacked) {
	sw := s.Event.Switch
	if s.Event.IsReleased() {
		e.states.RemoveFunc(func(k KeyState) bool { return k.Switch == sw })
		return
	}

	layer := e.CurrentLayer()
	a, ok := e.pool.ActionAt(sw, layer)
	if !ok {
		a = action.NoOp
	}
	// transparent falls straight through to the default layer
	if a.IsTransparent() && layer != e.defaultLayer {
		if a, ok = e.pool.ActionAt(sw, e.defaultLayer); !ok {
			a = action.NoOp
		}
	}
	if a.IsTransparent() {
		a = action.NoOp
	}
	e.doAction(a, sw, s.Since)
}

func (e *Evaluator) doAction(a action.Action, sw keyswitch.Ref, delay uint16) {
	switch a.Kind {
	case action.KindHoldTap:
		e.startHoldTap(a, sw, delay)
	case action.KindKeyCode:
		e.states.Push(KeyState{Kind: NormalKey, Switch: sw, Code: a.Code})
	case action.KindMultipleKeyCodes:
		for _, c := range a.Codes {
			e.states.Push(KeyState{Kind: NormalKey, Switch: sw, Code: c})
		}
	case action.KindMultipleActions:
		for _, sub := range a.Actions {
			e.doAction(sub, sw, delay)
		}
	case action.KindLayer:
		e.states.Push(KeyState{Kind: LayerModifier, Switch: sw, Layer: a.Layer})
	case action.KindDefaultLayer:
		e.defaultLayer = a.Layer
	}
}

func (e *Evaluator) startHoldTap(a action.Action, sw keyswitch.Ref, delay uint16) {
	if e.hasWaiting {
		panic("evaluator: hold-tap decision already pending")
	}
	hold, tap := action.NoOp, action.NoOp
	if a.Hold != nil {
		hold = *a.Hold
	}
	if a.Tap != nil {
		tap = *a.Tap
	}
	e.waiting = WaitingState{
		Switch:  sw,
		Timeout: satSub(a.Timeout, delay),
		Hold:    hold,
		Tap:     tap,
	}
	e.hasWaiting = true

	// The release may already be queued behind the press.
	for i := 0; i < e.stack.Len(); i++ {
		s := e.stack.At(i)
		if !s.Event.IsReleased() || s.Event.Switch != sw {
			continue
		}
		if satSub(delay, s.Since) <= a.Timeout {
			e.resolveTap()
		} else {
			e.resolveHold()
		}
		return
	}
}

func (e *Evaluator) resolveHold() {
	if !e.hasWaiting {
		return
	}
	w := e.waiting
	e.hasWaiting = false
	e.waiting = WaitingState{}
	e.doAction(w.Hold, w.Switch, 0)
}

func (e *Evaluator) resolveTap() {
	if !e.hasWaiting {
		return
	}
	w := e.waiting
	e.hasWaiting = false
	e.waiting = WaitingState{}
	e.doAction(w.Tap, w.Switch, 0)
}

// CurrentLayer returns the effective layer. Without active layer modifiers it
// is the default layer. Otherwise the first active modifier, in activation
// order, sets the base and every later one is added to it.
func (e *Evaluator) CurrentLayer() int {
	layer, found := 0, false
	for _, k := range e.states.Items() {
		if k.Kind != LayerModifier {
			continue
		}
		if !found {
			layer, found = k.Layer, true
		} else {
			layer += k.Layer
		}
	}
	if !found {
		return e.defaultLayer
	}
	return layer
}

func (e *Evaluator) DefaultLayer() int { return e.defaultLayer }

// KeyCodes returns the codes of every active key in activation order.
// Duplicates are kept. The returned slice is reused by the next call.
func (e *Evaluator) KeyCodes() []keycode.Code {
	e.codes.Reset()
	for _, k := range e.states.Items() {
		if k.Kind == NormalKey {
			e.codes.Push(k.Code)
		}
	}
	return e.codes.Items()
}

// Waiting returns the pending hold-tap decision, if any.
func (e *Evaluator) Waiting() (WaitingState, bool) {
	return e.waiting, e.hasWaiting
}

// States returns the active key states. The slice must not be modified.
func (e *Evaluator) States() []KeyState { return e.states.Items() }

// Queued returns the number of events waiting to be processed.
func (e *Evaluator) Queued() int { return e.stack.Len() }

func satSub(a, b uint16) uint16 {
	if b >= a {
		return 0
	}
	return a - b
}
