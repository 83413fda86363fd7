// Package action defines what a switch does when it is pressed on a given
// layer.
//
// An Action is a closed tagged value: Kind selects which payload fields are
// meaningful. Kinds the evaluator does not know are treated as no-ops, so new
// kinds can be added without breaking older evaluators.
package action

import (
	"fmt"
	"strings"

	"github.com/makbe/makbe/keycode"
)

type Kind uint8

const (
	KindNoOp Kind = iota
	KindTransparent
	KindKeyCode
	KindMultipleKeyCodes
	KindMultipleActions
	KindLayer
	KindDefaultLayer
	KindHoldTap
)

func (k Kind) String() string {
	switch k {
	case KindNoOp:
		return "noop"
	case KindTransparent:
		return "trans"
	case KindKeyCode:
		return "key"
	case KindMultipleKeyCodes:
		return "keys"
	case KindMultipleActions:
		return "multi"
	case KindLayer:
		return "layer"
	case KindDefaultLayer:
		return "default_layer"
	case KindHoldTap:
		return "hold_tap"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Action is one entry of a switch's per-layer action list.
type Action struct {
	Kind Kind

	// Code is set for KindKeyCode.
	Code keycode.Code
	// Codes is set for KindMultipleKeyCodes.
	Codes []keycode.Code
	// Actions is set for KindMultipleActions.
	Actions []Action
	// Layer is set for KindLayer and KindDefaultLayer.
	Layer int

	// Timeout, Hold and Tap are set for KindHoldTap. Timeout is counted in
	// scan ticks.
	Timeout uint16
	Hold    *Action
	Tap     *Action
}

var (
	NoOp  = Action{Kind: KindNoOp}
	Trans = Action{Kind: KindTransparent}
)

// K returns an action emitting a single key code.
func K(c keycode.Code) Action { return Action{Kind: KindKeyCode, Code: c} }

// Ks returns an action emitting several key codes at once.
func Ks(cs ...keycode.Code) Action { return Action{Kind: KindMultipleKeyCodes, Codes: cs} }

// M returns an action running every sub-action in order.
func M(as ...Action) Action { return Action{Kind: KindMultipleActions, Actions: as} }

// L returns an action activating layer n while the switch is held.
func L(n int) Action { return Action{Kind: KindLayer, Layer: n} }

// D returns an action changing the default layer to n.
func D(n int) Action { return Action{Kind: KindDefaultLayer, Layer: n} }

// HT returns a hold-tap action. hold applies when the switch is held for
// timeout ticks or longer, tap when it is released earlier.
func HT(timeout uint16, hold, tap Action) Action {
	return Action{Kind: KindHoldTap, Timeout: timeout, Hold: &hold, Tap: &tap}
}

func (a Action) IsNoOp() bool { return a.Kind == KindNoOp }

func (a Action) IsTransparent() bool { return a.Kind == KindTransparent }

func (a Action) String() string {
	switch a.Kind {
	case KindNoOp, KindTransparent:
		return a.Kind.String()
	case KindKeyCode:
		return "key(" + a.Code.String() + ")"
	case KindMultipleKeyCodes:
		parts := make([]string, len(a.Codes))
		for i, c := range a.Codes {
			parts[i] = c.String()
		}
		return "keys(" + strings.Join(parts, ",") + ")"
	case KindMultipleActions:
		parts := make([]string, len(a.Actions))
		for i, s := range a.Actions {
			parts[i] = s.String()
		}
		return "multi(" + strings.Join(parts, ",") + ")"
	case KindLayer, KindDefaultLayer:
		return fmt.Sprintf("%s(%d)", a.Kind, a.Layer)
	case KindHoldTap:
		hold, tap := NoOp, NoOp
		if a.Hold != nil {
			hold = *a.Hold
		}
		if a.Tap != nil {
			tap = *a.Tap
		}
		return fmt.Sprintf("hold_tap(%d,%s,%s)", a.Timeout, hold, tap)
	default:
		return a.Kind.String()
	}
}
