// Package keyswitch describes the physical key switches of a keyboard and the
// arena that owns them.
//
// Positions use the usual 1u keyboard unit with x and y addressing the key
// center, stored as fixed-point integers so geometry compares exactly.
package keyswitch

import (
	"math"

	"github.com/makbe/makbe/action"
)

// Scale is the fixed-point factor of Position fields.
const Scale = 256

// MaxLayers is the number of per-layer actions a switch can hold.
const MaxLayers = 4

type Shape uint8

const (
	Rectangle Shape = iota
	IsoEnter
)

func (s Shape) String() string {
	switch s {
	case IsoEnter:
		return "iso_enter"
	default:
		return "rectangle"
	}
}

// Position is the placement of a switch. R is the counter-clockwise rotation
// in degrees around (RX, RY).
type Position struct {
	X, Y   int32
	W, H   int32
	RX, RY int32
	R      int32
}

// Fixed converts a unit value to its fixed-point representation.
func Fixed(v float64) int32 { return int32(math.Trunc(v * Scale)) }

func NewPosition(x, y, w, h, r, rx, ry float64) Position {
	return Position{
		X:  Fixed(x),
		Y:  Fixed(y),
		W:  Fixed(w),
		H:  Fixed(h),
		RX: Fixed(rx),
		RY: Fixed(ry),
		R:  Fixed(r),
	}
}

// Switch is one key switch with its ordered per-layer actions.
type Switch struct {
	Shape         Shape
	Position      Position
	Actions       []action.Action
	DefaultAction action.Action
}

// Dummy returns a switch without actions. Unbound expander pins resolve to it.
func Dummy() Switch {
	return Switch{DefaultAction: action.NoOp}
}

// New returns a 1u switch centered at (x, y).
func New(x, y float64) Switch {
	return NewWithSize(x, y, 1, 1)
}

// NewWithShape returns a switch of the given shape. An ISO enter is 1.25u by 2u.
func NewWithShape(shape Shape, x, y float64) Switch {
	w, h := 1.0, 1.0
	if shape == IsoEnter {
		w, h = 1.25, 2
	}
	s := NewWithSize(x, y, w, h)
	s.Shape = shape
	return s
}

func NewWithWidth(x, y, w float64) Switch {
	return NewWithSize(x, y, w, 1)
}

func NewWithSize(x, y, w, h float64) Switch {
	return Switch{
		Shape:         Rectangle,
		Position:      NewPosition(x, y, w, h, 0, 0, 0),
		DefaultAction: action.Trans,
	}
}

// Rotate rotates the switch by r degrees around its own center.
func (s *Switch) Rotate(r float64) *Switch {
	s.Position.R = Fixed(r)
	s.Position.RX = s.Position.X
	s.Position.RY = s.Position.Y
	return s
}

// RotateAt rotates the switch by r degrees around (rx, ry).
func (s *Switch) RotateAt(r, rx, ry float64) *Switch {
	s.Position.R = Fixed(r)
	s.Position.RX = Fixed(rx)
	s.Position.RY = Fixed(ry)
	return s
}

// AppendAction adds the action for the next layer. Actions beyond MaxLayers
// are ignored.
func (s *Switch) AppendAction(a action.Action) *Switch {
	if len(s.Actions) < MaxLayers {
		s.Actions = append(s.Actions, a)
	}
	return s
}

func (s *Switch) SetDefaultAction(a action.Action) *Switch {
	s.DefaultAction = a
	return s
}

// ActionAt returns the action configured for layer.
func (s *Switch) ActionAt(layer int) (action.Action, bool) {
	if layer < 0 || layer >= len(s.Actions) {
		return action.NoOp, false
	}
	return s.Actions[layer], true
}

// HasActions reports whether at least one per-layer action is configured.
func (s *Switch) HasActions() bool { return len(s.Actions) > 0 }
