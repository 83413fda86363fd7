package expander

// StateKind tags the variant held by a State.
type StateKind uint8

const (
	// Pins8 and Pins16 hold switch pin levels.
	Pins8 StateKind = iota
	Pins16
	// Value8, Value16 and Value32 are reserved for rotary encoders and other
	// value-producing inputs; no device produces them yet.
	Value8
	Value16
	Value32
)

// State is the outcome of one device poll.
type State struct {
	Kind  StateKind
	Pins  [16]bool
	Value uint32
}

// PinSlice returns the pin levels of a pin state, nil for value states.
func (s *State) PinSlice() []bool {
	switch s.Kind {
	case Pins8:
		return s.Pins[:8]
	case Pins16:
		return s.Pins[:16]
	default:
		return nil
	}
}
