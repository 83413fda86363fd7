package report

import (
	"io"

	"github.com/makbe/makbe/keycode"
)

const (
	// NKROReportSize is the size of the bitmap keyboard report.
	NKROReportSize = 34
	// BootReportSize is the size of the boot protocol keyboard report.
	BootReportSize = 8

	bootKeys = 6
)

// InputState is a keyboard state in N-key rollover form.
type InputState struct {
	Modifiers uint8     // bit 0-7: LCtrl, LShift, LAlt, LGui, RCtrl, RShift, RAlt, RGui
	KeyBitmap [32]uint8 // 256 bits for HID usage codes 0x00-0xFF
}

// FromCodes folds a key code list into an InputState. Modifier codes set
// their modifier bit, keycode.No is ignored.
func FromCodes(codes []keycode.Code) InputState {
	var st InputState
	for _, c := range codes {
		st.Set(c)
	}
	return st
}

func (st *InputState) Set(c keycode.Code) {
	switch {
	case c == keycode.No:
	case c.IsModifier():
		st.Modifiers |= c.ModifierBit()
	default:
		st.KeyBitmap[c/8] |= 1 << (c % 8)
	}
}

// Clear unsets c.
func (st *InputState) Clear(c keycode.Code) {
	switch {
	case c == keycode.No:
	case c.IsModifier():
		st.Modifiers &^= c.ModifierBit()
	default:
		st.KeyBitmap[c/8] &^= 1 << (c % 8)
	}
}

// Pressed reports whether c is set.
func (st *InputState) Pressed(c keycode.Code) bool {
	if c.IsModifier() {
		return st.Modifiers&c.ModifierBit() != 0
	}
	return st.KeyBitmap[c/8]&(1<<(c%8)) != 0
}

// BuildReport encodes the state into the 34-byte HID keyboard report.
//
// Report layout (34 bytes):
//
//	Byte 0: Modifiers (8 bits)
//	Byte 1: Reserved (0x00)
//	Bytes 2-33: Key bitmap (256 bits, 32 bytes)
func (st InputState) BuildReport() []byte {
	return st.AppendReport(make([]byte, 0, NKROReportSize))
}

// AppendReport appends the 34-byte report to dst.
func (st InputState) AppendReport(dst []byte) []byte {
	dst = append(dst, st.Modifiers, 0x00)
	return append(dst, st.KeyBitmap[:]...)
}

// UnmarshalBinary decodes a 34-byte report.
func (st *InputState) UnmarshalBinary(data []byte) error {
	if len(data) < NKROReportSize {
		return io.ErrUnexpectedEOF
	}
	st.Modifiers = data[0]
	copy(st.KeyBitmap[:], data[2:NKROReportSize])
	return nil
}

// BootReport is a keyboard state in boot protocol form: up to six keys in
// the order they were pressed.
type BootReport struct {
	codes []keycode.Code
}

func NewBootReport(codes []keycode.Code) BootReport { return BootReport{codes: codes} }

// BuildReport encodes the 8-byte boot keyboard report.
//
//	Byte 0: Modifiers
//	Byte 1: Reserved (0x00)
//	Bytes 2-7: Key codes; all ErrorRollOver when more than six keys are down
func (b BootReport) BuildReport() []byte {
	return AppendBootReport(make([]byte, 0, BootReportSize), b.codes)
}

// AppendBootReport appends the boot report for codes to dst. Duplicate codes
// occupy one slot.
func AppendBootReport(dst []byte, codes []keycode.Code) []byte {
	var mods uint8
	var keys [bootKeys]keycode.Code
	n, overflow := 0, false
	for _, c := range codes {
		switch {
		case c == keycode.No:
			continue
		case c.IsModifier():
			mods |= c.ModifierBit()
			continue
		}
		dup := false
		for _, k := range keys[:n] {
			if k == c {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		if n == bootKeys {
			overflow = true
			continue
		}
		keys[n] = c
		n++
	}
	dst = append(dst, mods, 0x00)
	for i := 0; i < bootKeys; i++ {
		switch {
		case overflow:
			dst = append(dst, byte(keycode.ErrorRollOver))
		case i < n:
			dst = append(dst, byte(keys[i]))
		default:
			dst = append(dst, 0x00)
		}
	}
	return dst
}
