// Package keycode defines USB HID keyboard usage codes (usage page 0x07)
// emitted by the evaluator.
package keycode

// Code is a HID keyboard/keypad usage code.
type Code uint8

// Modifier bitmasks as laid out in the first byte of a keyboard report.
const (
	ModLeftCtrl   = 0x01
	ModLeftShift  = 0x02
	ModLeftAlt    = 0x04
	ModLeftGUI    = 0x08 // Windows/Command key
	ModRightCtrl  = 0x10
	ModRightShift = 0x20
	ModRightAlt   = 0x40
	ModRightGUI   = 0x80
)

const (
	No            Code = 0x00
	ErrorRollOver Code = 0x01

	// Letters A-Z
	A Code = 0x04
	B Code = 0x05
	C Code = 0x06
	D Code = 0x07
	E Code = 0x08
	F Code = 0x09
	G Code = 0x0A
	H Code = 0x0B
	I Code = 0x0C
	J Code = 0x0D
	K Code = 0x0E
	L Code = 0x0F
	M Code = 0x10
	N Code = 0x11
	O Code = 0x12
	P Code = 0x13
	Q Code = 0x14
	R Code = 0x15
	S Code = 0x16
	T Code = 0x17
	U Code = 0x18
	V Code = 0x19
	W Code = 0x1A
	X Code = 0x1B
	Y Code = 0x1C
	Z Code = 0x1D

	// Numbers 1-0 (top row)
	Kb1 Code = 0x1E
	Kb2 Code = 0x1F
	Kb3 Code = 0x20
	Kb4 Code = 0x21
	Kb5 Code = 0x22
	Kb6 Code = 0x23
	Kb7 Code = 0x24
	Kb8 Code = 0x25
	Kb9 Code = 0x26
	Kb0 Code = 0x27

	Enter      Code = 0x28
	Escape     Code = 0x29
	Backspace  Code = 0x2A
	Tab        Code = 0x2B
	Space      Code = 0x2C
	Minus      Code = 0x2D // - and _
	Equal      Code = 0x2E // = and +
	LeftBrace  Code = 0x2F // [ and {
	RightBrace Code = 0x30 // ] and }
	Backslash  Code = 0x31 // \ and |
	NonUSHash  Code = 0x32 // Non-US # and ~
	Semicolon  Code = 0x33 // ; and :
	Apostrophe Code = 0x34 // ' and "
	Grave      Code = 0x35 // ` and ~
	Comma      Code = 0x36 // , and <
	Period     Code = 0x37 // . and >
	Slash      Code = 0x38 // / and ?
	CapsLock   Code = 0x39

	F1  Code = 0x3A
	F2  Code = 0x3B
	F3  Code = 0x3C
	F4  Code = 0x3D
	F5  Code = 0x3E
	F6  Code = 0x3F
	F7  Code = 0x40
	F8  Code = 0x41
	F9  Code = 0x42
	F10 Code = 0x43
	F11 Code = 0x44
	F12 Code = 0x45

	PrintScreen Code = 0x46
	ScrollLock  Code = 0x47
	Pause       Code = 0x48
	Insert      Code = 0x49
	Home        Code = 0x4A
	PageUp      Code = 0x4B
	Delete      Code = 0x4C
	End         Code = 0x4D
	PageDown    Code = 0x4E

	Right Code = 0x4F
	Left  Code = 0x50
	Down  Code = 0x51
	Up    Code = 0x52

	NumLock    Code = 0x53
	KpSlash    Code = 0x54
	KpAsterisk Code = 0x55
	KpMinus    Code = 0x56
	KpPlus     Code = 0x57
	KpEnter    Code = 0x58
	Kp1        Code = 0x59
	Kp2        Code = 0x5A
	Kp3        Code = 0x5B
	Kp4        Code = 0x5C
	Kp5        Code = 0x5D
	Kp6        Code = 0x5E
	Kp7        Code = 0x5F
	Kp8        Code = 0x60
	Kp9        Code = 0x61
	Kp0        Code = 0x62
	KpDot      Code = 0x63

	NonUSBackslash Code = 0x64 // Non-US \ and |
	Application    Code = 0x65 // Windows Menu key
	Power          Code = 0x66
	KpEqual        Code = 0x67

	F13 Code = 0x68
	F14 Code = 0x69
	F15 Code = 0x6A
	F16 Code = 0x6B
	F17 Code = 0x6C
	F18 Code = 0x6D
	F19 Code = 0x6E
	F20 Code = 0x6F
	F21 Code = 0x70
	F22 Code = 0x71
	F23 Code = 0x72
	F24 Code = 0x73

	Execute    Code = 0x74
	Help       Code = 0x75
	Menu       Code = 0x76
	Select     Code = 0x77
	Stop       Code = 0x78
	Again      Code = 0x79
	Undo       Code = 0x7A
	Cut        Code = 0x7B
	Copy       Code = 0x7C
	Paste      Code = 0x7D
	Find       Code = 0x7E
	Mute       Code = 0x7F
	VolumeUp   Code = 0x80
	VolumeDown Code = 0x81

	Intl1 Code = 0x87 // Ro
	Intl2 Code = 0x88 // Katakana/Hiragana
	Intl3 Code = 0x89 // Yen
	Intl4 Code = 0x8A // Henkan
	Intl5 Code = 0x8B // Muhenkan
	Lang1 Code = 0x90 // Kana / Hangeul
	Lang2 Code = 0x91 // Eisu / Hanja

	LeftCtrl   Code = 0xE0
	LeftShift  Code = 0xE1
	LeftAlt    Code = 0xE2
	LeftGUI    Code = 0xE3
	RightCtrl  Code = 0xE4
	RightShift Code = 0xE5
	RightAlt   Code = 0xE6
	RightGUI   Code = 0xE7

	MediaPlayPause Code = 0xE8
	MediaStop      Code = 0xE9
	MediaNext      Code = 0xEB
	MediaPrevious  Code = 0xEC
)

// IsModifier reports whether c is one of the eight modifier usages that are
// carried in the modifier byte of a report rather than in the key array.
func (c Code) IsModifier() bool { return c >= LeftCtrl && c <= RightGUI }

// ModifierBit returns the report modifier bitmask for c, or 0 when c is not a
// modifier.
func (c Code) ModifierBit() uint8 {
	if !c.IsModifier() {
		return 0
	}
	return 1 << (c - LeftCtrl)
}
