package keycode

// Linux input-event key codes (linux/input-event-codes.h) for the usages a
// host virtual keyboard can reproduce.
var linuxCodes = map[Code]int{
	Escape: 1,
	Kb1:    2, Kb2: 3, Kb3: 4, Kb4: 5, Kb5: 6, Kb6: 7, Kb7: 8, Kb8: 9, Kb9: 10, Kb0: 11,
	Minus: 12, Equal: 13, Backspace: 14, Tab: 15,
	Q: 16, W: 17, E: 18, R: 19, T: 20, Y: 21, U: 22, I: 23, O: 24, P: 25,
	LeftBrace: 26, RightBrace: 27, Enter: 28, LeftCtrl: 29,
	A: 30, S: 31, D: 32, F: 33, G: 34, H: 35, J: 36, K: 37, L: 38,
	Semicolon: 39, Apostrophe: 40, Grave: 41, LeftShift: 42, Backslash: 43,
	Z: 44, X: 45, C: 46, V: 47, B: 48, N: 49, M: 50,
	Comma: 51, Period: 52, Slash: 53, RightShift: 54, KpAsterisk: 55,
	LeftAlt: 56, Space: 57, CapsLock: 58,
	F1: 59, F2: 60, F3: 61, F4: 62, F5: 63, F6: 64, F7: 65, F8: 66, F9: 67, F10: 68,
	NumLock: 69, ScrollLock: 70,
	Kp7: 71, Kp8: 72, Kp9: 73, KpMinus: 74, Kp4: 75, Kp5: 76, Kp6: 77, KpPlus: 78,
	Kp1: 79, Kp2: 80, Kp3: 81, Kp0: 82, KpDot: 83,
	NonUSBackslash: 86, F11: 87, F12: 88, Intl1: 89, Intl2: 93, Intl4: 92, Intl5: 94,
	KpEnter: 96, RightCtrl: 97, KpSlash: 98, PrintScreen: 99, RightAlt: 100,
	Home: 102, Up: 103, PageUp: 104, Left: 105, Right: 106, End: 107, Down: 108,
	PageDown: 109, Insert: 110, Delete: 111, Mute: 113, VolumeDown: 114, VolumeUp: 115,
	Power: 116, KpEqual: 117, Pause: 119, Lang1: 122, Lang2: 123, Intl3: 124,
	LeftGUI: 125, RightGUI: 126, Application: 127, Stop: 128, Again: 129, Undo: 131,
	Copy: 133, Paste: 135, Find: 136, Cut: 137, Help: 138, Menu: 139,
	NonUSHash: 43,
	MediaNext: 163, MediaPlayPause: 164, MediaPrevious: 165, MediaStop: 166,
	F13: 183, F14: 184, F15: 185, F16: 186, F17: 187, F18: 188,
	F19: 189, F20: 190, F21: 191, F22: 192, F23: 193, F24: 194,
}

// Linux returns the Linux input-event code for c.
func (c Code) Linux() (int, bool) {
	v, ok := linuxCodes[c]
	return v, ok
}

// FromLinux returns the usage code producing the Linux input-event code v.
func FromLinux(v int) (Code, bool) {
	for c, l := range linuxCodes {
		if l == v && c != NonUSHash {
			return c, true
		}
	}
	return No, false
}
