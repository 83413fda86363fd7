package keycode

import (
	"fmt"
	"strconv"
	"strings"
)

// Names maps usage codes to human readable key names. The names are also the
// spelling accepted by Parse.
var Names = map[Code]string{
	A: "A", B: "B", C: "C", D: "D", E: "E", F: "F", G: "G",
	H: "H", I: "I", J: "J", K: "K", L: "L", M: "M", N: "N",
	O: "O", P: "P", Q: "Q", R: "R", S: "S", T: "T", U: "U",
	V: "V", W: "W", X: "X", Y: "Y", Z: "Z",

	Kb1: "1", Kb2: "2", Kb3: "3", Kb4: "4", Kb5: "5",
	Kb6: "6", Kb7: "7", Kb8: "8", Kb9: "9", Kb0: "0",

	Enter:      "Enter",
	Escape:     "Escape",
	Backspace:  "Backspace",
	Tab:        "Tab",
	Space:      "Space",
	Minus:      "Minus",
	Equal:      "Equal",
	LeftBrace:  "LeftBrace",
	RightBrace: "RightBrace",
	Backslash:  "Backslash",
	NonUSHash:  "NonUSHash",
	Semicolon:  "Semicolon",
	Apostrophe: "Apostrophe",
	Grave:      "Grave",
	Comma:      "Comma",
	Period:     "Period",
	Slash:      "Slash",
	CapsLock:   "CapsLock",

	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6",
	F7: "F7", F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12",
	F13: "F13", F14: "F14", F15: "F15", F16: "F16", F17: "F17", F18: "F18",
	F19: "F19", F20: "F20", F21: "F21", F22: "F22", F23: "F23", F24: "F24",

	PrintScreen: "PrintScreen",
	ScrollLock:  "ScrollLock",
	Pause:       "Pause",
	Insert:      "Insert",
	Home:        "Home",
	PageUp:      "PageUp",
	Delete:      "Delete",
	End:         "End",
	PageDown:    "PageDown",

	Right: "Right",
	Left:  "Left",
	Down:  "Down",
	Up:    "Up",

	NumLock:    "NumLock",
	KpSlash:    "Kp/",
	KpAsterisk: "Kp*",
	KpMinus:    "Kp-",
	KpPlus:     "Kp+",
	KpEnter:    "KpEnter",
	Kp1:        "Kp1",
	Kp2:        "Kp2",
	Kp3:        "Kp3",
	Kp4:        "Kp4",
	Kp5:        "Kp5",
	Kp6:        "Kp6",
	Kp7:        "Kp7",
	Kp8:        "Kp8",
	Kp9:        "Kp9",
	Kp0:        "Kp0",
	KpDot:      "Kp.",
	KpEqual:    "Kp=",

	NonUSBackslash: "NonUSBackslash",
	Application:    "Application",
	Power:          "Power",
	Execute:        "Execute",
	Help:           "Help",
	Menu:           "Menu",
	Select:         "Select",
	Stop:           "Stop",
	Again:          "Again",
	Undo:           "Undo",
	Cut:            "Cut",
	Copy:           "Copy",
	Paste:          "Paste",
	Find:           "Find",
	Mute:           "Mute",
	VolumeUp:       "VolumeUp",
	VolumeDown:     "VolumeDown",

	Intl1: "Intl1",
	Intl2: "Intl2",
	Intl3: "Intl3",
	Intl4: "Intl4",
	Intl5: "Intl5",
	Lang1: "Lang1",
	Lang2: "Lang2",

	LeftCtrl:   "LeftCtrl",
	LeftShift:  "LeftShift",
	LeftAlt:    "LeftAlt",
	LeftGUI:    "LeftGUI",
	RightCtrl:  "RightCtrl",
	RightShift: "RightShift",
	RightAlt:   "RightAlt",
	RightGUI:   "RightGUI",

	MediaPlayPause: "MediaPlayPause",
	MediaStop:      "MediaStop",
	MediaNext:      "MediaNext",
	MediaPrevious:  "MediaPrevious",
}

// aliases lets layouts use the short spellings common in keyboard firmware
// keymaps.
var aliases = map[string]Code{
	"kb1": Kb1, "kb2": Kb2, "kb3": Kb3, "kb4": Kb4, "kb5": Kb5,
	"kb6": Kb6, "kb7": Kb7, "kb8": Kb8, "kb9": Kb9, "kb0": Kb0,
	"esc":       Escape,
	"bspace":    Backspace,
	"bslash":    Backslash,
	"lbracket":  LeftBrace,
	"rbracket":  RightBrace,
	"scolon":    Semicolon,
	"quote":     Apostrophe,
	"dot":       Period,
	"lctrl":     LeftCtrl,
	"lshift":    LeftShift,
	"lalt":      LeftAlt,
	"lgui":      LeftGUI,
	"rctrl":     RightCtrl,
	"rshift":    RightShift,
	"ralt":      RightAlt,
	"rgui":      RightGUI,
	"pscreen":   PrintScreen,
	"pgup":      PageUp,
	"pgdown":    PageDown,
	"kana":      Lang1,
	"eisu":      Lang2,
	"volup":     VolumeUp,
	"voldown":   VolumeDown,
	"playpause": MediaPlayPause,
}

var byName map[string]Code

func init() {
	byName = make(map[string]Code, len(Names)+len(aliases))
	for c, n := range Names {
		byName[strings.ToLower(n)] = c
	}
	for n, c := range aliases {
		byName[n] = c
	}
}

// String returns the key name, or the hex usage code for unnamed codes.
func (c Code) String() string {
	if n, ok := Names[c]; ok {
		return n
	}
	return fmt.Sprintf("0x%02X", uint8(c))
}

// Parse resolves a key name (case-insensitive, aliases included) or a numeric
// usage code such as "0x2C".
func Parse(name string) (Code, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return No, false
	}
	if c, ok := byName[n]; ok {
		return c, true
	}
	if strings.HasPrefix(n, "0x") {
		v, err := strconv.ParseUint(n[2:], 16, 8)
		if err == nil {
			return Code(v), true
		}
	}
	return No, false
}
