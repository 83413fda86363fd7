package report

import (
	"errors"
	"io"
)

// LED bitmasks of the keyboard output report.
const (
	LEDNumLock    = 0x01
	LEDCapsLock   = 0x02
	LEDScrollLock = 0x04
	LEDCompose    = 0x08
	LEDKana       = 0x10
)

// LEDState represents the state of keyboard LEDs controlled by the host.
type LEDState struct {
	NumLock    bool
	CapsLock   bool
	ScrollLock bool
	Compose    bool
	Kana       bool
}

// UnmarshalBinary decodes a 1-byte LED bitmask into LEDState.
func (st *LEDState) UnmarshalBinary(data []byte) error {
	if len(data) < 1 {
		return io.ErrUnexpectedEOF
	}
	b := data[0]
	st.NumLock = b&LEDNumLock != 0
	st.CapsLock = b&LEDCapsLock != 0
	st.ScrollLock = b&LEDScrollLock != 0
	st.Compose = b&LEDCompose != 0
	st.Kana = b&LEDKana != 0
	return nil
}

// WatchLEDs reads output reports from r and calls fn for every change. It
// returns nil once r reaches EOF.
func WatchLEDs(r io.Reader, fn func(LEDState)) error {
	var (
		buf   [1]byte
		last  LEDState
		first = true
	)
	for {
		n, err := r.Read(buf[:])
		if n > 0 {
			var st LEDState
			_ = st.UnmarshalBinary(buf[:n])
			if first || st != last {
				fn(st)
				last, first = st, false
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
