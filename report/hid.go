package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/makbe/makbe/keycode"
)

type Format uint8

const (
	NKRO Format = iota
	Boot
)

func (f Format) String() string {
	if f == Boot {
		return "boot"
	}
	return "nkro"
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "nkro", "":
		return NKRO, nil
	case "boot":
		return Boot, nil
	default:
		return 0, fmt.Errorf("unknown report format %q", s)
	}
}

// HID writes each key code set as one HID keyboard input report, for
// example to a Linux USB gadget device such as /dev/hidg0.
type HID struct {
	w      io.Writer
	format Format
	buf    []byte
}

func NewHID(w io.Writer, format Format) *HID {
	return &HID{w: w, format: format, buf: make([]byte, 0, NKROReportSize)}
}

func (h *HID) Format() Format { return h.format }

func (h *HID) Report(codes []keycode.Code) error {
	h.buf = h.buf[:0]
	if h.format == Boot {
		h.buf = AppendBootReport(h.buf, codes)
	} else {
		h.buf = FromCodes(codes).AppendReport(h.buf)
	}
	if _, err := h.w.Write(h.buf); err != nil {
		return fmt.Errorf("write %s report: %w", h.format, err)
	}
	return nil
}
