package cmd

import "time"

// Host lets a keyboard attached to this machine press the switches of a
// layout through an emulated bus.
type Host struct {
	LayoutFlag `embed:""`
	Device     string        `help:"Input event device (defaults to the first keyboard found)" env:"MAKBE_HOST_DEVICE"`
	Grab       bool          `help:"Take the input device exclusively" default:"true" negatable:"" env:"MAKBE_HOST_GRAB"`
	Interval   time.Duration `help:"Scan interval" default:"1ms" env:"MAKBE_INTERVAL"`
	Output     string        `help:"Where key reports go" enum:"uinput,log" default:"uinput" env:"MAKBE_OUTPUT"`
	Uinput     string        `help:"uinput device" default:"/dev/uinput" env:"MAKBE_UINPUT"`
}
