package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/makbe/makbe/action"
	"github.com/makbe/makbe/expander"
	"github.com/makbe/makbe/internal/log"
	"github.com/makbe/makbe/keycode"
	"github.com/makbe/makbe/keyswitch"
	"github.com/makbe/makbe/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"
)

var discard = slog.New(slog.DiscardHandler)

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Layout":    "layout",
		"HIDDevice": "hid_device",
		"RawFile":   "raw_file",
		"Bus":       "bus",
		"LogLevel":  "log_level",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, snakeCase(in))
		})
	}
}

func TestConfigTemplate(t *testing.T) {
	root, err := configTemplate("run")
	require.NoError(t, err)
	assert.Equal(t, "", root["layout"])
	assert.Equal(t, int64(1), root["bus"])
	assert.Equal(t, "1ms", root["interval"])
	assert.Equal(t, "hid", root["output"])
	assert.Equal(t, "/dev/hidg0", root["hid_device"])
	assert.Equal(t, "nkro", root["hid_format"])
	assert.Equal(t, "/dev/uinput", root["uinput"])
	logSection, ok := root["log"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "info", logSection["level"])
	assert.Equal(t, "text", logSection["format"])
	assert.Contains(t, logSection, "raw_file")

	root, err = configTemplate("simulate")
	require.NoError(t, err)
	assert.NotContains(t, root, "script")
	assert.Equal(t, "auto", root["style"])

	root, err = configTemplate("host")
	require.NoError(t, err)
	assert.Equal(t, true, root["grab"])

	_, err = configTemplate("check")
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "conf", "run.yaml")
	c := &ConfigInit{Command: "run", Format: "yaml", Output: dest}
	require.NoError(t, c.Run(discard))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, yaml.Unmarshal(data, &m))
	assert.Equal(t, "/dev/hidg0", m["hid_device"])
	assert.Equal(t, 1, m["bus"])

	err = c.Run(discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	c.Force = true
	c.Format = "toml"
	require.NoError(t, c.Run(discard))
	data, err = os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hid_device")
}

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(`
steps:
  - press: [a]
    ticks: 3
  - release: [a]
  - fail: [0]
  - heal: [0]
`))
	require.NoError(t, err)
	require.Len(t, s.Steps, 4)
	assert.Equal(t, []string{"a"}, s.Steps[0].Press)
	assert.Equal(t, 3, s.Steps[0].Ticks)
	assert.Equal(t, []int{0}, s.Steps[3].Heal)

	_, err = ParseScript([]byte("steps:\n  - push: [a]\n"))
	assert.Error(t, err)

	_, err = ParseScript([]byte("steps:\n  - ticks: -1\n"))
	assert.Error(t, err)

	s, err = ParseScript(nil)
	require.NoError(t, err)
	assert.Empty(t, s.Steps)
}

func simKeyboard(t *testing.T) *layout.Keyboard {
	t.Helper()
	a := keyswitch.New(0, 0)
	a.AppendAction(action.K(keycode.A))
	tab := keyswitch.New(1, 0)
	tab.AppendAction(action.HT(10, action.L(1), action.K(keycode.Tab)))
	b := keyswitch.New(2, 0)
	b.AppendAction(action.K(keycode.B)).AppendAction(action.K(keycode.C))

	kb, err := layout.NewBuilder("sim").
		Debounce(0).
		Switch("a", a).
		Switch("tab", tab).
		Switch("b", b).
		Device(expander.TCA9554, 0, "a", "tab", "b").
		Build()
	require.NoError(t, err)
	return kb
}

func TestSimulateTapAndHold(t *testing.T) {
	kb := simKeyboard(t)
	script := Script{Steps: []Step{
		{Press: []string{"a"}},
		{Release: []string{"a"}},
		{Press: []string{"tab"}},
		{Press: []string{"b"}},
		{Ticks: 20},
		{Release: []string{"tab", "b"}},
	}}

	frames, err := simulate(kb, script, log.NewRaw(nil), discard)
	require.NoError(t, err)
	require.Len(t, frames, 4)

	assert.Equal(t, uint64(1), frames[0].Tick)
	assert.Equal(t, []keycode.Code{keycode.A}, frames[0].Codes)
	assert.Equal(t, uint64(2), frames[1].Tick)
	assert.Empty(t, frames[1].Codes)

	// b was pressed while tab was undecided; the hold puts it on layer 1
	assert.Equal(t, []keycode.Code{keycode.C}, frames[2].Codes)
	assert.Equal(t, 1, frames[2].Layer)
	assert.Greater(t, frames[2].Tick, uint64(4))

	assert.Empty(t, frames[3].Codes)
	assert.Equal(t, 0, frames[3].Layer)
}

func TestSimulateDeviceFault(t *testing.T) {
	kb := simKeyboard(t)
	script := Script{Steps: []Step{
		{Fail: []int{0}},
		{Press: []string{"a"}, Ticks: 3},
		{Heal: []int{0}},
	}}

	frames, err := simulate(kb, script, log.NewRaw(nil), discard)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, uint64(5), frames[0].Tick)
	assert.Equal(t, []keycode.Code{keycode.A}, frames[0].Codes)
}

func TestSimulateErrors(t *testing.T) {
	tests := []struct {
		name string
		step Step
		want string
	}{
		{"unknown switch", Step{Press: []string{"zz"}}, `steps[0].press: unknown switch "zz"`},
		{"unknown device", Step{Fail: []int{3}}, "steps[0].fail: no device 3"},
		{"negative device", Step{Heal: []int{-1}}, "steps[0].heal: no device -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := simulate(simKeyboard(t), Script{Steps: []Step{tt.step}}, log.NewRaw(nil), discard)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPrintFrames(t *testing.T) {
	frames := []Frame{
		{Tick: 1, Codes: []keycode.Code{keycode.A, keycode.B}},
		{Tick: 12, Layer: 1},
	}

	var plain bytes.Buffer
	require.NoError(t, printFrames(&plain, frames, false))
	assert.Equal(t, "tick=1 layer=0 keys=A,B\ntick=12 layer=1 keys=-\n", plain.String())

	var table bytes.Buffer
	require.NoError(t, printFrames(&table, frames, true))
	assert.Equal(t, "TICK  LAYER  KEYS\n1     0      A,B\n12    1      -\n", table.String())
}

func TestCheck(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	c := &Check{LayoutFlag{Layout: filepath.Join("..", "..", "examples", "matagi", "layout.yaml")}}
	require.NoError(t, c.Run(logger))
	assert.Contains(t, buf.String(), "Layout OK")
	assert.Contains(t, buf.String(), "switches=67")
	assert.Contains(t, buf.String(), "unbound_pins=13")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`
switches:
  - {name: a, x: 0, y: 0, actions: [nosuchkey]}
devices:
  - {chip: tca9554, offset: 0, pins: [a]}
`), 0o644))
	err := (&Check{LayoutFlag{Layout: bad}}).Run(logger)
	require.Error(t, err)
	assert.True(t, layout.IsValidation(err))
	assert.Contains(t, err.Error(), bad)
}

func TestExampleScript(t *testing.T) {
	dir := filepath.Join("..", "..", "examples", "matagi")
	kb, err := LayoutFlag{Layout: filepath.Join(dir, "layout.yaml")}.keyboard(discard)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "script.yaml"))
	require.NoError(t, err)
	script, err := ParseScript(data)
	require.NoError(t, err)

	frames, err := simulate(kb, script, log.NewRaw(nil), discard)
	require.NoError(t, err)

	var sawTab, sawCtrlC bool
	for _, f := range frames {
		if slices.Equal(f.Codes, []keycode.Code{keycode.Tab}) {
			sawTab = true
		}
		if f.Layer == 1 && slices.Contains(f.Codes, keycode.LeftCtrl) && slices.Contains(f.Codes, keycode.C) {
			sawCtrlC = true
		}
	}
	assert.True(t, sawTab)
	assert.True(t, sawCtrlC)
	assert.Empty(t, frames[len(frames)-1].Codes)
}
