package expander_test

import (
	"errors"
	"testing"

	"github.com/makbe/makbe/action"
	"github.com/makbe/makbe/event"
	"github.com/makbe/makbe/expander"
	"github.com/makbe/makbe/keycode"
	"github.com/makbe/makbe/keyswitch"
	"github.com/makbe/makbe/virtualbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPool(t *testing.T, names ...string) (*keyswitch.Pool, []keyswitch.Ref) {
	t.Helper()
	p := keyswitch.NewPool()
	refs := make([]keyswitch.Ref, len(names))
	for i, n := range names {
		s := keyswitch.New(float64(i), 0)
		s.AppendAction(action.K(keycode.A + keycode.Code(i)))
		refs[i] = p.MustAdd(n, s)
	}
	return p, refs
}

func TestFamily(t *testing.T) {
	assert.Equal(t, 8, expander.TCA9554.Pins())
	assert.Equal(t, 1, expander.TCA9554.Width())
	assert.Equal(t, 16, expander.TCA9555.Pins())
	assert.Equal(t, 2, expander.TCA9555.Width())

	f, err := expander.ParseFamily("pca9555")
	require.NoError(t, err)
	assert.Equal(t, expander.TCA9555, f)
	_, err = expander.ParseFamily("mcp23017")
	assert.Error(t, err)
}

func TestInitConfiguresAllInputs(t *testing.T) {
	bus := virtualbus.New()
	addr, _ := bus.Add(expander.TCA9555, 3)
	require.NoError(t, bus.Write(addr, []byte{expander.RegConfig0, 0x00, 0x00}))

	p, _ := newPool(t)
	d := expander.NewTCA9555(p, 3, 0)
	assert.Equal(t, uint8(0x23), d.Address())
	require.NoError(t, d.Init(bus))

	writes := bus.Writes(addr)
	assert.Equal(t, [][]byte{{0x06, 0xFF}, {0x07, 0xFF}}, writes[1:])
}

func TestInitReportsBusError(t *testing.T) {
	bus := virtualbus.New()
	p, _ := newPool(t)
	d := expander.NewTCA9554(p, 0, 0)
	err := d.Init(bus)
	assert.ErrorIs(t, err, virtualbus.ErrNoDevice)
	assert.Contains(t, err.Error(), "tca9554@0x20")
}

func TestReadDecodesActiveLowPins(t *testing.T) {
	tests := []struct {
		name    string
		family  expander.Family
		pressed []int
		kind    expander.StateKind
	}{
		{name: "8 pin", family: expander.TCA9554, pressed: []int{0, 7}, kind: expander.Pins8},
		{name: "16 pin", family: expander.TCA9555, pressed: []int{1, 8, 15}, kind: expander.Pins16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := virtualbus.New()
			addr, _ := bus.Add(tt.family, 0)
			for _, pin := range tt.pressed {
				require.NoError(t, bus.Press(addr, pin))
			}
			p, _ := newPool(t)
			d := expander.New(tt.family, p, 0, 0)

			st, err := d.Read(bus)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, st.Kind)

			pins := st.PinSlice()
			assert.Len(t, pins, tt.family.Pins())
			for i, v := range pins {
				assert.Equal(t, contains(tt.pressed, i), v, "pin %d", i)
			}
		})
	}
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func TestReadFailure(t *testing.T) {
	bus := virtualbus.New()
	addr, _ := bus.Add(expander.TCA9554, 0)
	boom := errors.New("nack")
	bus.Fail(addr, boom)

	p, _ := newPool(t)
	d := expander.NewTCA9554(p, 0, 0)
	_, err := d.Read(bus)
	assert.ErrorIs(t, err, boom)
}

func TestAssign(t *testing.T) {
	p, refs := newPool(t, "a")
	d := expander.NewTCA9554(p, 0, 0)

	require.NoError(t, d.Assign(7, refs[0]))
	assert.Equal(t, refs[0], d.Binding(7))

	err := d.Assign(8, refs[0])
	var pinErr *expander.PinRangeError
	require.ErrorAs(t, err, &pinErr)
	assert.Equal(t, 8, pinErr.Pin)
	assert.Equal(t, 8, pinErr.Pins)

	assert.Error(t, d.Assign(-1, refs[0]))
	assert.NoError(t, expander.NewTCA9555(p, 0, 0).Assign(15, refs[0]))
}

func TestHasAssigned(t *testing.T) {
	p, refs := newPool(t, "a")
	empty, err := p.Add("empty", keyswitch.New(5, 5))
	require.NoError(t, err)

	d := expander.NewTCA9554(p, 0, 0)
	assert.False(t, d.HasAssigned())

	require.NoError(t, d.Assign(0, empty))
	assert.False(t, d.HasAssigned())

	require.NoError(t, d.Assign(1, refs[0]))
	assert.True(t, d.HasAssigned())
}

func TestPickEventsMapsPinsToSwitches(t *testing.T) {
	p, refs := newPool(t, "a", "b")
	d := expander.NewTCA9554(p, 0, 1)
	require.NoError(t, d.Assign(2, refs[0]))
	require.NoError(t, d.Assign(5, refs[1]))

	var st expander.State
	st.Kind = expander.Pins8
	st.Pins[2] = true
	st.Pins[6] = true

	assert.Empty(t, d.PickEvents(st))
	got := d.PickEvents(st)
	assert.Equal(t, []event.KeyEvent{
		event.Press(refs[0]),
		event.Press(keyswitch.DummyRef),
	}, got)

	st.Pins[2] = false
	st.Pins[5] = true
	assert.Empty(t, d.PickEvents(st))
	assert.Equal(t, []event.KeyEvent{
		event.Release(refs[0]),
		event.Press(refs[1]),
	}, d.PickEvents(st))
}

func TestPickEventsIgnoresValueStates(t *testing.T) {
	p, _ := newPool(t)
	d := expander.NewTCA9554(p, 0, 0)
	assert.Empty(t, d.PickEvents(expander.State{Kind: expander.Value16, Value: 1234}))
}
