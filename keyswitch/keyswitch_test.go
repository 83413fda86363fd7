package keyswitch_test

import (
	"testing"

	"github.com/makbe/makbe/action"
	"github.com/makbe/makbe/keycode"
	"github.com/makbe/makbe/keyswitch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionFixedPoint(t *testing.T) {
	s := keyswitch.NewWithWidth(1.75, 2, 2.25)
	assert.Equal(t, int32(448), s.Position.X)
	assert.Equal(t, int32(512), s.Position.Y)
	assert.Equal(t, int32(576), s.Position.W)
	assert.Equal(t, int32(256), s.Position.H)
	assert.Equal(t, action.Trans, s.DefaultAction)
}

func TestShapes(t *testing.T) {
	iso := keyswitch.NewWithShape(keyswitch.IsoEnter, 14, 1)
	assert.Equal(t, keyswitch.IsoEnter, iso.Shape)
	assert.Equal(t, keyswitch.Fixed(1.25), iso.Position.W)
	assert.Equal(t, keyswitch.Fixed(2), iso.Position.H)

	rect := keyswitch.NewWithShape(keyswitch.Rectangle, 0, 0)
	assert.Equal(t, keyswitch.Fixed(1), rect.Position.W)
}

func TestRotation(t *testing.T) {
	s := keyswitch.New(3, 4)
	s.Rotate(15)
	assert.Equal(t, keyswitch.Fixed(15), s.Position.R)
	assert.Equal(t, s.Position.X, s.Position.RX)
	assert.Equal(t, s.Position.Y, s.Position.RY)

	s.RotateAt(-30, 1.5, 2.5)
	assert.Equal(t, keyswitch.Fixed(-30), s.Position.R)
	assert.Equal(t, int32(384), s.Position.RX)
	assert.Equal(t, int32(640), s.Position.RY)
}

func TestAppendActionCapsAtFourLayers(t *testing.T) {
	s := keyswitch.New(0, 0)
	for i := 0; i < 6; i++ {
		s.AppendAction(action.L(i))
	}
	assert.Len(t, s.Actions, keyswitch.MaxLayers)

	a, ok := s.ActionAt(3)
	assert.True(t, ok)
	assert.Equal(t, action.L(3), a)

	_, ok = s.ActionAt(4)
	assert.False(t, ok)
	_, ok = s.ActionAt(-1)
	assert.False(t, ok)
}

func TestPool(t *testing.T) {
	p := keyswitch.NewPool()
	assert.Equal(t, 0, p.Len())
	assert.False(t, p.HasActions(keyswitch.DummyRef))
	assert.Equal(t, action.NoOp, p.Get(keyswitch.DummyRef).DefaultAction)

	esc := keyswitch.New(0, 0)
	esc.AppendAction(action.K(keycode.Escape))
	ref, err := p.Add("escape", esc)
	require.NoError(t, err)
	assert.NotEqual(t, keyswitch.DummyRef, ref)

	_, err = p.Add("escape", keyswitch.New(1, 0))
	assert.ErrorIs(t, err, keyswitch.ErrDuplicateName)
	_, err = p.Add("", keyswitch.New(1, 0))
	assert.Error(t, err)

	got, ok := p.Lookup("escape")
	assert.True(t, ok)
	assert.Equal(t, ref, got)
	assert.Equal(t, "escape", p.Name(ref))
	assert.True(t, p.HasActions(ref))
	assert.Equal(t, []keyswitch.Ref{ref}, p.Refs())

	a, ok := p.ActionAt(ref, 0)
	assert.True(t, ok)
	assert.Equal(t, action.K(keycode.Escape), a)

	_, ok = p.ActionAt(keyswitch.Ref(99), 0)
	assert.False(t, ok)
	assert.Equal(t, "", p.Name(keyswitch.Ref(99)))
}

func TestPoolCopiesActions(t *testing.T) {
	p := keyswitch.NewPool()
	s := keyswitch.New(0, 0)
	s.AppendAction(action.K(keycode.A))
	ref := p.MustAdd("a", s)

	s.Actions[0] = action.K(keycode.B)
	a, _ := p.ActionAt(ref, 0)
	assert.Equal(t, action.K(keycode.A), a)
}
