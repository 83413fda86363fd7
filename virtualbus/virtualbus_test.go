package virtualbus_test

import (
	"errors"
	"testing"

	"github.com/makbe/makbe/expander"
	"github.com/makbe/makbe/virtualbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAssignsAddresses(t *testing.T) {
	b := virtualbus.New()
	addr, err := b.Add(expander.TCA9555, 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x21), addr)

	_, err = b.Add(expander.TCA9554, 1)
	assert.Error(t, err)

	_, err = b.Add(expander.TCA9554, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0x20, 0x21}, b.Addresses())

	require.NoError(t, b.Remove(0x20))
	assert.ErrorIs(t, b.Remove(0x20), virtualbus.ErrNoDevice)
}

func TestPinsAreActiveLow(t *testing.T) {
	b := virtualbus.New()
	addr, _ := b.Add(expander.TCA9555, 0)

	require.NoError(t, b.Press(addr, 0))
	require.NoError(t, b.Press(addr, 9))

	in := make([]byte, 2)
	require.NoError(t, b.WriteRead(addr, []byte{expander.RegInput0}, in))
	assert.Equal(t, []byte{0xFE, 0xFD}, in)

	require.NoError(t, b.Release(addr, 9))
	require.NoError(t, b.WriteRead(addr, []byte{expander.RegInput1}, in[:1]))
	assert.Equal(t, byte(0xFF), in[0])
	assert.Equal(t, uint64(2), b.Reads())

	var pinErr *expander.PinRangeError
	assert.ErrorAs(t, b.Press(addr, 16), &pinErr)
}

func TestSetInputs(t *testing.T) {
	b := virtualbus.New()
	addr, _ := b.Add(expander.TCA9555, 2)
	require.NoError(t, b.SetInputs(addr, 0xA55A))

	lo, _ := b.Register(addr, expander.RegInput0)
	hi, _ := b.Register(addr, expander.RegInput1)
	assert.Equal(t, byte(0x5A), lo)
	assert.Equal(t, byte(0xA5), hi)
}

func TestWriteStoresConfigButNotInputs(t *testing.T) {
	b := virtualbus.New()
	addr, _ := b.Add(expander.TCA9554, 0)

	require.NoError(t, b.Write(addr, []byte{expander.RegConfig0, 0x0F}))
	require.NoError(t, b.Write(addr, []byte{expander.RegInput0, 0x00}))

	cfg, _ := b.Register(addr, expander.RegConfig0)
	in, _ := b.Register(addr, expander.RegInput0)
	assert.Equal(t, byte(0x0F), cfg)
	assert.Equal(t, byte(0xFF), in)
	assert.Equal(t, [][]byte{{expander.RegConfig0, 0x0F}, {expander.RegInput0, 0x00}}, b.Writes(addr))

	assert.Error(t, b.Write(addr, []byte{0x07, 0x01, 0x02}))
}

func TestFailAndUnknownAddress(t *testing.T) {
	b := virtualbus.New()
	addr, _ := b.Add(expander.TCA9554, 0)
	boom := errors.New("arbitration lost")

	b.Fail(addr, boom)
	assert.ErrorIs(t, b.WriteRead(addr, []byte{0}, make([]byte, 1)), boom)
	assert.ErrorIs(t, b.Write(addr, []byte{0x06, 0xFF}), boom)

	b.Fail(addr, nil)
	assert.NoError(t, b.WriteRead(addr, []byte{0}, make([]byte, 1)))

	assert.ErrorIs(t, b.WriteRead(0x27, []byte{0}, make([]byte, 1)), virtualbus.ErrNoDevice)
}
