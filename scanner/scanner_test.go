package scanner_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/makbe/makbe/evaluator"
	"github.com/makbe/makbe/expander"
	mocks "github.com/makbe/makbe/internal/testing"
	"github.com/makbe/makbe/keycode"
	"github.com/makbe/makbe/scanner"
	"github.com/makbe/makbe/virtualbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rig struct {
	bus      *virtualbus.Bus
	addrs    []uint8
	eval     *evaluator.Evaluator
	reporter *mocks.Reporter
	scanner  *scanner.Scanner
}

// newRig wires three TCA9554 devices at offsets 0..2; pin 0 of device i
// emits codes[i].
func newRig(t *testing.T, codes ...keycode.Code) *rig {
	t.Helper()
	pool, refs := mocks.CreatePool(t, codes...)
	r := &rig{bus: virtualbus.New(), reporter: &mocks.Reporter{}}
	var devices []*expander.Device
	for i, ref := range refs {
		addr, err := r.bus.Add(expander.TCA9554, uint8(i))
		require.NoError(t, err)
		r.addrs = append(r.addrs, addr)
		d := expander.NewTCA9554(pool, uint8(i), 0)
		require.NoError(t, d.Assign(0, ref))
		devices = append(devices, d)
	}
	r.eval = evaluator.New(pool)
	r.scanner = scanner.New(r.bus, devices, r.eval, r.reporter, slog.New(slog.DiscardHandler))
	require.NoError(t, r.scanner.Init())
	return r
}

func TestTickDeliversEventsInDeviceOrder(t *testing.T) {
	r := newRig(t, keycode.A, keycode.B)
	require.NoError(t, r.bus.Press(r.addrs[1], 0))
	require.NoError(t, r.bus.Press(r.addrs[0], 0))

	require.NoError(t, r.scanner.Tick())
	assert.Equal(t, []keycode.Code{keycode.A}, r.reporter.Last())
	require.NoError(t, r.scanner.Tick())
	assert.Equal(t, []keycode.Code{keycode.A, keycode.B}, r.reporter.Last())
	assert.Equal(t, uint64(2), r.scanner.Ticks())

	require.NoError(t, r.bus.Release(r.addrs[0], 0))
	require.NoError(t, r.scanner.Tick())
	assert.Equal(t, []keycode.Code{keycode.B}, r.reporter.Last())
}

func TestFailingDeviceDoesNotBlockOthers(t *testing.T) {
	r := newRig(t, keycode.A, keycode.B, keycode.C)
	for _, addr := range r.addrs {
		require.NoError(t, r.bus.Press(addr, 0))
	}
	r.bus.Fail(r.addrs[1], errors.New("nack"))

	require.NoError(t, r.scanner.Tick())
	assert.True(t, r.scanner.Failing(1))
	assert.False(t, r.scanner.Failing(0))
	assert.Equal(t, 1, r.eval.Queued(), "events of devices 1 and 3 reach the evaluator in the same tick")

	require.NoError(t, r.scanner.Tick())
	assert.Equal(t, []keycode.Code{keycode.A, keycode.C}, r.reporter.Last())
	assert.False(t, r.reporter.Contains(keycode.B))

	r.bus.Fail(r.addrs[1], nil)
	require.NoError(t, r.scanner.Tick())
	require.NoError(t, r.scanner.Tick())
	assert.False(t, r.scanner.Failing(1))
	assert.Equal(t, []keycode.Code{keycode.A, keycode.C, keycode.B}, r.reporter.Last())
}

func TestTickReportsEveryEvaluation(t *testing.T) {
	r := newRig(t, keycode.A, keycode.B)
	require.NoError(t, r.scanner.Tick())
	assert.Len(t, r.reporter.Reports(), 1)

	require.NoError(t, r.bus.Press(r.addrs[0], 0))
	require.NoError(t, r.bus.Press(r.addrs[1], 0))
	require.NoError(t, r.scanner.Tick())
	// two evaluations plus the tick
	assert.Len(t, r.reporter.Reports(), 4)
}

func TestTickReturnsReporterError(t *testing.T) {
	r := newRig(t, keycode.A)
	r.reporter.Err = errors.New("gadget gone")
	assert.EqualError(t, r.scanner.Tick(), "gadget gone")
}

func TestInitCollectsErrors(t *testing.T) {
	pool, refs := mocks.CreatePool(t, keycode.A)
	bus := virtualbus.New()
	addr, err := bus.Add(expander.TCA9555, 0)
	require.NoError(t, err)

	present := expander.NewTCA9555(pool, 0, 0)
	require.NoError(t, present.Assign(3, refs[0]))
	missing := expander.NewTCA9554(pool, 5, 0)
	broken := expander.NewTCA9554(pool, 6, 0)

	s := scanner.New(bus, []*expander.Device{missing, present, broken}, evaluator.New(pool), &mocks.Reporter{}, slog.New(slog.DiscardHandler))
	err = s.Init()
	require.Error(t, err)
	assert.ErrorIs(t, err, virtualbus.ErrNoDevice)
	assert.Contains(t, err.Error(), "0x25")
	assert.Contains(t, err.Error(), "0x26")
	assert.Len(t, bus.Writes(addr), 2)
}

func TestInitWithFailingBus(t *testing.T) {
	pool, _ := mocks.CreatePool(t)
	boom := errors.New("bus stuck")
	s := scanner.New(mocks.FailingBus{Err: boom}, []*expander.Device{expander.NewTCA9554(pool, 0, 0)}, evaluator.New(pool), &mocks.Reporter{}, nil)
	assert.ErrorIs(t, s.Init(), boom)
}

func TestRunStopsOnCancel(t *testing.T) {
	r := newRig(t, keycode.A)
	require.NoError(t, r.bus.Press(r.addrs[0], 0))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, r.scanner.Run(ctx, time.Millisecond))
	assert.Greater(t, r.scanner.Ticks(), uint64(1))
	assert.Equal(t, []keycode.Code{keycode.A}, r.reporter.Last())
}

func TestRunRejectsInvalidInterval(t *testing.T) {
	r := newRig(t, keycode.A)
	assert.Error(t, r.scanner.Run(context.Background(), 0))
}
