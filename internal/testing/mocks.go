package testing

import (
	"sync"
	"testing"

	"github.com/makbe/makbe/action"
	"github.com/makbe/makbe/keycode"
	"github.com/makbe/makbe/keyswitch"
)

// Reporter records every key code set handed to it.
type Reporter struct {
	mu      sync.Mutex
	reports [][]keycode.Code
	// Err is returned from every Report call.
	Err error
}

func (r *Reporter) Report(codes []keycode.Code) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, append([]keycode.Code{}, codes...))
	return r.Err
}

// Reports returns a copy of every recorded report.
func (r *Reporter) Reports() [][]keycode.Code {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]keycode.Code, len(r.reports))
	copy(out, r.reports)
	return out
}

// Last returns the most recent report, nil if none was made.
func (r *Reporter) Last() []keycode.Code {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.reports) == 0 {
		return nil
	}
	return r.reports[len(r.reports)-1]
}

// Contains reports whether any recorded report included code.
func (r *Reporter) Contains(code keycode.Code) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rep := range r.reports {
		for _, c := range rep {
			if c == code {
				return true
			}
		}
	}
	return false
}

// FailingBus fails every transaction with Err.
type FailingBus struct {
	Err error
}

func (b FailingBus) Write(uint8, []byte) error { return b.Err }

func (b FailingBus) WriteRead(uint8, []byte, []byte) error { return b.Err }

// CreatePool returns a pool with one switch per code, named after the code,
// each emitting its code on layer 0.
func CreatePool(t *testing.T, codes ...keycode.Code) (*keyswitch.Pool, []keyswitch.Ref) {
	t.Helper()
	p := keyswitch.NewPool()
	refs := make([]keyswitch.Ref, len(codes))
	for i, c := range codes {
		s := keyswitch.New(float64(i), 0)
		s.AppendAction(action.K(c))
		ref, err := p.Add(c.String(), s)
		if err != nil {
			t.Fatalf("add %s: %v", c, err)
		}
		refs[i] = ref
	}
	return p, refs
}
