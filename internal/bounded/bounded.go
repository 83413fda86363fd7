// Package bounded provides fixed-capacity containers that never grow after
// construction.
//
// Pushing beyond capacity never fails loudly: a List drops the new element,
// a Ring evicts its oldest element. Both behave the same way on every call so
// the scan path stays allocation free once the containers are built.
package bounded

// List is an ordered collection with a fixed capacity.
type List[T any] struct {
	items []T
}

// NewList returns an empty list able to hold capacity elements.
func NewList[T any](capacity int) List[T] {
	return List[T]{items: make([]T, 0, capacity)}
}

// Push appends v. It reports false and drops v when the list is full.
func (l *List[T]) Push(v T) bool {
	if len(l.items) == cap(l.items) {
		return false
	}
	l.items = append(l.items, v)
	return true
}

// Items returns the stored elements in insertion order. The slice aliases the
// list storage and is only valid until the next mutation.
func (l *List[T]) Items() []T { return l.items }

func (l *List[T]) Len() int { return len(l.items) }

func (l *List[T]) Cap() int { return cap(l.items) }

func (l *List[T]) Full() bool { return len(l.items) == cap(l.items) }

// Reset empties the list, keeping its storage.
func (l *List[T]) Reset() { l.items = l.items[:0] }

// RemoveFunc deletes every element for which del returns true, preserving the
// order of the remaining ones. It returns the number of removed elements.
func (l *List[T]) RemoveFunc(del func(T) bool) int {
	kept := l.items[:0]
	for _, v := range l.items {
		if !del(v) {
			kept = append(kept, v)
		}
	}
	removed := len(l.items) - len(kept)
	var zero T
	for i := len(kept); i < len(l.items); i++ {
		l.items[i] = zero
	}
	l.items = kept
	return removed
}

// Ring is a FIFO queue with a fixed capacity that evicts its oldest element
// when a push would overflow it.
type Ring[T any] struct {
	buf  []T
	head int
	n    int
}

// NewRing returns an empty ring able to hold capacity elements.
func NewRing[T any](capacity int) Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return Ring[T]{buf: make([]T, capacity)}
}

// Push appends v at the tail. When the ring was already full the oldest
// element is removed to make room and returned with evicted set to true.
func (r *Ring[T]) Push(v T) (old T, evicted bool) {
	if r.n == len(r.buf) {
		old = r.buf[r.head]
		r.buf[r.head] = v
		r.head = (r.head + 1) % len(r.buf)
		return old, true
	}
	r.buf[(r.head+r.n)%len(r.buf)] = v
	r.n++
	return old, false
}

// Pop removes and returns the oldest element.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	if r.n == 0 {
		return zero, false
	}
	v := r.buf[r.head]
	r.buf[r.head] = zero
	r.head = (r.head + 1) % len(r.buf)
	r.n--
	return v, true
}

// At returns a pointer to the i-th oldest element. It panics when i is out
// of range.
func (r *Ring[T]) At(i int) *T {
	if i < 0 || i >= r.n {
		panic("bounded: ring index out of range")
	}
	return &r.buf[(r.head+i)%len(r.buf)]
}

func (r *Ring[T]) Len() int { return r.n }

func (r *Ring[T]) Cap() int { return len(r.buf) }

func (r *Ring[T]) Empty() bool { return r.n == 0 }

func (r *Ring[T]) Full() bool { return r.n == len(r.buf) }
