package actions

import "sync"

// RefreshSignal counts successful submissions. Subscribers are called with
// the new value after every change, including a reset on disconnect.
type RefreshSignal struct {
	mu          sync.Mutex
	value       uint64
	nextID      int
	subscribers map[int]func(uint64)
}

func NewRefreshSignal() *RefreshSignal {
	return &RefreshSignal{subscribers: make(map[int]func(uint64))}
}

func (r *RefreshSignal) Value() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

func (r *RefreshSignal) Bump() {
	r.mu.Lock()
	r.value++
	r.publishLocked()
}

func (r *RefreshSignal) Reset() {
	r.mu.Lock()
	r.value = 0
	r.publishLocked()
}

// Subscribe registers fn and returns a function that removes it.
func (r *RefreshSignal) Subscribe(fn func(uint64)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.subscribers[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subscribers, id)
	}
}

// publishLocked releases r.mu before calling subscribers.
func (r *RefreshSignal) publishLocked() {
	v := r.value
	fns := make([]func(uint64), 0, len(r.subscribers))
	for _, fn := range r.subscribers {
		fns = append(fns, fn)
	}
	r.mu.Unlock()
	for _, fn := range fns {
		fn(v)
	}
}
