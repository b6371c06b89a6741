package loadable

import (
	"context"
	"errors"
	"sync"

	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
)

type Status int

const (
	Loading Status = iota
	Found
	Absent
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Found:
		return "found"
	case Absent:
		return "absent"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Value is the state of an account read. Data is set only when Status is Found.
type Value[T any] struct {
	Status Status
	Data   *T
	Err    error
}

func LoadingValue[T any]() Value[T] {
	return Value[T]{Status: Loading}
}

func FoundValue[T any](data *T) Value[T] {
	return Value[T]{Status: Found, Data: data}
}

func AbsentValue[T any]() Value[T] {
	return Value[T]{Status: Absent}
}

func FailedValue[T any](err error) Value[T] {
	return Value[T]{Status: Failed, Err: err}
}

// FromResult classifies a fetch result. A missing account is Absent, not Failed.
func FromResult[T any](data *T, err error) Value[T] {
	switch {
	case errors.Is(err, staking.ErrAccountNotFound):
		return AbsentValue[T]()
	case err != nil:
		return FailedValue[T](err)
	case data == nil:
		return AbsentValue[T]()
	}
	return FoundValue(data)
}

type Fetcher[K any, T any] func(ctx context.Context, key K) (*T, error)

// Loader holds the latest value for a key that may change over time. Each Load
// supersedes the previous one: the older fetch is cancelled and its result is
// dropped even if it arrives later.
type Loader[K any, T any] struct {
	fetch Fetcher[K, T]

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	current Value[T]
}

func NewLoader[K any, T any](fetch Fetcher[K, T]) *Loader[K, T] {
	return &Loader[K, T]{
		fetch:   fetch,
		current: AbsentValue[T](),
	}
}

// Load fetches key and publishes the result unless a newer Load or Reset
// happened in the meantime. The returned value is the published state.
func (l *Loader[K, T]) Load(ctx context.Context, key K) Value[T] {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.current = LoadingValue[T]()
	l.mu.Unlock()

	data, err := l.fetch(ctx, key)
	v := FromResult(data, err)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return l.current
	}
	cancel()
	l.cancel = nil
	l.current = v
	return v
}

// Reset cancels any in-flight load and returns to Absent.
func (l *Loader[K, T]) Reset() {
	l.Set(AbsentValue[T]())
}

// Set cancels any in-flight load and publishes v.
func (l *Loader[K, T]) Set(v Value[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
	l.current = v
}

func (l *Loader[K, T]) Current() Value[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}
