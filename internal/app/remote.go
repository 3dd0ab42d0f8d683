package app

// Status is the state of a remote value.
type Status int

const (
	NotAsked Status = iota
	Loading
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "not asked"
	}
}

// Remote is a value fetched from the order store. Exactly one of the
// payloads is meaningful, chosen by the status; the zero Remote is NotAsked.
type Remote[T any] struct {
	status Status
	value  T
	err    error
}

func Pending[T any]() Remote[T] { return Remote[T]{status: Loading} }

func Success[T any](v T) Remote[T] { return Remote[T]{status: Loaded, value: v} }

func Failure[T any](err error) Remote[T] { return Remote[T]{status: Failed, err: err} }

func (r Remote[T]) Status() Status { return r.status }

// Value returns the payload and true only when loaded.
func (r Remote[T]) Value() (T, bool) {
	if r.status != Loaded {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Err is set only when failed.
func (r Remote[T]) Err() error {
	if r.status != Failed {
		return nil
	}
	return r.err
}
