package heap

type options struct {
	onSink func(index int)
	onSwap func(i, j int)
}

// Option configures an Engine.
type Option func(*options)

// WithSinkHook registers fn to be called each time a sift-down starts, with
// the index of the node being sunk.
func WithSinkHook(fn func(index int)) Option {
	return func(o *options) {
		o.onSink = fn
	}
}

// WithSwapHook registers fn to be called after every exchange with the two
// indices whose elements changed places.
func WithSwapHook(fn func(i, j int)) Option {
	return func(o *options) {
		o.onSwap = fn
	}
}
