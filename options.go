package latchan

import "github.com/latchan/latchan/instrumentation"

// options collects the construction-time configuration shared by New and
// NewOneShot. It is never exported directly; callers build it up with
// Option/OneShotOption functions.
type options struct {
	overflow        Overflow
	wait            WaitStrategy
	instrumentation instrumentation.Collector
}

func defaultOptions() options {
	return options{
		overflow:        WaitOnFull,
		wait:            Spin{},
		instrumentation: instrumentation.NopCollector{},
	}
}

// Option configures a SPSC channel created by New.
type Option func(*options)

// WithOverflow sets the behavior of Send/TrySend when the ring is full.
// OverwriteOnFull may only be combined with the Spin wait strategy.
func WithOverflow(o Overflow) Option {
	return func(opt *options) { opt.overflow = o }
}

// WithWaitStrategy sets the retry policy used by blocking Send/Receive.
func WithWaitStrategy(w WaitStrategy) Option {
	return func(opt *options) { opt.wait = w }
}

// WithInstrumentation attaches a Collector that observes every try-op and
// wait iteration. Omitting this option costs nothing on the hot path.
func WithInstrumentation(c instrumentation.Collector) Option {
	return func(opt *options) { opt.instrumentation = c }
}

// OneShotOption configures a one-shot channel created by NewOneShot.
type OneShotOption func(*options)

// WithOneShotWaitStrategy sets the retry policy used by blocking Receive.
func WithOneShotWaitStrategy(w WaitStrategy) OneShotOption {
	return func(opt *options) { opt.wait = w }
}

// WithOneShotInstrumentation attaches a Collector to a one-shot channel.
func WithOneShotInstrumentation(c instrumentation.Collector) OneShotOption {
	return func(opt *options) { opt.instrumentation = c }
}

// instrumentationEnabled reports whether c is anything other than the
// no-op collector, so the hot path can skip the dispatch (and, for
// SetDepth, the extra atomic loads) entirely when nobody is observing.
func instrumentationEnabled(c instrumentation.Collector) bool {
	_, isNop := c.(instrumentation.NopCollector)
	return !isNop
}
