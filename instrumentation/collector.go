// Package instrumentation defines an optional observation hook that latchan
// channels call into on every try-operation and wait, and a Prometheus-backed
// implementation of it. A channel constructed without a Collector pays
// nothing extra on the hot path; attaching one is opt-in.
package instrumentation

// Collector receives point observations from a latchan channel. All methods
// must be safe to call from either the producer or the consumer goroutine,
// but never both at once for the same channel instance on the same method
// call site, matching the single-producer/single-consumer contract of the
// channel itself.
type Collector interface {
	// ObserveSend records the outcome of a TrySend/Send attempt.
	ObserveSend(status string)
	// ObserveReceive records the outcome of a TryReceive/Receive attempt.
	ObserveReceive(status string)
	// ObserveWait records one iteration of a blocking retry loop, tagged by
	// the wait strategy in effect ("spin", "yield", or "park").
	ObserveWait(strategy string)
	// SetDepth reports the current approximate number of live elements in
	// an SPSC ring. Not called by the one-shot channel, which has no depth.
	SetDepth(depth int64)
}

// NopCollector discards every observation. It is the Collector used when a
// channel is not given one explicitly.
type NopCollector struct{}

func (NopCollector) ObserveSend(string)    {}
func (NopCollector) ObserveReceive(string) {}
func (NopCollector) ObserveWait(string)    {}
func (NopCollector) SetDepth(int64)        {}
