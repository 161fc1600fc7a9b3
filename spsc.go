package latchan

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

// cacheLineSize is the assumed CPU cache line width used to pad the
// producer-owned and consumer-owned cursor groups apart, per SPEC_FULL.md
// §3. 64 bytes covers every mainstream target this library runs on.
const cacheLineSize = 64

// producerLine groups the fields only the producer writes: its own cursor,
// and its locally cached snapshot of the consumer's cursor, refreshed only
// when the fast-path full/empty check suggests a cross-core reload is
// needed. Padded to its own cache line so the consumer's line below never
// false-shares with it.
type producerLine struct {
	sendCursor      atomic.Uint64
	recvCursorCache uint64
	_               [cacheLineSize - 16]byte
}

// consumerLine groups the fields the consumer writes (under
// OverwriteOnFull the producer also advances recvCursor with Store in
// overwriteOldest, and the consumer advances it with CompareAndSwap — see
// trySend/tryReceive) together with the consumer's cached snapshot of the
// producer's cursor.
type consumerLine struct {
	recvCursor      atomic.Uint64
	sendCursorCache uint64
	_               [cacheLineSize - 16]byte
}

// ringSlot holds one element plus a generation counter bumped on every
// write to the slot, including an OverwriteOnFull overwrite. A consumer
// that copies a slot, advances recvCursor past it, and then observes that
// its generation changed since the copy knows the value may have been
// concurrently clobbered and reports StatusSkipDueToOverwrite instead of a
// torn value.
type ringSlot[T any] struct {
	generation atomic.Uint64
	value      T
}

// spscInner is the shared state behind a bounded SPSC channel, reachable
// from both handles only through an *arc[spscInner[T]].
type spscInner[T any] struct {
	buffer   []ringSlot[T]
	mask     uint64
	capacity uint64
	overflow Overflow

	producer producerLine
	consumer consumerLine

	sendParker *parker // consumer parks here waiting for a publish
	recvParker *parker // producer parks here waiting for a drain (WaitOnFull)

	wait         WaitStrategy
	instr        instrumentationHook
	instrumented bool // false (the common case) skips instr entirely, dispatch and all
}

// instrumentationHook avoids importing the instrumentation package's
// concrete types into the hot path signature; it is just the subset of
// instrumentation.Collector the core needs, satisfied structurally.
type instrumentationHook interface {
	ObserveSend(status string)
	ObserveReceive(status string)
	ObserveWait(strategy string)
	SetDepth(depth int64)
}

func nextPow2(n int) uint64 {
	if n < 1 {
		n = 1
	}
	v := uint64(n)
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return v
}

// New creates a bounded SPSC channel of the given requested capacity
// (rounded up to the next power of two, usable capacity is capacity-1) and
// returns the paired Sender/Receiver handles.
func New[T any](capacity int, opts ...Option) (*Sender[T], *Receiver[T], error) {
	if capacity < 1 {
		return nil, nil, errors.New("latchan: capacity must be at least 1")
	}

	o := defaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	if o.overflow == OverwriteOnFull {
		if _, ok := o.wait.(Spin); !ok {
			return nil, nil, errors.New("latchan: OverwriteOnFull requires the Spin wait strategy")
		}
	}

	cap64 := nextPow2(capacity)
	inner := spscInner[T]{
		buffer:       make([]ringSlot[T], cap64),
		mask:         cap64 - 1,
		capacity:     cap64,
		overflow:     o.overflow,
		sendParker:   newParker(),
		recvParker:   newParker(),
		wait:         o.wait,
		instr:        o.instrumentation,
		instrumented: instrumentationEnabled(o.instrumentation),
	}

	a := newArc(inner)
	release := func(in *spscInner[T]) { drainInnerSPSC(in) }
	tx := &Sender[T]{core: a.clone(), release: release}
	rx := &Receiver[T]{core: a.clone(), release: release}
	a.drop(nil) // the constructor's own temporary reference
	return tx, rx, nil
}

// drainInnerSPSC zeroes every live slot so the GC drops whatever they
// reference, once both handles have dropped their clones.
func drainInnerSPSC[T any](in *spscInner[T]) {
	recv := in.consumer.recvCursor.Load()
	send := in.producer.sendCursor.Load()
	var zero T
	for recv != send {
		in.buffer[recv&in.mask].value = zero
		recv = (recv + 1) & in.mask
	}
}

func (in *spscInner[T]) trySend(value T) Status {
	send := in.producer.sendCursor.Load()
	next := (send + 1) & in.mask
	if next == in.producer.recvCursorCache {
		in.producer.recvCursorCache = in.consumer.recvCursor.Load()
		if next == in.producer.recvCursorCache {
			if in.overflow == WaitOnFull {
				if in.instrumented {
					in.instr.ObserveSend(StatusChannelFull.String())
				}
				return StatusChannelFull
			}
			recvOld := in.producer.recvCursorCache
			in.overwriteOldest(recvOld)
			in.producer.recvCursorCache = (recvOld + 1) & in.mask
		}
	}

	slot := &in.buffer[send&in.mask]
	slot.value = value
	slot.generation.Add(1)
	in.producer.sendCursor.Store(next)
	in.sendParker.notify()
	if in.instrumented {
		in.instr.ObserveSend(StatusSuccess.String())
		in.instr.SetDepth(in.depth())
	}
	return StatusSuccess
}

// overwriteOldest drops the element at recvOld (the oldest unread element)
// and advances the shared recvCursor past it, making room for the new
// send. Only ever called under the Spin wait strategy (enforced at
// construction), since OverwriteOnFull's producer-side mutation of
// recvCursor makes any other wait strategy's parking target meaningless.
func (in *spscInner[T]) overwriteOldest(recvOld uint64) {
	slot := &in.buffer[recvOld&in.mask]
	var zero T
	slot.value = zero
	slot.generation.Add(1)
	in.consumer.recvCursor.Store((recvOld + 1) & in.mask)
}

func (in *spscInner[T]) tryReceive(out *T) Status {
	recv := in.consumer.recvCursor.Load()
	if recv == in.consumer.sendCursorCache {
		in.consumer.sendCursorCache = in.producer.sendCursor.Load()
		if recv == in.consumer.sendCursorCache {
			if in.instrumented {
				in.instr.ObserveReceive(StatusChannelEmpty.String())
			}
			return StatusChannelEmpty
		}
	}

	idx := recv & in.mask
	slot := &in.buffer[idx]
	genBefore := slot.generation.Load()
	val := slot.value
	next := (recv + 1) & in.mask
	var zero T

	if in.overflow == OverwriteOnFull {
		if !in.consumer.recvCursor.CompareAndSwap(recv, next) {
			if in.instrumented {
				in.instr.ObserveReceive(StatusSkipDueToOverwrite.String())
			}
			return StatusSkipDueToOverwrite
		}
		if slot.generation.Load() != genBefore {
			if in.instrumented {
				in.instr.ObserveReceive(StatusSkipDueToOverwrite.String())
			}
			return StatusSkipDueToOverwrite
		}
		// A failed CompareAndSwap means the producer's overwrite already
		// zeroed this slot, so only a won advance zeroes it here.
		slot.value = zero
	} else {
		slot.value = zero
		in.consumer.recvCursor.Store(next)
	}

	in.recvParker.notify()
	*out = val
	if in.instrumented {
		in.instr.ObserveReceive(StatusSuccess.String())
		in.instr.SetDepth(in.depth())
	}
	return StatusSuccess
}

func (in *spscInner[T]) depth() int64 {
	send := in.producer.sendCursor.Load()
	recv := in.consumer.recvCursor.Load()
	return int64((send - recv) & in.mask)
}

// Sender is the single-producer handle of an SPSC channel, returned by New.
type Sender[T any] struct {
	_       noCopy
	core    *arc[spscInner[T]]
	release func(*spscInner[T])
}

// TrySend attempts to enqueue value without blocking.
func (s *Sender[T]) TrySend(value T) Status {
	return s.core.deref().trySend(value)
}

// Send enqueues value, retrying under the channel's wait strategy until
// there is room (or, under OverwriteOnFull, until it makes room itself).
func (s *Sender[T]) Send(value T) {
	in := s.core.deref()
	attempt := 0
	for {
		status := in.trySend(value)
		if status == StatusSuccess {
			return
		}
		if in.instrumented {
			in.instr.ObserveWait(waitStrategyName(in.wait))
		}
		in.wait.wait(in.recvParker, attempt)
		attempt++
	}
}

// Close releases this handle's reference to the shared channel state. It
// must be called exactly once per handle, typically via defer.
func (s *Sender[T]) Close() {
	s.core.drop(s.release)
}

// Depth reports the approximate number of elements currently buffered. It
// is a racy snapshot, useful for metrics and dashboards, not for control
// flow.
func (s *Sender[T]) Depth() int64 {
	return s.core.deref().depth()
}

// Receiver is the single-consumer handle of an SPSC channel, returned by
// New.
type Receiver[T any] struct {
	_       noCopy
	core    *arc[spscInner[T]]
	release func(*spscInner[T])
}

// TryReceive attempts to dequeue a value into out without blocking.
func (r *Receiver[T]) TryReceive(out *T) Status {
	return r.core.deref().tryReceive(out)
}

// Receive dequeues the next value, blocking under the channel's wait
// strategy until one is available.
func (r *Receiver[T]) Receive() T {
	in := r.core.deref()
	var out T
	attempt := 0
	for {
		status := in.tryReceive(&out)
		switch status {
		case StatusSuccess:
			return out
		case StatusSkipDueToOverwrite:
			// The slot we raced on is gone; try the next one immediately,
			// it is not a "wait" condition.
			continue
		}
		if in.instrumented {
			in.instr.ObserveWait(waitStrategyName(in.wait))
		}
		in.wait.wait(in.sendParker, attempt)
		attempt++
	}
}

// Close releases this handle's reference to the shared channel state. It
// must be called exactly once per handle, typically via defer.
func (r *Receiver[T]) Close() {
	r.core.drop(r.release)
}

// Depth reports the approximate number of elements currently buffered. It
// is a racy snapshot, useful for metrics and dashboards, not for control
// flow.
func (r *Receiver[T]) Depth() int64 {
	return r.core.deref().depth()
}

func waitStrategyName(w WaitStrategy) string {
	switch w.(type) {
	case Spin:
		return "spin"
	case Yield:
		return "yield"
	case AtomicWait:
		return "park"
	default:
		return "unknown"
	}
}
