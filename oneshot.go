package latchan

import "sync/atomic"

// oneShotState tags the lifecycle of a one-shot channel's single slot.
type oneShotState int32

const (
	oneShotNotSent oneShotState = iota
	oneShotSent
	oneShotReceived
)

// oneshotInner is the shared state behind a one-shot channel: a single
// inline storage cell governed by a three-state atomic tag. T is
// considered live in slot iff state == oneShotSent.
type oneshotInner[T any] struct {
	slot  T
	state atomic.Int32

	parker       *parker // receiver parks here waiting for Send
	wait         WaitStrategy
	instr        instrumentationHook
	instrumented bool // false (the common case) skips instr entirely
}

// NewOneShot creates a one-shot channel: at most one value may ever be
// sent, and at most one value may ever be received.
func NewOneShot[T any](opts ...OneShotOption) (*OneShotSender[T], *OneShotReceiver[T]) {
	o := defaultOptions()
	for _, apply := range opts {
		apply(&o)
	}

	inner := oneshotInner[T]{
		parker:       newParker(),
		wait:         o.wait,
		instr:        o.instrumentation,
		instrumented: instrumentationEnabled(o.instrumentation),
	}

	a := newArc(inner)
	release := func(in *oneshotInner[T]) {
		// A value that was sent but never received is dropped here.
		if oneShotState(in.state.Load()) == oneShotSent {
			var zero T
			in.slot = zero
		}
	}
	tx := &OneShotSender[T]{core: a.clone(), release: release}
	rx := &OneShotReceiver[T]{core: a.clone(), release: release}
	a.drop(nil)
	return tx, rx
}

func (in *oneshotInner[T]) send(value T) Status {
	if oneShotState(in.state.Load()) != oneShotNotSent {
		if in.instrumented {
			in.instr.ObserveSend(StatusSenderClosed.String())
		}
		return StatusSenderClosed
	}
	// Single-producer contract: no CAS needed to reserve the slot, only a
	// release-store to publish it. The slot write must happen-before the
	// state store, so a receiver's acquire-load of state never observes
	// oneShotSent before the value it gates is visible.
	in.slot = value
	in.state.Store(int32(oneShotSent))
	in.parker.notify()
	if in.instrumented {
		in.instr.ObserveSend(StatusSuccess.String())
	}
	return StatusSuccess
}

func (in *oneshotInner[T]) tryReceive(out *T) Status {
	switch oneShotState(in.state.Load()) {
	case oneShotReceived:
		if in.instrumented {
			in.instr.ObserveReceive(StatusReceiverClosed.String())
		}
		return StatusReceiverClosed
	case oneShotNotSent:
		if in.instrumented {
			in.instr.ObserveReceive(StatusChannelEmpty.String())
		}
		return StatusChannelEmpty
	}

	*out = in.slot
	var zero T
	in.slot = zero
	in.state.Store(int32(oneShotReceived))
	if in.instrumented {
		in.instr.ObserveReceive(StatusSuccess.String())
	}
	return StatusSuccess
}

// OneShotSender is the send side of a one-shot channel, returned by
// NewOneShot.
type OneShotSender[T any] struct {
	_       noCopy
	core    *arc[oneshotInner[T]]
	release func(*oneshotInner[T])
}

// Send delivers value. Exactly one call across the channel's lifetime may
// succeed; every later call returns StatusSenderClosed.
func (s *OneShotSender[T]) Send(value T) Status {
	return s.core.deref().send(value)
}

// IsClosed reports whether a value has already been sent. It is a fresh
// read of the atomic state word, offered as a hint: a false result is
// not a promise that a following Send will still succeed.
func (s *OneShotSender[T]) IsClosed() bool {
	return oneShotState(s.core.deref().state.Load()) != oneShotNotSent
}

// Close releases this handle's reference to the shared channel state.
func (s *OneShotSender[T]) Close() {
	s.core.drop(s.release)
}

// OneShotReceiver is the receive side of a one-shot channel, returned by
// NewOneShot.
type OneShotReceiver[T any] struct {
	_       noCopy
	core    *arc[oneshotInner[T]]
	release func(*oneshotInner[T])
}

// TryReceive attempts to take the sent value without blocking.
func (r *OneShotReceiver[T]) TryReceive(out *T) Status {
	return r.core.deref().tryReceive(out)
}

// Receive blocks, under the channel's wait strategy, until a value has
// been sent, then returns it.
func (r *OneShotReceiver[T]) Receive() T {
	in := r.core.deref()
	var out T
	attempt := 0
	for {
		status := in.tryReceive(&out)
		if status == StatusSuccess {
			return out
		}
		if in.instrumented {
			in.instr.ObserveWait(waitStrategyName(in.wait))
		}
		in.wait.wait(in.parker, attempt)
		attempt++
	}
}

// IsClosed reports whether the value has already been received. It
// returns false both before a value is sent and while a sent value waits
// to be received; TryReceive's Status tells those two apart. It is a racy
// hint, like OneShotSender.IsClosed.
func (r *OneShotReceiver[T]) IsClosed() bool {
	return oneShotState(r.core.deref().state.Load()) == oneShotReceived
}

// Close releases this handle's reference to the shared channel state.
func (r *OneShotReceiver[T]) Close() {
	r.core.drop(r.release)
}
