package latchan

import (
	"testing"
	"time"
)

func TestSpinWaitDoesNotBlock(t *testing.T) {
	p := newParker()
	done := make(chan struct{})
	go func() {
		Spin{}.wait(p, 0)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Spin.wait blocked")
	}
}

func TestYieldWaitDoesNotBlock(t *testing.T) {
	p := newParker()
	done := make(chan struct{})
	go func() {
		Yield{}.wait(p, 0)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Yield.wait blocked")
	}
}

func TestAtomicWaitParksUntilNotified(t *testing.T) {
	p := newParker()
	woke := make(chan struct{})
	go func() {
		AtomicWait{}.wait(p, 0)
		close(woke)
	}()

	select {
	case <-woke:
		t.Fatal("AtomicWait.wait returned before notify")
	case <-time.After(50 * time.Millisecond):
	}

	p.notify()

	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("AtomicWait.wait did not wake after notify")
	}
}

func TestParkerNotifyCoalesces(t *testing.T) {
	p := newParker()
	p.notify()
	p.notify()
	p.notify()

	done := make(chan struct{})
	go func() {
		p.park()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("park did not consume a coalesced notify")
	}

	// Only one buffered notify existed; a second park must block until a
	// fresh notify arrives.
	parked := make(chan struct{})
	go func() {
		p.park()
		close(parked)
	}()
	select {
	case <-parked:
		t.Fatal("second park returned without a fresh notify")
	case <-time.After(50 * time.Millisecond):
	}
	p.notify()
	select {
	case <-parked:
	case <-time.After(time.Second):
		t.Fatal("second park did not wake after fresh notify")
	}
}
