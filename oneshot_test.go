package latchan

import (
	"testing"
	"time"

	"github.com/latchan/latchan/instrumentation"
)

// Scenario 5: one-shot with Spin: sender sends 57 in one goroutine,
// receiver's blocking Receive in another returns 57; a subsequent
// TryReceive returns ReceiverClosed; a subsequent Send returns
// SenderClosed.
func TestScenarioOneShotSpinRoundTrip(t *testing.T) {
	tx, rx := NewOneShot[int]()
	defer tx.Close()
	defer rx.Close()

	done := make(chan int, 1)
	go func() {
		done <- rx.Receive()
	}()

	go tx.Send(57)

	select {
	case got := <-done:
		if got != 57 {
			t.Fatalf("Receive() = %d, want 57", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Receive never returned")
	}

	var out int
	if status := rx.TryReceive(&out); status != StatusReceiverClosed {
		t.Fatalf("second TryReceive = %s, want ReceiverClosed", status)
	}
	if status := tx.Send(100); status != StatusSenderClosed {
		t.Fatalf("second Send = %s, want SenderClosed", status)
	}
}

// Scenario 6: one-shot with AtomicWait: receiver blocks, sender sends
// after a delay; receiver must wake with the value.
func TestScenarioOneShotAtomicWaitWakesReceiver(t *testing.T) {
	tx, rx := NewOneShot[int](WithOneShotWaitStrategy(AtomicWait{}))
	defer tx.Close()
	defer rx.Close()

	done := make(chan int, 1)
	go func() { done <- rx.Receive() }()

	select {
	case <-done:
		t.Fatal("Receive returned before Send")
	case <-time.After(100 * time.Millisecond):
	}

	tx.Send(57)

	select {
	case got := <-done:
		if got != 57 {
			t.Fatalf("Receive() = %d, want 57", got)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Receive never woke after Send")
	}
}

func TestOneShotSecondSendFails(t *testing.T) {
	tx, rx := NewOneShot[int]()
	defer tx.Close()
	defer rx.Close()

	if status := tx.Send(1); status != StatusSuccess {
		t.Fatalf("first Send = %s, want Success", status)
	}
	if status := tx.Send(2); status != StatusSenderClosed {
		t.Fatalf("second Send = %s, want SenderClosed", status)
	}

	var out int
	if status := rx.TryReceive(&out); status != StatusSuccess || out != 1 {
		t.Fatalf("TryReceive = (%d,%s), want (1,Success)", out, status)
	}
}

func TestOneShotTryReceiveEmptyBeforeSend(t *testing.T) {
	tx, rx := NewOneShot[int]()
	defer tx.Close()
	defer rx.Close()

	var out int
	if status := rx.TryReceive(&out); status != StatusChannelEmpty {
		t.Fatalf("TryReceive before send = %s, want ChannelEmpty", status)
	}
}

func TestOneShotNoLeak(t *testing.T) {
	type payload struct{ n int }

	t.Run("sent and received", func(t *testing.T) {
		tx, rx := NewOneShot[*payload]()
		p := &payload{n: 1}
		tx.Send(p)
		var out *payload
		if status := rx.TryReceive(&out); status != StatusSuccess || out != p {
			t.Fatalf("TryReceive = (%v,%s)", out, status)
		}
		inner := rx.core.deref()
		if inner.slot != nil {
			t.Fatal("slot was not zeroed after receive")
		}
		tx.Close()
		rx.Close()
	})

	t.Run("sent but never received", func(t *testing.T) {
		tx, rx := NewOneShot[*payload]()
		p := &payload{n: 2}
		tx.Send(p)
		inner := tx.core.deref()
		if inner.slot != p {
			t.Fatal("value not retained while unreceived")
		}
		tx.Close()
		rx.Close() // no destructor to run explicitly; GC reclaims p
	})

	t.Run("never sent", func(t *testing.T) {
		tx, rx := NewOneShot[*payload]()
		tx.Close()
		rx.Close()
	})
}

func TestOneShotMonotonicState(t *testing.T) {
	tx, rx := NewOneShot[int]()
	defer tx.Close()
	defer rx.Close()

	tx.Send(1)
	var out int
	rx.TryReceive(&out)

	// A second successful receive must be impossible.
	for i := 0; i < 3; i++ {
		if status := rx.TryReceive(&out); status != StatusReceiverClosed {
			t.Fatalf("TryReceive #%d = %s, want ReceiverClosed", i, status)
		}
	}
	// A second successful send must be impossible.
	for i := 0; i < 3; i++ {
		if status := tx.Send(99); status != StatusSenderClosed {
			t.Fatalf("Send #%d = %s, want SenderClosed", i, status)
		}
	}
}

func TestOneShotIsClosed(t *testing.T) {
	tx, rx := NewOneShot[int]()
	defer tx.Close()
	defer rx.Close()

	if tx.IsClosed() {
		t.Fatal("IsClosed true before Send")
	}
	tx.Send(5)
	if !tx.IsClosed() {
		t.Fatal("IsClosed false after Send")
	}

	if rx.IsClosed() {
		t.Fatal("IsClosed true before Receive")
	}
	var out int
	rx.TryReceive(&out)
	if !rx.IsClosed() {
		t.Fatal("IsClosed false after Receive")
	}
}

// countingCollector is a minimal instrumentation.Collector that just counts
// calls, used to confirm the instrumented path still fires through the
// public constructors (the hot path's instrumented bool must not swallow a
// deliberately-attached Collector).
type countingCollector struct {
	sends, receives, depths int
}

func (c *countingCollector) ObserveSend(string)    { c.sends++ }
func (c *countingCollector) ObserveReceive(string) { c.receives++ }
func (c *countingCollector) ObserveWait(string)    {}
func (c *countingCollector) SetDepth(int64)        { c.depths++ }

func TestOneShotInstrumentationObservesSendAndReceive(t *testing.T) {
	var collector countingCollector
	tx, rx := NewOneShot[int](WithOneShotInstrumentation(&collector))
	defer tx.Close()
	defer rx.Close()

	if status := tx.Send(57); status != StatusSuccess {
		t.Fatalf("Send = %s, want Success", status)
	}
	var out int
	if status := rx.TryReceive(&out); status != StatusSuccess {
		t.Fatalf("TryReceive = %s, want Success", status)
	}
	if collector.sends != 1 || collector.receives != 1 {
		t.Fatalf("collector saw sends=%d receives=%d, want 1/1", collector.sends, collector.receives)
	}
}

var _ instrumentation.Collector = (*countingCollector)(nil)
