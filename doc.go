// Package latchan provides lock-free, single-producer/single-consumer
// message-passing primitives: a bounded ring-buffer channel and a
// one-shot (single-value) channel, both backed by an atomic
// reference-counted inner state so a Sender and a Receiver can share it
// without a mutex.
//
// # Quick Start
//
// A bounded SPSC channel with the default WaitOnFull/Spin policy:
//
//	tx, rx, err := latchan.New[int](16)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer tx.Close()
//	defer rx.Close()
//
//	go func() {
//		for i := 0; i < 100; i++ {
//			tx.Send(i)
//		}
//	}()
//
//	for i := 0; i < 100; i++ {
//		fmt.Println(rx.Receive())
//	}
//
// A one-shot channel for a single request/response handoff:
//
//	tx, rx := latchan.NewOneShot[int]()
//	go tx.Send(57)
//	fmt.Println(rx.Receive()) // 57
//
// # Wait strategies and overflow policy
//
// Blocking Send/Receive retry the corresponding non-blocking try-operation
// under a WaitStrategy: Spin (default), Yield, or AtomicWait. The SPSC
// channel additionally accepts an Overflow policy: WaitOnFull (default) or
// OverwriteOnFull, the latter only in combination with Spin — see
// WithOverflow and WithWaitStrategy.
//
// # Scope
//
// This package implements exactly the single-producer/single-consumer
// contract: one goroutine may call Sender methods, one goroutine may call
// Receiver methods, for the lifetime of the channel. There is no
// multi-producer, multi-consumer, broadcast, or cross-process variant.
package latchan
