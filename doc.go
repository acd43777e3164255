// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wfq provides two intrusive concurrent linked data structures for
// shared-memory multicore systems: Queue, a multi-producer/multi-consumer
// FIFO with wait-free enqueue, and Stack, a multi-producer LIFO with
// wait-free push. Both are ported from userspace-rcu's cds_wfcqueue and
// cds_wfstack.
//
// # Why intrusive
//
// Neither structure allocates. The caller builds a Node[T] (typically
// &wfq.Node[T]{Value: v}), enqueues or pushes it, and gets the same Node
// back from Dequeue/Pop/PopAll, unmodified apart from its link. Lifetime,
// reuse and reclamation (epoch-based, hazard pointers, or simply "don't
// reuse it until you got it back") are entirely the caller's concern — the
// package only ever reads and writes a Node's next pointer while it is
// linked in.
//
// # Wait-free producers, blocking consumers
//
// Enqueue and Push are both a fixed two-store publish: an atomic swap of
// the structure's tail/top pointer, immediately followed by a release
// store linking the old tail/top's next to the new node. Neither step
// retries, and no producer can be obstructed by another producer or by any
// consumer. Between the two stores, a consumer that reaches the old
// tail/top sees a transient nil next even though the structure has already
// moved past it — this is the in-flight window the package's internal
// adaptive wait resolves: up to ten CPU-relax spins, then periodic 10ms
// sleeps, until the second store lands.
//
// Consumer-side operations (Dequeue, Pop, Splice, and First/Next
// iteration) are not wait-free and, except for PopAll, may enter that
// adaptive wait. Queue's Dequeue, Splice, First and Next each have a
// non-blocking Try* counterpart that returns [ErrWouldBlock] instead of
// waiting on the first in-flight observation; Stack's Pop and chain Next
// have no non-blocking form.
//
// # Queue example
//
//	q := wfq.NewQueue[string]()
//	q.Enqueue(&wfq.Node[string]{Value: "a"})
//	q.Enqueue(&wfq.Node[string]{Value: "b"})
//
//	for n := q.Dequeue(); n != nil; n = q.Dequeue() {
//	    fmt.Println(n.Value) // a, then b
//	}
//
// # Stack example
//
//	s := wfq.NewStack[int]()
//	s.Push(&wfq.Node[int]{Value: 1})
//	s.Push(&wfq.Node[int]{Value: 2})
//
//	for n := s.PopAll(); n != nil; n = s.Next(n) {
//	    fmt.Println(n.Value) // 2, then 1 — LIFO
//	}
//
// # Consumer synchronization
//
// Queue's Dequeue/Splice(as source)/iteration, and Stack's Pop/PopAll,
// require the caller to prevent concurrent consumer-side calls from
// overlapping. Three equally valid ways to do that:
//
//  1. Pin all consumer-side calls on a given structure to one goroutine.
//  2. Hold DequeueLock/DequeueUnlock (Queue) or PopLock/PopUnlock (Stack)
//     around a multi-call critical section.
//  3. Use the self-locking convenience wrappers (DequeueBlocking,
//     SpliceBlocking, PopBlocking, PopAllBlocking) for a single call at a
//     time.
//
// Enqueue, Push, and Empty never need any of this — they are safe to call
// from any number of goroutines at any time, including concurrently with
// the consumer-side operations above.
//
// # Errors
//
// [ErrWouldBlock] is sourced from [code.hybscloud.com/iox] for ecosystem
// consistency with code.hybscloud.com/lfq and other callers that already
// retry on it with an [iox.Backoff]:
//
//	backoff := iox.Backoff{}
//	for {
//	    n, err := q.TryDequeue()
//	    if err == nil {
//	        break // n is nil (empty) or a dequeued node; both are "done"
//	    }
//	    if !wfq.IsWouldBlock(err) {
//	        panic(err) // TryDequeue never returns anything else
//	    }
//	    backoff.Wait()
//	}
//
// # Programmer errors
//
// Enqueueing or pushing a Node that is still linked into a structure —
// whether the same one or another — is a programmer error, not a runtime
// condition: it corrupts the link chain. Build with the "debug" tag to
// turn on an assertion that catches it immediately instead of silently
// producing a broken structure; release builds trust the caller and pay
// nothing for the check.
package wfq
