// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wfq

import (
	"sync"
	"sync/atomic"
)

// Queue is a multi-producer/multi-consumer FIFO with wait-free Enqueue and
// blocking (or non-blocking) Dequeue.
//
// Ported from userspace-rcu's cds_wfcqueue: a singly linked list with a
// sentinel head node and an atomic tail pointer to the most recently
// enqueued node. Producers splice onto the tail in two uncontended stores
// (swap tail, then link the old tail's next) and never retry; consumers
// walk head.next forward.
//
// Mutual exclusion contract (mirrors the C original exactly):
//
//   - Enqueue, Empty, and Splice on the destination side need no external
//     synchronization and may run concurrently with anything.
//   - Dequeue, Splice on the source side, and First/Next iteration must not
//     run concurrently with each other. The caller serializes them by
//     holding DequeueLock/DequeueUnlock across the calls, by pinning all
//     three to a single goroutine, or by using the self-locking
//     DequeueBlocking/SpliceBlocking convenience wrappers.
//
// A Queue must be constructed with NewQueue; the zero value is not usable
// (its tail pointer has nowhere to point).
type Queue[T any] struct {
	_    pad
	head Node[T] // sentinel; head.next is the first real element, or nil
	_    pad
	tail atomic.Pointer[Node[T]] // last linked node; &head when empty
	_    pad
	mu   sync.Mutex // dequeue-side convenience lock; see DequeueLock
}

// NewQueue creates an empty Queue.
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.tail.Store(&q.head)
	return q
}

// Empty reports whether the queue has no linked elements.
//
// This is an unsynchronized snapshot: no barrier is issued, and the answer
// may be stale the instant it is returned. Correctness must never rest on
// it alone — it exists purely as a fast, cheap hint.
func (q *Queue[T]) Empty() bool {
	return q.head.next.Load() == nil && q.tail.Load() == &q.head
}

// Enqueue links n onto the tail of the queue. Wait-free, safe for any
// number of concurrent producers, and requires no external synchronization
// with any other operation (including concurrent Enqueue, Dequeue, Splice,
// or iteration).
func (q *Queue[T]) Enqueue(n *Node[T]) {
	n.linkedCheck()
	n.next.Store(nil)
	appendChain[T](&q.tail, n, n)
}

// appendChain is the two-store publish shared by Enqueue (newHead==newTail)
// and Splice (an entire detached chain): swap tail to the new end, then
// link the old tail's next to the new beginning. Between the two stores a
// consumer sees the old tail's next as nil even though tail has already
// moved past it — the transient window syncNext waits through.
func appendChain[T any](tail *atomic.Pointer[Node[T]], newHead, newTail *Node[T]) {
	oldTail := tail.Swap(newTail)
	oldTail.next.Store(newHead)
}

// First returns the first node in the queue without dequeuing it, blocking
// through any in-flight enqueue if necessary. Returns nil if the queue is
// empty.
func (q *Queue[T]) First() *Node[T] {
	n, _ := q.first(true)
	return n
}

// TryFirst is the non-blocking form of First: it returns ErrWouldBlock
// instead of waiting if it observes an in-flight enqueue.
func (q *Queue[T]) TryFirst() (*Node[T], error) {
	return q.first(false)
}

func (q *Queue[T]) first(blocking bool) (*Node[T], error) {
	if q.Empty() {
		return nil, nil
	}
	return syncNext(&q.head, blocking)
}

// Next returns the node following n, blocking through any in-flight enqueue
// if necessary. Returns nil if n is the last node in the queue.
func (q *Queue[T]) Next(n *Node[T]) *Node[T] {
	next, _ := q.next(n, true)
	return next
}

// TryNext is the non-blocking form of Next.
func (q *Queue[T]) TryNext(n *Node[T]) (*Node[T], error) {
	return q.next(n, false)
}

func (q *Queue[T]) next(n *Node[T], blocking bool) (*Node[T], error) {
	if next := n.next.Load(); next != nil {
		return next, nil
	}
	if q.tail.Load() == n {
		return nil, nil
	}
	return syncNext(n, blocking)
}

// Dequeue removes and returns the first node in the queue, blocking through
// any in-flight enqueue if necessary. Returns nil if the queue is empty.
//
// Must not run concurrently with another Dequeue, a Splice with this queue
// as source, or First/Next iteration over this queue — see the Queue-level
// mutual exclusion contract. Use DequeueBlocking, or bracket with
// DequeueLock/DequeueUnlock, if the caller doesn't already serialize these.
func (q *Queue[T]) Dequeue() *Node[T] {
	n, _ := q.dequeue(true)
	return n
}

// TryDequeue is the non-blocking form of Dequeue.
func (q *Queue[T]) TryDequeue() (*Node[T], error) {
	return q.dequeue(false)
}

func (q *Queue[T]) dequeue(blocking bool) (*Node[T], error) {
	if q.Empty() {
		return nil, nil
	}

	n, err := syncNext(&q.head, blocking)
	if err != nil {
		return nil, err
	}

	if next := n.next.Load(); next != nil {
		q.head.next.Store(next)
		n.unlink()
		return n, nil
	}

	// n looks like the only node in the queue. Reinitialize head.next so
	// it stays nil if the CAS below succeeds, then race a concurrent
	// enqueuer for the right to close the empty hole.
	q.head.next.Store(nil)
	if q.tail.CompareAndSwap(n, &q.head) {
		n.unlink()
		return n, nil
	}

	// A concurrent enqueuer beat the CAS: it has already swapped tail past
	// n and will link n.next to its new node shortly. Wait for that
	// second store, then advance head past n. In the non-blocking case,
	// head.next is set back to n before returning ErrWouldBlock, so n is
	// still the first node when the caller retries.
	next, err := syncNext(n, blocking)
	if err != nil {
		q.head.next.Store(n)
		return nil, err
	}
	q.head.next.Store(next)
	n.unlink()
	return n, nil
}

// Splice atomically detaches every node currently in src and appends them,
// in order, to the tail of q (the destination). After it returns, src is
// empty and every node it held is reachable from q.
//
// Requires no synchronization with concurrent Enqueue or Splice on q (the
// destination). Must not run concurrently with Dequeue, another Splice, or
// First/Next iteration with src as source — the same contract Dequeue has
// with respect to src.
func (q *Queue[T]) Splice(src *Queue[T]) {
	_ = q.splice(src, true)
}

// TrySplice is the non-blocking form of Splice. It returns ErrWouldBlock,
// leaving src untouched, if it observes src's first node still in flight.
func (q *Queue[T]) TrySplice(src *Queue[T]) error {
	return q.splice(src, false)
}

func (q *Queue[T]) splice(src *Queue[T], blocking bool) error {
	if src.Empty() {
		return nil
	}

	head, err := syncNext(&src.head, blocking)
	if err != nil {
		return err
	}
	src.head.next.Store(nil)
	tail := src.tail.Swap(&src.head)

	appendChain[T](&q.tail, head, tail)
	return nil
}

// DequeueLock acquires the queue's internal dequeue-side mutex, letting a
// caller extend a critical section across several Dequeue/Splice(src this)
// /iteration calls. Pairs with DequeueUnlock.
func (q *Queue[T]) DequeueLock() { q.mu.Lock() }

// DequeueUnlock releases the mutex acquired by DequeueLock.
func (q *Queue[T]) DequeueUnlock() { q.mu.Unlock() }

// DequeueBlocking dequeues a node, holding the internal dequeue mutex for
// the duration. Convenience wrapper equivalent to DequeueLock, Dequeue,
// DequeueUnlock.
func (q *Queue[T]) DequeueBlocking() *Node[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.Dequeue()
}

// SpliceBlocking splices src into q, holding src's internal dequeue mutex
// for the duration. Convenience wrapper equivalent to src.DequeueLock,
// q.Splice(src), src.DequeueUnlock.
func (q *Queue[T]) SpliceBlocking(src *Queue[T]) {
	src.mu.Lock()
	defer src.mu.Unlock()
	q.Splice(src)
}
