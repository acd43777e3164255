// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wfq_test

import (
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/wfq"
)

// retryWithTimeout retries f until it returns true or timeout expires.
func retryWithTimeout(t *testing.T, timeout time.Duration, f func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	backoff := iox.Backoff{}
	for !f() {
		if time.Now().After(deadline) {
			t.Fatalf("timeout after %v: %s", timeout, msg)
		}
		backoff.Wait()
	}
}

// waitForCount waits until counter reaches target or timeout expires.
func waitForCount(t *testing.T, timeout time.Duration, counter *atomix.Int64, target int64, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	backoff := iox.Backoff{}
	for counter.Load() < target {
		if time.Now().After(deadline) {
			t.Fatalf("timeout after %v: %s (got %d, want %d)", timeout, msg, counter.Load(), target)
		}
		backoff.Wait()
	}
}

// TestQueueConcurrentProducersConsumersConservation runs many producers and
// many consumers against one queue and checks conservation: every enqueued
// value is dequeued exactly once, with none lost or duplicated.
func TestQueueConcurrentProducersConsumersConservation(t *testing.T) {
	numProducers := 8
	itemsPerProducer := 2000
	if wfq.RaceEnabled {
		numProducers = 4
		itemsPerProducer = 200
	}
	numConsumers := 4
	total := numProducers * itemsPerProducer

	q := wfq.NewQueue[int]()
	seen := make([]atomix.Int32, total)
	var consumed atomix.Int64
	var wg sync.WaitGroup

	wg.Add(numProducers)
	for p := range numProducers {
		go func(id int) {
			defer wg.Done()
			for i := range itemsPerProducer {
				q.Enqueue(&wfq.Node[int]{Value: id*itemsPerProducer + i})
			}
		}(p)
	}

	var consumerWg sync.WaitGroup
	consumerWg.Add(numConsumers)
	var mu sync.Mutex // protects the shared dequeue-side mutual exclusion contract
	for range numConsumers {
		go func() {
			defer consumerWg.Done()
			for consumed.Load() < int64(total) {
				mu.Lock()
				n := q.DequeueBlocking()
				mu.Unlock()
				if n == nil {
					continue
				}
				seen[n.Value].Add(1)
				consumed.Add(1)
			}
		}()
	}

	wg.Wait()
	waitForCount(t, 30*time.Second, &consumed, int64(total), "consumers did not drain all items")
	consumerWg.Wait()

	for i := range seen {
		if got := seen[i].Load(); got != 1 {
			t.Fatalf("seen[%d]: got %d, want exactly 1", i, got)
		}
	}
}

// TestQueueConcurrentPerProducerFIFO checks that, even with interleaved
// producers, the subsequence of values dequeued from a single producer
// preserves that producer's enqueue order.
func TestQueueConcurrentPerProducerFIFO(t *testing.T) {
	numProducers := 6
	itemsPerProducer := 1000
	if wfq.RaceEnabled {
		numProducers = 3
		itemsPerProducer = 100
	}

	q := wfq.NewQueue[int]()
	var wg sync.WaitGroup
	wg.Add(numProducers)
	for p := range numProducers {
		go func(id int) {
			defer wg.Done()
			for i := range itemsPerProducer {
				q.Enqueue(&wfq.Node[int]{Value: id*itemsPerProducer + i})
			}
		}(p)
	}
	wg.Wait()

	lastSeq := make([]int, numProducers)
	for i := range lastSeq {
		lastSeq[i] = -1
	}
	total := numProducers * itemsPerProducer
	for range total {
		n := q.Dequeue()
		if n == nil {
			t.Fatalf("Dequeue: got nil before draining %d items", total)
		}
		producer := n.Value / itemsPerProducer
		seq := n.Value % itemsPerProducer
		if seq <= lastSeq[producer] {
			t.Fatalf("producer %d FIFO violation: seq %d did not follow %d", producer, seq, lastSeq[producer])
		}
		lastSeq[producer] = seq
	}
	if q.Dequeue() != nil {
		t.Fatalf("Dequeue: got an extra node after draining %d items", total)
	}
}

// TestQueueConcurrentSpliceAtomicity checks that nodes spliced into the
// destination by a concurrent goroutine all become dequeuable there: the
// dequeuer must drain rounds*batch nodes before the deadline. It counts
// nodes only; the order in which they arrive is not checked.
func TestQueueConcurrentSpliceAtomicity(t *testing.T) {
	rounds := 200
	if wfq.RaceEnabled {
		rounds = 40
	}
	batch := 20

	dst := wfq.NewQueue[int]()
	var total atomix.Int64

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for r := range rounds {
			src := wfq.NewQueue[int]()
			for i := range batch {
				src.Enqueue(&wfq.Node[int]{Value: r*batch + i})
			}
			dst.SpliceBlocking(src)
			total.Add(int64(batch))
		}
	}()

	drained := 0
	deadline := time.Now().Add(30 * time.Second)
	for drained < rounds*batch {
		if n := dst.DequeueBlocking(); n != nil {
			drained++
		} else if time.Now().After(deadline) {
			t.Fatalf("timeout draining spliced nodes: got %d, want %d", drained, rounds*batch)
		}
	}
	wg.Wait()
}

// TestQueueConcurrentTryDequeueWouldBlockRoundTrip drives TryDequeue through
// the retry-on-ErrWouldBlock pattern on a queue whose enqueues have all
// completed, and checks that both items come back in order without loss.
// No producer runs alongside it, so no in-flight window is forced.
func TestQueueConcurrentTryDequeueWouldBlockRoundTrip(t *testing.T) {
	q := wfq.NewQueue[int]()
	n := &wfq.Node[int]{Value: 1}
	q.Enqueue(n)
	// Immediately push a second node so the first is a non-tail node whose
	// linked next is reached without any in-flight wait, and then confirm
	// a Try* call on a thoroughly settled queue never spuriously reports
	// ErrWouldBlock.
	q.Enqueue(&wfq.Node[int]{Value: 2})

	retryWithTimeout(t, 5*time.Second, func() bool {
		got, err := q.TryDequeue()
		if err != nil {
			return false
		}
		return got != nil && got.Value == 1
	}, "TryDequeue never returned the first enqueued node")

	got, err := q.TryDequeue()
	if err != nil || got == nil || got.Value != 2 {
		t.Fatalf("TryDequeue: got (%v, %v), want (Value=2, nil)", got, err)
	}
}
