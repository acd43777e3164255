// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wfq

import (
	"time"

	"code.hybscloud.com/spin"
)

// adaptAttempts and adaptWait reproduce WFCQ_ADAPT_ATTEMPTS / WFCQ_WAIT and
// CDS_WFS_ADAPT_ATTEMPTS / CDS_WFS_WAIT from the original urcu headers: ten
// CPU-relax attempts, then a 10ms sleep, repeating until the awaited next
// pointer is published.
const (
	adaptAttempts = 10
	adaptWait     = 10 * time.Millisecond
)

// syncNext waits for n.next to become non-nil — the publication a producer
// makes in the second of its two enqueue/push stores — and returns it.
//
// A non-blocking caller gets ErrWouldBlock on the first null observation
// instead of entering the wait, exactly spec.md's WOULDBLOCK contract: this
// module expresses that contract as an error return rather than a raw
// sentinel pointer, the same translation the teacher's own bounded queues
// use for an analogous "would have to wait" signal (ErrWouldBlock, sourced
// from code.hybscloud.com/iox for ecosystem consistency).
func syncNext[T any](n *Node[T], blocking bool) (*Node[T], error) {
	if next := n.next.Load(); next != nil {
		return next, nil
	}
	if !blocking {
		return nil, ErrWouldBlock
	}

	sw := spin.Wait{}
	attempts := 0
	for {
		if next := n.next.Load(); next != nil {
			return next, nil
		}
		if attempts < adaptAttempts {
			sw.Once()
			attempts++
			continue
		}
		time.Sleep(adaptWait)
		attempts = 0
	}
}
