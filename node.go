// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wfq

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// Node is the intrusive link a caller allocates to hold one element.
//
// The structure never allocates a Node on the caller's behalf. The caller
// constructs one (typically &Node[T]{Value: v}), passes it to Enqueue or
// Push, and gets the same Node back, unchanged apart from its link, from
// Dequeue, Pop or PopAll/splice iteration. Once returned, the caller owns
// the Node again and may zero it, reuse it for a later Enqueue/Push, or let
// it become garbage — the structure never reads or writes Value itself and
// only follows next while the Node is linked in.
//
// A Node must not be enqueued or pushed into more than one structure, nor
// into the same structure twice, while already linked. Debug builds (the
// "debug" build tag) assert this; release builds trust the caller, per
// spec's characterization of mis-synchronized reuse as a programmer error
// rather than a recoverable one.
type Node[T any] struct {
	next   atomic.Pointer[Node[T]]
	linked atomix.Bool
	Value  T
}

// linkedCheck panics in debug builds if the node is already linked into a
// structure, then marks it linked. Called exactly once per Enqueue/Push.
// Outside debug builds it does nothing.
func (n *Node[T]) linkedCheck() {
	if !DebugAssertionsEnabled {
		return
	}
	debugAssert(!n.linked.LoadAcquire(), "node already linked into a queue or stack")
	n.linked.StoreRelease(true)
}

// unlink marks the node as no longer part of any structure. Called exactly
// once per node, at the point it is handed back to the caller by Dequeue,
// Pop, or chain iteration over a PopAll result. Outside debug builds it
// does nothing.
func (n *Node[T]) unlink() {
	if !DebugAssertionsEnabled {
		return
	}
	n.linked.StoreRelease(false)
}
