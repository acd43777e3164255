// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wfq

import "code.hybscloud.com/iox"

// ErrWouldBlock indicates a non-blocking call observed an in-flight
// producer window — the second of a producer's two publication stores had
// not yet landed — and returned instead of waiting for it.
//
// ErrWouldBlock is a control flow signal, not a failure: the caller should
// retry later, or switch to the blocking variant of the same call, rather
// than propagating the error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency with
// code.hybscloud.com/lfq and other callers that already retry on it.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    n, err := q.TryDequeue()
//	    if err == nil {
//	        backoff.Reset()
//	        break // n may still be nil: that means empty, not WOULDBLOCK
//	    }
//	    if !wfq.IsWouldBlock(err) {
//	        return err
//	    }
//	    backoff.Wait()
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
