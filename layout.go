// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wfq

// pad is cache line padding to prevent false sharing.
//
// Carried from the teacher's bounded-queue layout: producers touch the
// queue's tail/stack's top, consumers touch the queue's head; separating
// them onto distinct cache lines is spec-mandated (spec.md §5 "Implementers
// SHOULD place head and tail on distinct cache lines").
type pad [64]byte
