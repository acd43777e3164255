// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build debug

package wfq

// DebugAssertionsEnabled is true when built with the "debug" build tag.
const DebugAssertionsEnabled = true

// debugAssert panics with msg if cond is false. Compiled out entirely
// (including evaluation of cond at call sites that guard on
// DebugAssertionsEnabled) in non-debug builds; see debug_off.go.
func debugAssert(cond bool, msg string) {
	if !cond {
		panic("wfq: " + msg)
	}
}
