// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !debug

package wfq

// DebugAssertionsEnabled is false unless built with the "debug" build tag.
const DebugAssertionsEnabled = false

// debugAssert is a no-op outside debug builds.
func debugAssert(cond bool, msg string) {}
