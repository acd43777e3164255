// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package wfq

// RaceEnabled is true when the race detector is active.
//
// Stress tests use it to cut iteration counts (the race detector's
// instrumentation overhead otherwise turns a sub-second producer/consumer
// stress run into a multi-minute one) rather than to skip correctness
// checks — unlike the teacher's bounded queues, this package's hot paths
// are stdlib sync/atomic on ordinary pointer fields, so the race detector
// sees real synchronization and has nothing to false-positive on.
const RaceEnabled = true
