// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "golang.org/x/sys/cpu"

// checkCapacity validates a requested capacity and returns it as uint64.
//
// Capacity must be a power of two so that logical indices map to physical
// slots with a mask instead of a modulo. Unlike rounding the request up,
// an invalid capacity is a configuration error and fails construction;
// it is never surfaced as a runtime outcome.
func checkCapacity(capacity int) uint64 {
	if capacity < 2 || capacity&(capacity-1) != 0 {
		panic("ringq: capacity must be a power of two and at least 2")
	}
	return uint64(capacity)
}

// pad is cache line padding to prevent false sharing between the
// producer-side and consumer-side index fields.
type pad = cpu.CacheLinePad

// padShort is padding to fill a cache line after an 8-byte field.
type padShort [64 - 8]byte
