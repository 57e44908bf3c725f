// Copyright 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hsp

import (
	"sync/atomic"
	"unsafe"
)

// Dimension register: packed counts of the other HSP primitives. The
// doorbell page sits after the pages they occupy.
const (
	dimensionReg     = 0x380
	dimensionSmShift = 0
	dimensionSsShift = 4
	dimensionAsShift = 8
	dimensionMask    = 0xf
)

// Doorbell register windows, one per peer, 0x100 apart in a single page.
const (
	doorbellStride = 0x100

	regTrigger = 0x0 // any non-zero write rings (W)
	regEnable  = 0x4 // per-source enable bits (RW)
	regRaw     = 0x8 // unmasked source state (R)
	regPending = 0xc // latched sources, write back to clear (RW)
)

// The pending bitfield is split by TrustZone state.
const (
	secureShift    = 0
	nonsecureShift = 16
)

// rd32 and wr32 access mapped device registers. Going through
// sync/atomic keeps the compiler from caching, tearing, or reordering
// these accesses.
func rd32(mem []byte, off uintptr) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(&mem[off])))
}

func wr32(mem []byte, off uintptr, v uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(&mem[off])), v)
}
