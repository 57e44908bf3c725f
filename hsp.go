// Copyright 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hsp rings and checks the doorbells of the NVIDIA TX2
// (Tegra186) top hardware synchronization primitives block. A doorbell
// is a latched interprocessor signal: Ring asserts the caller's pending
// bit at a peer, Check acknowledges a peer's ring of ours.
//
// The package does no locking of its own. Ring and Check are single
// register accesses except for Check's read-modify-write clear, which
// can race a concurrent ring of the same window; callers sharing a
// doorbell id serialize around it, most simply by giving each id one
// owner.
package hsp

import (
	"errors"
	"fmt"

	"github.com/platinasystems/log"
	"github.com/platinasystems/tx2hsp/pmem"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnwiredDoorbell reports an id inside the valid range with
	// no entry in the pending-bit table. New ids must be added to
	// both or Check cannot acknowledge them.
	ErrUnwiredDoorbell = errors.New("doorbell has no pending bit wired")
)

// DefaultRegion is the top HSP instance of the TX2, fixed for the SoC.
// RegionFromDtb recovers the same values from a device tree.
var DefaultRegion = pmem.Region{Name: "tx2-hsp-top", Addr: 0x03c00000, Size: 0xa0000}

// Dimensions are the primitive counts the hardware reports: shared
// mailboxes, shared semaphores, arbitrated semaphores.
type Dimensions struct {
	SM, SS, AS int
}

func (d Dimensions) String() string {
	return fmt.Sprintf("sm:%d ss:%d as:%d", d.SM, d.SS, d.AS)
}

// DoorbellOffset is the byte offset of the doorbell page: one 64 KiB
// page of common registers plus the pages the mailbox and semaphore
// arrays occupy, then the doorbells (TX2 TRM section 14.8.5).
func (d Dimensions) DoorbellOffset() uintptr {
	return uintptr(1+d.SM/2+d.SS+d.AS) * 0x10000
}

func decodeDimensions(v uint32) Dimensions {
	return Dimensions{
		SM: int(v >> dimensionSmShift & dimensionMask),
		SS: int(v >> dimensionSsShift & dimensionMask),
		AS: int(v >> dimensionAsShift & dimensionMask),
	}
}

// HSP is one mapped HSP instance. Zero or closed handles reject all
// operations with ErrInvalidArgument.
type HSP struct {
	mem      []byte
	region   pmem.Region
	dim      Dimensions
	doorbell uintptr // byte offset of the doorbell page in mem
}

// Open maps DefaultRegion through m and locates the doorbell page from
// the dimension register. The only hardware access is that one read.
func Open(m pmem.Mapper) (*HSP, error) {
	return OpenRegion(m, DefaultRegion)
}

// OpenRegion is Open with a caller-supplied register block, e.g. one
// found by RegionFromDtb.
func OpenRegion(m pmem.Mapper, r pmem.Region) (*HSP, error) {
	if m == nil {
		return nil, fmt.Errorf("mapper: %w", ErrInvalidArgument)
	}
	mem, err := m.Map(r)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", r, err)
	}
	if len(mem) < dimensionReg+4 {
		m.Unmap(mem)
		return nil, fmt.Errorf("%s: no dimension register: %w",
			r, ErrInvalidArgument)
	}
	h := &HSP{
		mem:    mem,
		region: r,
		dim:    decodeDimensions(rd32(mem, dimensionReg)),
	}
	h.doorbell = h.dim.DoorbellOffset()
	if end := h.doorbell + uintptr(Ape+1)*doorbellStride; end > uintptr(len(mem)) {
		m.Unmap(mem)
		return nil, fmt.Errorf("%s: doorbell page at %#x is outside %s",
			h.dim, h.doorbell, r)
	}
	return h, nil
}

// Close unmaps the register block through m. Closing again is a no-op.
func (h *HSP) Close(m pmem.Mapper) error {
	if m == nil {
		return fmt.Errorf("mapper: %w", ErrInvalidArgument)
	}
	if h == nil || h.mem == nil {
		return nil
	}
	err := m.Unmap(h.mem)
	h.mem = nil
	h.doorbell = 0
	return err
}

// Dimensions returns the counts read at Open.
func (h *HSP) Dimensions() Dimensions { return h.dim }

// window returns the byte offset of id's register window after
// validating the handle and id.
func (h *HSP) window(id DoorbellID) (uintptr, error) {
	if h == nil || h.mem == nil {
		return 0, fmt.Errorf("hsp not open: %w", ErrInvalidArgument)
	}
	if !id.valid() {
		return 0, fmt.Errorf("%s: %w", id, ErrInvalidArgument)
	}
	return h.doorbell + uintptr(id)*doorbellStride, nil
}

// pendingMask is id's bit in the non-secure half of the pending
// bitfield. We never run TrustZone secure, so the secure half at shift
// 0 is never consulted.
func pendingMask(id DoorbellID) (uint32, error) {
	bit := doorbellBit[id]
	if bit == 0 {
		log.Print("err", "hsp: ", id, " missing from pending-bit table")
		return 0, fmt.Errorf("%s: %w", id, ErrUnwiredDoorbell)
	}
	return bit << nonsecureShift, nil
}

// Ring rings id's doorbell. Any non-zero value trips the trigger; 1 by
// convention. Fire and forget: the hardware reports nothing back.
func (h *HSP) Ring(id DoorbellID) error {
	w, err := h.window(id)
	if err != nil {
		return err
	}
	wr32(h.mem, w+regTrigger, 1)
	return nil
}

// Check reports whether id's doorbell was rung and acknowledges it, so
// an immediate second Check returns false. The clear is a
// read-modify-write; see the package comment for the race this leaves.
func (h *HSP) Check(id DoorbellID) (bool, error) {
	w, err := h.window(id)
	if err != nil {
		return false, err
	}
	mask, err := pendingMask(id)
	if err != nil {
		return false, err
	}
	v := rd32(h.mem, w+regPending)
	if v&mask == 0 {
		return false, nil
	}
	wr32(h.mem, w+regPending, v&^mask)
	return true, nil
}

// Pending is Check without the acknowledgment: a pending doorbell stays
// pending.
func (h *HSP) Pending(id DoorbellID) (bool, error) {
	w, err := h.window(id)
	if err != nil {
		return false, err
	}
	mask, err := pendingMask(id)
	if err != nil {
		return false, err
	}
	return rd32(h.mem, w+regPending)&mask != 0, nil
}

// Raw returns id's raw source register, for diagnostics.
func (h *HSP) Raw(id DoorbellID) (uint32, error) {
	w, err := h.window(id)
	if err != nil {
		return 0, err
	}
	return rd32(h.mem, w+regRaw), nil
}

// Enabled returns id's enable register, for diagnostics.
func (h *HSP) Enabled(id DoorbellID) (uint32, error) {
	w, err := h.window(id)
	if err != nil {
		return 0, err
	}
	return rd32(h.mem, w+regEnable), nil
}
