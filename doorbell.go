// Copyright 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hsp

import "fmt"

// DoorbellID names a peer's doorbell window. The range is closed:
// CcplexPm through Ape, matching the hardware window order.
type DoorbellID int

const (
	CcplexPm DoorbellID = iota
	CcplexTzNonsecure
	CcplexTzSecure
	Bpmp
	Spe
	Sce
	Ape
)

// Pending bitfield values, one per signaling peer class (TX2 TRM
// section 14.8.5, figure 75). SCE shares the CPE bit. Several classes
// have no doorbell window of their own but still appear as sources.
const (
	ccplexBit uint32 = 1 << 1
	dpmuBit   uint32 = 1 << 2
	bpmpBit   uint32 = 1 << 3
	speBit    uint32 = 1 << 4
	cpeBit    uint32 = 1 << 5
	sceBit           = cpeBit
	dmaBit    uint32 = 1 << 6
	tsecaBit  uint32 = 1 << 7
	tsecbBit  uint32 = 1 << 8
	jtagmBit  uint32 = 1 << 9
	csiteBit  uint32 = 1 << 10
	apeBit    uint32 = 1 << 11
)

// All three CCPLEX doorbells aggregate into the one CCPLEX pending bit.
// A zero entry means the id has no source bit wired, which Check treats
// as a broken invariant.
var doorbellBit = [Ape + 1]uint32{
	CcplexPm:          ccplexBit,
	CcplexTzNonsecure: ccplexBit,
	CcplexTzSecure:    ccplexBit,
	Bpmp:              bpmpBit,
	Spe:               speBit,
	Sce:               sceBit,
	Ape:               apeBit,
}

var doorbellName = [Ape + 1]string{
	CcplexPm:          "ccplex-pm",
	CcplexTzNonsecure: "ccplex-tz-nonsecure",
	CcplexTzSecure:    "ccplex-tz-secure",
	Bpmp:              "bpmp",
	Spe:               "spe",
	Sce:               "sce",
	Ape:               "ape",
}

func (id DoorbellID) valid() bool { return CcplexPm <= id && id <= Ape }

func (id DoorbellID) String() string {
	if !id.valid() {
		return fmt.Sprintf("doorbell(%d)", int(id))
	}
	return doorbellName[id]
}

// DoorbellIDs lists every doorbell in window order.
func DoorbellIDs() []DoorbellID {
	ids := make([]DoorbellID, 0, int(Ape)+1)
	for id := CcplexPm; id <= Ape; id++ {
		ids = append(ids, id)
	}
	return ids
}

// DoorbellByName resolves the names String prints, for command lines.
func DoorbellByName(name string) (DoorbellID, error) {
	for id, s := range doorbellName {
		if s == name {
			return DoorbellID(id), nil
		}
	}
	return 0, fmt.Errorf("%s: %w", name, ErrInvalidArgument)
}
