// Copyright 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pmem

import (
	"errors"
	"fmt"
	"unsafe"
)

// Mock is a Mapper backed by ordinary memory. Driver tests use it as a
// simulated register backing store and to verify that map and unmap
// calls pair up.
type Mock struct {
	// Seed values are stored into each new mapping before it is
	// returned, so tests can preload hardware registers. Native
	// byte order, same as the driver's register accessors.
	Seed map[uintptr]uint32

	// MapErr, when set, makes the next Map call fail.
	MapErr error

	Maps    []Region // every region mapped
	Unmaps  []Region // every region unmapped
	Backing []byte   // most recent live mapping

	live map[*byte]Region
}

func (m *Mock) Map(r Region) ([]byte, error) {
	if m.MapErr != nil {
		err := m.MapErr
		m.MapErr = nil
		return nil, err
	}
	if r.Size <= 0 {
		return nil, fmt.Errorf("mock: bad size for %s", r)
	}
	mem := make([]byte, r.Size)
	for off, v := range m.Seed {
		*(*uint32)(unsafe.Pointer(&mem[off])) = v
	}
	if m.live == nil {
		m.live = make(map[*byte]Region)
	}
	m.live[&mem[0]] = r
	m.Maps = append(m.Maps, r)
	m.Backing = mem
	return mem, nil
}

func (m *Mock) Unmap(mem []byte) error {
	if len(mem) == 0 {
		return errors.New("mock: unmap of empty region")
	}
	r, found := m.live[&mem[0]]
	if !found {
		return errors.New("mock: unmap of unknown region")
	}
	if len(mem) != r.Size {
		return fmt.Errorf("mock: unmap length %#x, mapped %s",
			len(mem), r)
	}
	delete(m.live, &mem[0])
	m.Unmaps = append(m.Unmaps, r)
	return nil
}

// Live returns the count of mappings not yet unmapped.
func (m *Mock) Live() int { return len(m.live) }
