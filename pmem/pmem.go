// Copyright 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pmem maps physical device memory into the process address space.
package pmem

import "fmt"

// Region describes a physical register block.
type Region struct {
	Name string
	Addr uintptr
	Size int
}

func (r Region) String() string {
	return fmt.Sprintf("%s@%#x+%#x", r.Name, uint64(r.Addr), r.Size)
}

// A Mapper maps device register regions with device-memory, non-cached
// semantics. Unmap takes the slice a previous Map returned.
type Mapper interface {
	Map(r Region) ([]byte, error)
	Unmap(mem []byte) error
}
