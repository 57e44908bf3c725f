// Copyright 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package pmem

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const DevMemPath = "/dev/mem"

// DevMem maps regions through /dev/mem. O_SYNC gives an uncached
// device mapping.
type DevMem struct {
	Path string // defaults to DevMemPath
}

func (d DevMem) Map(r Region) ([]byte, error) {
	path := d.Path
	if path == "" {
		path = DevMemPath
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mem, err := unix.Mmap(int(f.Fd()), int64(r.Addr), r.Size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", r, err)
	}
	return mem, nil
}

func (d DevMem) Unmap(mem []byte) error {
	return unix.Munmap(mem)
}
