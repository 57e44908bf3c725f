// Copyright 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hsp

import (
	"fmt"
	"os"
	"strings"

	"github.com/platinasystems/fdt"
	"github.com/platinasystems/tx2hsp/pmem"
)

// DefaultDtb is where goes machines keep the device tree blob.
const DefaultDtb = "/boot/linux.dtb"

const hspCompatible = "nvidia,tegra186-hsp"

// RegionFromDtb finds the top HSP register block in a flattened device
// tree. The tegra186 has several HSP instances with the same
// compatible; the doorbells live in the one with a doorbell interrupt.
func RegionFromDtb(path string) (pmem.Region, error) {
	if path == "" {
		path = DefaultDtb
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return pmem.Region{}, err
	}
	t := &fdt.Tree{}
	if err = t.Parse(b); err != nil {
		return pmem.Region{}, fmt.Errorf("%s: %w", path, err)
	}
	var node *fdt.Node
	t.EachProperty("compatible", hspCompatible,
		func(n *fdt.Node, name, value string) {
			names := string(n.Properties["interrupt-names"])
			if node == nil && strings.Contains(names, "doorbell") {
				node = n
			}
		})
	if node == nil {
		return pmem.Region{}, fmt.Errorf("%s: no %s node with doorbells",
			path, hspCompatible)
	}
	return regionFromNode(t, node)
}

// regionFromNode decodes a node's reg property. Tegra trees use
// two-cell addresses and sizes; single-cell trees are accepted too.
func regionFromNode(t *fdt.Tree, n *fdt.Node) (pmem.Region, error) {
	cells := t.PropUint32Slice(n.Properties["reg"])
	r := pmem.Region{Name: n.Name}
	switch len(cells) {
	case 2:
		r.Addr = uintptr(cells[0])
		r.Size = int(cells[1])
	case 4:
		r.Addr = uintptr(uint64(cells[0])<<32 | uint64(cells[1]))
		r.Size = int(uint64(cells[2])<<32 | uint64(cells[3]))
	default:
		return pmem.Region{}, fmt.Errorf("%s: can't decode reg of %d cells",
			n.Name, len(cells))
	}
	if r.Size <= 0 {
		return pmem.Region{}, fmt.Errorf("%s: zero sized reg", n.Name)
	}
	return r, nil
}
