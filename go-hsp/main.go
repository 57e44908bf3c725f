// Copyright 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// go-hsp rings, checks, and dumps the TX2 HSP doorbells.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"
	"github.com/platinasystems/parms"

	hsp "github.com/platinasystems/tx2hsp"
	"github.com/platinasystems/tx2hsp/pmem"
)

const Usage = `go-hsp [-dtb DTB] [-i MS] COMMAND [DOORBELL]

COMMANDS
	ring DOORBELL		ring the given doorbell
	check DOORBELL		report and acknowledge a pending doorbell
	pending DOORBELL	report without acknowledging
	dump			show dimensions and all doorbell windows
	monitor [-i MS]		poll all doorbells, log each ring

DOORBELL is a name (e.g. bpmp, spe, ape) or window index.`

func main() {
	if err := Main(os.Args[1:]...); err != nil {
		fmt.Fprintln(os.Stderr, "go-hsp:", err)
		os.Exit(1)
	}
}

func Main(args ...string) error {
	flag, args := flags.New(args, []string{"-h", "-help", "--help"})
	parm, args := parms.New(args, "-dtb", "-i")
	if flag.ByName["-h"] {
		fmt.Println(Usage)
		return nil
	}
	if len(args) == 0 {
		return errors.New("no command; usage:\n" + Usage)
	}

	region := hsp.DefaultRegion
	if dtb := parm.ByName["-dtb"]; len(dtb) > 0 {
		var err error
		region, err = hsp.RegionFromDtb(dtb)
		if err != nil {
			return err
		}
	}

	mapper := pmem.DevMem{}
	h, err := hsp.OpenRegion(mapper, region)
	if err != nil {
		return err
	}
	defer h.Close(mapper)

	cmd, args := args[0], args[1:]
	switch cmd {
	case "ring":
		id, err := doorbellArg(args)
		if err != nil {
			return err
		}
		return h.Ring(id)
	case "check":
		id, err := doorbellArg(args)
		if err != nil {
			return err
		}
		rung, err := h.Check(id)
		if err != nil {
			return err
		}
		fmt.Println(id, "pending:", rung)
	case "pending":
		id, err := doorbellArg(args)
		if err != nil {
			return err
		}
		rung, err := h.Pending(id)
		if err != nil {
			return err
		}
		fmt.Println(id, "pending:", rung)
	case "dump":
		if len(args) != 0 {
			return fmt.Errorf("%v: unexpected", args)
		}
		return dump(h)
	case "monitor":
		if len(args) != 0 {
			return fmt.Errorf("%v: unexpected", args)
		}
		return monitor(h, parm.ByName["-i"])
	default:
		return fmt.Errorf("%s: unknown command", cmd)
	}
	return nil
}

func doorbellArg(args []string) (hsp.DoorbellID, error) {
	if len(args) != 1 {
		return 0, errors.New("expected one DOORBELL")
	}
	if i, err := strconv.Atoi(args[0]); err == nil {
		return hsp.DoorbellID(i), nil
	}
	return hsp.DoorbellByName(args[0])
}

func dump(h *hsp.HSP) error {
	fmt.Println("dimensions:", h.Dimensions())
	for _, id := range hsp.DoorbellIDs() {
		raw, err := h.Raw(id)
		if err != nil {
			return err
		}
		enabled, err := h.Enabled(id)
		if err != nil {
			return err
		}
		rung, err := h.Pending(id)
		if err != nil {
			return err
		}
		fmt.Printf("%20s: enable %#08x raw %#08x pending %v\n",
			id, enabled, raw, rung)
	}
	return nil
}

func monitor(h *hsp.HSP, ms string) error {
	interval := 100 * time.Millisecond
	if len(ms) > 0 {
		i, err := strconv.Atoi(ms)
		if err != nil || i <= 0 {
			return fmt.Errorf("-i %s: bad interval", ms)
		}
		interval = time.Duration(i) * time.Millisecond
	}
	log.Print("daemon", "info", "monitoring hsp doorbells every ", interval)
	t := time.NewTicker(interval)
	defer t.Stop()
	for range t.C {
		for _, id := range hsp.DoorbellIDs() {
			rung, err := h.Check(id)
			if err != nil {
				return err
			}
			if rung {
				log.Print(id, " rung")
			}
		}
	}
	return nil
}
