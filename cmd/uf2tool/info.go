// Copyright 2026 The UF2 Tool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/devboard/uf2tool/uf2"
)

func infoCmd() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "summarize the blocks of a UF2 file",
		ArgsUsage: "FILE",
		Action:    runInfo,
	}
}

func runInfo(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return cli.Exit("usage: uf2tool info FILE", 1)
	}
	name := cmd.Args().Get(0)
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	blocks, err := uf2.ReadBlocks(f)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	fmt.Printf("%s: %d blocks\n", name, len(blocks))
	if len(blocks) == 0 {
		return nil
	}

	lo, hi := blocks[0].Addr, blocks[0].Addr
	payload := 0
	families := make(map[uint32]int)
	for i := range blocks {
		b := &blocks[i]
		if b.Addr < lo {
			lo = b.Addr
		}
		if end := b.Addr + b.Size; end > hi {
			hi = end
		}
		payload += len(b.Payload())
		if b.Flags&uf2.FlagFamilyIDPresent != 0 {
			families[b.Family]++
		}
	}
	fmt.Printf("address range: %#010x-%#010x\n", lo, hi)
	fmt.Printf(
		"payload: %d bytes (%s)\n", payload, humanize.IBytes(uint64(payload)),
	)
	for id, n := range families {
		fname := "unknown"
		if fam, ok := uf2.FamilyByID(id); ok {
			fname = fam.Name
		}
		fmt.Printf("family: %#010x (%s), %d blocks\n", id, fname, n)
	}
	return nil
}
