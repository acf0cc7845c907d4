// Copyright 2026 The UF2 Tool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/devboard/uf2tool/internal/image"
	"github.com/devboard/uf2tool/uf2"
)

func convertCmd() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "convert a raw binary, Intel HEX or ELF image to UF2",
		ArgsUsage: "INPUT [OUTPUT]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-addr",
				Aliases: []string{"b"},
				Usage:   "target `address` of the first block (raw binary input)",
				Value:   "0x10000000",
			},
			&cli.StringFlag{
				Name:    "family",
				Aliases: []string{"f"},
				Usage:   "family `ID` (32-bit number) or a known family name",
				Value:   "rp2350_arm_s",
			},
			&cli.StringFlag{
				Name:  "inc",
				Usage: "binary files to be included `BIN1:ADDR1[,BIN2:ADDR2,...]`",
			},
			&cli.UintFlag{
				Name:  "pad",
				Usage: "pad `byte` used to fill gaps between sections",
				Value: 0xff,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "config `file` (default " + configPath() + ")",
			},
		},
		Action: runConvert,
	}
}

func runConvert(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 || cmd.NArg() > 2 {
		return cli.Exit("usage: uf2tool convert [OPTIONS] INPUT [OUTPUT]", 1)
	}
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	baseStr := cmd.String("base-addr")
	familyStr := cmd.String("family")
	pad := cmd.Uint("pad")
	applyConvertConfig(cmd, cfg, &baseStr, &familyStr, &pad)

	base, err := strconv.ParseUint(baseStr, 0, 32)
	if err != nil {
		return fmt.Errorf("bad base address %q: %w", baseStr, err)
	}
	familyID, err := uf2.ParseFamily(familyStr)
	if err != nil {
		return err
	}
	if pad > 0xff {
		return fmt.Errorf("bad pad byte %#x", pad)
	}

	in := cmd.Args().Get(0)
	out := cmd.Args().Get(1)
	if out == "" {
		out = defaultOutput(in)
	}

	sections, err := image.Read(in, base)
	if err != nil {
		return err
	}
	if inc := cmd.String("inc"); inc != "" {
		isec, err := image.ReadBins(inc)
		if err != nil {
			return err
		}
		sections = append(sections, isec...)
	}
	sections.SortByAddr()

	buf := bytes.NewBuffer(make([]byte, 0, sections.Size()*5/4))
	if _, err := sections.Flatten(buf, byte(pad)); err != nil {
		return err
	}
	addr := base
	if len(sections) != 0 {
		addr = sections[0].Addr
	}
	if addr != uint64(uint32(addr)) {
		return fmt.Errorf("target address %#x doesn't fit in 32 bits", addr)
	}

	of, err := os.Create(out)
	if err != nil {
		return err
	}
	w := uf2.NewBlockWriter(of, uint32(addr), uf2.FlagFamilyIDPresent, familyID, buf.Len())
	if _, err := w.Write(buf.Bytes()); err != nil {
		of.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		of.Close()
		return err
	}
	if err := of.Close(); err != nil {
		return err
	}

	numBlocks := (buf.Len() + uf2.PayloadSize - 1) / uf2.PayloadSize
	fmt.Printf(
		"%s: %d bytes (%s) -> %s: %d blocks, %d bytes (%s)\n",
		in, buf.Len(), humanize.IBytes(uint64(buf.Len())),
		out, numBlocks, numBlocks*uf2.BlockSize,
		humanize.IBytes(uint64(numBlocks*uf2.BlockSize)),
	)
	family := fmt.Sprintf("%#010x", familyID)
	if f, ok := uf2.FamilyByID(familyID); ok {
		family += " (" + f.Name + ")"
	}
	fmt.Printf("base address: %#010x, family: %s\n", uint32(addr), family)
	return nil
}

// defaultOutput derives the output file name from the input file name by
// replacing its extension with .uf2.
func defaultOutput(in string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + ".uf2"
}
