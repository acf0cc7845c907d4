// Copyright 2026 The UF2 Tool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package image loads firmware images from raw binary, Intel HEX and ELF
// files as a set of sections placed at flash addresses.
package image

import (
	"debug/elf"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/marcinbor85/gohex"
)

// Section is a contiguous run of image bytes located at a flash address.
type Section struct {
	Addr uint64 // physical location of the data in the Flash/ROM
	Data []byte
}

type Sections []*Section

// SortByAddr sorts sections according to the Addr field.
func (ss Sections) SortByAddr() {
	sort.Slice(
		ss,
		func(i, j int) bool {
			return ss[i].Addr < ss[j].Addr
		},
	)
}

// Size returns the total number of data bytes in all sections, gaps
// excluded.
func (ss Sections) Size() int {
	n := 0
	for _, s := range ss {
		n += len(s.Data)
	}
	return n
}

// Flatten writes the section data to w in address order, filling the gaps
// between sections with the pad byte. Overlapping sections are an error.
func (ss Sections) Flatten(w io.Writer, pad byte) (int, error) {
	if len(ss) == 0 {
		return 0, nil
	}
	ss.SortByAddr()
	n := 0
	pa := ss[0].Addr
	var padCache []byte
	for _, s := range ss {
		if s.Addr < pa {
			return n, fmt.Errorf("flatten: overlapping sections at %#x", s.Addr)
		}
		if gap := int(s.Addr - pa); gap != 0 {
			m, err := w.Write(padBytes(&padCache, gap, pad))
			n += m
			pa += uint64(m)
			if err != nil {
				return n, err
			}
		}
		m, err := w.Write(s.Data)
		n += m
		pa += uint64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// padBytes returns a slice containing n bytes equal b.
func padBytes(cache *[]byte, n int, b byte) []byte {
	if len(*cache) < n {
		*cache = make([]byte, n)
		for i := range *cache {
			(*cache)[i] = b
		}
	}
	return (*cache)[:n]
}

// Read loads the image from the named file. The format is selected by the
// file name extension: .hex is Intel HEX, .elf is ELF, anything else is a
// raw binary placed at addr. Addresses embedded in HEX and ELF files take
// precedence over addr.
func Read(name string, addr uint64) (Sections, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".hex":
		return ReadHex(name)
	case ".elf":
		return ReadELF(name)
	}
	return ReadRaw(name, addr)
}

// ReadRaw loads a raw binary file as a single section at addr.
func ReadRaw(name string, addr uint64) (Sections, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return Sections{{addr, data}}, nil
}

// ReadHex loads an Intel HEX file, one section per contiguous data segment.
func ReadHex(name string) (Sections, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(f); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	var ss Sections
	for _, seg := range mem.GetDataSegments() {
		ss = append(ss, &Section{uint64(seg.Address), seg.Data})
	}
	return ss, nil
}

// ReadELF loads the allocated PROGBITS sections of an ELF file, located at
// their physical (load) addresses. The order of the returned sections is
// unspecified.
func ReadELF(name string) (Sections, error) {
	r, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ss := make(Sections, 0, 16)
	for _, s := range f.Sections {
		if s.Type != elf.SHT_PROGBITS || s.Flags&elf.SHF_ALLOC == 0 {
			continue
		}
		data, err := s.Data()
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			continue
		}
		paddr := ^uint64(0)
		for _, p := range f.Progs {
			if p.Type != elf.PT_LOAD {
				continue
			}
			if p.Off <= s.Offset && s.Offset < p.Off+p.Filesz {
				paddr = p.Paddr + s.Offset - p.Off
				break
			}
		}
		if paddr == ^uint64(0) {
			return nil, fmt.Errorf(
				"%s: section %s is not covered by any loadable segment",
				name, s.Name,
			)
		}
		ss = append(ss, &Section{paddr, data})
	}
	return ss, nil
}

// ReadBins loads binary files according to the description
// BIN1:ADDR1[,BIN2:ADDR2[,...]] and returns them as sections.
func ReadBins(descr string) (Sections, error) {
	bins := strings.Split(descr, ",")
	ss := make(Sections, len(bins))
	for k, ba := range bins {
		i := strings.LastIndexByte(ba, ':')
		if i <= 0 {
			return nil, fmt.Errorf("bad '%s' in the include list", ba)
		}
		bin, addr := ba[:i], ba[i+1:]
		s := new(Section)
		var err error
		s.Addr, err = strconv.ParseUint(addr, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("bad address in '%s': %w", ba, err)
		}
		s.Data, err = os.ReadFile(bin)
		if err != nil {
			return nil, err
		}
		ss[k] = s
	}
	return ss, nil
}
