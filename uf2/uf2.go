// Copyright 2026 The UF2 Tool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uf2 implements the UF2 (USB Flashing Format) container used by
// microcontroller bootloaders that accept firmware over a mass-storage
// interface. A UF2 file is a sequence of self-describing 512-byte blocks,
// each carrying a 32-byte little-endian header, up to 476 bytes of data and
// a trailing magic word.
package uf2

import (
	"encoding/binary"
	"io"
)

// UF2 magic words.
const (
	MagicStart0 = 0x0a324655 // "UF2\n"
	MagicStart1 = 0x9e5d5157
	MagicEnd    = 0x0ab16f30
)

// Block flags.
const (
	FlagNotMainFlash    = 0x00000001
	FlagFileContainer   = 0x00001000
	FlagFamilyIDPresent = 0x00002000
	FlagMD5Present      = 0x00004000
	FlagExtensionTags   = 0x00008000
)

const (
	BlockSize    = 512 // size of a serialized block
	DataAreaSize = 476 // size of the data area inside a block
	PayloadSize  = 256 // image bytes carried per block
)

// DefaultBaseAddr is the target address of the first block if the caller
// does not specify one. It matches the XIP flash base of the RP2 chips.
const DefaultBaseAddr = 0x10000000

// Block is a single UF2 block. The header fields and the trailing magic are
// serialized as little-endian 32-bit words; the payload occupies the first
// Size bytes of the data area and the rest of it is zero.
type Block struct {
	Magic0 uint32
	Magic1 uint32
	Flags  uint32
	Addr   uint32 // target address of the payload
	Size   uint32 // number of payload bytes in the data area
	Seq    uint32 // block number, starting at 0
	Total  uint32 // total number of blocks in the file
	Family uint32 // family ID (or file size, depending on Flags)
	Data   [DataAreaSize]byte
	Magic2 uint32
}

func init() {
	if binary.Size(Block{}) != BlockSize {
		panic("uf2: block layout is not 512 bytes")
	}
}

// Payload returns the image bytes carried by the block.
func (b *Block) Payload() []byte {
	n := b.Size
	if n > DataAreaSize {
		n = DataAreaSize
	}
	return b.Data[:n]
}

// EncodeBlocks splits image into PayloadSize chunks and wraps every chunk in
// a block. The final chunk is zero-padded to PayloadSize. Block i targets
// baseAddr+i*PayloadSize and all blocks carry the family ID and the total
// block count ceil(len(image)/PayloadSize). An empty image yields no blocks.
func EncodeBlocks(image []byte, baseAddr, familyID uint32) []Block {
	numBlocks := (len(image) + PayloadSize - 1) / PayloadSize
	blocks := make([]Block, numBlocks)
	for i := range blocks {
		b := &blocks[i]
		b.Magic0 = MagicStart0
		b.Magic1 = MagicStart1
		b.Flags = FlagFamilyIDPresent
		b.Addr = baseAddr + uint32(i)*PayloadSize
		b.Size = PayloadSize
		b.Seq = uint32(i)
		b.Total = uint32(numBlocks)
		b.Family = familyID
		b.Magic2 = MagicEnd
		copy(b.Data[:PayloadSize], image[i*PayloadSize:])
	}
	return blocks
}

// Encode returns the serialized UF2 stream for image: the concatenation of
// the blocks returned by EncodeBlocks, BlockSize bytes each, in order. An
// empty image encodes to an empty stream, which is how the format represents
// a zero-length firmware; whether a given bootloader accepts such a file is
// up to the bootloader.
func Encode(image []byte, baseAddr, familyID uint32) []byte {
	blocks := EncodeBlocks(image, baseAddr, familyID)
	out := make([]byte, 0, len(blocks)*BlockSize)
	for i := range blocks {
		var err error
		out, err = binary.Append(out, binary.LittleEndian, &blocks[i])
		if err != nil {
			panic("uf2: " + err.Error())
		}
	}
	if len(out) != len(blocks)*BlockSize {
		panic("uf2: assembled block is not 512 bytes")
	}
	return out
}

// BlockWriter is a streaming UF2 encoder. It implements io.Writer: incoming
// bytes fill consecutive PayloadSize payloads and every full payload is
// written to the underlying writer as one block. Flush writes the final,
// zero-padded block if a partial payload is pending.
type BlockWriter struct {
	w io.Writer
	b Block
}

// NewBlockWriter returns a BlockWriter emitting blocks to w. The first block
// targets addr and size is the total number of image bytes that will be
// written; it determines the total-block count stamped into every block.
func NewBlockWriter(w io.Writer, addr, flags, family uint32, size int) *BlockWriter {
	u := new(BlockWriter)
	u.w = w
	u.b.Magic0 = MagicStart0
	u.b.Magic1 = MagicStart1
	u.b.Flags = flags
	u.b.Addr = addr
	u.b.Total = uint32((size + PayloadSize - 1) / PayloadSize)
	u.b.Family = family
	u.b.Magic2 = MagicEnd
	return u
}

func (u *BlockWriter) Write(p []byte) (n int, err error) {
	b := &u.b
	for len(p) != 0 {
		m := copy(b.Data[b.Size:PayloadSize], p)
		n += m
		p = p[m:]
		b.Size += uint32(m)
		if b.Size == PayloadSize {
			err = binary.Write(u.w, binary.LittleEndian, b)
			if err != nil {
				return
			}
			b.Addr += b.Size
			b.Seq++
			b.Size = 0
		}
	}
	return
}

// Flush writes the pending partial block, if any. It must be called after
// the last Write; writing after Flush starts a new block at the next
// address.
func (u *BlockWriter) Flush() (err error) {
	b := &u.b
	if b.Size == 0 {
		return
	}
	clear(b.Data[b.Size:PayloadSize])
	b.Size = PayloadSize
	err = binary.Write(u.w, binary.LittleEndian, b)
	b.Addr += b.Size
	b.Seq++
	b.Size = 0
	return
}
