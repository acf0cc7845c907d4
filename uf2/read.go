// Copyright 2026 The UF2 Tool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uf2

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ReadBlocks reads consecutive blocks from r until EOF and validates the
// magic words of every block. EOF on a block boundary ends the stream; a
// trailing fragment shorter than BlockSize is an error.
func ReadBlocks(r io.Reader) ([]Block, error) {
	var blocks []Block
	for i := 0; ; i++ {
		var b Block
		err := binary.Read(r, binary.LittleEndian, &b)
		if err == io.EOF {
			return blocks, nil
		}
		if err == io.ErrUnexpectedEOF {
			return blocks, fmt.Errorf(
				"block %d: truncated (file size is not a multiple of %d)",
				i, BlockSize,
			)
		}
		if err != nil {
			return blocks, err
		}
		if b.Magic0 != MagicStart0 || b.Magic1 != MagicStart1 {
			return blocks, fmt.Errorf(
				"block %d: bad start magic %#x %#x", i, b.Magic0, b.Magic1,
			)
		}
		if b.Magic2 != MagicEnd {
			return blocks, fmt.Errorf(
				"block %d: bad end magic %#x", i, b.Magic2,
			)
		}
		blocks = append(blocks, b)
	}
}
