// Copyright 2026 The UF2 Tool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uf2

import (
	"cmp"
	_ "embed"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Family IDs of the Raspberry Pi RP2 chips.
const (
	FamilyRP2040      = 0xe48bff56
	FamilyAbsolute    = 0xe48bff57
	FamilyData        = 0xe48bff58
	FamilyRP2350ArmS  = 0xe48bff59
	FamilyRP2350RiscV = 0xe48bff5a
	FamilyRP2350ArmNS = 0xe48bff5b
)

// DefaultFamily is the family ID used if the caller does not specify one.
const DefaultFamily = FamilyRP2350ArmS

// Family is one entry of the public UF2 family registry. Bootloaders use the
// ID to reject files not meant for them.
type Family struct {
	ID          uint32
	Name        string
	Description string
}

//go:embed uf2families.json
var familiesJSON []byte

var families = loadFamilies()

func loadFamilies() []Family {
	var raw []struct {
		ID          string `json:"id"`
		ShortName   string `json:"short_name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(familiesJSON, &raw); err != nil {
		panic("uf2: bad embedded family registry: " + err.Error())
	}
	fs := make([]Family, len(raw))
	for i, r := range raw {
		id, err := strconv.ParseUint(r.ID, 0, 32)
		if err != nil {
			panic("uf2: bad family ID in embedded registry: " + r.ID)
		}
		fs[i] = Family{uint32(id), r.ShortName, r.Description}
	}
	slices.SortFunc(fs, func(a, b Family) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return fs
}

// Families returns the known family registry sorted by name.
func Families() []Family {
	return slices.Clone(families)
}

// FamilyByName looks up a family by its short name, ignoring case.
func FamilyByName(name string) (Family, bool) {
	for _, f := range families {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Family{}, false
}

// FamilyByID looks up a family by its ID.
func FamilyByID(id uint32) (Family, bool) {
	for _, f := range families {
		if f.ID == id {
			return f, true
		}
	}
	return Family{}, false
}

// ParseFamily converts a family given as a known short name or as a numeric
// 32-bit value (decimal or 0x-prefixed) into a family ID. Numeric values are
// accepted verbatim, known or not; it is the target bootloader that decides
// which IDs it takes.
func ParseFamily(s string) (uint32, error) {
	if f, ok := FamilyByName(s); ok {
		return f.ID, nil
	}
	id, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown family %q", s)
	}
	return uint32(id), nil
}
