// Copyright 2026 The UF2 Tool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uf2

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFamily(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"RP2040", FamilyRP2040},
		{"rp2040", FamilyRP2040},
		{"rp2350_arm_s", FamilyRP2350ArmS},
		{"SAMD21", 0x68ed2b88},
		{"0xe48bff5a", FamilyRP2350RiscV},
		{"0x1234", 0x1234},
		{"4660", 4660},
		{"0", 0},
		{"0xffffffff", 0xffffffff}, // any 32-bit value is accepted
	}
	for _, tt := range tests {
		id, err := ParseFamily(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, id, tt.in)
	}
}

func TestParseFamilyErrors(t *testing.T) {
	for _, in := range []string{"", "nosuchchip", "0x100000000", "-1"} {
		_, err := ParseFamily(in)
		require.Error(t, err, in)
	}
}

func TestFamilyByID(t *testing.T) {
	f, ok := FamilyByID(FamilyRP2040)
	require.True(t, ok)
	require.Equal(t, "RP2040", f.Name)

	_, ok = FamilyByID(0xdeadbeef)
	require.False(t, ok)
}

func TestFamilyByName(t *testing.T) {
	f, ok := FamilyByName("Rp2350_Arm_S")
	require.True(t, ok)
	require.Equal(t, uint32(FamilyRP2350ArmS), f.ID)

	_, ok = FamilyByName("")
	require.False(t, ok)
}

func TestFamiliesRegistry(t *testing.T) {
	fs := Families()
	require.NotEmpty(t, fs)
	seen := make(map[string]bool)
	for i, f := range fs {
		require.NotEmpty(t, f.Name)
		require.False(t, seen[f.Name], "duplicate family %s", f.Name)
		seen[f.Name] = true
		if i > 0 {
			require.LessOrEqual(t, fs[i-1].Name, f.Name, "registry not sorted")
		}
	}
}
