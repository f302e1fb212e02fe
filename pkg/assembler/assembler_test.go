// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package assembler_test

import (
	"math"
	"strings"
	"testing"

	"github.com/bedrock-vm/bedrock/pkg/assembler"
)

type testCase struct {
	Name   string
	Input  string
	Output map[uint16]uint16
}

type failCase struct {
	Name  string
	Input string
}

func testAssemblerSuccess(t *testing.T, test *testCase) {
	result, errs := assembler.AssembleSource(strings.NewReader(test.Input), nil)

	if len(errs) > 0 {
		t.Fatal(errs[0])
	}

	if size := len(result); size != math.MaxUint16+1 {
		t.Fatalf("Invalid buffer length\nwant:%d\nhave:%d", math.MaxUint16+1, size)
	}

	for addr, want := range test.Output {
		if have := result[addr]; have != want {
			t.Errorf(
				"Instruction encoding mismatch at %#04x\nwant:%#04x\nhave:%#04x",
				addr, want, have,
			)
		}
	}
}

func testAssemblerFail(t *testing.T, test *failCase) {
	_, errs := assembler.AssembleSource(strings.NewReader(test.Input), nil)

	if len(errs) == 0 {
		t.Fatal("expected an error, got none")
	}
}

func TestRegisterInstructions(t *testing.T) {
	tests := []testCase{
		{
			Name:   "jmp",
			Input:  "jmp r2, r1, r0",
			Output: map[uint16]uint16{0x28: 0x0210},
		},
		{
			Name:   "rhi",
			Input:  "rhi r3",
			Output: map[uint16]uint16{0x28: 0x1300},
		},
		{
			Name:   "set literal",
			Input:  "set r0, xAB",
			Output: map[uint16]uint16{0x28: 0x20AB},
		},
		{
			Name:   "lod",
			Input:  "lod r0, r1",
			Output: map[uint16]uint16{0x28: 0x3001},
		},
		{
			Name:   "sto",
			Input:  "sto r1, r0",
			Output: map[uint16]uint16{0x28: 0x4010},
		},
		{
			Name:   "add",
			Input:  "add r0, r1, r2",
			Output: map[uint16]uint16{0x28: 0x5012},
		},
		{
			Name:   "sub",
			Input:  "sub r0, r1, r2",
			Output: map[uint16]uint16{0x28: 0x6012},
		},
		{
			Name:   "mul",
			Input:  "mul r0, r1, r2",
			Output: map[uint16]uint16{0x28: 0x7012},
		},
		{
			Name:   "div",
			Input:  "div r2, r0, r1",
			Output: map[uint16]uint16{0x28: 0x8201},
		},
		{
			Name:   "shl",
			Input:  "shl rf, x4, rf",
			Output: map[uint16]uint16{0x28: 0x9F4F},
		},
		{
			Name:   "shr",
			Input:  "shr r0, x4, r0",
			Output: map[uint16]uint16{0x28: 0xA040},
		},
		{
			Name:   "and",
			Input:  "and r0, r0, re",
			Output: map[uint16]uint16{0x28: 0xB00E},
		},
		{
			Name:   "lor",
			Input:  "lor rf, r0, rf",
			Output: map[uint16]uint16{0x28: 0xCF0F},
		},
		{
			Name:   "not",
			Input:  "not r0, r1",
			Output: map[uint16]uint16{0x28: 0xD001},
		},
		{
			Name:   "bsr",
			Input:  "bsr r0, rc",
			Output: map[uint16]uint16{0x28: 0xE00C},
		},
		{
			Name:   "bsw",
			Input:  "bsw rc, r0",
			Output: map[uint16]uint16{0x28: 0xF0C0},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			testAssemblerSuccess(t, &test)
		})
	}
}

func TestDirectives(t *testing.T) {
	tests := []testCase{
		{
			Name:   ".org relocates the write cursor",
			Input:  ".org x100\nset r0, x1",
			Output: map[uint16]uint16{0x100: 0x2001},
		},
		{
			Name:   ".word emits a raw word",
			Input:  ".word xBEEF",
			Output: map[uint16]uint16{0x28: 0xBEEF},
		},
		{
			Name:  ".fill repeats a word",
			Input: ".fill x3, xAA",
			Output: map[uint16]uint16{
				0x28: 0xAA, 0x29: 0xAA, 0x2A: 0xAA,
			},
		},
		{
			Name:  ".ascii packs one byte per word",
			Input: `.ascii "Hi"`,
			Output: map[uint16]uint16{
				0x28: uint16('H'), 0x29: uint16('i'),
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			testAssemblerSuccess(t, &test)
		})
	}
}

func TestBackwardLabel(t *testing.T) {
	test := testCase{
		Input: "loop: add r0, r0, r0\nset r1, loop",
		Output: map[uint16]uint16{
			0x28: 0x5000,
			0x29: 0x2128, // set r1, 0x28 (hi byte zero, single word)
		},
	}

	testAssemblerSuccess(t, &test)
}

func TestForwardLabel(t *testing.T) {
	test := testCase{
		Input: "set r1, skip\nadd r0, r0, r0\nskip: add r0, r0, r0",
		Output: map[uint16]uint16{
			// set r1, 0x00 ; shl r1, x8, r1 ; set rf, 0x2d ; lor r1, r1, rf
			0x28: 0x2100,
			0x29: 0x9181,
			0x2A: 0x2F2D,
			0x2B: 0xC11F,
			0x2C: 0x5000,
			0x2D: 0x5000,
		},
	}

	testAssemblerSuccess(t, &test)
}

func TestUnknownLabelFails(t *testing.T) {
	testAssemblerFail(t, &failCase{
		Name:  "unresolved label",
		Input: "set r0, nowhere",
	})
}

func TestInvalidRegisterFails(t *testing.T) {
	testAssemblerFail(t, &failCase{
		Name:  "bad register name",
		Input: "add rz, r0, r0",
	})
}

func TestOversizedImmediateFails(t *testing.T) {
	testAssemblerFail(t, &failCase{
		Name:  "shl immediate over 4 bits",
		Input: "shl r0, x10, r0",
	})
}

func TestRedeclaredLabelFails(t *testing.T) {
	testAssemblerFail(t, &failCase{
		Name:  "label declared twice",
		Input: "loop: add r0, r0, r0\nloop: add r0, r0, r0",
	})
}
