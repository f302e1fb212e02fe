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

package machine

// firmware is the 40-word ROM overlay. It checks disk0 for a boot sector
// and chain-loads it if present; otherwise it falls into an interactive
// hex-entry assembler that packs typed nibbles into words at BootAddress
// and jumps there on a blank line. Compiled in, never read from a path.
var firmware = [FirmwareSize]uint16{
	0x2001, // set  r0, 0x1             ; r0 = disk0 sector-count port
	0xEB00, // bsr  rb, r0              ; rb = disk0.sector_count
	0x2B28, // set  rb, 0x28            ; rb = assembly/boot base address
	0x2108, // set  r1, 0x8
	0x0201, // jmp  r2, r0, r1          ; r0 is 1, always -> boot shim

	0x210A, // set  r1, 0xa
	0x0211, // jmp  r2, r1, r1          ; -> assembler entry
	0xC000, // lor  r0, r0, r0          ; nop

	// Boot shim: read disk0 sector zero over RAM, then jump to rb. With no
	// disk the read is a no-op and the zero word at rb decodes as
	// jmp r0, r0, r0, which returns to the assembler entry (r0 = 0xa).
	0xF0C0, // bsw  rc, r0              ; issue disk0 read command
	0x00BB, // jmp  r0, rb, rb

	// Assembler: wait for one input byte.
	0xE20C, // bsr  r2, rc

	// If the byte is '\n' at a word boundary, jump to rb (boot address).
	0x210A, // set  r1, 0xa
	0x6021, // sub  r0, r2, r1          ; r0 = 0 iff byte == '\n'
	0x2110, // set  r1, 0x10
	0x0001, // jmp  r0, r0, r1

	0x00BB, // jmp  r0, rb, rb          ; unconditional fallthrough jump

	// Classify the byte as a decimal digit or a lowercase hex letter.
	0x203A, // set  r0, 0x3a            ; r0 = ':'
	0x8002, // div  r0, r0, r2          ; r0 = 0 iff byte < ':'

	0x2118, // set  r1, 0x18
	0x0101, // jmp  r1, r0, r1          ; not a digit -> letter path

	0x2030, // set  r0, 0x30            ; r0 = '0'
	0x6002, // sub  r0, r0, r2          ; r0 = byte - '0'
	0x211A, // set  r1, 0x1a
	0x0111, // jmp  r1, r1, r1

	0x2057, // set  r0, 0x57            ; r0 = 'a' - 10
	0x6002, // sub  r0, r0, r2          ; r0 = byte - ('a' - 10)

	// Shift the nibble into the accumulator.
	0x9F4F, // shl  rf, 0x4, rf
	0xCF0F, // lor  rf, r0, rf

	// Advance the nibble counter; decide whether a word is complete.
	0x2201, // set  r2, 0x1
	0x5EE2, // add  re, re, r2
	0x2003, // set  r0, 0x3
	0xB00E, // and  r0, r0, re

	0x2126, // set  r1, 0x26
	0x0101, // jmp  r1, r0, r1          ; not yet a full word -> loop

	// Write the accumulated word and advance the write cursor.
	0x50BD, // add  r0, rb, rd
	0x40F0, // sto  rf, r0
	0x5D2D, // add  rd, r2, rd

	// Discard a trailing newline, then loop for the next character.
	0xE00C, // bsr  r0, rc
	0x210A, // set  r1, 0xa
	0x0001, // jmp  r0, r0, r1
}
