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

package assembler

const (
	TOKEN_NONE TokenType = iota
	TOKEN_IDENT
	TOKEN_DIRECTIVE
	TOKEN_STRING
	TOKEN_LITERAL
)

const (
	// Mnemonics, matching machine.Opcode one for one.
	INSTRUCTION_INVALID InstructionType = iota
	INSTRUCTION_JMP
	INSTRUCTION_RHI
	INSTRUCTION_SET
	INSTRUCTION_LOD
	INSTRUCTION_STO
	INSTRUCTION_ADD
	INSTRUCTION_SUB
	INSTRUCTION_MUL
	INSTRUCTION_DIV
	INSTRUCTION_SHL
	INSTRUCTION_SHR
	INSTRUCTION_AND
	INSTRUCTION_LOR
	INSTRUCTION_NOT
	INSTRUCTION_BSR
	INSTRUCTION_BSW
)

const (
	DIRECTIVE_INVALID DirectiveType = iota
	DIRECTIVE_ORG
	DIRECTIVE_WORD
	DIRECTIVE_FILL
	DIRECTIVE_ASCII
)

// patchScratchReg is the register the forward-reference patch sequence
// uses to hold a label's low byte before merging it into dst with lor.
// Inherited from assemble.py's convention; a set referencing a forward
// label clobbers this register as a side effect.
const patchScratchReg uint16 = 0xf
