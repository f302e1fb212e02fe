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

// Reset returns the machine state to its power-on values: PC, Hi, and
// every register zeroed, RAM zeroed, halt cleared. The disk controllers
// and their open files are left untouched.
func (mc *MachineState) Reset() {
	mc.PC = 0
	mc.Hi = 0
	mc.Halt = false

	for i := range mc.Regs {
		mc.Regs[i] = 0
	}

	for i := range mc.Memory.ram {
		mc.Memory.ram[i] = 0
	}
}

func decode(word uint16) Instruction {
	return Instruction{
		Op:   Opcode(word >> 12),
		Dst:  (word >> 8) & 0xF,
		Src1: (word >> 4) & 0xF,
		Src0: word & 0xF,
	}
}

// readMem and writeMem wrap the raw memory adapter with the debugger's
// watchpoint hooks. Only instruction-level fetch/load/store go through
// these; disk DMA transfers bypass them and touch Memory directly, since
// a sector transfer moves 256 words as one atomic guest-visible event.
func (mc *Machine) readMem(address uint16) uint16 {
	word := mc.State.Memory.Read(address)

	if mc.Debugger != nil {
		mc.Debugger.Read(address, mc)
	}

	return word
}

func (mc *Machine) writeMem(address uint16, word uint16) {
	mc.State.Memory.Write(address, word)

	if mc.Debugger != nil {
		mc.Debugger.Write(address, mc)
	}
}

// Step executes exactly one instruction: fetch, post-increment PC,
// decode, execute. Callers drive the fetch-decode-execute loop themselves
// by calling Step until State.Halt is true.
func (mc *Machine) Step() {
	word := mc.readMem(mc.State.PC)
	mc.State.PC++

	instr := decode(word)
	regs := &mc.State.Regs

	switch instr.Op {
	case OP_JUMP:
		if regs[instr.Src1] != 0 {
			target := regs[instr.Src0]
			regs[instr.Dst] = mc.State.PC
			mc.State.PC = target
		}

	case OP_READHI:
		regs[instr.Dst] = mc.State.Hi

	case OP_SET:
		regs[instr.Dst] = instr.Src1<<4 | instr.Src0

	case OP_LOAD:
		regs[instr.Dst] = mc.readMem(regs[instr.Src0])

	case OP_STORE:
		mc.writeMem(regs[instr.Src0], regs[instr.Src1])

	case OP_ADD:
		a, b := uint32(regs[instr.Src0]), uint32(regs[instr.Src1])
		c := a + b
		regs[instr.Dst] = uint16(c)
		mc.State.Hi = uint16(c >> 16)

	case OP_SUB:
		a, b := uint32(regs[instr.Src0]), uint32(regs[instr.Src1])
		c := a - b
		regs[instr.Dst] = uint16(c)
		mc.State.Hi = uint16(c >> 16)

	case OP_MUL:
		a, b := uint32(regs[instr.Src0]), uint32(regs[instr.Src1])
		c := a * b
		regs[instr.Dst] = uint16(c)
		mc.State.Hi = uint16(c >> 16)

	case OP_DIV:
		a, b := regs[instr.Src0], regs[instr.Src1]
		if b == 0 {
			regs[instr.Dst] = 0xFFFF
			mc.State.Hi = 0xFFFF
		} else {
			q := uint32(a) / uint32(b)
			regs[instr.Dst] = uint16(q)
			mc.State.Hi = uint16(q >> 16)
		}

	case OP_SHL:
		regs[instr.Dst] = regs[instr.Src0] << instr.Src1

	case OP_SHR:
		regs[instr.Dst] = regs[instr.Src0] >> instr.Src1

	case OP_AND:
		regs[instr.Dst] = regs[instr.Src0] & regs[instr.Src1]

	case OP_OR:
		regs[instr.Dst] = regs[instr.Src0] | regs[instr.Src1]

	case OP_NOT:
		regs[instr.Dst] = ^regs[instr.Src0]

	case OP_BUSRD:
		regs[instr.Dst] = mc.busRead(regs[instr.Src0])

	case OP_BUSWR:
		mc.busWrite(regs[instr.Src0], regs[instr.Src1])
	}

	if mc.Debugger != nil {
		mc.Debugger.Step(mc)
	}
}

// Run drives the fetch-decode-execute loop until the halt flag is raised.
func (mc *Machine) Run() {
	for !mc.State.Halt {
		mc.Step()
	}
}
