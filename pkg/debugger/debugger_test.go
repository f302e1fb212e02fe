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

package debugger_test

import (
	"testing"

	"github.com/bedrock-vm/bedrock/pkg/debugger"
	"github.com/bedrock-vm/bedrock/pkg/machine"
)

func TestBreakpointFires(t *testing.T) {
	var mc machine.Machine
	var fired bool

	dbg := &debugger.Debugger{
		Breakpoints: []debugger.Breakpoint{{Addr: 0x29}},
		HandleBreak: func(d *debugger.Debugger, m *machine.Machine) {
			fired = true
			d.Break = false
		},
	}

	mc.Debugger = dbg
	mc.State.Memory.Write(0x28, 0x5000) // add r0, r0, r0
	mc.State.Memory.Write(0x29, 0x5000)
	mc.State.PC = 0x28

	// Executing the instruction at 0x28 advances PC to 0x29: the
	// breakpoint fires once that becomes the address of the next fetch.
	mc.Step()
	if !fired {
		t.Fatal("breakpoint did not fire on reaching its address")
	}

	fired = false
	mc.Step()
	if fired {
		t.Fatal("breakpoint fired again after stepping past its address")
	}
}

func TestWatchpointIgnoresOppositeDirection(t *testing.T) {
	var mc machine.Machine
	var reads, writes int

	dbg := &debugger.Debugger{
		Watchpoints: []debugger.Watchpoint{{Addr: 0x64, Type: debugger.WriteWatch}},
		HandleRead:  func(uint16, *debugger.Debugger, *machine.Machine) { reads++ },
		HandleWrite: func(uint16, *debugger.Debugger, *machine.Machine) { writes++ },
	}

	mc.Debugger = dbg
	mc.State.Memory.Write(0x28, 0x2064) // set r0, x64
	mc.State.Memory.Write(0x29, 0x2101) // set r1, x01
	mc.State.Memory.Write(0x2A, 0x4010) // sto r1, r0  (write [0x64] = 1)
	mc.State.Memory.Write(0x2B, 0x3200) // lod r2, r0  (read [0x64])

	mc.State.PC = 0x28
	mc.Step() // set r0
	mc.Step() // set r1

	mc.Step() // sto -> write watchpoint should fire
	if writes != 1 {
		t.Fatalf("write watchpoint did not fire: writes=%d", writes)
	}

	mc.Step() // lod -> write-only watchpoint must ignore the read
	if reads != 0 {
		t.Fatalf("write-only watchpoint fired on a read: reads=%d", reads)
	}
}
