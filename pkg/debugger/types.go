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

package debugger

import (
	"os"

	"github.com/bedrock-vm/bedrock/pkg/assembler"
	"github.com/bedrock-vm/bedrock/pkg/machine"
)

type WatchpointType uint

// Watchpoint fires on RAM/ROM access through Machine's load/store path.
// Bus addresses are memory-adapter-external and cannot be watched.
type Watchpoint struct {
	Addr uint16
	Type WatchpointType
}

type Breakpoint struct {
	Addr uint16
}

// Debugger implements machine.MachineDebugger, turning Step/Read/Write
// hooks into breakpoint and watchpoint callbacks. Step calls HandleBreak
// on reaching a breakpoint address, and after every instruction while
// Break is set; watchpoints call HandleRead/HandleWrite instead. The
// Debugger never sets Break itself: its owner sets and clears it.
type Debugger struct {
	Break bool

	Breakpoints []Breakpoint
	Watchpoints []Watchpoint

	Source   *os.File
	Binary   *os.File
	SymTable *assembler.SymTable

	HandleBreak func(*Debugger, *machine.Machine)
	HandleRead  func(uint16, *Debugger, *machine.Machine)
	HandleWrite func(uint16, *Debugger, *machine.Machine)
}
