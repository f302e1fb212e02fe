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

import "io"

// busRead and busWrite implement the eight meaningful bus addresses
// (§4.4). Everything else reads as zero and drops writes.
func (mc *Machine) busRead(address uint16) uint16 {
	switch address {
	case BUS_SERIAL:
		return mc.readSerial()

	case BUS_DISK0_SIZE:
		return mc.State.Disk0.SectorCount
	case BUS_DISK0_SECTOR:
		return mc.State.Disk0.Sector
	case BUS_DISK0_ADDR:
		return mc.State.Disk0.Address

	case BUS_DISK1_SIZE:
		return mc.State.Disk1.SectorCount
	case BUS_DISK1_SECTOR:
		return mc.State.Disk1.Sector
	case BUS_DISK1_ADDR:
		return mc.State.Disk1.Address

	default:
		return 0
	}
}

func (mc *Machine) busWrite(address uint16, value uint16) {
	switch address {
	case BUS_SERIAL:
		mc.writeSerial(value)

	case BUS_DISK0_SIZE:
		mc.State.Disk0.Command(&mc.State.Memory, value)
	case BUS_DISK0_SECTOR:
		mc.State.Disk0.Sector = value
	case BUS_DISK0_ADDR:
		mc.State.Disk0.Address = value

	case BUS_DISK1_SIZE:
		mc.State.Disk1.Command(&mc.State.Memory, value)
	case BUS_DISK1_SECTOR:
		mc.State.Disk1.Sector = value
	case BUS_DISK1_ADDR:
		mc.State.Disk1.Address = value

	case BUS_HALT:
		if value != 0 {
			mc.State.Halt = true
		}
	}
}

func (mc *Machine) readSerial() uint16 {
	if mc.Devices == nil || mc.Devices.Keyboard == nil {
		return EndOfInput
	}

	b, err := mc.Devices.Keyboard.ReadByte()
	if err == io.EOF {
		return EndOfInput
	} else if err != nil {
		panic(err)
	}

	return uint16(b)
}

func (mc *Machine) writeSerial(value uint16) {
	if mc.Devices == nil || mc.Devices.Display == nil {
		return
	}

	if err := mc.Devices.Display.WriteByte(byte(value)); err != nil {
		panic(err)
	}

	if err := mc.Devices.Display.Flush(); err != nil {
		panic(err)
	}
}
