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

import (
	"io"
	"os"
)

// DiskController wraps a byte-addressable random-access disk file. A
// controller with a nil File is "absent": it reports a zero sector count
// and every command on it is a no-op.
type DiskController struct {
	File        *os.File
	SectorCount uint16
	Sector      uint16
	Address     uint16
}

// AttachDisk opens path for random access and sizes the controller from
// the file's length. path == "" yields an absent controller. A host I/O
// failure while opening or statting the file is returned to the caller
// (this is an argument-time error, not a run-time fatal one).
func AttachDisk(path string) (DiskController, error) {
	if path == "" {
		return DiskController{}, nil
	}

	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return DiskController{}, err
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return DiskController{}, err
	}

	sectors := stat.Size() / SectorSize
	if sectors > MaxSectors {
		sectors = MaxSectors
	}

	return DiskController{File: file, SectorCount: uint16(sectors)}, nil
}

func (d *DiskController) Close() error {
	if d.File == nil {
		return nil
	}

	return d.File.Close()
}

// Command issues a disk command (read or write of the sector currently
// addressed by Sector/Address) against the given memory. Any other
// command value, an absent controller, or an out-of-range sector is a
// no-op. Host I/O failure is fatal to the process.
func (d *DiskController) Command(mem *Memory, command uint16) {
	if d.File == nil {
		return
	}

	switch command {
	case DiskCommandRead:
		d.readSector(mem)
	case DiskCommandWrite:
		d.writeSector(mem)
	}
}

func (d *DiskController) readSector(mem *Memory) {
	if d.Sector >= d.SectorCount {
		return
	}

	if _, err := d.File.Seek(int64(d.Sector)*SectorSize, io.SeekStart); err != nil {
		panic(err)
	}

	buf := make([]byte, SectorSize)
	if _, err := io.ReadFull(d.File, buf); err != nil {
		panic(err)
	}

	for i := 0; i < SectorWords; i++ {
		word := uint16(buf[2*i])<<8 | uint16(buf[2*i+1])
		mem.Write(d.Address+uint16(i), word)
	}
}

func (d *DiskController) writeSector(mem *Memory) {
	if d.Sector >= d.SectorCount {
		return
	}

	if _, err := d.File.Seek(int64(d.Sector)*SectorSize, io.SeekStart); err != nil {
		panic(err)
	}

	buf := make([]byte, SectorSize)
	for i := 0; i < SectorWords; i++ {
		word := mem.Read(d.Address + uint16(i))
		buf[2*i] = byte(word >> 8)
		buf[2*i+1] = byte(word)
	}

	if _, err := d.File.Write(buf); err != nil {
		panic(err)
	}
}
