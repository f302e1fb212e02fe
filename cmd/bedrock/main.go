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

package main

import (
	"bufio"
	"encoding/gob"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/bedrock-vm/bedrock/pkg/assembler"
	"github.com/bedrock-vm/bedrock/pkg/debugger"
	"github.com/bedrock-vm/bedrock/pkg/machine"
)

var helpvar bool
var debugvar bool
var shouldexit bool

const usage = "bedrock [-debug] <disk0|--> <disk1|-->"

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(&debugvar, "debug", false, "Runs the machine in a debug CLI")
	flag.Parse()
}

// symtablePath derives the sidecar debug symbol table's path from a disk
// image's path by swapping its extension for .bdb, following the .bdb
// convention bedrock-asm uses when writing one out.
func symtablePath(diskPath string) string {
	ext := filepath.Ext(diskPath)
	return filepath.Dir(diskPath) + "/" + strings.TrimSuffix(filepath.Base(diskPath), ext) + ".bdb"
}

func bedrock() int {
	if helpvar {
		fmt.Println(usage)
		return 0
	}

	args := flag.Args()

	if len(args) != 2 {
		log.Println(usage)
		return 1
	}

	diskPath := func(arg string) string {
		if arg == "--" {
			return ""
		}
		return arg
	}

	disk0Path := diskPath(args[0])
	disk1Path := diskPath(args[1])

	disk0, err := machine.AttachDisk(disk0Path)
	if err != nil {
		log.Println(err)
		return 1
	}
	defer disk0.Close()

	disk1, err := machine.AttachDisk(disk1Path)
	if err != nil {
		log.Println(err)
		return 1
	}
	defer disk1.Close()

	var mc machine.Machine
	mc.State.Disk0 = disk0
	mc.State.Disk1 = disk1

	var dh machine.DeviceHandler
	dh.Keyboard = bufio.NewReader(os.Stdin)
	dh.Display = bufio.NewWriter(os.Stdout)
	mc.Devices = &dh

	if debugvar {
		var dbg debugger.Debugger
		dbg.HandleBreak = handleBreak
		dbg.HandleRead = handleRead
		dbg.HandleWrite = handleWrite
		mc.Debugger = &dbg

		if disk0Path != "" {
			if symfile, err := os.Open(symtablePath(disk0Path)); err == nil {
				var symtable assembler.SymTable

				if err := gob.NewDecoder(symfile).Decode(&symtable); err == nil {
					dbg.SymTable = &symtable
				} else {
					log.Println("Error loading symbol file")
					log.Println(err)
				}

				symfile.Close()
			}

			if dbg.SymTable != nil && dbg.SymTable.Source != "" {
				if file, err := os.Open(dbg.SymTable.Source); err == nil {
					dbg.Source = file
					defer file.Close()
				} else {
					log.Println("Error loading source file")
					log.Println(err)
				}
			}
		}

		c := make(chan os.Signal, 1)
		defer close(c)

		signal.Notify(c, os.Interrupt)
		go func() {
			for range c {
				fmt.Println()
				dbg.Break = true
			}
		}()
	}

	enterRawTerm()
	defer exitRawTerm()

	if debugvar {
		debugREPL(mc.Debugger.(*debugger.Debugger), &mc)
	}

	for !shouldexit && !mc.State.Halt {
		mc.Step()
	}

	return 0
}

func main() {
	exitCode := 0

	func() {
		defer func() {
			if err := recover(); err != nil {
				log.Println("fatal:", err)
				exitCode = 1
			}
		}()

		exitCode = bedrock()
	}()

	os.Exit(exitCode)
}
