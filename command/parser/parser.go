/*
 * DCPU16 - Operator command parser
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package parser

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/0x10c/DCPU16/emu/assemble"
	"github.com/0x10c/DCPU16/emu/core"
	"github.com/0x10c/DCPU16/emu/cpu"
	"github.com/0x10c/DCPU16/emu/disassemble"
	"github.com/0x10c/DCPU16/emu/master"
	"github.com/0x10c/DCPU16/emu/memory"
	ch "github.com/0x10c/DCPU16/emu/sys_channel"
	"github.com/0x10c/DCPU16/util/hex"
)

var commandNames = []string{
	"start", "stop", "registers", "examine", "deposit", "asm",
	"load", "dump", "devices", "key", "help", "quit",
}

// Complete a partial command for the line editor.
func CompleteCmd(line string) []string {
	var matches []string
	lower := strings.ToLower(line)
	for _, name := range commandNames {
		if strings.HasPrefix(name, lower) {
			matches = append(matches, name)
		}
	}
	return matches
}

func parseWord(text string) (uint16, error) {
	value, err := strconv.ParseUint(text, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("bad word %q", text)
	}
	return uint16(value), nil
}

func parseOrder(args []string) (binary.ByteOrder, error) {
	if len(args) == 0 {
		return binary.BigEndian, nil
	}
	switch strings.ToLower(args[0]) {
	case "big":
		return binary.BigEndian, nil
	case "little":
		return binary.LittleEndian, nil
	}
	return nil, fmt.Errorf("bad byte order %q", args[0])
}

// Process one console command. Returns true when the user asked to
// quit.
func ProcessCommand(line string, machine *core.Core) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	command := strings.ToLower(fields[0])
	args := fields[1:]

	switch {
	case command == "quit" || command == "exit":
		return true, nil

	case command == "help":
		fmt.Println("start stop registers examine <addr> [n] deposit <addr> <word>...")
		fmt.Println("asm <addr> <instruction>  load <file> [big|little]  dump <file> [big|little]")
		fmt.Println("devices  key <text>  quit")

	case command == "start":
		machine.Post(master.Packet{Msg: master.Start})

	case command == "stop":
		machine.Post(master.Packet{Msg: master.Stop})

	case command == "registers" || command == "r":
		fmt.Println(registerDump())

	case command == "examine" || command == "x":
		return false, examine(args)

	case command == "deposit":
		return false, deposit(args)

	case command == "asm":
		return false, assembleAt(args)

	case command == "load":
		if machine.Running() {
			return false, errors.New("stop the machine before loading")
		}
		if len(args) == 0 {
			return false, errors.New("load needs a file name")
		}
		order, err := parseOrder(args[1:])
		if err != nil {
			return false, err
		}
		return false, memory.LoadFile(args[0], order)

	case command == "dump":
		if len(args) == 0 {
			return false, errors.New("dump needs a file name")
		}
		order, err := parseOrder(args[1:])
		if err != nil {
			return false, err
		}
		return false, memory.DumpFile(args[0], order)

	case command == "devices":
		for i := 0; i < ch.Count(); i++ {
			info, _ := ch.Info(i)
			fmt.Printf("%2d: id %08x mfr %08x version %04x\n",
				i, info.ID, info.Mfr, info.Version)
		}

	case command == "key":
		text := strings.TrimPrefix(line, fields[0])
		for _, r := range strings.TrimSpace(text) {
			machine.Post(master.Packet{Msg: master.KeyPress, Data: uint16(r)})
		}

	default:
		return false, fmt.Errorf("unknown command %q", command)
	}
	return false, nil
}

func registerDump() string {
	var sb strings.Builder
	for reg, name := range cpu.RegNames {
		fmt.Fprintf(&sb, "%s=%04x ", name, cpu.Register(reg))
	}
	fmt.Fprintf(&sb, "\nPC=%04x SP=%04x EX=%04x IA=%04x cycles=%d",
		cpu.PC(), cpu.SP(), cpu.EX(), cpu.IA(), cpu.Cycles())
	return sb.String()
}

// examine <addr> [count]: hex words with disassembly.
func examine(args []string) error {
	if len(args) == 0 {
		return errors.New("examine needs an address")
	}
	addr, err := parseWord(args[0])
	if err != nil {
		return err
	}
	count := 8
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return fmt.Errorf("bad count %q", args[1])
		}
		count = n
	}

	words := make([]uint16, 0, count+2)
	for i := 0; i < count+2; i++ {
		w, err := memory.GetWord(uint32(addr) + uint32(i))
		if err != nil {
			break
		}
		words = append(words, w)
	}

	for used := 0; used < count && used < len(words); {
		text, size := disassemble.Disassemble(words[used:])
		if size == 0 {
			break
		}
		var sb strings.Builder
		hex.FormatWords(&sb, true, words[used:used+size])
		fmt.Printf("%04x: %-14s %s\n", addr+uint16(used), sb.String(), text)
		used += size
	}
	return nil
}

// deposit <addr> <word>...
func deposit(args []string) error {
	if len(args) < 2 {
		return errors.New("deposit needs an address and a value")
	}
	addr, err := parseWord(args[0])
	if err != nil {
		return err
	}
	for i, arg := range args[1:] {
		value, err := parseWord(arg)
		if err != nil {
			return err
		}
		if err = memory.PutWord(uint32(addr)+uint32(i), value); err != nil {
			return err
		}
	}
	return nil
}

// asm <addr> <instruction>: assemble one line into memory.
func assembleAt(args []string) error {
	if len(args) < 2 {
		return errors.New("asm needs an address and an instruction")
	}
	addr, err := parseWord(args[0])
	if err != nil {
		return err
	}
	words, err := assemble.Assemble(strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	for i, w := range words {
		if err = memory.PutWord(uint32(addr)+uint32(i), w); err != nil {
			return err
		}
	}
	return nil
}
