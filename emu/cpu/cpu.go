/*
   CPU: DCPU-16 instruction fetch and execute.

   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   RICHARD CORNWELL BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

package cpu

import (
	"github.com/0x10c/DCPU16/emu/memory"
	ch "github.com/0x10c/DCPU16/emu/sys_channel"
)

/*
   The DCPU-16 is a 16 bit processor with eight general registers
   (A, B, C, X, Y, Z, I, J), a program counter, a downward growing
   stack pointer, an overflow register EX and an interrupt address IA.
   All values are 16 bit words and all arithmetic wraps modulo 2^16.

   An instruction word packs a 5 bit opcode with two operand fields:

     +---+---+---+---+---+---+---+---+---+---+---+---+---+---+---+---+
     |        a (6 bits)     |     b (5 bits)    |  opcode (5 bits)  |
     +---+---+---+---+---+---+---+---+---+---+---+---+---+---+---+---+

   A zero opcode selects the special instructions, with the operation
   in the b field. Operand a is always evaluated before operand b.
*/

// Register numbers match the operand encoding.
const (
	RegA = iota
	RegB
	RegC
	RegX
	RegY
	RegZ
	RegI
	RegJ
)

// Holds state of CPU.
type cpuState struct {
	regs     [8]uint16 // General registers.
	pc       uint16    // Program counter.
	sp       uint16    // Stack pointer, grows downward from zero.
	ex       uint16    // Overflow/carry register.
	ia       uint16    // Interrupt handler address.
	skip     bool      // Next instruction is decoded but not executed.
	queueing bool      // Interrupt delivery deferred to the queue.
	depth    uint32    // Words on the stack, tracked for fault checks.

	cycles     uint64 // Total cycles since initialize.
	stepCycles int    // Cycles consumed by the current step.
}

var sysCPU cpuState

// Initialize CPU to power on state.
func InitializeCPU() {
	for i := range sysCPU.regs {
		sysCPU.regs[i] = 0
	}
	sysCPU.pc = 0
	sysCPU.sp = 0
	sysCPU.ex = 0
	sysCPU.ia = 0
	sysCPU.skip = false
	sysCPU.queueing = false
	sysCPU.depth = 0
	sysCPU.cycles = 0
	sysCPU.stepCycles = 0
}

// Charge cycles to the current step.
func (cpu *cpuState) tick(n int) {
	cpu.stepCycles += n
	cpu.cycles += uint64(n)
}

func (cpu *cpuState) memSize() uint32 {
	return memory.GetSize()
}

func (cpu *cpuState) readMem(addr uint16) (uint16, error) {
	return memory.GetWord(uint32(addr))
}

func (cpu *cpuState) writeMem(addr uint16, value uint16) error {
	return memory.PutWord(uint32(addr), value)
}

// Consume the word at PC. Instruction fetch is covered by the opcode
// cycle tables, so this does not tick.
func (cpu *cpuState) fetchWord() (uint16, error) {
	word, err := cpu.readMem(cpu.pc)
	if err != nil {
		return 0, err
	}
	cpu.pc++
	return word, nil
}

// Consume an operand's next word. Costs one cycle.
func (cpu *cpuState) nextWord() (uint16, error) {
	cpu.tick(1)
	return cpu.fetchWord()
}

// Claim the next stack slot downward. SP starts at zero and the first
// push wraps to the top of memory; overflow fires once the stack has
// grown over the whole address space and SP is back at zero.
func (cpu *cpuState) stackPushSlot() (uint16, error) {
	if cpu.depth >= cpu.memSize() {
		return 0, ErrStackOverflow
	}
	cpu.sp--
	cpu.depth++
	return cpu.sp, nil
}

// Release the current stack slot. Underflow fires on a pop with
// nothing on the stack, SP back at its starting position.
func (cpu *cpuState) stackPopSlot() (uint16, error) {
	if cpu.depth == 0 {
		return 0, ErrStackUnderflow
	}
	loc := cpu.sp
	cpu.sp++
	cpu.depth--
	return loc, nil
}

// An explicit SP write repositions the stack; the tracked depth is
// rebased as if it grew down from zero.
func (cpu *cpuState) setSP(value uint16) {
	cpu.sp = value
	cpu.depth = uint32(0x10000-uint32(value)) & 0xffff
}

// Push a word for JSR and interrupt entry.
func (cpu *cpuState) push(value uint16) error {
	loc, err := cpu.stackPushSlot()
	if err != nil {
		return err
	}
	return cpu.writeMem(loc, value)
}

// Pop a word for RFI.
func (cpu *cpuState) pop() (uint16, error) {
	loc, err := cpu.stackPopSlot()
	if err != nil {
		return 0, err
	}
	return cpu.readMem(loc)
}

// Deliver an interrupt with the given message: push PC and A, vector
// through IA and turn queueing on. With IA zero the interrupt is
// discarded.
func (cpu *cpuState) deliverInterrupt(msg uint16) error {
	if cpu.ia == 0 {
		return nil
	}
	if err := cpu.push(cpu.pc); err != nil {
		return err
	}
	if err := cpu.push(cpu.regs[RegA]); err != nil {
		return err
	}
	cpu.pc = cpu.ia
	cpu.regs[RegA] = msg
	cpu.queueing = true
	return nil
}

// Raise an interrupt from inside the machine (INT or a device). While
// queueing is on the message is held in the controller FIFO.
func (cpu *cpuState) interrupt(msg uint16) error {
	if cpu.queueing {
		ch.PostInterrupt(msg)
		return nil
	}
	return cpu.deliverInterrupt(msg)
}

// Execute one instruction or deliver one pending interrupt. Returns
// the cycles consumed. Errors are fatal to the current instruction;
// the host decides whether to halt or resume.
func CycleCPU() (int, error) {
	sysCPU.stepCycles = 0

	if ch.QueueOverflow() {
		return 0, ErrInterruptQueueFull
	}

	// Drain at most one queued interrupt between instructions. Never
	// mid skip chain: a skipped conditional must finish skipping first.
	if !sysCPU.queueing && !sysCPU.skip {
		if msg, ok := ch.TakeInterrupt(); ok {
			if sysCPU.ia != 0 {
				sysCPU.tick(4)
			}
			err := sysCPU.deliverInterrupt(msg)
			return sysCPU.stepCycles, err
		}
	}

	err := sysCPU.step()
	return sysCPU.stepCycles, err
}

// Fetch, decode and execute one instruction.
func (cpu *cpuState) step() error {
	word, err := cpu.fetchWord()
	if err != nil {
		return err
	}
	inst, err := Decode(word)
	if err != nil {
		return err
	}

	if cpu.skip {
		// Decoded but not executed: advance past the operand words.
		cpu.pc += uint16(inst.Size() - 1)
		cpu.tick(1)
		if inst.Conditional() {
			// A conditional in the shadow of a failed test keeps the
			// chain skipping, at one extra cycle.
			cpu.tick(1)
		} else {
			cpu.skip = false
		}
		return nil
	}

	return cpu.execute(&inst)
}

// Total cycles since initialize.
func Cycles() uint64 {
	return sysCPU.cycles
}

// Register access for the console and tests.
func Register(reg int) uint16 {
	return sysCPU.regs[reg&7]
}

func SetRegister(reg int, value uint16) {
	sysCPU.regs[reg&7] = value
}

func PC() uint16         { return sysCPU.pc }
func SetPC(value uint16) { sysCPU.pc = value }
func SP() uint16         { return sysCPU.sp }
func SetSP(value uint16) { sysCPU.setSP(value) }
func EX() uint16         { return sysCPU.ex }
func SetEX(value uint16) { sysCPU.ex = value }
func IA() uint16         { return sysCPU.ia }
func Skipping() bool     { return sysCPU.skip }

// Proc is the register view handed to a device during the interrupt
// rendezvous. The CPU thread is parked until the device responds, so
// unsynchronized access is safe.
type Proc struct{}

func (Proc) Register(reg int) uint16 {
	return sysCPU.regs[reg&7]
}

func (Proc) SetRegister(reg int, value uint16) {
	sysCPU.regs[reg&7] = value
}

func (Proc) Tick(cycles int) {
	sysCPU.tick(cycles)
}
