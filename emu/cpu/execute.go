package cpu

/*
 * DCPU16 - Instruction execution
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

import (
	ch "github.com/0x10c/DCPU16/emu/sys_channel"
)

func (cpu *cpuState) execute(inst *Instruction) error {
	if inst.Special {
		return cpu.executeSpecial(inst)
	}
	return cpu.executeBinary(inst)
}

// Load both operands, a first.
func (cpu *cpuState) loadPair(inst *Instruction) (uint16, uint16, error) {
	a, err := cpu.load(&inst.A)
	if err != nil {
		return 0, 0, err
	}
	b, err := cpu.load(&inst.B)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// Execute a binary instruction. Operand a is evaluated before b for
// both loads and stores; the result lands in b unless noted.
func (cpu *cpuState) executeBinary(inst *Instruction) error {
	var a, b, result uint16
	var err error

	// The IFx family only loads; everything else stores a result.
	predicate := func(test bool) {
		if !test {
			cpu.skip = true
			cpu.tick(1)
		}
	}

	switch inst.Opcode {
	case OpSET:
		if a, err = cpu.load(&inst.A); err != nil {
			return err
		}
		result = a

	case OpADD:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		sum := uint32(b) + uint32(a)
		result = uint16(sum)
		if sum > 0xffff {
			cpu.ex = 1
		} else {
			cpu.ex = 0
		}

	case OpSUB:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		result = b - a
		if b < a {
			cpu.ex = 0xffff
		} else {
			cpu.ex = 0
		}

	case OpMUL:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		product := uint32(b) * uint32(a)
		result = uint16(product)
		cpu.ex = uint16(product >> 16)

	case OpMLI:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		product := int32(int16(b)) * int32(int16(a))
		result = uint16(product)

	case OpDIV:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		if a == 0 {
			result = 0
			cpu.ex = 0
		} else {
			result = b / a
			cpu.ex = uint16((uint32(b) << 16) / uint32(a))
		}

	case OpDVI:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		if a == 0 {
			result = 0
		} else {
			// Go division truncates toward zero, as required.
			result = uint16(int32(int16(b)) / int32(int16(a)))
		}

	case OpMOD:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		if a == 0 {
			result = 0
		} else {
			result = b % a
		}

	case OpMDI:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		if a == 0 {
			result = 0
		} else {
			result = uint16(int32(int16(b)) % int32(int16(a)))
		}

	case OpAND:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		result = b & a

	case OpBOR:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		result = b | a

	case OpXOR:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		result = b ^ a

	case OpSHR:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		result = uint16(uint32(b) >> a)
		cpu.ex = uint16((uint32(b) << 16) >> a)

	case OpASR:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		// Arithmetic shift: sign extend b before shifting.
		result = uint16(int32(int16(b)) >> a)
		cpu.ex = uint16((int32(int16(b)) << 16) >> a)

	case OpSHL:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		shifted := uint32(b) << a
		result = uint16(shifted)
		cpu.ex = uint16(shifted >> 16)

	case OpIFB:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		predicate(b&a != 0)

	case OpIFC:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		predicate(b&a == 0)

	case OpIFE:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		predicate(b == a)

	case OpIFN:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		predicate(b != a)

	case OpIFG:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		predicate(b > a)

	case OpIFA:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		predicate(int16(b) > int16(a))

	case OpIFL:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		predicate(b < a)

	case OpIFU:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		predicate(int16(b) < int16(a))

	case OpADX:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		sum := uint32(b) + uint32(a) + uint32(cpu.ex)
		result = uint16(sum)
		if sum > 0xffff {
			cpu.ex = 1
		} else {
			cpu.ex = 0
		}

	case OpSBX:
		if a, b, err = cpu.loadPair(inst); err != nil {
			return err
		}
		diff := uint32(b) - uint32(a) + uint32(cpu.ex)
		result = uint16(diff)
		if diff > 0xffff {
			cpu.ex = 1
		} else {
			cpu.ex = 0
		}

	case OpSTI:
		if a, err = cpu.load(&inst.A); err != nil {
			return err
		}
		result = a

	case OpSTD:
		if a, err = cpu.load(&inst.A); err != nil {
			return err
		}
		result = a

	default:
		return &MalformedInstruction{}
	}

	switch inst.Opcode {
	case OpIFB, OpIFC, OpIFE, OpIFN, OpIFG, OpIFA, OpIFL, OpIFU:
		// No store.
	default:
		if err = cpu.store(&inst.B, result); err != nil {
			return err
		}
	}

	switch inst.Opcode {
	case OpSTI:
		cpu.regs[RegI]++
		cpu.regs[RegJ]++
	case OpSTD:
		cpu.regs[RegI]--
		cpu.regs[RegJ]--
	}

	cpu.tick(opCycles[inst.Opcode])
	return nil
}

// Execute a special instruction. The interrupt and hardware group
// belongs to the controller side of the machine.
func (cpu *cpuState) executeSpecial(inst *Instruction) error {
	switch inst.Opcode {
	case OpJSR:
		loc, err := cpu.load(&inst.A)
		if err != nil {
			return err
		}
		if err = cpu.push(cpu.pc); err != nil {
			return err
		}
		cpu.pc = loc

	case OpINT:
		msg, err := cpu.load(&inst.A)
		if err != nil {
			return err
		}
		if err = cpu.interrupt(msg); err != nil {
			return err
		}

	case OpIAG:
		if err := cpu.store(&inst.A, cpu.ia); err != nil {
			return err
		}

	case OpIAS:
		value, err := cpu.load(&inst.A)
		if err != nil {
			return err
		}
		cpu.ia = value

	case OpRFI:
		// The operand is ignored but still evaluated so any next word
		// it consumes leaves PC aligned.
		if _, err := cpu.load(&inst.A); err != nil {
			return err
		}
		cpu.queueing = false
		value, err := cpu.pop()
		if err != nil {
			return err
		}
		cpu.regs[RegA] = value
		if value, err = cpu.pop(); err != nil {
			return err
		}
		cpu.pc = value

	case OpIAQ:
		value, err := cpu.load(&inst.A)
		if err != nil {
			return err
		}
		cpu.queueing = value != 0

	case OpHWN:
		if err := cpu.store(&inst.A, uint16(ch.Count())); err != nil {
			return err
		}

	case OpHWQ:
		index, err := cpu.load(&inst.A)
		if err != nil {
			return err
		}
		// Out of range devices report as all zeros.
		info, _ := ch.Info(int(index))
		cpu.regs[RegA] = uint16(info.ID)
		cpu.regs[RegB] = uint16(info.ID >> 16)
		cpu.regs[RegC] = info.Version
		cpu.regs[RegX] = uint16(info.Mfr)
		cpu.regs[RegY] = uint16(info.Mfr >> 16)

	case OpHWI:
		index, err := cpu.load(&inst.A)
		if err != nil {
			return err
		}
		cpu.tick(specialCycles[OpHWI])
		// Rendezvous: the device runs with full access to registers
		// and memory while this thread is parked.
		ch.InterruptDevice(int(index), Proc{})
		return nil

	default:
		return &MalformedInstruction{}
	}

	cpu.tick(specialCycles[inst.Opcode])
	return nil
}
