package cpu

/*
 * DCPU16 - Operand addressing modes
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

// Addressing mode tags. Push only decodes in B context, Pop and
// FastDirect only in A context.
const (
	ModeRegisterDirect = iota
	ModeRegisterIndirect
	ModeRegisterIndirectOffset
	ModePush
	ModePop
	ModePeek
	ModePick
	ModeSP
	ModePC
	ModeEX
	ModeIndirect
	ModeDirect
	ModeFastDirect
)

// One operand of a decoded instruction. An operand is built fresh for
// every instruction, so the caches have instruction scope: the next
// program word and the stack slot are each consumed exactly once even
// when the operand is both loaded and stored.
type AddressMode struct {
	Mode int
	Reg  int    // Register number for the register modes.
	Word uint16 // Literal for FastDirect.

	next    uint16 // Cached next program word.
	hasNext bool
	loc     uint16 // Cached stack slot for Push/Pop.
	hasLoc  bool
}

// True when the operand consumes the word at PC.
func (a *AddressMode) usesNextWord() bool {
	switch a.Mode {
	case ModeRegisterIndirectOffset, ModePick, ModeIndirect, ModeDirect:
		return true
	}
	return false
}

// Fetch the operand's next word on first use, then replay the cache.
func (cpu *cpuState) operandNext(a *AddressMode) (uint16, error) {
	if !a.hasNext {
		word, err := cpu.nextWord()
		if err != nil {
			return 0, err
		}
		a.next = word
		a.hasNext = true
	}
	return a.next, nil
}

// Resolve the stack slot for a Push operand. SP moves once per
// instruction no matter how often the operand is touched.
func (cpu *cpuState) pushLoc(a *AddressMode) (uint16, error) {
	if !a.hasLoc {
		loc, err := cpu.stackPushSlot()
		if err != nil {
			return 0, err
		}
		a.loc = loc
		a.hasLoc = true
	}
	return a.loc, nil
}

// Resolve the stack slot for a Pop operand.
func (cpu *cpuState) popLoc(a *AddressMode) (uint16, error) {
	if !a.hasLoc {
		loc, err := cpu.stackPopSlot()
		if err != nil {
			return 0, err
		}
		a.loc = loc
		a.hasLoc = true
	}
	return a.loc, nil
}

// Load the operand's value.
func (cpu *cpuState) load(a *AddressMode) (uint16, error) {
	switch a.Mode {
	case ModeRegisterDirect:
		return cpu.regs[a.Reg], nil
	case ModeRegisterIndirect:
		return cpu.readMem(cpu.regs[a.Reg])
	case ModeRegisterIndirectOffset:
		offset, err := cpu.operandNext(a)
		if err != nil {
			return 0, err
		}
		return cpu.readMem(cpu.regs[a.Reg] + offset)
	case ModePush:
		loc, err := cpu.pushLoc(a)
		if err != nil {
			return 0, err
		}
		return cpu.readMem(loc)
	case ModePop:
		loc, err := cpu.popLoc(a)
		if err != nil {
			return 0, err
		}
		return cpu.readMem(loc)
	case ModePeek:
		return cpu.readMem(cpu.sp)
	case ModePick:
		offset, err := cpu.operandNext(a)
		if err != nil {
			return 0, err
		}
		return cpu.readMem(cpu.sp + offset)
	case ModeSP:
		return cpu.sp, nil
	case ModePC:
		return cpu.pc, nil
	case ModeEX:
		return cpu.ex, nil
	case ModeIndirect:
		addr, err := cpu.operandNext(a)
		if err != nil {
			return 0, err
		}
		return cpu.readMem(addr)
	case ModeDirect:
		return cpu.operandNext(a)
	case ModeFastDirect:
		return a.Word, nil
	}
	return 0, &MalformedInstruction{}
}

// Store a value through the operand. Stores to literals are silently
// discarded, though a Direct operand still consumes its program word so
// PC stays aligned with the instruction stream.
func (cpu *cpuState) store(a *AddressMode, value uint16) error {
	switch a.Mode {
	case ModeRegisterDirect:
		cpu.regs[a.Reg] = value
		return nil
	case ModeRegisterIndirect:
		return cpu.writeMem(cpu.regs[a.Reg], value)
	case ModeRegisterIndirectOffset:
		offset, err := cpu.operandNext(a)
		if err != nil {
			return err
		}
		return cpu.writeMem(cpu.regs[a.Reg]+offset, value)
	case ModePush:
		loc, err := cpu.pushLoc(a)
		if err != nil {
			return err
		}
		return cpu.writeMem(loc, value)
	case ModePop:
		loc, err := cpu.popLoc(a)
		if err != nil {
			return err
		}
		return cpu.writeMem(loc, value)
	case ModePeek:
		return cpu.writeMem(cpu.sp, value)
	case ModePick:
		offset, err := cpu.operandNext(a)
		if err != nil {
			return err
		}
		return cpu.writeMem(cpu.sp+offset, value)
	case ModeSP:
		cpu.setSP(value)
		return nil
	case ModePC:
		cpu.pc = value
		return nil
	case ModeEX:
		cpu.ex = value
		return nil
	case ModeIndirect:
		addr, err := cpu.operandNext(a)
		if err != nil {
			return err
		}
		return cpu.writeMem(addr, value)
	case ModeDirect:
		_, err := cpu.operandNext(a)
		return err
	case ModeFastDirect:
		return nil
	}
	return &MalformedInstruction{}
}
