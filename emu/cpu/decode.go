package cpu

/*
 * DCPU16 - Instruction decoder
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

// Operand context. The 6 bit field decodes differently for the A and B
// positions: 0x18 is Pop for A and Push for B, and the fast literals
// 0x20..0x3f only exist in the A position.
const (
	ContextA = iota
	ContextB
)

// A decoded instruction. Binary instructions carry both operands,
// special (unary) instructions only A.
type Instruction struct {
	Special bool
	Opcode  int
	B       AddressMode
	A       AddressMode
}

// Number of words the instruction occupies: the opcode word plus one
// per operand that consumes a next word.
func (inst *Instruction) Size() int {
	size := 1
	if !inst.Special && inst.B.usesNextWord() {
		size++
	}
	if inst.A.usesNextWord() {
		size++
	}
	return size
}

// True for the IFx family, which chains conditional skips.
func (inst *Instruction) Conditional() bool {
	return !inst.Special && inst.Opcode >= OpIFB && inst.Opcode <= OpIFU
}

// Decode a 6 bit operand field. Total: every field value maps to a
// mode in its context.
func decodeAddress(context int, v uint16) AddressMode {
	switch {
	case v <= 0x07:
		return AddressMode{Mode: ModeRegisterDirect, Reg: int(v)}
	case v <= 0x0f:
		return AddressMode{Mode: ModeRegisterIndirect, Reg: int(v - 0x08)}
	case v <= 0x17:
		return AddressMode{Mode: ModeRegisterIndirectOffset, Reg: int(v - 0x10)}
	case v == 0x18:
		if context == ContextA {
			return AddressMode{Mode: ModePop}
		}
		return AddressMode{Mode: ModePush}
	case v == 0x19:
		return AddressMode{Mode: ModePeek}
	case v == 0x1a:
		return AddressMode{Mode: ModePick}
	case v == 0x1b:
		return AddressMode{Mode: ModeSP}
	case v == 0x1c:
		return AddressMode{Mode: ModePC}
	case v == 0x1d:
		return AddressMode{Mode: ModeEX}
	case v == 0x1e:
		return AddressMode{Mode: ModeIndirect}
	case v == 0x1f:
		return AddressMode{Mode: ModeDirect}
	case v == 0x20:
		return AddressMode{Mode: ModeFastDirect, Word: 0xffff}
	default:
		// 0x21..0x3f encode 0..30.
		return AddressMode{Mode: ModeFastDirect, Word: v - 0x21}
	}
}

// Decode one instruction word. The operand next words are not fetched
// here; they are consumed lazily during evaluation.
func Decode(word uint16) (Instruction, error) {
	opcode := int(word & 0x1f)
	fieldB := (word >> 5) & 0x1f
	fieldA := (word >> 10) & 0x3f

	if opcode != 0 {
		if _, ok := opCycles[opcode]; !ok {
			return Instruction{}, &MalformedInstruction{Word: word}
		}
		return Instruction{
			Opcode: opcode,
			B:      decodeAddress(ContextB, fieldB),
			A:      decodeAddress(ContextA, fieldA),
		}, nil
	}

	special := int(fieldB)
	if _, ok := specialCycles[special]; !ok {
		return Instruction{}, &MalformedInstruction{Word: word}
	}
	return Instruction{
		Special: true,
		Opcode:  special,
		A:       decodeAddress(ContextA, fieldA),
	}, nil
}
