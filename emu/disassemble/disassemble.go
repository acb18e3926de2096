/*
 * DCPU16 - Disassembler
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

package disassemble

import (
	"fmt"

	op "github.com/0x10c/DCPU16/emu/cpu"
)

// Format the operand field v. Operands that take a next word pull it
// from words and advance the index.
func operand(context int, v uint16, words []uint16, index *int) string {
	next := func() uint16 {
		if *index < len(words) {
			w := words[*index]
			*index++
			return w
		}
		return 0
	}

	switch {
	case v <= 0x07:
		return op.RegNames[v]
	case v <= 0x0f:
		return "[" + op.RegNames[v-0x08] + "]"
	case v <= 0x17:
		return fmt.Sprintf("[%s+0x%04x]", op.RegNames[v-0x10], next())
	case v == 0x18:
		if context == op.ContextA {
			return "POP"
		}
		return "PUSH"
	case v == 0x19:
		return "PEEK"
	case v == 0x1a:
		return fmt.Sprintf("PICK %d", next())
	case v == 0x1b:
		return "SP"
	case v == 0x1c:
		return "PC"
	case v == 0x1d:
		return "EX"
	case v == 0x1e:
		return fmt.Sprintf("[0x%04x]", next())
	case v == 0x1f:
		return fmt.Sprintf("0x%04x", next())
	case v == 0x20:
		return "0xffff"
	default:
		return fmt.Sprintf("%d", v-0x21)
	}
}

// Disassemble the instruction at the head of words. Returns the text
// and the number of words consumed. Malformed words come back as a
// DAT line so memory dumps always render.
func Disassemble(words []uint16) (string, int) {
	if len(words) == 0 {
		return "", 0
	}
	word := words[0]
	opcode := word & 0x1f
	fieldB := (word >> 5) & 0x1f
	fieldA := (word >> 10) & 0x3f
	index := 1

	if opcode != 0 {
		name, ok := op.OpNames[int(opcode)]
		if !ok {
			return fmt.Sprintf("DAT 0x%04x", word), 1
		}
		// Operand a comes first in the word stream.
		textA := operand(op.ContextA, fieldA, words, &index)
		textB := operand(op.ContextB, fieldB, words, &index)
		return fmt.Sprintf("%s %s, %s", name, textB, textA), index
	}

	name, ok := op.SpecialOpNames[int(fieldB)]
	if !ok {
		return fmt.Sprintf("DAT 0x%04x", word), 1
	}
	textA := operand(op.ContextA, fieldA, words, &index)
	return fmt.Sprintf("%s %s", name, textA), index
}
