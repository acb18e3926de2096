package cpu

/*
 * DCPU16 - Processor error values
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
	"errors"
	"fmt"
)

// Word whose opcode bits match no instruction.
type MalformedInstruction struct {
	Word uint16
}

func (e *MalformedInstruction) Error() string {
	return fmt.Sprintf("malformed instruction 0x%04x", e.Word)
}

var (
	// PUSH when the stack already covers the whole address space, SP
	// back at zero. The first push from SP=0 is not an overflow.
	ErrStackOverflow = errors.New("stack overflow")
	// POP with nothing on the stack, SP at its starting position.
	ErrStackUnderflow = errors.New("stack underflow")
	// More than sys_channel.MaxQueue interrupts held while queueing was on.
	ErrInterruptQueueFull = errors.New("interrupt queue overflow")
)
