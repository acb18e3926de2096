package memory

/*
 * DCPU16 - Memory error values
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

// Memory operation that failed a range check.
const (
	OpRead = iota
	OpWrite
)

type InvalidMemoryLocation struct {
	Op   int
	Addr uint32
}

func (e *InvalidMemoryLocation) Error() string {
	op := "read"
	if e.Op == OpWrite {
		op = "write"
	}
	return fmt.Sprintf("invalid memory %s at 0x%04x", op, e.Addr)
}

type MemoryFileTooBig struct {
	Size int // Capacity in words the image exceeded.
}

func (e *MemoryFileTooBig) Error() string {
	return fmt.Sprintf("memory image exceeds %d words", e.Size)
}

type MissingMemoryFile struct {
	Name string
}

func (e *MissingMemoryFile) Error() string {
	return "unable to open memory image: " + e.Name
}

type UnwritableMemoryFile struct {
	Name string
}

func (e *UnwritableMemoryFile) Error() string {
	return "unable to create memory image: " + e.Name
}

var ErrBadMemoryFile = errors.New("memory image is not a whole number of words")
