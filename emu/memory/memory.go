package memory

/*
 * DCPU16 - Low level memory
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
	"encoding/binary"
	"io"
	"os"
	"sync"
	"time"
)

// Full address space of the DCPU-16, in words.
const MemSize = 0x10000

type mem struct {
	mem        [MemSize]uint16
	size       uint32 // Declared size, words. May be under MemSize for tests.
	mu         sync.Mutex
	readDelay  time.Duration
	writeDelay time.Duration
}

var memory mem

// Reset memory to all zeros, full size, no access delay.
func Initialize() {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	for i := range memory.mem {
		memory.mem[i] = 0
	}
	memory.size = MemSize
	memory.readDelay = 0
	memory.writeDelay = 0
}

// Set declared size in words. Sub-sized memory is only used by test
// harnesses that exercise the range checks.
func SetSize(words int) {
	if words > MemSize || words < 0 {
		words = MemSize
	}
	memory.mu.Lock()
	memory.size = uint32(words)
	memory.mu.Unlock()
}

// Return declared size of memory in words.
func GetSize() uint32 {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	return memory.size
}

// Set simulated access delay per read and write.
func SetDelay(read, write time.Duration) {
	memory.mu.Lock()
	memory.readDelay = read
	memory.writeDelay = write
	memory.mu.Unlock()
}

// Get a word from memory.
func GetWord(addr uint32) (uint16, error) {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	if addr >= memory.size {
		return 0, &InvalidMemoryLocation{Op: OpRead, Addr: addr}
	}
	if memory.readDelay != 0 {
		time.Sleep(memory.readDelay)
	}
	return memory.mem[addr], nil
}

// Put a word to memory.
func PutWord(addr uint32, data uint16) error {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	if addr >= memory.size {
		return &InvalidMemoryLocation{Op: OpWrite, Addr: addr}
	}
	if memory.writeDelay != 0 {
		time.Sleep(memory.writeDelay)
	}
	memory.mem[addr] = data
	return nil
}

// Write every word to sink as two bytes in the given order.
func Dump(sink io.Writer, order binary.ByteOrder) error {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	buf := make([]byte, 2*memory.size)
	for i := uint32(0); i < memory.size; i++ {
		order.PutUint16(buf[2*i:], memory.mem[i])
	}
	_, err := sink.Write(buf)
	return err
}

// Dump memory image to the named file.
func DumpFile(filename string, order binary.ByteOrder) error {
	file, err := os.Create(filename)
	if err != nil {
		return &UnwritableMemoryFile{Name: filename}
	}
	defer file.Close()
	return Dump(file, order)
}

// Read bytes pairwise into words starting at address zero. The unfilled
// tail of memory is left zero.
func Load(source io.Reader, order binary.ByteOrder) error {
	contents, err := io.ReadAll(source)
	if err != nil {
		return err
	}
	if len(contents)%2 != 0 {
		return ErrBadMemoryFile
	}

	memory.mu.Lock()
	defer memory.mu.Unlock()
	words := uint32(len(contents) / 2)
	if words > memory.size {
		return &MemoryFileTooBig{Size: int(memory.size)}
	}
	for i := uint32(0); i < words; i++ {
		memory.mem[i] = order.Uint16(contents[2*i:])
	}
	for i := words; i < memory.size; i++ {
		memory.mem[i] = 0
	}
	return nil
}

// Load memory image from the named file.
func LoadFile(filename string, order binary.ByteOrder) error {
	file, err := os.Open(filename)
	if err != nil {
		return &MissingMemoryFile{Name: filename}
	}
	defer file.Close()
	return Load(file, order)
}
