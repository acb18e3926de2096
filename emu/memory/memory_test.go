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
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestGetPutWord(t *testing.T) {
	Initialize()
	for i := uint32(0); i < 256; i++ {
		if err := PutWord(i, uint16(i^0x55aa)); err != nil {
			t.Fatalf("PutWord failed: %v", err)
		}
	}
	for i := uint32(0); i < 256; i++ {
		v, err := GetWord(i)
		if err != nil {
			t.Fatalf("GetWord failed: %v", err)
		}
		if v != uint16(i^0x55aa) {
			t.Errorf("GetWord not correct got: %04x expected: %04x", v, uint16(i^0x55aa))
		}
	}
}

func TestRangeCheck(t *testing.T) {
	Initialize()
	SetSize(0x100)
	if GetSize() != 0x100 {
		t.Errorf("GetSize not correct got: %d expected: %d", GetSize(), 0x100)
	}

	_, err := GetWord(0x100)
	var loc *InvalidMemoryLocation
	if !errors.As(err, &loc) {
		t.Fatalf("GetWord out of range returned %v", err)
	}
	if loc.Op != OpRead || loc.Addr != 0x100 {
		t.Errorf("wrong error detail: op %d addr %04x", loc.Op, loc.Addr)
	}

	err = PutWord(0x200, 1)
	if !errors.As(err, &loc) {
		t.Fatalf("PutWord out of range returned %v", err)
	}
	if loc.Op != OpWrite || loc.Addr != 0x200 {
		t.Errorf("wrong error detail: op %d addr %04x", loc.Op, loc.Addr)
	}
	SetSize(MemSize)
}

func TestDumpLoadRoundTrip(t *testing.T) {
	orders := []binary.ByteOrder{binary.BigEndian, binary.LittleEndian}
	for _, order := range orders {
		Initialize()
		for i := uint32(0); i < MemSize; i++ {
			_ = PutWord(i, uint16(i*3))
		}

		var image bytes.Buffer
		if err := Dump(&image, order); err != nil {
			t.Fatalf("Dump failed: %v", err)
		}
		if image.Len() != 2*MemSize {
			t.Fatalf("Dump length not correct got: %d expected: %d", image.Len(), 2*MemSize)
		}

		Initialize()
		if err := Load(bytes.NewReader(image.Bytes()), order); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		for i := uint32(0); i < MemSize; i++ {
			v, _ := GetWord(i)
			if v != uint16(i*3) {
				t.Fatalf("round trip not correct at %04x got: %04x expected: %04x", i, v, uint16(i*3))
			}
		}
	}
}

func TestLoadByteOrder(t *testing.T) {
	Initialize()
	image := []byte{0x8c, 0x01}
	if err := Load(bytes.NewReader(image), binary.BigEndian); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	v, _ := GetWord(0)
	if v != 0x8c01 {
		t.Errorf("big endian word not correct got: %04x expected: 8c01", v)
	}

	if err := Load(bytes.NewReader(image), binary.LittleEndian); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	v, _ = GetWord(0)
	if v != 0x018c {
		t.Errorf("little endian word not correct got: %04x expected: 018c", v)
	}
}

func TestLoadZeroTail(t *testing.T) {
	Initialize()
	for i := uint32(0); i < MemSize; i++ {
		_ = PutWord(i, 0xffff)
	}
	image := []byte{0x12, 0x34, 0x56, 0x78}
	if err := Load(bytes.NewReader(image), binary.BigEndian); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	v, _ := GetWord(1)
	if v != 0x5678 {
		t.Errorf("loaded word not correct got: %04x expected: 5678", v)
	}
	v, _ = GetWord(2)
	if v != 0 {
		t.Errorf("tail not zeroed got: %04x", v)
	}
}

func TestLoadErrors(t *testing.T) {
	Initialize()
	if err := Load(bytes.NewReader([]byte{1}), binary.BigEndian); !errors.Is(err, ErrBadMemoryFile) {
		t.Errorf("odd image returned %v", err)
	}

	big := make([]byte, 2*MemSize+2)
	var tooBig *MemoryFileTooBig
	if err := Load(bytes.NewReader(big), binary.BigEndian); !errors.As(err, &tooBig) {
		t.Errorf("oversize image returned %v", err)
	}

	var missing *MissingMemoryFile
	if err := LoadFile("no-such-image.bin", binary.BigEndian); !errors.As(err, &missing) {
		t.Errorf("missing file returned %v", err)
	}
}
