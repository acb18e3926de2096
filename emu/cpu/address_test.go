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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x10c/DCPU16/emu/memory"
)

func resetState(t *testing.T) {
	t.Helper()
	memory.Initialize()
	InitializeCPU()
}

func TestRegisterModes(t *testing.T) {
	resetState(t)
	sysCPU.regs[RegX] = 0x1000
	require.NoError(t, memory.PutWord(0x1000, 0xbeef))

	direct := AddressMode{Mode: ModeRegisterDirect, Reg: RegX}
	v, err := sysCPU.load(&direct)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1000), v)

	indirect := AddressMode{Mode: ModeRegisterIndirect, Reg: RegX}
	v, err = sysCPU.load(&indirect)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xbeef), v)

	require.NoError(t, sysCPU.store(&indirect, 0x1234))
	v, _ = memory.GetWord(0x1000)
	assert.Equal(t, uint16(0x1234), v)
}

func TestRegisterIndirectOffsetCache(t *testing.T) {
	resetState(t)
	sysCPU.regs[RegB] = 0x0200
	sysCPU.pc = 0x10
	require.NoError(t, memory.PutWord(0x10, 0x0005)) // offset word
	require.NoError(t, memory.PutWord(0x0205, 0x4444))

	mode := AddressMode{Mode: ModeRegisterIndirectOffset, Reg: RegB}
	v, err := sysCPU.load(&mode)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x4444), v)
	assert.Equal(t, uint16(0x11), sysCPU.pc)

	// Store replays the cached offset without consuming another word.
	require.NoError(t, sysCPU.store(&mode, 0x5555))
	assert.Equal(t, uint16(0x11), sysCPU.pc)
	v, _ = memory.GetWord(0x0205)
	assert.Equal(t, uint16(0x5555), v)
}

func TestPushPopSlots(t *testing.T) {
	resetState(t)

	// First push from SP=0 wraps to the top of memory.
	push := AddressMode{Mode: ModePush}
	require.NoError(t, sysCPU.store(&push, 0xaaaa))
	assert.Equal(t, uint16(0xffff), sysCPU.sp)

	// Push moves SP once even when loaded and stored.
	push2 := AddressMode{Mode: ModePush}
	_, err := sysCPU.load(&push2)
	require.NoError(t, err)
	require.NoError(t, sysCPU.store(&push2, 0xbbbb))
	assert.Equal(t, uint16(0xfffe), sysCPU.sp)

	pop := AddressMode{Mode: ModePop}
	v, err := sysCPU.load(&pop)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xbbbb), v)
	assert.Equal(t, uint16(0xffff), sysCPU.sp)

	pop2 := AddressMode{Mode: ModePop}
	v, err = sysCPU.load(&pop2)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xaaaa), v)
	assert.Equal(t, uint16(0), sysCPU.sp)
}

func TestPopEmptyStack(t *testing.T) {
	resetState(t)
	pop := AddressMode{Mode: ModePop}
	_, err := sysCPU.load(&pop)
	assert.ErrorIs(t, err, ErrStackUnderflow)
}

func TestPushFullStack(t *testing.T) {
	resetState(t)
	// Rebase the stack one word from full; the second push overflows
	// with SP back at zero.
	sysCPU.setSP(1)
	push := AddressMode{Mode: ModePush}
	require.NoError(t, sysCPU.store(&push, 1))
	assert.Equal(t, uint16(0), sysCPU.sp)

	push2 := AddressMode{Mode: ModePush}
	err := sysCPU.store(&push2, 2)
	assert.ErrorIs(t, err, ErrStackOverflow)
}

func TestPeekPick(t *testing.T) {
	resetState(t)
	sysCPU.setSP(0xfff0)
	require.NoError(t, memory.PutWord(0xfff0, 0x0101))
	require.NoError(t, memory.PutWord(0xfff3, 0x0303))

	peek := AddressMode{Mode: ModePeek}
	v, err := sysCPU.load(&peek)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0101), v)

	sysCPU.pc = 0x20
	require.NoError(t, memory.PutWord(0x20, 3))
	pick := AddressMode{Mode: ModePick}
	v, err = sysCPU.load(&pick)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0303), v)
	assert.Equal(t, uint16(0x21), sysCPU.pc)
}

func TestSpecialRegisterModes(t *testing.T) {
	resetState(t)
	sysCPU.pc = 0x42
	sysCPU.setSP(0x8000)
	sysCPU.ex = 0x0f0f

	pc := AddressMode{Mode: ModePC}
	v, _ := sysCPU.load(&pc)
	assert.Equal(t, uint16(0x42), v)

	sp := AddressMode{Mode: ModeSP}
	v, _ = sysCPU.load(&sp)
	assert.Equal(t, uint16(0x8000), v)

	ex := AddressMode{Mode: ModeEX}
	v, _ = sysCPU.load(&ex)
	assert.Equal(t, uint16(0x0f0f), v)

	require.NoError(t, sysCPU.store(&ex, 1))
	assert.Equal(t, uint16(1), sysCPU.ex)
}

func TestDirectConsumesWordOnDiscardedStore(t *testing.T) {
	resetState(t)
	sysCPU.pc = 0x30
	require.NoError(t, memory.PutWord(0x30, 0x7777))

	direct := AddressMode{Mode: ModeDirect}
	require.NoError(t, sysCPU.store(&direct, 0x1234))
	// The literal word is consumed but nothing is written.
	assert.Equal(t, uint16(0x31), sysCPU.pc)
	v, _ := memory.GetWord(0x30)
	assert.Equal(t, uint16(0x7777), v)
}

func TestFastDirect(t *testing.T) {
	resetState(t)
	fast := AddressMode{Mode: ModeFastDirect, Word: 0xffff}
	v, err := sysCPU.load(&fast)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xffff), v)
	// Store is silently discarded.
	require.NoError(t, sysCPU.store(&fast, 5))
	assert.Equal(t, uint16(0xffff), fast.Word)
}
