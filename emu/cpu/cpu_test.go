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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	D "github.com/0x10c/DCPU16/emu/device"
	"github.com/0x10c/DCPU16/emu/memory"
	ch "github.com/0x10c/DCPU16/emu/sys_channel"
)

// Load a program at address zero and reset the machine.
func loadProgram(t *testing.T, words ...uint16) {
	t.Helper()
	memory.Initialize()
	InitializeCPU()
	for i, w := range words {
		require.NoError(t, memory.PutWord(uint32(i), w))
	}
}

// Run one step, requiring success, and return the cycles consumed.
func step(t *testing.T) int {
	t.Helper()
	cycles, err := CycleCPU()
	require.NoError(t, err)
	return cycles
}

func TestSetFastLiteral(t *testing.T) {
	// SET A, 2 packs the literal into the instruction word.
	loadProgram(t, enc(OpSET, 0x00, 0x23))
	cycles := step(t)
	assert.Equal(t, uint16(2), Register(RegA))
	assert.Equal(t, uint16(1), PC())
	assert.Equal(t, 1, cycles)
}

func TestSetNextWordLiteral(t *testing.T) {
	// SET A, 0x1234 with the literal in the next word.
	loadProgram(t, enc(OpSET, 0x00, 0x1f), 0x1234)
	cycles := step(t)
	assert.Equal(t, uint16(0x1234), Register(RegA))
	assert.Equal(t, uint16(2), PC())
	assert.Equal(t, 2, cycles)
}

func TestAddOverflow(t *testing.T) {
	// ADD A, 0xffff with A=2 wraps and carries.
	loadProgram(t, enc(OpADD, 0x00, 0x1f), 0xffff)
	SetRegister(RegA, 2)
	cycles := step(t)
	assert.Equal(t, uint16(1), Register(RegA))
	assert.Equal(t, uint16(1), EX())
	assert.Equal(t, 3, cycles) // ADD 2 + next word 1.

	// Same sum with the -1 fast literal costs no fetch.
	loadProgram(t, enc(OpADD, 0x00, 0x20))
	SetRegister(RegA, 2)
	cycles = step(t)
	assert.Equal(t, uint16(1), Register(RegA))
	assert.Equal(t, uint16(1), EX())
	assert.Equal(t, 2, cycles)

	loadProgram(t, enc(OpADD, 0x00, 0x22))
	SetRegister(RegA, 3)
	step(t)
	assert.Equal(t, uint16(4), Register(RegA))
	assert.Equal(t, uint16(0), EX())
}

func TestSubUnderflow(t *testing.T) {
	loadProgram(t, enc(OpSUB, 0x00, 0x26))
	SetRegister(RegA, 3)
	step(t)
	assert.Equal(t, uint16(0xfffe), Register(RegA))
	assert.Equal(t, uint16(0xffff), EX())

	loadProgram(t, enc(OpSUB, 0x00, 0x24))
	SetRegister(RegA, 5)
	step(t)
	assert.Equal(t, uint16(2), Register(RegA))
	assert.Equal(t, uint16(0), EX())
}

func TestMulEx(t *testing.T) {
	loadProgram(t, enc(OpMUL, 0x00, 0x1f), 0x8000)
	SetRegister(RegA, 4)
	step(t)
	assert.Equal(t, uint16(0), Register(RegA))
	assert.Equal(t, uint16(2), EX())
}

func TestMliSigned(t *testing.T) {
	// -2 * 3 = -6.
	loadProgram(t, enc(OpMLI, 0x00, 0x24))
	SetRegister(RegA, 0xfffe)
	step(t)
	assert.Equal(t, uint16(0xfffa), Register(RegA))
}

func TestDivByZero(t *testing.T) {
	// DIV A, 0 with A=100 yields zero, no trap.
	loadProgram(t, enc(OpDIV, 0x00, 0x21))
	SetRegister(RegA, 100)
	step(t)
	assert.Equal(t, uint16(0), Register(RegA))
	assert.Equal(t, uint16(0), EX())
}

func TestDivFraction(t *testing.T) {
	// 1/2 = 0 with the fractional half in EX.
	loadProgram(t, enc(OpDIV, 0x00, 0x23))
	SetRegister(RegA, 1)
	step(t)
	assert.Equal(t, uint16(0), Register(RegA))
	assert.Equal(t, uint16(0x8000), EX())
}

func TestDviTruncation(t *testing.T) {
	// -7 / 2 truncates toward zero: -3.
	loadProgram(t, enc(OpDVI, 0x00, 0x23))
	SetRegister(RegA, 0xfff9)
	step(t)
	assert.Equal(t, uint16(0xfffd), Register(RegA))

	loadProgram(t, enc(OpDVI, 0x00, 0x21))
	SetRegister(RegA, 100)
	step(t)
	assert.Equal(t, uint16(0), Register(RegA))
}

func TestModMdi(t *testing.T) {
	loadProgram(t, enc(OpMOD, 0x00, 0x24))
	SetRegister(RegA, 7)
	step(t)
	assert.Equal(t, uint16(1), Register(RegA))

	// MDI -7 % 16 = -7.
	loadProgram(t, enc(OpMDI, 0x00, 0x1f), 16)
	SetRegister(RegA, 0xfff9)
	step(t)
	assert.Equal(t, uint16(0xfff9), Register(RegA))

	loadProgram(t, enc(OpMOD, 0x00, 0x21))
	SetRegister(RegA, 9)
	step(t)
	assert.Equal(t, uint16(0), Register(RegA))
}

func TestBitwise(t *testing.T) {
	loadProgram(t, enc(OpAND, 0x00, 0x1f), 0x0ff0)
	SetRegister(RegA, 0xff00)
	step(t)
	assert.Equal(t, uint16(0x0f00), Register(RegA))

	loadProgram(t, enc(OpBOR, 0x00, 0x1f), 0x0ff0)
	SetRegister(RegA, 0xff00)
	step(t)
	assert.Equal(t, uint16(0xfff0), Register(RegA))

	loadProgram(t, enc(OpXOR, 0x00, 0x1f), 0x0ff0)
	SetRegister(RegA, 0xff00)
	step(t)
	assert.Equal(t, uint16(0xf0f0), Register(RegA))
}

func TestShifts(t *testing.T) {
	// SHR shifts the dropped bits into EX.
	loadProgram(t, enc(OpSHR, 0x00, 0x22))
	SetRegister(RegA, 0x0001)
	step(t)
	assert.Equal(t, uint16(0), Register(RegA))
	assert.Equal(t, uint16(0x8000), EX())

	// ASR keeps the sign.
	loadProgram(t, enc(OpASR, 0x00, 0x25))
	SetRegister(RegA, 0x8000)
	step(t)
	assert.Equal(t, uint16(0xf800), Register(RegA))
	assert.Equal(t, uint16(0), EX())

	// SHL pushes the high bits into EX.
	loadProgram(t, enc(OpSHL, 0x00, 0x25))
	SetRegister(RegA, 0xffff)
	step(t)
	assert.Equal(t, uint16(0xfff0), Register(RegA))
	assert.Equal(t, uint16(0x000f), EX())
}

func TestConditionalTaken(t *testing.T) {
	// IFE A, 5 with A=5: next instruction executes.
	loadProgram(t,
		enc(OpIFE, 0x00, 0x26),
		enc(OpSET, 0x01, 0x22), // SET B, 1
	)
	SetRegister(RegA, 5)
	cycles := step(t)
	assert.Equal(t, 2, cycles)
	assert.False(t, Skipping())
	step(t)
	assert.Equal(t, uint16(1), Register(RegB))
}

func TestConditionalSkip(t *testing.T) {
	// IFE A, 5 ; SET B, 1 ; SET C, 2 with A=3: B stays 0, C is set.
	loadProgram(t,
		enc(OpIFE, 0x00, 0x26),
		enc(OpSET, 0x01, 0x22), // SET B, 1
		enc(OpSET, 0x02, 0x23), // SET C, 2
	)
	SetRegister(RegA, 3)
	cycles := step(t)
	assert.Equal(t, 3, cycles) // 2 + 1 for the failed test.
	assert.True(t, Skipping())
	step(t)
	step(t)
	assert.Equal(t, uint16(0), Register(RegB))
	assert.Equal(t, uint16(2), Register(RegC))
	assert.False(t, Skipping())
}

func TestConditionalSkipChains(t *testing.T) {
	// A failed IF skips the whole run of following IFs plus one
	// ordinary instruction.
	loadProgram(t,
		enc(OpIFE, 0x00, 0x26), // IFE A, 5
		enc(OpIFE, 0x01, 0x26), // IFE B, 5
		enc(OpSET, 0x02, 0x22), // SET C, 1
		enc(OpSET, 0x03, 0x22), // SET X, 1
	)
	SetRegister(RegA, 3)
	SetRegister(RegB, 5)
	for i := 0; i < 4; i++ {
		step(t)
	}
	assert.Equal(t, uint16(0), Register(RegC))
	assert.Equal(t, uint16(1), Register(RegX))
	assert.False(t, Skipping())
}

func TestConditionalSkipOverWideInstruction(t *testing.T) {
	// The skipped instruction's next words are stepped over, not
	// executed or half consumed.
	loadProgram(t,
		enc(OpIFE, 0x00, 0x26), // IFE A, 5 (false)
		enc(OpSET, 0x1e, 0x1f), // SET [0x2000], 0x1111
		0x1111,
		0x2000,
		enc(OpSET, 0x02, 0x22), // SET C, 1
	)
	SetRegister(RegA, 0)
	step(t)
	step(t) // skip the three word SET
	assert.Equal(t, uint16(4), PC())
	step(t)
	assert.Equal(t, uint16(1), Register(RegC))
	v, _ := memory.GetWord(0x2000)
	assert.Equal(t, uint16(0), v)
}

func TestSignedConditionals(t *testing.T) {
	// IFA: signed greater. -1 > 1 is false.
	loadProgram(t, enc(OpIFA, 0x00, 0x22), enc(OpSET, 0x01, 0x22))
	SetRegister(RegA, 0xffff)
	step(t)
	assert.True(t, Skipping())

	// IFU: signed less. -1 < 1 is true.
	loadProgram(t, enc(OpIFU, 0x00, 0x22), enc(OpSET, 0x01, 0x22))
	SetRegister(RegA, 0xffff)
	step(t)
	assert.False(t, Skipping())

	// IFG: unsigned greater. 0xffff > 1 is true.
	loadProgram(t, enc(OpIFG, 0x00, 0x22), enc(OpSET, 0x01, 0x22))
	SetRegister(RegA, 0xffff)
	step(t)
	assert.False(t, Skipping())
}

func TestAdxSbx(t *testing.T) {
	loadProgram(t, enc(OpADX, 0x00, 0x1f), 0xffff)
	SetRegister(RegA, 1)
	SetEX(1)
	step(t)
	assert.Equal(t, uint16(1), Register(RegA))
	assert.Equal(t, uint16(1), EX())

	loadProgram(t, enc(OpSBX, 0x00, 0x22))
	SetRegister(RegA, 5)
	SetEX(1)
	step(t)
	assert.Equal(t, uint16(5), Register(RegA))
	assert.Equal(t, uint16(0), EX())
}

func TestStiStd(t *testing.T) {
	loadProgram(t, enc(OpSTI, 0x01, 0x27)) // STI B, 6
	SetRegister(RegI, 10)
	SetRegister(RegJ, 20)
	step(t)
	assert.Equal(t, uint16(6), Register(RegB))
	assert.Equal(t, uint16(11), Register(RegI))
	assert.Equal(t, uint16(21), Register(RegJ))

	loadProgram(t, enc(OpSTD, 0x01, 0x27))
	SetRegister(RegI, 10)
	SetRegister(RegJ, 20)
	step(t)
	assert.Equal(t, uint16(9), Register(RegI))
	assert.Equal(t, uint16(19), Register(RegJ))
}

func TestJsr(t *testing.T) {
	// JSR with a short target from PC=0x10: the return address is
	// the word after the one word instruction.
	loadProgram(t)
	require.NoError(t, memory.PutWord(0x10, encSpecial(OpJSR, 0x3f))) // JSR 30
	SetPC(0x10)
	cycles := step(t)
	assert.Equal(t, uint16(30), PC())
	assert.Equal(t, uint16(0xffff), SP())
	v, _ := memory.GetWord(0xffff)
	assert.Equal(t, uint16(0x11), v)
	assert.Equal(t, 3, cycles)

	// With a next word target the return address lands past it.
	loadProgram(t)
	require.NoError(t, memory.PutWord(0x10, encSpecial(OpJSR, 0x1f)))
	require.NoError(t, memory.PutWord(0x11, 0x0100))
	SetPC(0x10)
	step(t)
	assert.Equal(t, uint16(0x0100), PC())
	v, _ = memory.GetWord(0xffff)
	assert.Equal(t, uint16(0x12), v)
}

func TestJsrReturn(t *testing.T) {
	// Call and return with SET PC, POP.
	loadProgram(t,
		encSpecial(OpJSR, 0x1f), 0x0010, // JSR 0x10
		enc(OpSET, 0x02, 0x23), // SET C, 2 after return
	)
	require.NoError(t, memory.PutWord(0x10, enc(OpSET, 0x01, 0x22))) // SET B, 1
	require.NoError(t, memory.PutWord(0x11, enc(OpSET, 0x1c, 0x18))) // SET PC, POP
	for i := 0; i < 4; i++ {
		step(t)
	}
	assert.Equal(t, uint16(1), Register(RegB))
	assert.Equal(t, uint16(2), Register(RegC))
	assert.Equal(t, uint16(0), SP())
}

func TestPushPopInstructions(t *testing.T) {
	loadProgram(t,
		enc(OpSET, 0x18, 0x1f), 0x1234, // SET PUSH, 0x1234
		enc(OpSET, 0x18, 0x1f), 0x5678, // SET PUSH, 0x5678
		enc(OpSET, 0x00, 0x18), // SET A, POP
		enc(OpSET, 0x01, 0x19), // SET B, PEEK
	)
	step(t)
	step(t)
	assert.Equal(t, uint16(0xfffe), SP())
	step(t)
	assert.Equal(t, uint16(0x5678), Register(RegA))
	step(t)
	assert.Equal(t, uint16(0x1234), Register(RegB))
}

func TestStoreToLiteralDiscarded(t *testing.T) {
	// SET 0x1f-literal, A writes nowhere but PC still clears the word.
	loadProgram(t,
		enc(OpSET, 0x1f, 0x00), 0x0666,
		enc(OpSET, 0x02, 0x22), // SET C, 1
	)
	SetRegister(RegA, 0x9999)
	step(t)
	assert.Equal(t, uint16(2), PC())
	step(t)
	assert.Equal(t, uint16(1), Register(RegC))
}

func TestIndirectNextWordTarget(t *testing.T) {
	// ADD [0x0100], A reads and writes through one cached next word.
	loadProgram(t, enc(OpADD, 0x1e, 0x00), 0x0100)
	require.NoError(t, memory.PutWord(0x0100, 40))
	SetRegister(RegA, 2)
	cycles := step(t)
	v, _ := memory.GetWord(0x0100)
	assert.Equal(t, uint16(42), v)
	assert.Equal(t, uint16(2), PC())
	assert.Equal(t, 3, cycles) // ADD 2 + next word 1.
}

func TestMalformedHalts(t *testing.T) {
	loadProgram(t, enc(0x18, 0x00, 0x00))
	_, err := CycleCPU()
	var malformed *MalformedInstruction
	require.True(t, errors.As(err, &malformed))
}

func TestPCAdvanceMatchesSize(t *testing.T) {
	words := []uint16{
		enc(OpSET, 0x00, 0x23),             // size 1
		enc(OpSET, 0x00, 0x1f), 0x1111,     // size 2
		enc(OpSET, 0x1e, 0x1f), 0x22, 0x33, // size 3
	}
	loadProgram(t, words...)
	expect := []uint16{1, 3, 6}
	for _, want := range expect {
		step(t)
		assert.Equal(t, want, PC())
	}
}

func TestSoftwareInterrupt(t *testing.T) {
	loadProgram(t,
		encSpecial(OpIAS, 0x1f), 0x0020, // IAS 0x20
		encSpecial(OpINT, 0x1f), 0x0042, // INT 0x42
	)
	// Interrupt handler at 0x20: SET B, A then RFI.
	require.NoError(t, memory.PutWord(0x20, enc(OpSET, 0x01, 0x00)))
	require.NoError(t, memory.PutWord(0x21, encSpecial(OpRFI, 0x21)))
	SetRegister(RegA, 7)

	step(t) // IAS
	assert.Equal(t, uint16(0x20), IA())
	step(t) // INT: vector through IA
	assert.Equal(t, uint16(0x20), PC())
	assert.Equal(t, uint16(0x42), Register(RegA))
	assert.True(t, sysCPU.queueing)

	step(t) // handler body
	assert.Equal(t, uint16(0x42), Register(RegB))
	step(t) // RFI
	assert.Equal(t, uint16(7), Register(RegA))
	assert.Equal(t, uint16(4), PC())
	assert.False(t, sysCPU.queueing)
	assert.Equal(t, uint16(0), SP())
}

func TestInterruptIgnoredWithoutHandler(t *testing.T) {
	loadProgram(t, encSpecial(OpINT, 0x26)) // INT 5 with IA=0
	step(t)
	assert.Equal(t, uint16(1), PC())
	assert.Equal(t, uint16(0), SP())
}

func TestQueuedInterrupts(t *testing.T) {
	ch.InitializeChannels()
	loadProgram(t,
		encSpecial(OpIAS, 0x1f), 0x0030, // IAS 0x30
		encSpecial(OpIAQ, 0x22),         // IAQ 1: defer delivery
		enc(OpSET, 0x01, 0x22),          // SET B, 1
		enc(OpSET, 0x02, 0x23),          // SET C, 2
		encSpecial(OpIAQ, 0x21),         // IAQ 0: allow delivery
		enc(OpSET, 0x03, 0x24),          // SET X, 3
	)
	require.NoError(t, memory.PutWord(0x30, enc(OpSET, 0x04, 0x00))) // SET Y, A
	require.NoError(t, memory.PutWord(0x31, encSpecial(OpRFI, 0x21)))

	step(t) // IAS
	step(t) // IAQ 1
	ch.PostInterrupt(0x99)
	step(t) // SET B: queued interrupt stays queued
	assert.Equal(t, uint16(1), Register(RegB))
	assert.Equal(t, 1, ch.Pending())
	step(t) // SET C
	step(t) // IAQ 0
	step(t) // next boundary delivers the queued interrupt
	assert.Equal(t, uint16(0x30), PC())
	assert.Equal(t, uint16(0x99), Register(RegA))
	assert.Equal(t, 0, ch.Pending())
	step(t) // SET Y, A
	assert.Equal(t, uint16(0x99), Register(RegY))
	step(t) // RFI
	step(t) // SET X, 3 resumes the main line
	assert.Equal(t, uint16(3), Register(RegX))
}

func TestInterruptQueueOverflowHalts(t *testing.T) {
	ch.InitializeChannels()
	loadProgram(t, enc(OpSET, 0x00, 0x21))
	// IA=0 discards delivered interrupts, so force pure queueing.
	sysCPU.queueing = true
	for i := 0; i < ch.MaxQueue+1; i++ {
		ch.PostInterrupt(1)
	}
	_, err := CycleCPU()
	assert.ErrorIs(t, err, ErrInterruptQueueFull)
}

// Hardware device fixture for HWN/HWQ/HWI.
type probeDev struct {
	info      D.Info
	interrupt int
}

func (d *probeDev) Info() D.Info { return d.info }
func (d *probeDev) InitDev()     {}
func (d *probeDev) Shutdown()    {}

func (d *probeDev) Interrupt(proc D.Processor) {
	d.interrupt++
	// Echo the operation code from A into X, like a tiny device.
	proc.SetRegister(D.RegX, proc.Register(D.RegA)+1)
	proc.Tick(2)
}

func TestHardwareCountAndQuery(t *testing.T) {
	ch.InitializeChannels()
	defer ch.Shutdown()
	ch.Attach(&probeDev{info: D.MonitorInfo})
	ch.Attach(&probeDev{info: D.ClockInfo})

	// HWN with two devices attached.
	loadProgram(t,
		encSpecial(OpHWN, 0x00),         // HWN A
		encSpecial(OpHWQ, 0x21),         // HWQ 0
	)
	step(t)
	assert.Equal(t, uint16(2), Register(RegA))

	step(t)
	assert.Equal(t, uint16(0xf615), Register(RegA))
	assert.Equal(t, uint16(0x7349), Register(RegB))
	assert.Equal(t, uint16(0x1802), Register(RegC))
	assert.Equal(t, uint16(0x8b36), Register(RegX))
	assert.Equal(t, uint16(0x1c6c), Register(RegY))
}

func TestHardwareQueryOutOfRange(t *testing.T) {
	ch.InitializeChannels()
	defer ch.Shutdown()
	ch.Attach(&probeDev{info: D.ClockInfo})

	loadProgram(t, encSpecial(OpHWQ, 0x26)) // HWQ 5
	SetRegister(RegA, 0xdead)
	step(t)
	assert.Equal(t, uint16(0), Register(RegA))
	assert.Equal(t, uint16(0), Register(RegB))
	assert.Equal(t, uint16(0), Register(RegC))
}

func TestHardwareInterrupt(t *testing.T) {
	ch.InitializeChannels()
	defer ch.Shutdown()
	dev := &probeDev{info: D.KeyboardInfo}
	ch.Attach(dev)

	loadProgram(t, encSpecial(OpHWI, 0x21)) // HWI 0
	SetRegister(RegA, 8)
	cycles := step(t)
	assert.Equal(t, 1, dev.interrupt)
	assert.Equal(t, uint16(9), Register(RegX))
	assert.Equal(t, 6, cycles) // HWI 4 + device 2.

	// Out of range device numbers are a no-op.
	loadProgram(t, encSpecial(OpHWI, 0x26)) // HWI 5
	step(t)
	assert.Equal(t, 1, dev.interrupt)
}

func TestCycleCountMonotonic(t *testing.T) {
	loadProgram(t,
		enc(OpSET, 0x00, 0x23),
		enc(OpADD, 0x00, 0x23),
		enc(OpDIV, 0x00, 0x23),
	)
	last := Cycles()
	for i := 0; i < 3; i++ {
		step(t)
		now := Cycles()
		assert.Greater(t, now, last)
		last = now
	}
}
