/*
DCPU16 Hardware device interface

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
package device

// General purpose register numbers as seen by devices.
const (
	RegA = iota
	RegB
	RegC
	RegX
	RegY
	RegZ
	RegI
	RegJ
)

// Identity triple reported by HWQ.
type Info struct {
	ID      uint32 // Hardware ID.
	Mfr     uint32 // Manufacturer ID.
	Version uint16
}

// View of the processor a device holds while servicing an interrupt.
// The CPU thread is parked for the duration, so the device may read and
// write registers and memory freely.
type Processor interface {
	Register(reg int) uint16
	SetRegister(reg int, value uint16)
	Tick(cycles int) // Charge extra cycles to the current instruction.
}

// Interface for devices attached to the hardware channel.
type Device interface {
	Info() Info
	Interrupt(proc Processor) // Service HWI. Runs on the device thread.
	InitDev()                 // Reset device to power-on state.
	Shutdown()                // Close files, stop tickers.
}

// Code for no device.
const NoDev uint16 = 0xffff

// Standard hardware identity triples.
var (
	MonitorInfo  = Info{ID: 0x7349f615, Mfr: 0x1c6c8b36, Version: 0x1802}
	KeyboardInfo = Info{ID: 0x30cf7406, Mfr: 0x00000000, Version: 1}
	ClockInfo    = Info{ID: 0x12d0b402, Mfr: 0x00000000, Version: 1}
)
