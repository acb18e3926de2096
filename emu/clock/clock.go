/*
 * DCPU16 - Generic clock device
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

package clock

import (
	D "github.com/0x10c/DCPU16/emu/device"
	Ev "github.com/0x10c/DCPU16/emu/event"
	Ch "github.com/0x10c/DCPU16/emu/sys_channel"
)

// Nominal DCPU-16 clock rate, cycles per second.
const cpuHz = 100000

// Clock operations selected by register A on HWI.
const (
	cmdSetRate = iota // B=0 stops, else tick at 60/B Hz.
	cmdGetTicks       // C = ticks since the last SetRate.
	cmdSetInt         // B=0 disables tick interrupts, else message B.
)

// Generic clock, hardware ID 0x12d0b402. Ticks run in the cycle
// domain through the event queue: the tick callback fires on the CPU
// thread between instructions, and HWI handling runs while the CPU
// thread is parked, so the two never race.
type Clock struct {
	rate  uint16 // Divider of 60 Hz, zero when stopped.
	ticks uint16 // Ticks since the rate was last set.
	msg   uint16 // Interrupt message, zero disables.
}

func New() *Clock {
	return &Clock{}
}

func (c *Clock) Info() D.Info {
	return D.ClockInfo
}

func (c *Clock) InitDev() {
	if c.rate != 0 {
		Ev.CancelEvent(c, 0)
	}
	c.rate = 0
	c.ticks = 0
	c.msg = 0
}

func (c *Clock) Shutdown() {
}

// Cycles between ticks at the current rate.
func (c *Clock) period() int {
	return cpuHz * int(c.rate) / 60
}

// Service HWI from the processor.
func (c *Clock) Interrupt(proc D.Processor) {
	switch proc.Register(D.RegA) {
	case cmdSetRate:
		if c.rate != 0 {
			Ev.CancelEvent(c, 0)
		}
		c.rate = proc.Register(D.RegB)
		c.ticks = 0
		if c.rate != 0 {
			Ev.AddEvent(c, c.tick, c.period(), 0)
		}
	case cmdGetTicks:
		proc.SetRegister(D.RegC, c.ticks)
	case cmdSetInt:
		c.msg = proc.Register(D.RegB)
	}
}

// One clock tick in the cycle domain.
func (c *Clock) tick(iarg int) {
	c.ticks++
	if c.msg != 0 {
		Ch.PostInterrupt(c.msg)
	}
	Ev.AddEvent(c, c.tick, c.period(), 0)
}
