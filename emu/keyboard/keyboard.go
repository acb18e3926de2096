/*
 * DCPU16 - Generic keyboard device
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

package keyboard

import (
	"sync"

	D "github.com/0x10c/DCPU16/emu/device"
	Ch "github.com/0x10c/DCPU16/emu/sys_channel"
)

// Typed keys held until the program reads them. Oldest dropped on
// overflow.
const bufferLimit = 64

// Keyboard operations selected by register A on HWI.
const (
	cmdClear = iota // Drop all buffered keys.
	cmdNext         // C = next key, 0 when empty.
	cmdCheck        // C = 1 when key B is waiting in the buffer.
	cmdSetInt       // B=0 disables key interrupts, else message B.
)

// Generic keyboard, hardware ID 0x30cf7406. Key sources run outside
// the machine, so the buffer carries its own lock.
type Keyboard struct {
	mu     sync.Mutex
	buffer []uint16
	msg    uint16
}

// The machine carries at most one keyboard; key packets from the
// front ends land on the registered one.
var attached *Keyboard

func New() *Keyboard {
	kbd := &Keyboard{}
	attached = kbd
	return kbd
}

func (k *Keyboard) Info() D.Info {
	return D.KeyboardInfo
}

func (k *Keyboard) InitDev() {
	k.mu.Lock()
	k.buffer = nil
	k.msg = 0
	k.mu.Unlock()
}

func (k *Keyboard) Shutdown() {
}

// Feed one typed key to the attached keyboard, if any.
func PressKey(key uint16) {
	if attached != nil {
		attached.press(key)
	}
}

func (k *Keyboard) press(key uint16) {
	k.mu.Lock()
	if len(k.buffer) >= bufferLimit {
		k.buffer = k.buffer[1:]
	}
	k.buffer = append(k.buffer, key)
	msg := k.msg
	k.mu.Unlock()
	if msg != 0 {
		Ch.PostInterrupt(msg)
	}
}

// Service HWI from the processor.
func (k *Keyboard) Interrupt(proc D.Processor) {
	k.mu.Lock()
	defer k.mu.Unlock()

	switch proc.Register(D.RegA) {
	case cmdClear:
		k.buffer = nil
	case cmdNext:
		var key uint16
		if len(k.buffer) > 0 {
			key = k.buffer[0]
			k.buffer = k.buffer[1:]
		}
		proc.SetRegister(D.RegC, key)
	case cmdCheck:
		// A terminal feed has no key up events; a key counts as
		// pressed while it is still waiting in the buffer.
		want := proc.Register(D.RegB)
		var hit uint16
		for _, key := range k.buffer {
			if key == want {
				hit = 1
				break
			}
		}
		proc.SetRegister(D.RegC, hit)
	case cmdSetInt:
		k.msg = proc.Register(D.RegB)
	}
}
