package sys_channel

import D "github.com/0x10c/DCPU16/emu/device"

/*
 * DCPU16 - Hardware channel definitions
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
	"sync"
)

// Most pending interrupts the controller will hold. More than this
// while queueing is on and the machine halts.
const MaxQueue = 256

// Most devices that can be attached to one machine.
const MaxDev = 65535

// One attached device and its rendezvous channels. The channel walks
// idle -> triggered -> active -> responded: InterruptDevice sends the
// processor handle on trigger, the device services the interrupt, and
// the receive on respond releases the CPU thread.
type hwChannel struct {
	dev     D.Device
	trigger chan D.Processor
	respond chan struct{}
}

// Holds hardware channel information.
type chanDev struct {
	devices []hwChannel // Attached devices in HWN order.
	done    chan struct{}
	wg      sync.WaitGroup

	mu       sync.Mutex // Guards queue and overflow.
	queue    []uint16   // Pending interrupt messages, FIFO.
	overflow bool
}

var hw chanDev
