/*
DCPU16 Hardware channel functions

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
package sys_channel

import (
	"log/slog"
	"time"

	D "github.com/0x10c/DCPU16/emu/device"
	"github.com/0x10c/DCPU16/util/debug"
)

// Reset the hardware bus. Any previously attached devices must have
// been shut down first.
func InitializeChannels() {
	hw.devices = nil
	hw.done = make(chan struct{})
	hw.mu.Lock()
	hw.queue = nil
	hw.overflow = false
	hw.mu.Unlock()
}

// Attach a device to the bus and start its service thread. Devices
// are numbered in attach order; the number is the index HWQ and HWI
// use.
func Attach(dev D.Device) int {
	if len(hw.devices) >= MaxDev {
		return -1
	}
	channel := hwChannel{
		dev:     dev,
		trigger: make(chan D.Processor),
		respond: make(chan struct{}),
	}
	hw.devices = append(hw.devices, channel)
	dev.InitDev()

	hw.wg.Add(1)
	go run(channel, hw.done)
	return len(hw.devices) - 1
}

// Device service loop. One per attached device, parked until the CPU
// triggers the channel or the bus shuts down.
func run(channel hwChannel, done chan struct{}) {
	defer hw.wg.Done()
	for {
		select {
		case proc := <-channel.trigger:
			channel.dev.Interrupt(proc)
			channel.respond <- struct{}{}
		case <-done:
			channel.dev.Shutdown()
			return
		}
	}
}

// Number of attached devices, for HWN.
func Count() int {
	return len(hw.devices)
}

// Identity triple of device n, for HWQ. Out of range indexes report
// a zero triple.
func Info(index int) (D.Info, bool) {
	if index < 0 || index >= len(hw.devices) {
		return D.Info{}, false
	}
	return hw.devices[index].dev.Info(), true
}

// Return attached device n, for the console.
func Dev(index int) D.Device {
	if index < 0 || index >= len(hw.devices) {
		return nil
	}
	return hw.devices[index].dev
}

// Trigger device n's channel and block until it responds. The HWI
// rendezvous: the caller (the CPU thread) stays parked for the whole
// of the device's turn. Out of range indexes are a no-op.
func InterruptDevice(index int, proc D.Processor) {
	if index < 0 || index >= len(hw.devices) {
		return
	}
	debug.Debugf("CHANNEL", "trigger device %d", index)
	channel := hw.devices[index]
	channel.trigger <- proc
	<-channel.respond
	debug.Debugf("CHANNEL", "device %d responded", index)
}

// Queue an interrupt message for the CPU. Called from device threads
// and from INT while queueing is on.
func PostInterrupt(msg uint16) {
	hw.mu.Lock()
	defer hw.mu.Unlock()
	if len(hw.queue) >= MaxQueue {
		hw.overflow = true
		return
	}
	debug.Debugf("CHANNEL", "interrupt queued, message %04x", msg)
	hw.queue = append(hw.queue, msg)
}

// Remove and return the oldest pending interrupt.
func TakeInterrupt() (uint16, bool) {
	hw.mu.Lock()
	defer hw.mu.Unlock()
	if len(hw.queue) == 0 {
		return 0, false
	}
	msg := hw.queue[0]
	hw.queue = hw.queue[1:]
	return msg, true
}

// True once the pending queue has overflowed. Fatal to the machine.
func QueueOverflow() bool {
	hw.mu.Lock()
	defer hw.mu.Unlock()
	return hw.overflow
}

// Number of interrupts waiting, for the console.
func Pending() int {
	hw.mu.Lock()
	defer hw.mu.Unlock()
	return len(hw.queue)
}

// Stop every device thread and wait for them to exit.
func Shutdown() {
	if hw.done == nil {
		return
	}
	close(hw.done)
	hw.done = nil

	done := make(chan struct{})
	go func() {
		hw.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for devices to finish.")
		return
	}
}
