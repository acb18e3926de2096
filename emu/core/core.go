/*
   Core DCPU16 emulator loop.

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

package core

import (
	"log/slog"
	"sync"
	"time"

	cpu "github.com/0x10c/DCPU16/emu/cpu"
	"github.com/0x10c/DCPU16/emu/event"
	"github.com/0x10c/DCPU16/emu/keyboard"
	"github.com/0x10c/DCPU16/emu/master"
	"github.com/0x10c/DCPU16/emu/monitor"
	syschannel "github.com/0x10c/DCPU16/emu/sys_channel"
)

type Core struct {
	wg      sync.WaitGroup
	done    chan struct{} // Signal to shutdown simulator.
	running bool          // Indicate when simulator should run or not.
	master  chan master.Packet
}

// Create instance of the machine loop.
func NewCPU(masterChannel chan master.Packet) *Core {
	return &Core{
		master: masterChannel,
		done:   make(chan struct{}),
	}
}

// Run the machine. The CPU executes on this thread; devices run on
// their own and meet it through the hardware channel.
func (core *Core) Start() {
	core.wg.Add(1)
	defer core.wg.Done()
	cpu.InitializeCPU()
	for {
		if core.running {
			cycles, err := cpu.CycleCPU()
			if err != nil {
				slog.Error("CPU halted: " + err.Error())
				core.running = false
			}
			event.Advance(cycles)

			select {
			case <-core.done:
				syschannel.Shutdown()
				slog.Info("Shutdown CPU core")
				return
			case packet := <-core.master:
				core.processPacket(packet)
			default:
			}
		} else {
			// Machine paused: nothing to do but wait for orders.
			select {
			case <-core.done:
				syschannel.Shutdown()
				slog.Info("Shutdown CPU core")
				return
			case packet := <-core.master:
				core.processPacket(packet)
			}
		}
	}
}

// Stop a running simulator.
func (core *Core) Stop() {
	close(core.done)
	done := make(chan struct{})
	go func() {
		core.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for CPU to finish.")
		return
	}
}

// Post a packet to the simulation loop.
func (core *Core) Post(packet master.Packet) {
	core.master <- packet
}

// True while the machine is executing instructions.
func (core *Core) Running() bool {
	return core.running
}

// Process a packet sent to system simulation.
func (core *Core) processPacket(packet master.Packet) {
	switch packet.Msg {
	case master.Start:
		slog.Info("Machine started")
		core.running = true
	case master.Stop:
		slog.Info("Machine stopped")
		core.running = false
	case master.KeyPress:
		keyboard.PressKey(packet.Data)
	case master.TelConnect:
		monitor.Attach(packet.Conn)
	case master.TelDisconnect:
		monitor.Detach(packet.Conn)
	}
}
