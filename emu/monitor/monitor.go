/*
 * DCPU16 - LEM1802 monitor device
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

package monitor

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	D "github.com/0x10c/DCPU16/emu/device"
	"github.com/0x10c/DCPU16/emu/memory"
)

// Text cells on the LEM1802 screen.
const (
	CellsPerWidth  = 32
	CellsPerHeight = 12
)

// Monitor operations selected by register A on HWI.
const (
	cmdMapScreen = iota // B=0 disconnects, else video RAM at B.
	cmdMapFont          // B=0 built in font, else font at B.
	cmdMapPalette       // B=0 built in palette, else palette at B.
	cmdSetBorder        // Border color = B & 0xf.
	cmdDumpFont         // Write the built in font at B. 256 cycles.
	cmdDumpPalette      // Write the built in palette at B. 16 cycles.
)

const frameInterval = 500 * time.Millisecond

// LEM1802 monitor, hardware ID 0x7349f615. Frames are rendered as
// text and multiplexed to attached viewers (telnet sessions). The
// frame thread reads monitor state and shared memory concurrently
// with the machine, so both sit behind locks.
type Monitor struct {
	mu          sync.Mutex
	videoOffset uint16 // Zero while disconnected.
	fontOffset  uint16 // Zero selects the built in font.
	paletteOff  uint16 // Zero selects the built in palette.
	border      uint8
	viewers     []io.Writer

	done chan struct{}
	wg   sync.WaitGroup
}

// The machine carries at most one monitor; viewers from the front
// ends land on the registered one.
var attached *Monitor

func New() *Monitor {
	mon := &Monitor{done: make(chan struct{})}
	attached = mon
	mon.wg.Add(1)
	go mon.run()
	return mon
}

// Attach a viewer to the registered monitor, if any.
func Attach(w io.Writer) {
	if attached != nil {
		attached.AttachViewer(w)
	}
}

// Detach a viewer from the registered monitor, if any.
func Detach(w io.Writer) {
	if attached != nil {
		attached.DetachViewer(w)
	}
}

func (m *Monitor) Info() D.Info {
	return D.MonitorInfo
}

func (m *Monitor) InitDev() {
	m.mu.Lock()
	m.videoOffset = 0
	m.fontOffset = 0
	m.paletteOff = 0
	m.border = 9
	m.mu.Unlock()
}

func (m *Monitor) Shutdown() {
	select {
	case <-m.done:
	default:
		close(m.done)
	}
	m.wg.Wait()
}

// Attach a viewer that receives rendered frames.
func (m *Monitor) AttachViewer(w io.Writer) {
	m.mu.Lock()
	m.viewers = append(m.viewers, w)
	m.mu.Unlock()
}

func (m *Monitor) DetachViewer(w io.Writer) {
	m.mu.Lock()
	for i, viewer := range m.viewers {
		if viewer == w {
			m.viewers = append(m.viewers[:i], m.viewers[i+1:]...)
			break
		}
	}
	m.mu.Unlock()
}

// Service HWI from the processor.
func (m *Monitor) Interrupt(proc D.Processor) {
	b := proc.Register(D.RegB)

	m.mu.Lock()
	defer m.mu.Unlock()

	switch proc.Register(D.RegA) {
	case cmdMapScreen:
		if b != 0 {
			slog.Info("Monitor connected", "video", b)
		} else {
			slog.Info("Monitor disconnected")
		}
		m.videoOffset = b
	case cmdMapFont:
		m.fontOffset = b
	case cmdMapPalette:
		m.paletteOff = b
	case cmdSetBorder:
		m.border = uint8(b & 0xf)
	case cmdDumpFont:
		for i, w := range defaultFont {
			if err := memory.PutWord(uint32(b)+uint32(i), w); err != nil {
				break
			}
		}
		proc.Tick(len(defaultFont))
	case cmdDumpPalette:
		for i, w := range defaultPalette {
			if err := memory.PutWord(uint32(b)+uint32(i), w); err != nil {
				break
			}
		}
		proc.Tick(len(defaultPalette))
	}
}

// Frame loop: while connected, periodically read video RAM and send a
// text frame to every viewer.
func (m *Monitor) run() {
	defer m.wg.Done()
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.renderFrame()
		case <-m.done:
			return
		}
	}
}

func (m *Monitor) renderFrame() {
	m.mu.Lock()
	offset := m.videoOffset
	viewers := make([]io.Writer, len(m.viewers))
	copy(viewers, m.viewers)
	m.mu.Unlock()

	if offset == 0 || len(viewers) == 0 {
		return
	}

	frame := renderText(offset)
	for _, w := range viewers {
		_, _ = io.WriteString(w, frame)
	}
}

// Build one frame of screen text from video RAM. Zero characters show
// as blanks; other characters outside printable ASCII show as dots.
func renderText(offset uint16) string {
	var sb strings.Builder
	// Home the cursor and clear the viewer's screen.
	sb.WriteString("\x1b[H\x1b[2J")
	sb.WriteString("+" + strings.Repeat("-", CellsPerWidth) + "+\r\n")
	for y := 0; y < CellsPerHeight; y++ {
		sb.WriteByte('|')
		for x := 0; x < CellsPerWidth; x++ {
			loc := offset + uint16(y*CellsPerWidth+x)
			w, err := memory.GetWord(uint32(loc))
			if err != nil {
				w = 0
			}
			c := byte(w & 0x7f)
			if c < 0x20 || c > 0x7e {
				if c == 0 {
					c = ' '
				} else {
					c = '.'
				}
			}
			sb.WriteByte(c)
		}
		sb.WriteString("|\r\n")
	}
	sb.WriteString("+" + strings.Repeat("-", CellsPerWidth) + "+\r\n")
	return sb.String()
}
