/*
 * DCPU16 - Telnet terminal server
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

// Telnet front end: each session becomes a monitor viewer, and its
// keystrokes feed the keyboard device.
package telnet

import (
	"log/slog"
	"net"
	"sync"

	"github.com/0x10c/DCPU16/emu/master"
)

// Telnet protocol bytes.
const (
	tnIAC  = 255
	tnWILL = 251
	tnWONT = 252
	tnDO   = 253
	tnDONT = 254
	tnSB   = 250
	tnSE   = 240

	optEcho = 1
	optSGA  = 3
)

type server struct {
	listener net.Listener
	master   chan master.Packet
	wg       sync.WaitGroup
	closing  bool
}

var srv server

// Start the telnet server on the given address.
func Start(masterChannel chan master.Packet, address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	srv.listener = listener
	srv.master = masterChannel
	srv.closing = false

	srv.wg.Add(1)
	go accept()
	slog.Info("Telnet server listening on " + address)
	return nil
}

// Stop the telnet server.
func Stop() {
	if srv.listener == nil {
		return
	}
	srv.closing = true
	srv.listener.Close()
	srv.wg.Wait()
	srv.listener = nil
}

func accept() {
	defer srv.wg.Done()
	for {
		conn, err := srv.listener.Accept()
		if err != nil {
			if !srv.closing {
				slog.Error("telnet accept: " + err.Error())
			}
			return
		}
		srv.wg.Add(1)
		go session(conn)
	}
}

// One telnet session: negotiate character mode, register with the
// monitor, then pump keystrokes to the keyboard.
func session(conn net.Conn) {
	defer srv.wg.Done()
	defer conn.Close()

	slog.Info("Telnet connect from " + conn.RemoteAddr().String())

	// Character at a time, no local echo.
	_, _ = conn.Write([]byte{
		tnIAC, tnWILL, optEcho,
		tnIAC, tnWILL, optSGA,
	})

	srv.master <- master.Packet{Msg: master.TelConnect, Conn: conn}
	defer func() {
		srv.master <- master.Packet{Msg: master.TelDisconnect, Conn: conn}
		slog.Info("Telnet disconnect from " + conn.RemoteAddr().String())
	}()

	// Negotiation state machine.
	const (
		stData = iota
		stIAC     // Seen IAC, command follows.
		stOption  // Seen WILL/WONT/DO/DONT, option byte follows.
		stSub     // Inside subnegotiation, runs to IAC SE.
		stSubIAC
	)

	buffer := make([]byte, 256)
	state := stData
	for {
		n, err := conn.Read(buffer)
		if err != nil {
			return
		}
		for _, b := range buffer[:n] {
			switch state {
			case stIAC:
				switch b {
				case tnWILL, tnWONT, tnDO, tnDONT:
					state = stOption
				case tnSB:
					state = stSub
				default:
					state = stData
				}
			case stOption:
				state = stData
			case stSub:
				if b == tnIAC {
					state = stSubIAC
				}
			case stSubIAC:
				if b == tnSE {
					state = stData
				} else {
					state = stSub
				}
			default:
				if b == tnIAC {
					state = stIAC
				} else if b != 0 {
					// NUL is telnet padding after CR.
					srv.master <- master.Packet{Msg: master.KeyPress, Data: uint16(b)}
				}
			}
		}
	}
}
