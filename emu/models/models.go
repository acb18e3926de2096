/*
 * DCPU16 - Device model registrations
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

// Importing this package for effect registers every device model with
// the configuration parser.
package models

import (
	"encoding/binary"
	"errors"
	"strings"
	"time"

	config "github.com/0x10c/DCPU16/config/configparser"
	"github.com/0x10c/DCPU16/emu/clock"
	"github.com/0x10c/DCPU16/emu/keyboard"
	"github.com/0x10c/DCPU16/emu/memory"
	"github.com/0x10c/DCPU16/emu/monitor"
	ch "github.com/0x10c/DCPU16/emu/sys_channel"
)

func init() {
	config.RegisterModel("MONITOR", func(_ []config.Option) error {
		ch.Attach(monitor.New())
		return nil
	})
	config.RegisterModel("KEYBOARD", func(_ []config.Option) error {
		ch.Attach(keyboard.New())
		return nil
	})
	config.RegisterModel("CLOCK", func(_ []config.Option) error {
		ch.Attach(clock.New())
		return nil
	})
	config.RegisterModel("IMAGE", createImage)
	config.RegisterModel("DELAY", createDelay)
}

// IMAGE <file> [ORDER=BIG|LITTLE]
func createImage(options []config.Option) error {
	if len(options) == 0 {
		return errors.New("IMAGE needs a file name")
	}
	file := options[0].Name
	order := binary.ByteOrder(binary.BigEndian)
	for _, opt := range options[1:] {
		switch strings.ToUpper(opt.Name) {
		case "ORDER":
			switch strings.ToUpper(opt.EqualOpt) {
			case "BIG":
				order = binary.BigEndian
			case "LITTLE":
				order = binary.LittleEndian
			default:
				return errors.New("bad byte order: " + opt.EqualOpt)
			}
		default:
			return errors.New("unknown IMAGE option: " + opt.Name)
		}
	}
	return memory.LoadFile(file, order)
}

// DELAY [READ=<duration>] [WRITE=<duration>]
func createDelay(options []config.Option) error {
	var read, write time.Duration
	for _, opt := range options {
		value, err := time.ParseDuration(opt.EqualOpt)
		if err != nil {
			return errors.New("bad duration: " + opt.EqualOpt)
		}
		switch strings.ToUpper(opt.Name) {
		case "READ":
			read = value
		case "WRITE":
			write = value
		default:
			return errors.New("unknown DELAY option: " + opt.Name)
		}
	}
	memory.SetDelay(read, write)
	return nil
}
