/*
 * DCPU16 - Main process.
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

package main

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	reader "github.com/0x10c/DCPU16/command/reader"
	config "github.com/0x10c/DCPU16/config/configparser"
	"github.com/0x10c/DCPU16/emu/clock"
	core "github.com/0x10c/DCPU16/emu/core"
	"github.com/0x10c/DCPU16/emu/keyboard"
	master "github.com/0x10c/DCPU16/emu/master"
	"github.com/0x10c/DCPU16/emu/memory"
	"github.com/0x10c/DCPU16/emu/monitor"
	syschannel "github.com/0x10c/DCPU16/emu/sys_channel"
	telnet "github.com/0x10c/DCPU16/telnet"
	logger "github.com/0x10c/DCPU16/util/logger"

	_ "github.com/0x10c/DCPU16/emu/models"
)

var Logger *slog.Logger

func main() {
	optImage := getopt.StringLong("image", 'i', "", "Memory image file")
	optEndian := getopt.EnumLong("endian", 'e', []string{"big", "little"}, "big", "Image byte order")
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optPort := getopt.StringLong("port", 'p', "", "Telnet listen address")
	optMonitor := getopt.BoolLong("monitor", 'm', "Attach a LEM1802 monitor")
	optKeyboard := getopt.BoolLong("keyboard", 'k', "Attach a generic keyboard")
	optClock := getopt.BoolLong("clock", 't', "Attach a generic clock")
	optRun := getopt.BoolLong("run", 'r', "Start the machine immediately")
	optDebug := getopt.BoolLong("debug", 'd', "Echo debug messages to stderr")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, optDebug))
	slog.SetDefault(Logger)

	Logger.Info("DCPU16 Started")

	memory.Initialize()
	syschannel.InitializeChannels()

	if *optConfig != "" {
		if err := config.LoadConfigFile(*optConfig); err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	}

	// Devices asked for on the command line.
	if *optMonitor {
		syschannel.Attach(monitor.New())
	}
	if *optKeyboard {
		syschannel.Attach(keyboard.New())
	}
	if *optClock {
		syschannel.Attach(clock.New())
	}

	if *optImage != "" {
		order := binary.ByteOrder(binary.BigEndian)
		if *optEndian == "little" {
			order = binary.LittleEndian
		}
		if err := memory.LoadFile(*optImage, order); err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
		Logger.Info("Loaded memory image " + *optImage)
	}

	masterChannel := make(chan master.Packet)

	// Create new routine to run the machine.
	machine := core.NewCPU(masterChannel)

	// Start telnet server for the monitor and keyboard.
	if *optPort != "" {
		if err := telnet.Start(masterChannel, *optPort); err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	}

	// Start main emulator.
	go machine.Start()

	if *optRun {
		masterChannel <- master.Packet{Msg: master.Start}
	}

	// Wait for a SIGINT or SIGTERM signal to gracefully shut down.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	consoleDone := make(chan struct{})
	go func() {
		reader.ConsoleReader(machine)
		close(consoleDone)
	}()

	select {
	case <-sigChan:
		fmt.Println("Got quit signal")
	case <-consoleDone:
	}

	Logger.Info("Shutting down CPU")
	machine.Stop()
	Logger.Info("Shutting down server...")
	telnet.Stop()
	Logger.Info("Servers stopped.")
}
