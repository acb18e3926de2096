/*
 * DCPU16 - Per module debug tracing
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

package debug

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	config "github.com/0x10c/DCPU16/config/configparser"
)

// Modules enabled for debug tracing, from DEBUG config lines:
//
//	DEBUG CHANNEL CLOCK
var (
	mu      sync.Mutex
	enabled = map[string]bool{}
)

func init() {
	config.RegisterModel("DEBUG", create)
}

// Enable tracing for the named modules.
func create(options []config.Option) error {
	mu.Lock()
	defer mu.Unlock()
	for _, opt := range options {
		enabled[strings.ToUpper(opt.Name)] = true
	}
	return nil
}

// Trace when the module is enabled.
func Debugf(module string, format string, a ...interface{}) {
	mu.Lock()
	on := enabled[strings.ToUpper(module)]
	mu.Unlock()
	if on {
		slog.Debug(module + ": " + fmt.Sprintf(format, a...))
	}
}
