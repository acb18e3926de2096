/*
 * DCPU16 - Configuration file parser
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

package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := <model> *(<whitespace> <option>)
 * <model> := <string>
 * <option> ::= <string> | <string> '=' <value>
 * <value> ::= <string> | '"' *(<letter> | <whitespace>) '"'
 *
 * Example:
 *
 *   MONITOR
 *   KEYBOARD
 *   CLOCK
 *   IMAGE boot.bin ORDER=LITTLE
 */

// One option following the model name.
type Option struct {
	Name     string // Name of option.
	EqualOpt string // Value of string after =.
}

// Model creation list.
type modelDef struct {
	create func(options []Option) error
}

var models = map[string]modelDef{}

var lineNumber int

// Register should be called from init functions.
func RegisterModel(model string, fn func(options []Option) error) {
	model = strings.ToUpper(model)
	models[model] = modelDef{create: fn}
}

// Split one configuration line into the model name and its options.
func parseLine(line string) (string, []Option, error) {
	if comment := strings.IndexByte(line, '#'); comment >= 0 {
		line = line[:comment]
	}
	fields, err := splitQuoted(line)
	if err != nil || len(fields) == 0 {
		return "", nil, err
	}

	model := strings.ToUpper(fields[0])
	options := make([]Option, 0, len(fields)-1)
	for _, field := range fields[1:] {
		name, value, _ := strings.Cut(field, "=")
		options = append(options, Option{Name: name, EqualOpt: value})
	}
	return model, options, nil
}

// Split on whitespace, honoring double quoted strings.
func splitQuoted(line string) ([]string, error) {
	var fields []string
	var current strings.Builder
	inQuote := false
	flush := func() {
		if current.Len() != 0 {
			fields = append(fields, current.String())
			current.Reset()
		}
	}
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case !inQuote && (r == ' ' || r == '\t'):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	if inQuote {
		return nil, errors.New("unterminated quote")
	}
	flush()
	return fields, nil
}

// Create a device of type model.
func createModel(model string, options []Option) error {
	def, ok := models[model]
	if !ok {
		return errors.New("unknown model: " + model)
	}
	return def.create(options)
}

// Load and process a configuration file.
func LoadConfigFile(fileName string) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	return LoadConfig(file)
}

// Process configuration lines from a reader.
func LoadConfig(source io.Reader) error {
	scanner := bufio.NewScanner(source)
	lineNumber = 0
	for scanner.Scan() {
		lineNumber++
		model, options, err := parseLine(scanner.Text())
		if err == nil && model == "" {
			continue
		}
		if err == nil {
			err = createModel(model, options)
		}
		if err != nil {
			return fmt.Errorf("config line %d: %w", lineNumber, err)
		}
	}
	return scanner.Err()
}
