/*
 * DCPU16 - Line assembler
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

package assemble

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	op "github.com/0x10c/DCPU16/emu/cpu"
)

// Single line assembler for the operator console and tests. One
// instruction per line, no labels:
//
//	SET A, 0x1234
//	ADD [X+2], 1
//	JSR 0x100
//	DAT 0x0001, 0x0002

var registerNumbers = map[string]uint16{
	"A": 0, "B": 1, "C": 2, "X": 3, "Y": 4, "Z": 5, "I": 6, "J": 7,
}

var opcodeNumbers = map[string]uint16{}
var specialNumbers = map[string]uint16{}

func init() {
	for code, name := range op.OpNames {
		opcodeNumbers[name] = uint16(code)
	}
	for code, name := range op.SpecialOpNames {
		specialNumbers[name] = uint16(code)
	}
}

// Parse a number in Go syntax (0x.., 0.., decimal). Negative values
// wrap to their two's complement word.
func parseNumber(text string) (uint16, error) {
	value, err := strconv.ParseInt(text, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", text)
	}
	if value < -0x8000 || value > 0xffff {
		return 0, fmt.Errorf("number %q out of word range", text)
	}
	return uint16(value), nil
}

// Assembled form of one operand: the 6 bit field plus an optional
// extra word.
type operand struct {
	field uint16
	extra uint16
	wide  bool
}

// Assemble one operand. inA selects the a context, which admits POP
// and the packed literals.
func parseOperand(text string, inA bool) (operand, error) {
	text = strings.TrimSpace(text)
	upper := strings.ToUpper(text)

	switch upper {
	case "POP":
		if !inA {
			return operand{}, errors.New("POP is only valid as operand a")
		}
		return operand{field: 0x18}, nil
	case "PUSH":
		if inA {
			return operand{}, errors.New("PUSH is only valid as operand b")
		}
		return operand{field: 0x18}, nil
	case "PEEK":
		return operand{field: 0x19}, nil
	case "SP":
		return operand{field: 0x1b}, nil
	case "PC":
		return operand{field: 0x1c}, nil
	case "EX":
		return operand{field: 0x1d}, nil
	}

	if after, ok := strings.CutPrefix(upper, "PICK"); ok {
		offset, err := parseNumber(strings.TrimSpace(after))
		if err != nil {
			return operand{}, err
		}
		return operand{field: 0x1a, extra: offset, wide: true}, nil
	}

	if reg, ok := registerNumbers[upper]; ok {
		return operand{field: reg}, nil
	}

	// Bracketed: [reg], [reg+n], [n].
	if strings.HasPrefix(upper, "[") && strings.HasSuffix(upper, "]") {
		inner := strings.TrimSpace(upper[1 : len(upper)-1])
		if reg, ok := registerNumbers[inner]; ok {
			return operand{field: 0x08 + reg}, nil
		}
		if name, offset, found := strings.Cut(inner, "+"); found {
			name = strings.TrimSpace(name)
			reg, ok := registerNumbers[name]
			if !ok {
				return operand{}, fmt.Errorf("bad register %q", name)
			}
			value, err := parseNumber(strings.TrimSpace(offset))
			if err != nil {
				return operand{}, err
			}
			return operand{field: 0x10 + reg, extra: value, wide: true}, nil
		}
		value, err := parseNumber(inner)
		if err != nil {
			return operand{}, err
		}
		return operand{field: 0x1e, extra: value, wide: true}, nil
	}

	// Plain literal. Pack -1..30 into the field in the a context.
	value, err := parseNumber(text)
	if err != nil {
		return operand{}, err
	}
	if inA {
		if value == 0xffff {
			return operand{field: 0x20}, nil
		}
		if value <= 30 {
			return operand{field: value + 0x21}, nil
		}
	}
	return operand{field: 0x1f, extra: value, wide: true}, nil
}

// Assemble one line into machine words.
func Assemble(line string) ([]uint16, error) {
	line = strings.TrimSpace(line)
	if comment := strings.IndexByte(line, ';'); comment >= 0 {
		line = strings.TrimSpace(line[:comment])
	}
	if line == "" {
		return nil, nil
	}

	mnemonic, rest, _ := strings.Cut(line, " ")
	mnemonic = strings.ToUpper(mnemonic)
	rest = strings.TrimSpace(rest)

	if mnemonic == "DAT" {
		var words []uint16
		for _, part := range strings.Split(rest, ",") {
			value, err := parseNumber(strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}
			words = append(words, value)
		}
		return words, nil
	}

	if code, ok := opcodeNumbers[mnemonic]; ok {
		textB, textA, found := strings.Cut(rest, ",")
		if !found {
			return nil, fmt.Errorf("%s needs two operands", mnemonic)
		}
		operA, err := parseOperand(textA, true)
		if err != nil {
			return nil, err
		}
		operB, err := parseOperand(textB, false)
		if err != nil {
			return nil, err
		}
		words := []uint16{operA.field<<10 | operB.field<<5 | code}
		// Operand a's word precedes b's in the stream.
		if operA.wide {
			words = append(words, operA.extra)
		}
		if operB.wide {
			words = append(words, operB.extra)
		}
		return words, nil
	}

	if code, ok := specialNumbers[mnemonic]; ok {
		operA, err := parseOperand(rest, true)
		if err != nil {
			return nil, err
		}
		words := []uint16{operA.field<<10 | code<<5}
		if operA.wide {
			words = append(words, operA.extra)
		}
		return words, nil
	}

	return nil, fmt.Errorf("unknown mnemonic %q", mnemonic)
}

// Assemble a whole program, one instruction per line.
func Program(source string) ([]uint16, error) {
	var words []uint16
	for num, line := range strings.Split(source, "\n") {
		assembled, err := Assemble(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", num+1, err)
		}
		words = append(words, assembled...)
	}
	return words, nil
}
