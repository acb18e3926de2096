package cpu

/*
 * DCPU16 - Opcode definitions and cycle tables
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

// Binary opcodes, low 5 bits of the instruction word.
const (
	OpSET = 0x01
	OpADD = 0x02
	OpSUB = 0x03
	OpMUL = 0x04
	OpMLI = 0x05
	OpDIV = 0x06
	OpDVI = 0x07
	OpMOD = 0x08
	OpMDI = 0x09
	OpAND = 0x0a
	OpBOR = 0x0b
	OpXOR = 0x0c
	OpSHR = 0x0d
	OpASR = 0x0e
	OpSHL = 0x0f
	OpIFB = 0x10
	OpIFC = 0x11
	OpIFE = 0x12
	OpIFN = 0x13
	OpIFG = 0x14
	OpIFA = 0x15
	OpIFL = 0x16
	OpIFU = 0x17
	OpADX = 0x1a
	OpSBX = 0x1b
	OpSTI = 0x1e
	OpSTD = 0x1f
)

// Special opcodes, bits 5..9 when the low 5 bits are zero.
const (
	OpJSR = 0x01
	OpINT = 0x08
	OpIAG = 0x09
	OpIAS = 0x0a
	OpRFI = 0x0b
	OpIAQ = 0x0c
	OpHWN = 0x10
	OpHWQ = 0x11
	OpHWI = 0x12
)

// Base cycle cost per binary opcode. Operands that consume a next word
// add one cycle each, and a failed conditional adds one more.
var opCycles = map[int]int{
	OpSET: 1,
	OpADD: 2,
	OpSUB: 2,
	OpMUL: 2,
	OpMLI: 2,
	OpDIV: 3,
	OpDVI: 3,
	OpMOD: 3,
	OpMDI: 3,
	OpAND: 1,
	OpBOR: 1,
	OpXOR: 1,
	OpSHR: 1,
	OpASR: 1,
	OpSHL: 1,
	OpIFB: 2,
	OpIFC: 2,
	OpIFE: 2,
	OpIFN: 2,
	OpIFG: 2,
	OpIFA: 2,
	OpIFL: 2,
	OpIFU: 2,
	OpADX: 3,
	OpSBX: 3,
	OpSTI: 2,
	OpSTD: 2,
}

// Base cycle cost per special opcode.
var specialCycles = map[int]int{
	OpJSR: 3,
	OpINT: 4,
	OpIAG: 1,
	OpIAS: 1,
	OpRFI: 3,
	OpIAQ: 2,
	OpHWN: 2,
	OpHWQ: 4,
	OpHWI: 4,
}

// Mnemonics, shared with the assembler and disassembler.
var OpNames = map[int]string{
	OpSET: "SET",
	OpADD: "ADD",
	OpSUB: "SUB",
	OpMUL: "MUL",
	OpMLI: "MLI",
	OpDIV: "DIV",
	OpDVI: "DVI",
	OpMOD: "MOD",
	OpMDI: "MDI",
	OpAND: "AND",
	OpBOR: "BOR",
	OpXOR: "XOR",
	OpSHR: "SHR",
	OpASR: "ASR",
	OpSHL: "SHL",
	OpIFB: "IFB",
	OpIFC: "IFC",
	OpIFE: "IFE",
	OpIFN: "IFN",
	OpIFG: "IFG",
	OpIFA: "IFA",
	OpIFL: "IFL",
	OpIFU: "IFU",
	OpADX: "ADX",
	OpSBX: "SBX",
	OpSTI: "STI",
	OpSTD: "STD",
}

var SpecialOpNames = map[int]string{
	OpJSR: "JSR",
	OpINT: "INT",
	OpIAG: "IAG",
	OpIAS: "IAS",
	OpRFI: "RFI",
	OpIAQ: "IAQ",
	OpHWN: "HWN",
	OpHWQ: "HWQ",
	OpHWI: "HWI",
}

// Register names in encoding order.
var RegNames = [8]string{"A", "B", "C", "X", "Y", "Z", "I", "J"}
