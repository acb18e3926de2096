/*
 * DCPU16 - LEM1802 built in font and palette
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

// Built in 4x8 font, two words per character. The control code
// entries carry graphics glyphs rather than blanks.
var defaultFont = [256]uint16{
	0xb79e, 0x388e, // NULL
	0x722c, 0x75f4, // SOH
	0x19bb, 0x7f8f, // STX
	0x85f9, 0xb158, // ETX
	0x242e, 0x2400, // EOT
	0x082a, 0x0800, // ENQ
	0x0008, 0x0000, // ACK
	0x0808, 0x0808, // BEL
	0x00ff, 0x0000, // BS
	0x00f8, 0x0808, // TAB
	0x08f8, 0x0000, // LF
	0x080f, 0x0000, // VT
	0x000f, 0x0808, // FF
	0x00ff, 0x0808, // CR
	0x08f8, 0x0808, // SO
	0x08ff, 0x0000, // SI
	0x080f, 0x0808, // DLE
	0x08ff, 0x0808, // DC1
	0x6633, 0x99cc, // DC2
	0x9933, 0x66cc, // DC3
	0xfef8, 0xe080, // DC4
	0x7f1f, 0x0701, // NAK
	0x0107, 0x1f7f, // SYN
	0x80e0, 0xf8fe, // ETB
	0x5500, 0xaa00, // CAN
	0x55aa, 0x55aa, // EM
	0xffaa, 0xff55, // SUB
	0x0f0f, 0x0f0f, // ESC
	0xf0f0, 0xf0f0, // FS
	0x0000, 0xffff, // GS
	0xffff, 0x0000, // RS
	0xffff, 0xffff, // US
	0x0000, 0x0000, // Space
	0x00bf, 0x0000, // !
	0x0300, 0x0300, // "
	0x3e14, 0x3e00, // #
	0x4cd6, 0x6400, // $
	0xc238, 0x8600, // %
	0x6c52, 0xeca0, // &
	0x0002, 0x0100, // '
	0x3c42, 0x8100, // (
	0x8142, 0x3c00, // )
	0x0a04, 0x0a00, // *
	0x081c, 0x0800, // +
	0x0080, 0x4000, // ,
	0x0808, 0x0800, // -
	0x0080, 0x0000, // .
	0xc038, 0x0600, // /
	0x7c92, 0x7c00, // 0
	0x82fe, 0x8000, // 1
	0xc4a2, 0x9c00, // 2
	0x8292, 0x6c00, // 3
	0x1e10, 0xfe00, // 4
	0x9e92, 0x6200, // 5
	0x7c92, 0x6400, // 6
	0xc232, 0x0e00, // 7
	0x6c92, 0x6c00, // 8
	0x4c92, 0x7c00, // 9
	0x0048, 0x0000, // :
	0x0080, 0x4800, // ;
	0x1028, 0x4400, // <
	0x2424, 0x2400, // =
	0x4428, 0x1000, // >
	0x02b1, 0x0e00, // ?
	0x7cb2, 0xbc00, // @
	0xfc12, 0xfc00, // A
	0xfe92, 0x6c00, // B
	0x7c82, 0x4400, // C
	0xfe82, 0x7c00, // D
	0xfe92, 0x9200, // E
	0xfe12, 0x1200, // F
	0x7c82, 0xe400, // G
	0xfe10, 0xfe00, // H
	0x82fe, 0x8200, // I
	0x4282, 0xfe00, // J
	0xfe10, 0xee00, // K
	0xfe80, 0x8000, // L
	0xfe0c, 0xfe00, // M
	0xfe02, 0xfc00, // N
	0x7c82, 0x7c00, // O
	0xfe12, 0x0c00, // P
	0x7cc2, 0xfc00, // Q
	0xfe12, 0xec00, // R
	0x8c92, 0x6200, // S
	0x02fe, 0x0200, // T
	0x7e80, 0x7e00, // U
	0x3ec0, 0x3e00, // V
	0xfe60, 0xfe00, // W
	0xee10, 0xee00, // X
	0x0ef0, 0x0e00, // Y
	0xe292, 0x8e00, // Z
	0xfe82, 0x0000, // [
	0x0638, 0xc000, // backslash
	0x0082, 0xfe00, // ]
	0x0402, 0x0400, // ^
	0x8080, 0x8000, // _
	0x0204, 0x0000, // `
	0x48a8, 0xf800, // a
	0xfe88, 0x7000, // b
	0x7088, 0x5000, // c
	0x7088, 0xfe00, // d
	0x70a8, 0xb000, // e
	0x10fc, 0x1200, // f
	0x90a8, 0x7800, // g
	0xfe08, 0xf000, // h
	0x88fa, 0x8000, // i
	0x4080, 0x7a00, // j
	0xfe20, 0xd800, // k
	0x82fe, 0x8000, // l
	0xf830, 0xf800, // m
	0xf808, 0xf000, // n
	0x7088, 0x7000, // o
	0xf828, 0x1000, // p
	0x1028, 0xf800, // q
	0xf808, 0x1000, // r
	0x90a8, 0x4800, // s
	0x08fc, 0x8800, // t
	0x7880, 0xf800, // u
	0x38c0, 0x3800, // v
	0xf860, 0xf800, // w
	0xd820, 0xd800, // x
	0x98a0, 0x7800, // y
	0xc8a8, 0x9800, // z
	0x106c, 0x8200, // {
	0x00ee, 0x0000, // |
	0x826c, 0x1000, // }
	0x0402, 0x0402, // ~
	0x0205, 0x0200, // DEL
}

// Built in 16 color palette, 0x0rgb words.
var defaultPalette = [16]uint16{
	0x0000, 0x000a, 0x00a0, 0x00aa,
	0x0a00, 0x0a0a, 0x0a50, 0x0aaa,
	0x0555, 0x055f, 0x05f5, 0x05ff,
	0x0f55, 0x0f5f, 0x0ff5, 0x0fff,
}
