package lexer

import "unicode"

// Letters is the set of characters that form identifiers.
var Letters = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0041, Hi: 0x005A, Stride: 1}, // Basic Latin upper case
		{Lo: 0x0061, Hi: 0x007A, Stride: 1}, // Basic Latin lower case
		{Lo: 0x00C0, Hi: 0x00D6, Stride: 1}, // Latin-1 Supplement
		{Lo: 0x00D8, Hi: 0x00F6, Stride: 1},
		{Lo: 0x00F8, Hi: 0x00FF, Stride: 1},
		{Lo: 0x0100, Hi: 0x017F, Stride: 1}, // Latin Extended-A
		{Lo: 0x0180, Hi: 0x024F, Stride: 1}, // Latin Extended-B
		{Lo: 0x0250, Hi: 0x02AF, Stride: 1}, // IPA Extensions
		{Lo: 0x0370, Hi: 0x0373, Stride: 1}, // Greek and Coptic
		{Lo: 0x0376, Hi: 0x0377, Stride: 1},
		{Lo: 0x037B, Hi: 0x037D, Stride: 1},
		{Lo: 0x037F, Hi: 0x037F, Stride: 1},
		{Lo: 0x0386, Hi: 0x0386, Stride: 1},
		{Lo: 0x0388, Hi: 0x038A, Stride: 1},
		{Lo: 0x038C, Hi: 0x038C, Stride: 1},
		{Lo: 0x038E, Hi: 0x03A1, Stride: 1},
		{Lo: 0x03A3, Hi: 0x03FF, Stride: 1},
		{Lo: 0x0400, Hi: 0x04FF, Stride: 1}, // Cyrillic
		{Lo: 0x0500, Hi: 0x052F, Stride: 1}, // Cyrillic Supplement
	},
	LatinOffset: 5,
}

// Digits is the set of characters that form numbers.
var Digits = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0030, Hi: 0x0039, Stride: 1},
	},
	LatinOffset: 1,
}

// Spaces is the set of characters that separate tokens: ASCII control
// characters and space.
var Spaces = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0000, Hi: 0x0020, Stride: 1},
	},
	LatinOffset: 1,
}

// DecimalSeparator may appear once inside a number, after at least one digit.
const DecimalSeparator = '.'
