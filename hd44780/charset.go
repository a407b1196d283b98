// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Glyphs of the A00 (Japanese) character ROM outside of ASCII.
var romA00 = map[rune]byte{
	'¥': 0x5c,
	'→': 0x7e,
	'←': 0x7f,
	'°': 0xdf,
	'α': 0xe0,
	'ä': 0xe1,
	'β': 0xe2,
	'ß': 0xe2,
	'ε': 0xe3,
	'µ': 0xe4,
	'μ': 0xe4,
	'σ': 0xe5,
	'ρ': 0xe6,
	'√': 0xe8,
	'¢': 0xec,
	'ñ': 0xee,
	'ö': 0xef,
	'θ': 0xf2,
	'∞': 0xf3,
	'Ω': 0xf4,
	'ü': 0xf5,
	'Σ': 0xf6,
	'π': 0xf7,
	'÷': 0xfd,
	'█': 0xff,
}

// Encode converts text to A00 character codes, one byte per rune. Glyphs the
// ROM has are used directly, accented letters lose their accent, and anything
// else becomes '?'. Control characters other than '\n' become spaces.
func Encode(text string) []byte {
	strip := foldAccents()
	out := make([]byte, 0, len(text))
	for _, r := range text {
		out = append(out, encodeRune(strip, r))
	}
	return out
}

// foldAccents removes combining marks, turning "é" into "e".
func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func encodeRune(strip transform.Transformer, r rune) byte {
	if r == '\n' {
		return '\n'
	}
	if r < 0x20 || r == 0x7f {
		return ' '
	}
	if r < utf8.RuneSelf {
		return byte(r)
	}
	if b, ok := romA00[r]; ok {
		return b
	}
	s, _, err := transform.String(strip, string(r))
	if err == nil && len(s) == 1 && s[0] >= 0x20 && s[0] < 0x7f {
		return s[0]
	}
	return '?'
}
