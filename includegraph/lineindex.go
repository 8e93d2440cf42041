/*
Copyright © 2025 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package includegraph

import "unicode/utf16"

// BuildLineIndex returns the byte offset of the start of each line in
// content, matching generate_line_mapping: index 0 is always 0, and a new
// entry is pushed for the byte immediately after every '\n'.
func BuildLineIndex(content string) []int {
	index := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			index = append(index, i+1)
		}
	}
	return index
}

// ByteOffset translates a (line, column-in-bytes) pair to an absolute byte
// offset into content using a precomputed line index. contentLen is the
// length of the content lineIndex was built from; an out-of-range line
// (a client-supplied position past the end of the document) clamps to
// contentLen rather than returning the line count, which is not a byte
// offset at all.
func ByteOffset(lineIndex []int, line, col, contentLen int) int {
	if line < 0 || line >= len(lineIndex) {
		return contentLen
	}
	offset := lineIndex[line] + col
	if offset > contentLen {
		return contentLen
	}
	return offset
}

// UTF16Column converts a byte column on a given line to a UTF-16 code-unit
// column, as required at the LSP surface (§4.3): line_index and
// includes_out store byte offsets, but protocol.Position.Character is
// UTF-16 code units.
func UTF16Column(lineText string, byteCol int) int {
	if byteCol > len(lineText) {
		byteCol = len(lineText)
	}
	units := utf16.Encode([]rune(lineText[:byteCol]))
	return len(units)
}

// ByteColumn is the inverse of UTF16Column: given a line of text and a
// UTF-16 code-unit column from the client, returns the corresponding byte
// column.
func ByteColumn(lineText string, utf16Col int) int {
	units := utf16.Encode([]rune(lineText))
	if utf16Col > len(units) {
		utf16Col = len(units)
	}
	runes := utf16.Decode(units[:utf16Col])
	return len(string(runes))
}
