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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildLineIndexAndByteOffset(t *testing.T) {
	content := "line0\nline1\nline2\n"
	idx := BuildLineIndex(content)
	assert.Equal(t, []int{0, 6, 12, 18}, idx)

	assert.Equal(t, 6, ByteOffset(idx, 1, 0, len(content)))
	assert.Equal(t, 8, ByteOffset(idx, 1, 2, len(content)))
}

func TestByteOffsetClampsOutOfRangeLineToContentLength(t *testing.T) {
	content := "line0\nline1\n"
	idx := BuildLineIndex(content)

	assert.Equal(t, len(content), ByteOffset(idx, 99, 0, len(content)))
	assert.Equal(t, len(content), ByteOffset(idx, -1, 0, len(content)))
}

func TestUTF16ColumnRoundTripsThroughMultiByteRunes(t *testing.T) {
	// "é" is 2 bytes in UTF-8 but 1 UTF-16 code unit; "𝔘" (U+1D518) is 4
	// bytes in UTF-8 and 2 UTF-16 code units (a surrogate pair).
	line := "é𝔘x"
	byteColAfterEmoji := len("é𝔘")

	utf16Col := UTF16Column(line, byteColAfterEmoji)
	assert.Equal(t, 3, utf16Col) // 1 (é) + 2 (surrogate pair)

	backToBytes := ByteColumn(line, utf16Col)
	assert.Equal(t, byteColAfterEmoji, backToBytes)
}
