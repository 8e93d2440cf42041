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
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decodeToUTF8 returns data as a UTF-8 string, transcoding from
// Windows-1252 first if data isn't already valid UTF-8. Optifine/Iris
// packs are routinely authored on Windows text editors that default to
// that encoding for comments containing non-ASCII punctuation or
// accented author names; without this, such a file's content would
// carry mis-decoded bytes all the way into #line-addressed diagnostics
// and document sync.
func decodeToUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
