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

	"bennypowers.dev/mcshader-lsp/shaderpack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempFileStoreOpenScansIncludesAndIsReplaceable(t *testing.T) {
	s := NewTempFileStore()
	r := s.Open("/tmp/scratch.fsh", "", shaderpack.StageFragment, "#include \"/lib/common.glsl\"\nvoid main(){}\n")
	require.NotNil(t, r)
	require.Len(t, r.IncludesOut, 1)
	assert.Equal(t, "/lib/common.glsl", r.IncludesOut[0].RawPath)

	updated := s.Update("/tmp/scratch.fsh", "void main(){}\n")
	require.NotNil(t, updated)
	assert.Empty(t, updated.IncludesOut)
	assert.Same(t, r, updated)
}

func TestTempFileStoreUpdateIsNoopWhenNotOpen(t *testing.T) {
	s := NewTempFileStore()
	assert.Nil(t, s.Update("/tmp/never-opened.fsh", "void main(){}\n"))
}

func TestTempFileStoreCloseForgetsRecord(t *testing.T) {
	s := NewTempFileStore()
	s.Open("/tmp/scratch.fsh", "", shaderpack.StageFragment, "void main(){}\n")
	s.Close("/tmp/scratch.fsh")
	assert.Nil(t, s.Lookup("/tmp/scratch.fsh"))
}
