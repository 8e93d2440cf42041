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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinIncludePath(t *testing.T) {
	joined, err := JoinIncludePath(filepath.Join("pack", "shaders", "world0"), "../util.glsl")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("pack", "shaders", "util.glsl"), joined)

	joined, err = JoinIncludePath(filepath.Join("pack", "shaders"), "./lib/common.glsl")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("pack", "shaders", "lib", "common.glsl"), joined)

	_, err = JoinIncludePath("pack", "../../escape.glsl")
	assert.ErrorIs(t, err, ErrInvalidIncludePath)
}

func TestMatchIncludeLine(t *testing.T) {
	m, ok := MatchIncludeLine(`  #include "/lib/common.glsl"`)
	require.True(t, ok)
	assert.Equal(t, "/lib/common.glsl", m.RawPath)
	assert.True(t, m.IsAbsolute)
	assert.False(t, m.IsMojImport)

	m, ok = MatchIncludeLine(`#moj_import util`)
	require.True(t, ok)
	assert.Equal(t, "util", m.RawPath)
	assert.True(t, m.IsMojImport)

	_, ok = MatchIncludeLine(`float f() { return 1.0; }`)
	assert.False(t, ok)
}

func TestResolveIncludeRelativeAndAbsolute(t *testing.T) {
	pack := filepath.Join("root", "shaders")
	dir := filepath.Join(pack, "world0")

	m := IncludeMatch{RawPath: "../composite.fsh"}
	resolved, err := ResolveInclude(m, pack, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(pack, "composite.fsh"), resolved)

	m = IncludeMatch{RawPath: "/lib/common.glsl", IsAbsolute: true}
	resolved, err = ResolveInclude(m, pack, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(pack, "lib", "common.glsl"), resolved)

	m = IncludeMatch{RawPath: "util", IsMojImport: true}
	resolved, err = ResolveInclude(m, pack, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(pack, "include", "util"), resolved)
}

func TestIsLineDirectiveAndVersionDirective(t *testing.T) {
	assert.True(t, IsLineDirective("  #line 1 0"))
	assert.False(t, IsLineDirective("#version 120"))
	assert.True(t, IsVersionDirective("#version 120"))
	assert.False(t, IsVersionDirective("  #line 1 0"))
}
