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
package shaderpack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanRootFindsTopLevelAndDimensionEntries(t *testing.T) {
	root := t.TempDir()
	pack := filepath.Join(root, "project", "shaders")
	writeFile(t, filepath.Join(pack, "composite.fsh"), "#version 120\n")
	writeFile(t, filepath.Join(pack, "util.glsl"), "float f(){return 1.0;}\n")
	writeFile(t, filepath.Join(pack, "world-1", "composite.fsh"), "#version 120\n")
	writeFile(t, filepath.Join(pack, "world-1", "not_an_entry.glsl"), "\n")

	entries, err := ScanRoot(root)
	require.NoError(t, err)

	var paths []string
	for _, e := range entries {
		paths = append(paths, e.Path)
		assert.Equal(t, pack, e.PackPath)
	}
	assert.Contains(t, paths, filepath.Join(pack, "composite.fsh"))
	assert.Contains(t, paths, filepath.Join(pack, "world-1", "composite.fsh"))
	assert.NotContains(t, paths, filepath.Join(pack, "util.glsl"))
	assert.NotContains(t, paths, filepath.Join(pack, "world-1", "not_an_entry.glsl"))
}

func TestScanRootIgnoresTwoDimensionLevelsDeep(t *testing.T) {
	root := t.TempDir()
	pack := filepath.Join(root, "shaders")
	writeFile(t, filepath.Join(pack, "world-1", "sub", "composite.fsh"), "#version 120\n")

	entries, err := ScanRoot(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClassifyNewFile(t *testing.T) {
	pack := filepath.Join(string(os.PathSeparator), "p", "shaders")

	entry, ok := ClassifyNewFile(filepath.Join(pack, "composite.fsh"), pack)
	require.True(t, ok)
	assert.Equal(t, StageFragment, entry.Stage)

	entry, ok = ClassifyNewFile(filepath.Join(pack, "world-1", "deferred.vsh"), pack)
	require.True(t, ok)
	assert.Equal(t, StageVertex, entry.Stage)

	_, ok = ClassifyNewFile(filepath.Join(pack, "world-1", "extra", "deferred.vsh"), pack)
	assert.False(t, ok)

	_, ok = ClassifyNewFile(filepath.Join(pack, "util.glsl"), pack)
	assert.False(t, ok)
}
