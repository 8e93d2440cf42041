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
package merge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bennypowers.dev/mcshader-lsp/includegraph"
	"bennypowers.dev/mcshader-lsp/shaderpack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePack(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func TestMergeLiftsVersionAndInjectsMacros(t *testing.T) {
	pack := writePack(t, map[string]string{
		"composite.fsh": "#include \"/lib/common.glsl\"\n#version 120\nvoid main() {}\n",
		"lib/common.glsl": "float one() { return 1.0; }\n",
	})
	entry := filepath.Join(pack, "composite.fsh")

	g := includegraph.NewGraph(nil)
	require.NoError(t, g.UpsertEntry(pack, entry, shaderpack.StageFragment))

	result, err := Merge(g, entry)
	require.NoError(t, err)

	lines := strings.Split(result.Source, "\n")
	require.True(t, len(lines) > 2)
	assert.Equal(t, "#version 120", lines[0])
	assert.Contains(t, result.Source, "#define MC_VERSION 11900")
	assert.Contains(t, result.Source, "#line 1 0\t// "+entry)
	assert.Contains(t, result.Source, "#line 1 1\t// "+filepath.Join(pack, "lib", "common.glsl"))
	assert.Contains(t, result.Source, "float one() { return 1.0; }")
	assert.Equal(t, 1, strings.Count(result.Source, "#version"))

	assert.Equal(t, entry, result.Tokens[0])
	assert.Equal(t, filepath.Join(pack, "lib", "common.glsl"), result.Tokens[1])
}

func TestMergeProducesExactScenario1Output(t *testing.T) {
	pack := writePack(t, map[string]string{
		"composite.fsh": "#version 120\n#include \"util.glsl\"\nvoid main(){}\n",
		"util.glsl":     "float f(){return 1.0;}\n",
	})
	entry := filepath.Join(pack, "composite.fsh")
	include := filepath.Join(pack, "util.glsl")

	g := includegraph.NewGraph(nil)
	require.NoError(t, g.UpsertEntry(pack, entry, shaderpack.StageFragment))

	result, err := Merge(g, entry)
	require.NoError(t, err)

	expected := "#version 120\n" +
		optifineMacros +
		"#line 1 0\t// " + entry + "\n" +
		"#line 1 1\t// " + include + "\n" +
		"float f(){return 1.0;}\n" +
		"#line 3 0\t// " + entry + "\n" +
		"void main(){}\n"

	assert.Equal(t, expected, result.Source)
}

func TestMergeTempFlattensBufferOutsideAnyPack(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "scratch.fsh")

	g := includegraph.NewGraph(nil)
	rec := includegraph.NewTempRecord(path, "", shaderpack.StageFragment)
	rec.Content = "#version 120\nvoid main(){}\n"

	result, err := MergeTemp(g, rec)
	require.NoError(t, err)
	assert.Contains(t, result.Source, "#version 120")
	assert.Contains(t, result.Source, "#line 1 0\t// "+path)
	assert.Contains(t, result.Source, "void main(){}")
}

func TestMergeTempRejectsUnrecognizedStage(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "notes.txt")

	g := includegraph.NewGraph(nil)
	rec := includegraph.NewTempRecord(path, "", shaderpack.StageNone)
	rec.Content = "just some text\n"

	_, err := MergeTemp(g, rec)
	assert.ErrorIs(t, err, includegraph.ErrNotAShaderEntry)
}

func TestMergeSkipsMacrosUnderDebugPackParent(t *testing.T) {
	root := t.TempDir()
	pack := filepath.Join(root, "debug", "shaders")
	require.NoError(t, os.MkdirAll(pack, 0o755))
	entry := filepath.Join(pack, "composite.fsh")
	require.NoError(t, os.WriteFile(entry, []byte("#version 120\nvoid main(){}\n"), 0o644))

	g := includegraph.NewGraph(nil)
	require.NoError(t, g.UpsertEntry(pack, entry, shaderpack.StageFragment))

	result, err := Merge(g, entry)
	require.NoError(t, err)
	assert.NotContains(t, result.Source, "MC_VERSION")
}

func TestMergeStripsAuthoredLineDirectives(t *testing.T) {
	pack := writePack(t, map[string]string{
		"composite.fsh": "#line 5\nvoid main(){}\n",
	})
	entry := filepath.Join(pack, "composite.fsh")

	g := includegraph.NewGraph(nil)
	require.NoError(t, g.UpsertEntry(pack, entry, shaderpack.StageFragment))

	result, err := Merge(g, entry)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(result.Source, "#line"))
}

func TestMergeCopiesUnresolvableIncludeLineThrough(t *testing.T) {
	pack := writePack(t, map[string]string{
		"composite.fsh": "#include \"/missing.glsl\"\nvoid main(){}\n",
	})
	entry := filepath.Join(pack, "composite.fsh")

	g := includegraph.NewGraph(nil)
	require.NoError(t, g.UpsertEntry(pack, entry, shaderpack.StageFragment))

	result, err := Merge(g, entry)
	require.NoError(t, err)
	assert.Contains(t, result.Source, `#include "/missing.glsl"`)
}
