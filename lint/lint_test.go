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
package lint

import (
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/mcshader-lsp/driver"
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

func TestLintForChangedFilesReplacesEntrySliceAndPublishesUnion(t *testing.T) {
	pack := writePack(t, map[string]string{
		"composite.fsh":   "#include \"/lib/common.glsl\"\nvoid main(){}\n",
		"lib/common.glsl": "float one() { return 1.0; }\n",
	})
	entry := filepath.Join(pack, "composite.fsh")
	include := filepath.Join(pack, "lib", "common.glsl")

	g := includegraph.NewGraph(nil)
	require.NoError(t, g.UpsertEntry(pack, entry, shaderpack.StageFragment))

	fake := driver.NewFakeDriver("NVIDIA Corporation")
	fake.LogFor = func(stage shaderpack.Stage, source string) (string, bool) {
		return "1(1) : error C1008: undefined variable \"foo\"", false
	}

	o := New(g, fake)
	published, err := o.LintForChangedFiles([]string{include})
	require.NoError(t, err)

	require.Contains(t, published, include)
	require.Len(t, published[include], 1)
	assert.Equal(t, "error", published[include][0].Severity)
	assert.Contains(t, published[include][0].Message, "from file: "+entry)

	assert.Contains(t, g.Lookup(include).Diagnostics, entry)
}

func TestLintForChangedFilesReturnsEmptyListForNoEntriesUpstream(t *testing.T) {
	pack := writePack(t, map[string]string{
		"lib/orphan.glsl": "float orphan() { return 0.0; }\n",
	})
	orphan := filepath.Join(pack, "lib", "orphan.glsl")

	g := includegraph.NewGraph(nil)
	fake := driver.NewFakeDriver("NVIDIA Corporation")
	o := New(g, fake)

	published, err := o.LintForChangedFiles([]string{orphan})
	require.NoError(t, err)
	require.Contains(t, published, orphan)
	assert.Empty(t, published[orphan])
	assert.Empty(t, fake.Calls())
}

func TestLintForChangedFilesReplacesNotAccumulatesOnRelint(t *testing.T) {
	pack := writePack(t, map[string]string{
		"composite.fsh": "void main(){}\n",
	})
	entry := filepath.Join(pack, "composite.fsh")

	g := includegraph.NewGraph(nil)
	require.NoError(t, g.UpsertEntry(pack, entry, shaderpack.StageFragment))

	fake := driver.NewFakeDriver("NVIDIA Corporation")
	fake.LogFor = func(stage shaderpack.Stage, source string) (string, bool) {
		return "0(1) : error C1008: first failure", false
	}
	o := New(g, fake)

	_, err := o.LintForChangedFiles([]string{entry})
	require.NoError(t, err)
	require.Len(t, g.Lookup(entry).Diagnostics[entry], 1)

	fake.LogFor = func(stage shaderpack.Stage, source string) (string, bool) {
		return "", true
	}
	published, err := o.LintForChangedFiles([]string{entry})
	require.NoError(t, err)
	assert.Empty(t, published[entry])
	assert.Empty(t, g.Lookup(entry).Diagnostics[entry])
}

func TestLintForChangedFilesUnionsDiagnosticsFromMultipleEntriesSharingAnInclude(t *testing.T) {
	pack := writePack(t, map[string]string{
		"composite.fsh": "#include \"/lib/common.glsl\"\nvoid main(){}\n",
		"deferred.fsh":   "#include \"/lib/common.glsl\"\nvoid main(){}\n",
		"lib/common.glsl": "float one() { return 1.0; }\n",
	})
	entryA := filepath.Join(pack, "composite.fsh")
	entryB := filepath.Join(pack, "deferred.fsh")
	include := filepath.Join(pack, "lib", "common.glsl")

	g := includegraph.NewGraph(nil)
	require.NoError(t, g.UpsertEntry(pack, entryA, shaderpack.StageFragment))
	require.NoError(t, g.UpsertEntry(pack, entryB, shaderpack.StageFragment))

	fake := driver.NewFakeDriver("NVIDIA Corporation")
	fake.LogFor = func(stage shaderpack.Stage, source string) (string, bool) {
		return "1(1) : error C1008: shared bug", false
	}
	o := New(g, fake)

	published, err := o.LintForChangedFiles([]string{include})
	require.NoError(t, err)
	assert.Len(t, published[include], 2)
}
