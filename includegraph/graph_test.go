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
	"os"
	"path/filepath"
	"strconv"
	"testing"

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

func TestUpsertEntryBuildsBidirectionalEdges(t *testing.T) {
	pack := writePack(t, map[string]string{
		"composite.fsh": "#version 120\n#include \"/util.glsl\"\n",
		"util.glsl":     "float f() { return 1.0; }\n",
	})
	entry := filepath.Join(pack, "composite.fsh")
	include := filepath.Join(pack, "util.glsl")

	g := NewGraph(nil)
	require.NoError(t, g.UpsertEntry(pack, entry, shaderpack.StageFragment))

	entryRec := g.Lookup(entry)
	includeRec := g.Lookup(include)
	require.NotNil(t, entryRec)
	require.NotNil(t, includeRec)

	// INV-1: bidirectional edges.
	assert.Len(t, entryRec.IncludesOut, 1)
	assert.Equal(t, include, entryRec.IncludesOut[0].ResolvedPath)
	assert.True(t, includeRec.IncludesIn[entry])

	// INV-2: parent-shader closure.
	assert.True(t, includeRec.ParentShaders[entry])
	assert.True(t, entryRec.ParentShaders[entry])
}

func TestReconcileIncludesDropsRemovedEdge(t *testing.T) {
	pack := writePack(t, map[string]string{
		"composite.fsh": "#version 120\n#include \"/util.glsl\"\n",
		"util.glsl":     "float f() { return 1.0; }\n",
	})
	entry := filepath.Join(pack, "composite.fsh")
	include := filepath.Join(pack, "util.glsl")

	g := NewGraph(nil)
	require.NoError(t, g.UpsertEntry(pack, entry, shaderpack.StageFragment))
	require.True(t, g.Lookup(include).IncludesIn[entry])

	require.NoError(t, g.ApplyEdit(entry, []Edit{
		{StartLine: 0, StartCol: 0, OldLength: len("#version 120\n#include \"/util.glsl\"\n"), Replacement: "#version 120\n"},
	}))

	includeRec := g.Lookup(include)
	require.NotNil(t, includeRec)
	assert.False(t, includeRec.IncludesIn[entry])
	assert.False(t, includeRec.ParentShaders[entry])

	entryRec := g.Lookup(entry)
	assert.Empty(t, entryRec.IncludesOut)
}

func TestParentShaderClosureAcrossTwoEntries(t *testing.T) {
	pack := writePack(t, map[string]string{
		"composite.fsh": "#include \"/shared.glsl\"\n",
		"final.fsh":     "#include \"/shared.glsl\"\n",
		"shared.glsl":   "// nothing\n",
	})
	entryA := filepath.Join(pack, "composite.fsh")
	entryB := filepath.Join(pack, "final.fsh")
	shared := filepath.Join(pack, "shared.glsl")

	g := NewGraph(nil)
	require.NoError(t, g.UpsertEntry(pack, entryA, shaderpack.StageFragment))
	require.NoError(t, g.UpsertEntry(pack, entryB, shaderpack.StageFragment))

	sharedRec := g.Lookup(shared)
	require.NotNil(t, sharedRec)
	assert.True(t, sharedRec.ParentShaders[entryA])
	assert.True(t, sharedRec.ParentShaders[entryB])
}

func TestReloadFromDiskMarksMissingFileUnknown(t *testing.T) {
	pack := writePack(t, map[string]string{
		"composite.fsh": "#include \"/gone.glsl\"\n",
		"gone.glsl":      "// will be deleted\n",
	})
	entry := filepath.Join(pack, "composite.fsh")
	gone := filepath.Join(pack, "gone.glsl")

	g := NewGraph(nil)
	require.NoError(t, g.UpsertEntry(pack, entry, shaderpack.StageFragment))
	require.NoError(t, os.Remove(gone))

	require.NoError(t, g.ReloadFromDisk(gone))
	rec := g.Lookup(gone)
	require.NotNil(t, rec)
	assert.Equal(t, "", rec.Content)
}

func TestGCRemovesOrphanedMissingFile(t *testing.T) {
	pack := writePack(t, map[string]string{
		"composite.fsh": "#include \"/gone.glsl\"\n",
		"gone.glsl":      "// will be deleted\n",
	})
	entry := filepath.Join(pack, "composite.fsh")
	gone := filepath.Join(pack, "gone.glsl")

	g := NewGraph(nil)
	require.NoError(t, g.UpsertEntry(pack, entry, shaderpack.StageFragment))

	require.NoError(t, os.Remove(gone))
	require.NoError(t, g.ApplyEdit(entry, []Edit{
		{StartLine: 0, StartCol: 0, OldLength: len("#include \"/gone.glsl\"\n"), Replacement: ""},
	}))

	g.GC()
	assert.Nil(t, g.Lookup(gone))
}

func TestDepthGuardStopsRunawayChains(t *testing.T) {
	const chainLength = 20
	files := map[string]string{}
	for i := 0; i < chainLength; i++ {
		next := "level" + strconv.Itoa(i+1) + ".glsl"
		files["level"+strconv.Itoa(i)+".glsl"] = "#include \"" + next + "\"\n"
	}
	files["level"+strconv.Itoa(chainLength)+".glsl"] = "// leaf\n"
	files["composite.fsh"] = "#include \"level0.glsl\"\n"

	pack := writePack(t, files)
	entry := filepath.Join(pack, "composite.fsh")

	g := NewGraph(nil)
	require.NoError(t, g.UpsertEntry(pack, entry, shaderpack.StageFragment))

	// Near the root, parent-shader propagation must have run.
	near := g.Lookup(filepath.Join(pack, "level1.glsl"))
	require.NotNil(t, near)
	assert.True(t, near.ParentShaders[entry])

	// A chain twice the depth bound must not have been traversed all the
	// way to its tail: nodes that deep were never reached by reconcile,
	// so they were never created.
	tail := g.Lookup(filepath.Join(pack, "level"+strconv.Itoa(chainLength)+".glsl"))
	assert.Nil(t, tail)
}

func TestDepthGuardHandlesSelfCycleWithoutHanging(t *testing.T) {
	pack := writePack(t, map[string]string{
		"composite.fsh": "#include \"/loop.glsl\"\n",
		"loop.glsl":      "#include \"/loop.glsl\"\n",
	})
	entry := filepath.Join(pack, "composite.fsh")

	g := NewGraph(nil)
	require.NoError(t, g.UpsertEntry(pack, entry, shaderpack.StageFragment))

	loop := g.Lookup(filepath.Join(pack, "loop.glsl"))
	require.NotNil(t, loop)
	assert.True(t, loop.ParentShaders[entry])
}

