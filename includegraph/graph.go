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

// Package includegraph tracks the workspace file records of a shader
// pack: entry shaders, their transitive includes, and the edges between
// them, kept current under edits, saves, and watched-file events.
package includegraph

import (
	"os"
	"sync"

	"bennypowers.dev/mcshader-lsp/internal/logging"
	"bennypowers.dev/mcshader-lsp/internal/platform"
	"bennypowers.dev/mcshader-lsp/shaderpack"
)

// maxIncludeDepth bounds both forward resolution and parent-shader
// propagation (INV-3): edges beyond this depth are recorded but not
// followed, so runaway cycles cannot cause unbounded work.
const maxIncludeDepth = 10

// Graph holds every tracked workspace file record. All mutation is
// serialized by a single mutex covering the whole graph (§5): unlike
// the teacher's module graph, there is no separate reader/writer
// distinction here, because every façade operation that touches the
// graph at all ends up needing to read-after-write within the same
// call (e.g. reconcile_includes immediately consults what upsert_entry
// just wrote).
type Graph struct {
	mu    sync.Mutex
	files map[string]*Record

	// parser, if set, is used to produce/update Tree values on edits.
	// It is nil in tests that don't care about navigation queries.
	parser Parser

	// fs abstracts disk access so tests (and, eventually, non-native
	// hosts) can substitute a mock filesystem instead of the real one.
	fs platform.FileSystem
}

// NewGraph returns an empty graph backed by the real OS filesystem.
// parser may be nil.
func NewGraph(parser Parser) *Graph {
	return NewGraphWithFS(parser, platform.NewOSFileSystem())
}

// NewGraphWithFS returns an empty graph backed by fs, for tests that need
// to observe or fake disk access.
func NewGraphWithFS(parser Parser, fs platform.FileSystem) *Graph {
	return &Graph{
		files:  make(map[string]*Record),
		parser: parser,
		fs:     fs,
	}
}

// Lookup returns a defensive copy-free pointer to the record at path, or
// nil. Callers must treat the returned Record as read-only; Graph methods
// are the only sanctioned mutators.
func (g *Graph) Lookup(path string) *Record {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.files[path]
}

// Entries returns every currently tracked entry-shader record.
func (g *Graph) Entries() []*Record {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []*Record
	for _, r := range g.files {
		if r.Kind == KindEntry {
			out = append(out, r)
		}
	}
	return out
}

// AllRecords returns every currently tracked record, entries and plain
// includes alike. Used where a path prefix (a renamed or deleted
// directory) must be matched against the whole tree, not just entries.
func (g *Graph) AllRecords() []*Record {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*Record, 0, len(g.files))
	for _, r := range g.files {
		out = append(out, r)
	}
	return out
}

// UpsertEntry implements upsert_entry: if the record exists, upgrade its
// kind to entry (recomputing parent_shaders to include itself);
// otherwise create it and read its content from disk. Either way,
// reconcile_includes is then run.
func (g *Graph) UpsertEntry(pack, path string, stage shaderpack.Stage) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.files[path]
	if !ok {
		content, missing, err := g.readFileOrEmptyLocked(path)
		if err != nil {
			return err
		}
		r = newRecord(path, pack, KindEntry)
		r.Missing = missing
		g.setContentLocked(r, content)
	}
	wasAlreadyParent := r.ParentShaders[path]
	r.Kind = KindEntry
	r.Stage = stage
	r.ParentShaders[path] = true
	g.files[path] = r

	if !wasAlreadyParent {
		// r may already have resolved includes from a prior scan (it
		// existed as an include record); those existing children need
		// the newly-added self-parent-shader union too, since
		// reconcileIncludesLocked below only propagates additions for
		// edges that are themselves new.
		for _, ref := range r.IncludesOut {
			if ref.ResolvedPath == "" {
				continue
			}
			if child, ok := g.files[ref.ResolvedPath]; ok {
				g.unionParentShadersLocked(child, map[string]bool{path: true}, 1)
			}
		}
	}

	return g.reconcileIncludesLocked(r, 0)
}

// ApplyEdit implements apply_edit: translate each change's range to byte
// offsets via the record's current line_index, apply replacements in
// order, recompute content/tree/line_index atomically (INV-4), then
// reconcile includes.
func (g *Graph) ApplyEdit(path string, changes []Edit) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.files[path]
	if !ok {
		return ErrUnknownFile
	}
	content := r.Content
	for _, change := range changes {
		start := ByteOffset(r.LineIndex, change.StartLine, change.StartCol, len(content))
		end := start + change.OldLength
		if start > len(content) {
			start = len(content)
		}
		if end > len(content) {
			end = len(content)
		}
		if end < start {
			end = start
		}
		content = content[:start] + change.Replacement + content[end:]
		// Recompute the line index after every change so a multi-edit
		// batch translates each subsequent range against up-to-date
		// line starts, matching the original's sequential-apply model.
		r.LineIndex = BuildLineIndex(content)
	}
	g.setContentLocked(r, content)
	return g.reconcileIncludesLocked(r, 0)
}

// Edit is one (range, replacement, old_length) change, with the range
// already expressed in byte line/column terms (the façade is responsible
// for translating from LSP's UTF-16 columns before calling ApplyEdit).
type Edit struct {
	StartLine   int
	StartCol    int
	OldLength   int
	Replacement string
}

// ReloadFromDisk implements reload_from_disk: replace content with the
// on-disk bytes, or empty (marking kind unknown) if the file is missing.
func (g *Graph) ReloadFromDisk(path string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.files[path]
	if !ok {
		return ErrUnknownFile
	}
	content, err := g.fs.ReadFile(path)
	if err != nil {
		r.Kind = KindUnknown()
		r.Missing = true
		g.setContentLocked(r, "")
		return g.reconcileIncludesLocked(r, 0)
	}
	r.Missing = false
	g.setContentLocked(r, decodeToUTF8(content))
	return g.reconcileIncludesLocked(r, 0)
}

// KindUnknown exists only so ReloadFromDisk's "mark kind as unknown"
// language reads naturally; there is no third FileKind constant beyond
// KindInclude/KindEntry because an "unknown" record is, structurally, an
// include record with no resolvable content — spec.md §3 treats "unknown"
// as a lifecycle state of a kind-include record, not a distinct kind.
func KindUnknown() FileKind { return KindInclude }

// setContentLocked updates content, tree, and line_index together
// (INV-4). Caller must hold g.mu.
func (g *Graph) setContentLocked(r *Record, content string) {
	r.Content = content
	r.LineIndex = BuildLineIndex(content)
	if g.parser != nil {
		if tree, err := g.parser.Parse(content, r.Tree); err == nil {
			r.Tree = tree
		} else {
			logging.Warning("includegraph: parse failed for %s: %v", r.Path, err)
		}
	}
}

// ReconcileIncludes implements reconcile_includes. Exported for façade
// callers that need to force a re-scan without going through ApplyEdit
// (e.g. after a watched-file CHANGED event where content already came
// from ReloadFromDisk).
func (g *Graph) ReconcileIncludes(path string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.files[path]
	if !ok {
		return ErrUnknownFile
	}
	return g.reconcileIncludesLocked(r, 0)
}

func (g *Graph) reconcileIncludesLocked(f *Record, depth int) error {
	newOut := g.scanIncludesLocked(f)

	oldByPath := make(map[string]IncludeRef, len(f.IncludesOut))
	for _, ref := range f.IncludesOut {
		if ref.ResolvedPath != "" {
			oldByPath[ref.ResolvedPath] = ref
		}
	}
	newByPath := make(map[string]IncludeRef, len(newOut))
	for _, ref := range newOut {
		if ref.ResolvedPath != "" {
			newByPath[ref.ResolvedPath] = ref
		}
	}

	for targetPath := range newByPath {
		_, wasExisting := oldByPath[targetPath]
		target := g.ensureRecordLocked(targetPath, f.PackPath)
		target.IncludesIn[f.Path] = true
		if depth < maxIncludeDepth {
			g.unionParentShadersLocked(target, f.ParentShaders, depth+1)
		}
		if wasExisting {
			continue
		}
		// A freshly discovered edge: recursively reconcile the target's
		// own includes, bounded by depth (the "recursively reconcile it,
		// bounded by depth 10" rule), so the whole transitive closure is
		// scanned during a single upsert/edit, not just the immediate
		// neighbor. Idempotent if target was already tracked via another
		// parent.
		if depth+1 < maxIncludeDepth {
			g.reconcileIncludesLocked(target, depth+1)
		}
	}

	for targetPath := range oldByPath {
		if _, stillThere := newByPath[targetPath]; stillThere {
			continue
		}
		target, ok := g.files[targetPath]
		if !ok {
			continue
		}
		delete(target.IncludesIn, f.Path)
		g.recomputeParentShadersLocked(target, depth+1)
	}

	f.IncludesOut = newOut
	return nil
}

// scanIncludesLocked walks f's content line by line and resolves every
// include reference it finds. Unresolvable references are kept with an
// empty ResolvedPath and their Err set, so the merger can still copy the
// line through for the driver to report on (§4.3 step 2).
func (g *Graph) scanIncludesLocked(f *Record) []IncludeRef {
	return scanIncludesForTemp(f.Path, f.PackPath, f.Content)
}

// ensureRecordLocked returns the record at path, creating an unknown/
// include placeholder read from disk if it doesn't exist yet.
func (g *Graph) ensureRecordLocked(path, pack string) *Record {
	if r, ok := g.files[path]; ok {
		return r
	}
	r := newRecord(path, pack, KindInclude)
	content, missing, err := g.readFileOrEmptyLocked(path)
	if err != nil {
		content = ""
		missing = true
	}
	r.Missing = missing
	g.files[path] = r
	g.setContentLocked(r, content)
	return r
}

// unionParentShadersLocked merges additions into target's parent_shaders
// and recurses into target's own includes_out children, bounded by
// depth.
func (g *Graph) unionParentShadersLocked(target *Record, additions map[string]bool, depth int) {
	changed := false
	for p := range additions {
		if !target.ParentShaders[p] {
			target.ParentShaders[p] = true
			changed = true
		}
	}
	if !changed || depth >= maxIncludeDepth {
		return
	}
	for _, ref := range target.IncludesOut {
		if ref.ResolvedPath == "" {
			continue
		}
		if child, ok := g.files[ref.ResolvedPath]; ok {
			g.unionParentShadersLocked(child, additions, depth+1)
		}
	}
}

// recomputeParentShadersLocked rebuilds target's parent_shaders from
// scratch as the union of its remaining inbound edges' parent_shaders
// (plus itself, if it is an entry), per INV-2, then propagates the
// change to its own includes_out children.
func (g *Graph) recomputeParentShadersLocked(target *Record, depth int) {
	fresh := make(map[string]bool)
	if target.Kind == KindEntry {
		fresh[target.Path] = true
	}
	for parentPath := range target.IncludesIn {
		if parent, ok := g.files[parentPath]; ok {
			for p := range parent.ParentShaders {
				fresh[p] = true
			}
		}
	}
	target.ParentShaders = fresh

	if depth >= maxIncludeDepth {
		return
	}
	for _, ref := range target.IncludesOut {
		if ref.ResolvedPath == "" {
			continue
		}
		if child, ok := g.files[ref.ResolvedPath]; ok {
			g.recomputeParentShadersLocked(child, depth+1)
		}
	}
}

// Rename implements rename propagation step 2 (§4.7): a pure key
// operation. oldPath's record is reinserted under newPath, and every
// neighbor's edges that named oldPath are repointed at newPath. The
// include-literal text itself is rewritten by the TextEdits the façade
// computes from the old edges before calling Rename, not by this method.
func (g *Graph) Rename(oldPath, newPath string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.files[oldPath]
	if !ok {
		return ErrUnknownFile
	}

	delete(g.files, oldPath)
	r.Path = newPath
	g.files[newPath] = r

	for parentPath := range r.IncludesIn {
		if parent, ok := g.files[parentPath]; ok {
			for i := range parent.IncludesOut {
				if parent.IncludesOut[i].ResolvedPath == oldPath {
					parent.IncludesOut[i].ResolvedPath = newPath
				}
			}
		}
	}

	for _, ref := range r.IncludesOut {
		if ref.ResolvedPath == "" {
			continue
		}
		if child, ok := g.files[ref.ResolvedPath]; ok && child.IncludesIn[oldPath] {
			delete(child.IncludesIn, oldPath)
			child.IncludesIn[newPath] = true
		}
	}

	if r.Kind == KindEntry {
		for _, other := range g.files {
			if other.ParentShaders[oldPath] {
				delete(other.ParentShaders, oldPath)
				other.ParentShaders[newPath] = true
			}
			if diags, ok := other.Diagnostics[oldPath]; ok {
				delete(other.Diagnostics, oldPath)
				other.Diagnostics[newPath] = diags
			}
		}
	}

	return nil
}

// GC implements gc: remove any record whose file no longer exists on
// disk AND whose includes_in is empty (INV-5).
func (g *Graph) GC() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for path, r := range g.files {
		if len(r.IncludesIn) > 0 {
			continue
		}
		if g.fs.Exists(path) {
			continue
		}
		if r.Tree != nil {
			r.Tree.Close()
		}
		delete(g.files, path)
	}
}

func (g *Graph) readFileOrEmptyLocked(path string) (content string, missing bool, err error) {
	data, err := g.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", true, nil
		}
		return "", false, err
	}
	return decodeToUTF8(data), false, nil
}
