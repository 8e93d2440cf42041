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

import "bennypowers.dev/mcshader-lsp/shaderpack"

// Tree is an opaque handle to a parsed syntax tree. The graph never
// inspects its contents; navigation queries (definition, references,
// document symbols) are the concern of whatever holds the concrete
// tree-sitter tree, not of the graph itself.
type Tree interface {
	Close()
}

// Parser produces a Tree from source text, reusing incremental state
// where the caller supplies a previous Tree to edit. Both are supplied
// by the LSP façade layer; the graph only stores and forwards them.
type Parser interface {
	Parse(content string, old Tree) (Tree, error)
}

// IncludeRef is one resolved "#include"/"#moj_import" reference found in a
// file's content, in byte-offset terms.
type IncludeRef struct {
	Line          int
	ColStartBytes int
	ColEndBytes   int
	ResolvedPath  string // normalized absolute path; empty if resolution failed
	RawPath       string
	Err           error // set when resolution failed (e.g. escapes the pack root)
}

// DiagnosticRef is a single compiler diagnostic mapped back to a workspace
// file, already translated from the merged-shader token/line space into
// this file's own line/column space.
type DiagnosticRef struct {
	Line     int
	Severity string // "error" | "warning" | "information"
	Message  string
}

// Record is the graph's durable state for one tracked workspace file: an
// entry shader or an include file discovered by traversal from one.
type Record struct {
	Path     string // absolute, canonical
	PackPath string
	Kind     FileKind
	// Stage is meaningful only when Kind == KindEntry.
	Stage shaderpack.Stage
	// Missing is true when the file does not currently exist on disk
	// (e.g. an include target that was never created, or was deleted
	// and is only kept alive by an inbound edge per INV-5).
	Missing bool

	Content   string
	LineIndex []int
	Tree      Tree

	// IncludesOut is populated for every tracked file: the resolved
	// includes this file's content names, in source order.
	IncludesOut []IncludeRef

	// IncludesIn is the set of paths that include this file directly.
	IncludesIn map[string]bool

	// ParentShaders is the set of entry shader paths that transitively
	// reach this file, including itself if it is an entry.
	ParentShaders map[string]bool

	// Diagnostics maps a source entry path to the diagnostics most
	// recently attributed to THIS file when compiling that entry. Every
	// tracked file carries this map, not just entries: an include shared
	// by several entries accumulates one slice per entry, so re-linting
	// one entry only ever replaces its own slice (§4.8), and a file's
	// publishable diagnostics are the union of every slice in the map.
	Diagnostics map[string][]DiagnosticRef
}

// FileKind distinguishes an entry shader (has a Stage, is a lint root)
// from a plain include file.
type FileKind int

const (
	KindInclude FileKind = iota
	KindEntry
)

func newRecord(path, packPath string, kind FileKind) *Record {
	return &Record{
		Path:          path,
		PackPath:      packPath,
		Kind:          kind,
		IncludesIn:    make(map[string]bool),
		ParentShaders: make(map[string]bool),
		Diagnostics:   make(map[string][]DiagnosticRef),
	}
}

// TempRecord is the live state of an editor buffer opened outside any
// recognized shader pack (§1 item 5, §3 "Temp file record"): it has a
// best-effort pack root (the nearest ancestor literally named "shaders",
// if any) and a stage inferred from its extension, or StageNone if the
// extension isn't recognized — in which case it is tracked but never
// merged. It has no includes_in: from the workspace's perspective it is
// always a leaf, never a dependency of anything else.
type TempRecord struct {
	Path      string
	PackPath  string // best-effort; may be ""
	Stage     shaderpack.Stage
	Content   string
	LineIndex []int

	IncludesOut []IncludeRef
	Missing     bool // true if the file does not exist on disk
}

// NewTempRecord constructs a TempRecord for path with the given
// best-effort pack and stage. Exported for the LSP façade, which is the
// only caller: temp files are a buffer-lifecycle concern, not something
// the graph itself discovers.
func NewTempRecord(path, packPath string, stage shaderpack.Stage) *TempRecord {
	return &TempRecord{Path: path, PackPath: packPath, Stage: stage}
}
