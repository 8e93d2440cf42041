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
	"strings"
	"sync"

	"bennypowers.dev/mcshader-lsp/shaderpack"
)

// TempFileStore holds the editor buffers for files opened outside any
// recognized shader pack, keyed by path. It mirrors Graph's map-of-records
// shape but deliberately has no edges, no parent_shaders and no GC: temp
// files live exactly as long as the editor keeps them open (§3 "Temp file
// record").
type TempFileStore struct {
	mu    sync.Mutex
	files map[string]*TempRecord
}

// NewTempFileStore returns an empty store.
func NewTempFileStore() *TempFileStore {
	return &TempFileStore{files: make(map[string]*TempRecord)}
}

// Lookup returns the record at path, or nil.
func (s *TempFileStore) Lookup(path string) *TempRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files[path]
}

// Open creates or replaces the record at path with content, inferring
// line_index (INV-4) and scanning its include lines best-effort (packPath
// may be "" if no ancestor "shaders" directory was found, in which case
// only absolute/"moj_import" references fail to resolve and are copied
// through, same as any other unresolvable include).
func (s *TempFileStore) Open(path, packPath string, stage shaderpack.Stage, content string) *TempRecord {
	r := NewTempRecord(path, packPath, stage)
	s.setContent(r, content)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = r
	return r
}

// Update replaces the content of an already-open temp record, or is a
// no-op if path isn't currently tracked (the façade is expected to call
// Open first on did_open).
func (s *TempFileStore) Update(path, content string) *TempRecord {
	s.mu.Lock()
	r, ok := s.files[path]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	s.setContent(r, content)
	return r
}

// Close forgets path entirely; nothing else in the workspace can hold a
// reference to a temp record (it has no includes_in by construction).
func (s *TempFileStore) Close(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
}

func (s *TempFileStore) setContent(r *TempRecord, content string) {
	r.Content = content
	r.LineIndex = BuildLineIndex(content)
	r.IncludesOut = scanIncludesForTemp(r.Path, r.PackPath, content)
}

// scanIncludesForTemp is scanIncludesLocked's logic lifted out to operate
// on raw (path, packPath, content) instead of a tracked *Record, since a
// temp file has no place in Graph's map.
func scanIncludesForTemp(path, packPath, content string) []IncludeRef {
	var refs []IncludeRef
	dir := filepath.Dir(path)
	for lineNum, line := range strings.Split(content, "\n") {
		m, ok := MatchIncludeLine(line)
		if !ok {
			continue
		}
		ref := IncludeRef{
			Line:          lineNum,
			ColStartBytes: m.ColStartBytes,
			ColEndBytes:   m.ColEndBytes,
			RawPath:       m.RawPath,
		}
		resolved, err := ResolveInclude(m, packPath, dir)
		if err == nil && packPath == "" && (m.IsAbsolute || m.IsMojImport) {
			// Pack-relative references have nothing to resolve against.
			err = ErrInvalidIncludePath
		}
		if err != nil {
			ref.Err = err
		} else {
			ref.ResolvedPath = resolved
		}
		refs = append(refs, ref)
	}
	return refs
}
