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
package workspace

import (
	"path/filepath"
	"strings"

	"bennypowers.dev/mcshader-lsp/internal/logging"
	"bennypowers.dev/mcshader-lsp/internal/uri"
	"bennypowers.dev/mcshader-lsp/lsp/methods/textDocument/publishDiagnostics"
	"bennypowers.dev/mcshader-lsp/lsp/types"
	"bennypowers.dev/mcshader-lsp/shaderpack"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeWatchedFiles implements §4.6's batch handling for the three
// watched-file event kinds: CHANGED reloads and relints exactly like a
// save, CREATED runs scan_new_file and upserts a match, and DELETED
// clears a tracked file's content (or, for a likely directory delete per
// the config's "not-one-of" heuristic, reloads every tracked file under
// that directory, since the client may not report each one separately).
func DidChangeWatchedFiles(ctx types.ServerContext, context *glsp.Context, params *protocol.DidChangeWatchedFilesParams) error {
	changedPaths := make([]string, 0, len(params.Changes))
	deletedPaths := make([]string, 0)
	cfg := ctx.Config()

	for _, change := range params.Changes {
		path, err := uri.ToPath(change.URI)
		if err != nil {
			logging.Warning("[workspace/didChangeWatchedFiles] %v", err)
			continue
		}

		switch change.Type {
		case protocol.FileChangeTypeCreated:
			handleCreated(ctx, path)
			changedPaths = append(changedPaths, path)

		case protocol.FileChangeTypeChanged:
			if ctx.Graph().Lookup(path) != nil {
				if err := ctx.Graph().ReloadFromDisk(path); err != nil {
					logging.Warning("[workspace/didChangeWatchedFiles] reload_from_disk %s: %v", path, err)
					continue
				}
				changedPaths = append(changedPaths, path)
			}

		case protocol.FileChangeTypeDeleted:
			if cfg.IsLikelyDirectoryDelete(path) {
				// The event names a directory, not a tracked file: walk the
				// graph for everything under it rather than assume the
				// individual files inside arrive as their own events (they
				// may not, depending on the client's watcher).
				for _, desc := range descendantsOf(ctx, path) {
					if err := ctx.Graph().ReloadFromDisk(desc); err != nil {
						logging.Warning("[workspace/didChangeWatchedFiles] reload_from_disk (dir delete) %s: %v", desc, err)
						continue
					}
					changedPaths = append(changedPaths, desc)
					deletedPaths = append(deletedPaths, desc)
				}
				continue
			}
			if ctx.Graph().Lookup(path) != nil {
				if err := ctx.Graph().ReloadFromDisk(path); err != nil {
					logging.Warning("[workspace/didChangeWatchedFiles] reload_from_disk (delete) %s: %v", path, err)
					continue
				}
				changedPaths = append(changedPaths, path)
			}
			deletedPaths = append(deletedPaths, path)
		}
	}

	if len(changedPaths) == 0 {
		return nil
	}

	diags, err := ctx.Lint().LintForChangedFiles(changedPaths)
	if err != nil {
		logging.Warning("[workspace/didChangeWatchedFiles] lint: %v", err)
		return nil
	}

	// A deleted file's own diagnostics never come back from a merge: its
	// record is excluded from token assignment once Missing (merge's
	// resolveChild skips it), so LintForChangedFiles never populates its
	// entry in diags. spec.md:156 still requires an explicit empty
	// publish for it, clearing whatever the client last showed.
	for _, path := range deletedPaths {
		if _, ok := diags[path]; !ok {
			diags[path] = nil
		}
	}

	publishDiagnostics.PublishAll(context, ctx.Graph(), diags)
	return nil
}

// descendantsOf returns every path in ctx's graph that lives under dir,
// for the directory-delete fallback: the client may report only the
// directory's own delete event, never one per file beneath it.
func descendantsOf(ctx types.ServerContext, dir string) []string {
	prefix := dir + string(filepath.Separator)
	var out []string
	for _, rec := range ctx.Graph().AllRecords() {
		if rec.Path == dir || strings.HasPrefix(rec.Path, prefix) {
			out = append(out, rec.Path)
		}
	}
	return out
}

func handleCreated(ctx types.ServerContext, path string) {
	pack := shaderpack.FindPackRoot(path)
	if pack == "" {
		return
	}
	entry, ok := shaderpack.ClassifyNewFile(path, pack)
	if !ok {
		return
	}
	if err := ctx.Graph().UpsertEntry(entry.PackPath, entry.Path, entry.Stage); err != nil {
		logging.Warning("[workspace/didChangeWatchedFiles] upsert_entry %s: %v", path, err)
	}
}
