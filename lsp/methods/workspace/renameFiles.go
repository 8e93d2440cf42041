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

	"bennypowers.dev/mcshader-lsp/includegraph"
	"bennypowers.dev/mcshader-lsp/internal/logging"
	"bennypowers.dev/mcshader-lsp/internal/uri"
	"bennypowers.dev/mcshader-lsp/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidRenameFiles implements rename propagation (§4.7). The source's
// registration is for workspace/didRenameFiles only — a notification, so
// there is no response channel to carry the computed WorkspaceEdit back.
// Instead this pushes it to the client as a server-initiated
// workspace/applyEdit request, the same fire-and-forget context.Call in a
// goroutine that logging.NotifyWithActions uses for window/showMessageRequest.
func DidRenameFiles(ctx types.ServerContext, context *glsp.Context, params *protocol.RenameFilesParams) error {
	changes := make(map[string][]protocol.TextEdit)

	for _, rename := range params.Files {
		oldPath, err := uri.ToPath(rename.OldURI)
		if err != nil {
			logging.Warning("[workspace/didRenameFiles] %v", err)
			continue
		}
		newPath, err := uri.ToPath(rename.NewURI)
		if err != nil {
			logging.Warning("[workspace/didRenameFiles] %v", err)
			continue
		}

		pairs := renamePairs(ctx, oldPath, newPath)

		for _, pair := range pairs {
			rewriteIncludeLiterals(ctx, pair.old, pair.new, changes)
		}
		for _, pair := range pairs {
			if err := ctx.Graph().Rename(pair.old, pair.new); err != nil {
				logging.Warning("[workspace/didRenameFiles] rename %s -> %s: %v", pair.old, pair.new, err)
			}
		}
	}

	if len(changes) == 0 {
		return nil
	}

	if context != nil {
		go func() {
			var result any
			context.Call("workspace/applyEdit", &protocol.ApplyWorkspaceEditParams{
				Edit: protocol.WorkspaceEdit{Changes: changes},
			}, &result)
		}()
	}

	return nil
}

type renamePair struct{ old, new string }

// renamePairs expands one (oldPath, newPath) file-rename event into the
// full set of file-level pairs: a direct mapping if oldPath is a tracked
// file, or one pair per tracked file under oldPath if it was a directory
// (§4.7 step 3).
func renamePairs(ctx types.ServerContext, oldPath, newPath string) []renamePair {
	if ctx.Graph().Lookup(oldPath) != nil {
		return []renamePair{{old: oldPath, new: newPath}}
	}

	prefix := oldPath + string(filepath.Separator)
	var pairs []renamePair
	for _, rec := range ctx.Graph().AllRecords() {
		if strings.HasPrefix(rec.Path, prefix) {
			rel := strings.TrimPrefix(rec.Path, prefix)
			pairs = append(pairs, renamePair{old: rec.Path, new: filepath.Join(newPath, rel)})
		}
	}
	return pairs
}

// rewriteIncludeLiterals emits one TextEdit per parent of oldPath whose
// include literal must change to keep pointing at new (§4.7 step 1).
func rewriteIncludeLiterals(ctx types.ServerContext, old, new string, changes map[string][]protocol.TextEdit) {
	rec := ctx.Graph().Lookup(old)
	if rec == nil {
		return
	}

	for parentPath := range rec.IncludesIn {
		parent := ctx.Graph().Lookup(parentPath)
		if parent == nil {
			continue
		}
		lines := strings.Split(parent.Content, "\n")
		for _, ref := range parent.IncludesOut {
			if ref.ResolvedPath != old {
				continue
			}
			newLiteral := includegraph.RenameLiteral(ref.RawPath, parent.PackPath, filepath.Dir(parentPath), new)

			startChar := 0
			endChar := 0
			if ref.Line >= 0 && ref.Line < len(lines) {
				line := lines[ref.Line]
				startChar = includegraph.UTF16Column(line, ref.ColStartBytes)
				endChar = includegraph.UTF16Column(line, ref.ColEndBytes)
			}

			parentURI := uri.FromPath(parentPath)
			changes[parentURI] = append(changes[parentURI], protocol.TextEdit{
				Range: protocol.Range{
					Start: protocol.Position{Line: uint32(ref.Line), Character: uint32(startChar)},
					End:   protocol.Position{Line: uint32(ref.Line), Character: uint32(endChar)},
				},
				NewText: newLiteral,
			})
		}
	}
}
