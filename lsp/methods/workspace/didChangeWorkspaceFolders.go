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
	"bennypowers.dev/mcshader-lsp/internal/logging"
	"bennypowers.dev/mcshader-lsp/internal/uri"
	"bennypowers.dev/mcshader-lsp/lsp/types"
	"bennypowers.dev/mcshader-lsp/shaderpack"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeWorkspaceFolders keeps the tracked workspace-root set in sync
// and runs scan_root over every newly added folder.
func DidChangeWorkspaceFolders(ctx types.ServerContext, context *glsp.Context, params *protocol.DidChangeWorkspaceFoldersParams) error {
	for _, removed := range params.Event.Removed {
		path, err := uri.ToPath(removed.URI)
		if err != nil {
			logging.Warning("[workspace/didChangeWorkspaceFolders] %v", err)
			continue
		}
		ctx.RemoveWorkspaceRoot(path)
	}

	for _, added := range params.Event.Added {
		path, err := uri.ToPath(added.URI)
		if err != nil {
			logging.Warning("[workspace/didChangeWorkspaceFolders] %v", err)
			continue
		}
		ctx.AddWorkspaceRoot(path)

		entries, err := shaderpack.ScanRoot(path)
		if err != nil {
			logging.Warning("[workspace/didChangeWorkspaceFolders] scan_root %s: %v", path, err)
			continue
		}
		for _, e := range entries {
			if err := ctx.Graph().UpsertEntry(e.PackPath, e.Path, e.Stage); err != nil {
				logging.Warning("[workspace/didChangeWorkspaceFolders] upsert_entry %s: %v", e.Path, err)
			}
		}
	}

	return nil
}
