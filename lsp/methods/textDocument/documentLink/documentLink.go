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

// Package documentLink answers textDocument/documentLink from the
// include graph alone: every resolved #include/#moj_import in a file
// becomes a clickable link to its target, with no tree-sitter query
// involved.
package documentLink

import (
	"bennypowers.dev/mcshader-lsp/includegraph"
	"bennypowers.dev/mcshader-lsp/internal/uri"
	"bennypowers.dev/mcshader-lsp/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DocumentLink returns one link per resolved include reference in the
// requested file.
func DocumentLink(ctx types.ServerContext, context *glsp.Context, params *protocol.DocumentLinkParams) ([]protocol.DocumentLink, error) {
	path, err := uri.ToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	var includesOut []includegraph.IncludeRef
	if rec := ctx.Graph().Lookup(path); rec != nil {
		includesOut = rec.IncludesOut
	} else if temp := ctx.TempFiles().Lookup(path); temp != nil {
		includesOut = temp.IncludesOut
	}

	links := make([]protocol.DocumentLink, 0, len(includesOut))
	for _, ref := range includesOut {
		if ref.Err != nil || ref.ResolvedPath == "" {
			continue
		}
		target := uri.FromPath(ref.ResolvedPath)
		links = append(links, protocol.DocumentLink{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(ref.Line), Character: uint32(ref.ColStartBytes)},
				End:   protocol.Position{Line: uint32(ref.Line), Character: uint32(ref.ColEndBytes)},
			},
			Target: &target,
		})
	}

	return links, nil
}
