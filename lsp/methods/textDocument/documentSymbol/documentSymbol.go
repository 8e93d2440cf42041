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

// Package documentSymbol answers textDocument/documentSymbol. Symbol
// extraction needs a GLSL tree-sitter grammar, which spec.md treats as
// an external collaborator out of scope for this system (see
// includegraph.Tree/Parser); until one is wired in, this always reports
// no symbols rather than guessing from raw text.
package documentSymbol

import (
	"bennypowers.dev/mcshader-lsp/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DocumentSymbol always returns an empty result.
func DocumentSymbol(ctx types.ServerContext, context *glsp.Context, params *protocol.DocumentSymbolParams) ([]any, error) {
	return nil, nil
}
