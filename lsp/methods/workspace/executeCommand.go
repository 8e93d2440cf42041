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
	"errors"

	"bennypowers.dev/mcshader-lsp/includegraph"
	"bennypowers.dev/mcshader-lsp/internal/uri"
	"bennypowers.dev/mcshader-lsp/lsp/types"
	"bennypowers.dev/mcshader-lsp/merge"
	"github.com/sourcegraph/jsonrpc2"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const (
	codeNotAShaderEntry = -20002
	codeInvalidCommand  = -20101
	codeInvalidArgument = -20102
)

// ExecuteCommand implements the single command this server advertises:
// virtualMerge, which returns the merged source of a shader entry as a
// JSON string (§6 execute-command surface).
func ExecuteCommand(ctx types.ServerContext, context *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	if params.Command != "virtualMerge" {
		return nil, &jsonrpc2.Error{Code: codeInvalidCommand, Message: "unknown command: " + params.Command}
	}

	if len(params.Arguments) != 1 {
		return nil, &jsonrpc2.Error{Code: codeInvalidArgument, Message: "virtualMerge takes exactly one argument (a file URI)"}
	}

	rawURI, ok := params.Arguments[0].(string)
	if !ok {
		return nil, &jsonrpc2.Error{Code: codeInvalidArgument, Message: "virtualMerge argument must be a string URI"}
	}

	path, err := uri.ToPath(rawURI)
	if err != nil {
		return nil, &jsonrpc2.Error{Code: codeInvalidArgument, Message: "invalid URI: " + err.Error()}
	}

	result, err := merge.Merge(ctx.Graph(), path)
	if err == nil {
		return result.Source, nil
	}
	if !errors.Is(err, includegraph.ErrNotAShaderEntry) {
		return nil, err
	}

	if temp := ctx.TempFiles().Lookup(path); temp != nil {
		result, err := merge.MergeTemp(ctx.Graph(), temp)
		if err == nil {
			return result.Source, nil
		}
		if !errors.Is(err, includegraph.ErrNotAShaderEntry) {
			return nil, err
		}
	}

	return nil, &jsonrpc2.Error{Code: codeNotAShaderEntry, Message: "not a shader entry: " + path}
}
