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
package server

import (
	"bennypowers.dev/mcshader-lsp/internal/logging"
	"bennypowers.dev/mcshader-lsp/internal/uri"
	"bennypowers.dev/mcshader-lsp/internal/version"
	"bennypowers.dev/mcshader-lsp/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialize handles the LSP initialize request: it records the
// workspace folders reported by the client and advertises this server's
// capability set (§1, §6).
func Initialize(ctx types.ServerContext, context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	logging.SetLSPContext(context)

	if params.RootURI != nil {
		if path, err := uri.ToPath(*params.RootURI); err == nil {
			ctx.AddWorkspaceRoot(path)
		} else {
			logging.Warning("[INITIALIZE] could not parse root URI %q: %v", *params.RootURI, err)
		}
	}
	for _, folder := range params.WorkspaceFolders {
		if path, err := uri.ToPath(folder.URI); err == nil {
			ctx.AddWorkspaceRoot(path)
		} else {
			logging.Warning("[INITIALIZE] could not parse workspace folder URI %q: %v", folder.URI, err)
		}
	}

	openClose := true
	changeKind := protocol.TextDocumentSyncKindIncremental
	save := true
	serverVersion := version.GetVersion()

	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			OpenClose: &openClose,
			Change:    &changeKind,
			Save:      &protocol.SaveOptions{IncludeText: &save},
		},
		DefinitionProvider:   &protocol.DefinitionOptions{},
		ReferencesProvider:   &protocol.ReferenceOptions{},
		DocumentLinkProvider: &protocol.DocumentLinkOptions{},
		DocumentSymbolProvider: &protocol.DocumentSymbolOptions{},
		ExecuteCommandProvider: &protocol.ExecuteCommandOptions{
			Commands: []string{"virtualMerge"},
		},
		Workspace: &protocol.ServerCapabilitiesWorkspace{
			WorkspaceFolders: &protocol.WorkspaceFoldersServerCapabilities{
				Supported: boolPtr(true),
			},
			FileOperations: &protocol.ServerCapabilitiesWorkspaceFileOperations{
				DidRename: &protocol.FileOperationRegistrationOptions{
					Filters: []protocol.FileOperationFilter{{
						Pattern: protocol.FileOperationPattern{Glob: "**/*"},
					}},
				},
			},
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    "mcshader-lsp",
			Version: &serverVersion,
		},
	}, nil
}

func boolPtr(b bool) *bool { return &b }
