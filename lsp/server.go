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
package lsp

import (
	"fmt"
	"os"
	"sync"

	"bennypowers.dev/mcshader-lsp/driver"
	"bennypowers.dev/mcshader-lsp/includegraph"
	"bennypowers.dev/mcshader-lsp/internal/config"
	"bennypowers.dev/mcshader-lsp/internal/logging"
	"bennypowers.dev/mcshader-lsp/internal/platform"
	"bennypowers.dev/mcshader-lsp/lint"
	"bennypowers.dev/mcshader-lsp/lsp/methods/server"
	"bennypowers.dev/mcshader-lsp/lsp/methods/textDocument"
	"bennypowers.dev/mcshader-lsp/lsp/methods/textDocument/definition"
	"bennypowers.dev/mcshader-lsp/lsp/methods/textDocument/documentLink"
	"bennypowers.dev/mcshader-lsp/lsp/methods/textDocument/documentSymbol"
	"bennypowers.dev/mcshader-lsp/lsp/methods/textDocument/references"
	"bennypowers.dev/mcshader-lsp/lsp/methods/workspace"
	"bennypowers.dev/mcshader-lsp/lsp/types"
	"github.com/pterm/pterm"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"
)

// TransportKind represents the transports this server can run over.
type TransportKind string

const (
	TransportStdio     TransportKind = "stdio"
	TransportTCP       TransportKind = "tcp"
	TransportWebSocket TransportKind = "websocket"
	TransportNodeJS    TransportKind = "nodejs"
)

// Server is the mcshader-lsp LSP façade. It owns the include graph, the
// unsaved-buffer store, the lint orchestrator and the shader driver, and
// implements types.ServerContext directly so every lsp/methods/* package
// can reach them through one seam.
type Server struct {
	mu             sync.Mutex
	graph          *includegraph.Graph
	tempFiles      *includegraph.TempFileStore
	lint           *lint.Orchestrator
	driver         driver.Driver
	fs             platform.FileSystem
	cfg            config.Config
	workspaceRoots []string

	server    *glspserver.Server
	transport TransportKind
}

var _ types.ServerContext = (*Server)(nil)

// NewServer creates a new mcshader-lsp server bound to d.
func NewServer(transport TransportKind, d driver.Driver) (*Server, error) {
	// Configure pterm to write to stderr so it never contaminates the
	// stdio transport's protocol stream.
	pterm.SetDefaultOutput(os.Stderr)

	fs := platform.NewOSFileSystem()
	graph := includegraph.NewGraphWithFS(nil, fs)

	s := &Server{
		graph:     graph,
		tempFiles: includegraph.NewTempFileStore(),
		lint:      lint.New(graph, d),
		driver:    d,
		fs:        fs,
		cfg:       config.Default(),
		transport: transport,
	}

	handler := protocol.Handler{
		Initialize:  method(s, "initialize", server.Initialize),
		Initialized: notify(s, "initialized", server.Initialized),
		Shutdown:    noParam(s, "shutdown", server.Shutdown),
		SetTrace:    notify(s, "$/setTrace", server.SetTrace),

		WorkspaceDidChangeConfiguration:    notify(s, "workspace/didChangeConfiguration", workspace.DidChangeConfiguration),
		WorkspaceDidChangeWatchedFiles:     notify(s, "workspace/didChangeWatchedFiles", workspace.DidChangeWatchedFiles),
		WorkspaceDidChangeWorkspaceFolders: notify(s, "workspace/didChangeWorkspaceFolders", workspace.DidChangeWorkspaceFolders),
		WorkspaceExecuteCommand:            method(s, "workspace/executeCommand", workspace.ExecuteCommand),
		WorkspaceDidRenameFiles:            notify(s, "workspace/didRenameFiles", workspace.DidRenameFiles),

		TextDocumentDidOpen:   notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange: notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidSave:   notify(s, "textDocument/didSave", textDocument.DidSave),
		TextDocumentDidClose:  notify(s, "textDocument/didClose", textDocument.DidClose),

		TextDocumentDocumentLink:   method(s, "textDocument/documentLink", documentLink.DocumentLink),
		TextDocumentDocumentSymbol: method(s, "textDocument/documentSymbol", documentSymbol.DocumentSymbol),
		TextDocumentDefinition:     method(s, "textDocument/definition", definition.Definition),
		TextDocumentReferences:     method(s, "textDocument/references", references.References),
	}

	debug := transport == TransportStdio
	s.server = glspserver.NewServer(&handler, "mcshader-lsp", debug)

	return s, nil
}

// Run starts the server on its configured transport.
func (s *Server) Run() error {
	logging.Debug("mcshader-lsp: running with transport %s", s.transport)

	switch s.transport {
	case TransportStdio:
		return s.server.RunStdio()
	case TransportTCP:
		return s.server.RunTCP("localhost:8080")
	case TransportWebSocket:
		return s.server.RunWebSocket("localhost:8081")
	case TransportNodeJS:
		return s.server.RunNodeJs()
	default:
		return fmt.Errorf("unsupported transport kind: %s", s.transport)
	}
}

// Close releases the driver's process-wide resources.
func (s *Server) Close() error {
	if s.driver != nil {
		return s.driver.Close()
	}
	return nil
}

// --- types.ServerContext ---

func (s *Server) Graph() *includegraph.Graph              { return s.graph }
func (s *Server) TempFiles() *includegraph.TempFileStore  { return s.tempFiles }
func (s *Server) Lint() *lint.Orchestrator                { return s.lint }
func (s *Server) Driver() driver.Driver                   { return s.driver }
func (s *Server) FileSystem() platform.FileSystem         { return s.fs }

func (s *Server) Config() config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

func (s *Server) SetConfig(cfg config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

func (s *Server) WorkspaceRoots() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	roots := make([]string, len(s.workspaceRoots))
	copy(roots, s.workspaceRoots)
	return roots
}

func (s *Server) AddWorkspaceRoot(root string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.workspaceRoots {
		if existing == root {
			return
		}
	}
	s.workspaceRoots = append(s.workspaceRoots, root)
}

func (s *Server) RemoveWorkspaceRoot(root string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.workspaceRoots[:0]
	for _, existing := range s.workspaceRoots {
		if existing != root {
			kept = append(kept, existing)
		}
	}
	s.workspaceRoots = kept
}
