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

// Package types holds the single ServerContext interface every LSP method
// package is written against, so method packages never import lsp itself
// (which would be a cycle) and so Server is the only concrete
// implementation anywhere in the module.
package types

import (
	"bennypowers.dev/mcshader-lsp/driver"
	"bennypowers.dev/mcshader-lsp/includegraph"
	"bennypowers.dev/mcshader-lsp/internal/config"
	"bennypowers.dev/mcshader-lsp/internal/platform"
	"bennypowers.dev/mcshader-lsp/lint"
)

// ServerContext provides all dependencies needed by LSP method handlers.
// It is implemented directly by *lsp.Server, the same "context IS the
// server" shape the corpus's other glsp-based servers use.
type ServerContext interface {
	// Graph is C2: the workspace include graph.
	Graph() *includegraph.Graph
	// TempFiles holds buffers opened outside any recognized pack (§1
	// item 5, §3 "Temp file record").
	TempFiles() *includegraph.TempFileStore
	// Lint is the §4.8 orchestrator wiring C3/C4/C5 together.
	Lint() *lint.Orchestrator
	// Driver is the C4 gateway, exposed directly for Vendor() lookups
	// outside the lint orchestrator (e.g. at startup).
	Driver() driver.Driver
	FileSystem() platform.FileSystem

	// Config returns the live decoded `mcshader` configuration. SetConfig
	// is called from did_change_configuration under the same lock spec.md
	// §5 requires for the "extensions set and log level".
	Config() config.Config
	SetConfig(config.Config)

	// WorkspaceRoots are the absolute paths backing each LSP workspace
	// folder, mutated by did_change_workspace_folders.
	WorkspaceRoots() []string
	AddWorkspaceRoot(root string)
	RemoveWorkspaceRoot(root string)
}
