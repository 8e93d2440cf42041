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

// Package publishDiagnostics turns the lint orchestrator's per-file
// DiagnosticRef slices into LSP textDocument/publishDiagnostics
// notifications, one per touched file (§4.8).
package publishDiagnostics

import (
	"strings"

	"bennypowers.dev/mcshader-lsp/includegraph"
	"bennypowers.dev/mcshader-lsp/internal/uri"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// PublishAll sends one publishDiagnostics notification per entry in
// diagsByPath. graph supplies each file's current content, used only to
// translate a diagnostic's byte line into the UTF-16 column range LSP
// expects; a diagnostic always spans its whole line since the compiler
// log never reports columns.
func PublishAll(glspContext *glsp.Context, graph *includegraph.Graph, diagsByPath map[string][]includegraph.DiagnosticRef) {
	for path, refs := range diagsByPath {
		Publish(glspContext, graph, path, refs)
	}
}

// Publish sends a single publishDiagnostics notification for path. An
// empty or nil refs clears any diagnostics the client is currently
// showing for it.
func Publish(glspContext *glsp.Context, graph *includegraph.Graph, path string, refs []includegraph.DiagnosticRef) {
	var lines []string
	if rec := graph.Lookup(path); rec != nil {
		lines = strings.Split(rec.Content, "\n")
	}

	out := make([]protocol.Diagnostic, 0, len(refs))
	for _, ref := range refs {
		out = append(out, toProtocolDiagnostic(ref, lines))
	}

	glspContext.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri.FromPath(path),
		Diagnostics: out,
	})
}

func toProtocolDiagnostic(ref includegraph.DiagnosticRef, lines []string) protocol.Diagnostic {
	endChar := uint32(0)
	if ref.Line >= 0 && ref.Line < len(lines) {
		endChar = uint32(includegraph.UTF16Column(lines[ref.Line], len(lines[ref.Line])))
	}

	severity := protocol.DiagnosticSeverityWarning
	if ref.Severity == "error" {
		severity = protocol.DiagnosticSeverityError
	}

	line := uint32(0)
	if ref.Line > 0 {
		line = uint32(ref.Line)
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: 0},
			End:   protocol.Position{Line: line, Character: endChar},
		},
		Severity: &severity,
		Source:   strPtr("mcshader-lsp"),
		Message:  ref.Message,
	}
}

func strPtr(s string) *string { return &s }
