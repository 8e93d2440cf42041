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
package textDocument

import (
	"path/filepath"
	"strings"

	"bennypowers.dev/mcshader-lsp/includegraph"
	"bennypowers.dev/mcshader-lsp/internal/logging"
	"bennypowers.dev/mcshader-lsp/internal/uri"
	"bennypowers.dev/mcshader-lsp/lsp/methods/textDocument/publishDiagnostics"
	"bennypowers.dev/mcshader-lsp/lsp/types"
	"bennypowers.dev/mcshader-lsp/shaderpack"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidOpen handles textDocument/didOpen. A file already tracked by the
// graph (an entry shader or a discovered include) needs no mutation on
// open: its content already reflects disk, and the buffer is just a view
// onto the same record. A file outside every known shader pack becomes a
// temp-file record instead (§1 item 5, §3).
func DidOpen(ctx types.ServerContext, context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uri.ToPath(params.TextDocument.URI)
	if err != nil {
		logging.Warning("[textDocument/didOpen] %v", err)
		return nil
	}

	if ctx.Graph().Lookup(path) != nil {
		return nil
	}

	pack := shaderpack.FindPackRoot(path)
	stage, _ := shaderpack.EntryStage(filepath.Base(path))
	ctx.TempFiles().Open(path, pack, stage, params.TextDocument.Text)
	return nil
}

// DidChange handles textDocument/didChange. Per §4.6, a change never
// triggers compilation or diagnostics on its own; it only keeps the
// tracked content (graph record or temp-file buffer) in sync so the next
// did_save or watched-file event has accurate bytes to work with.
func DidChange(ctx types.ServerContext, context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uri.ToPath(params.TextDocument.URI)
	if err != nil {
		logging.Warning("[textDocument/didChange] %v", err)
		return nil
	}

	events := make([]protocol.TextDocumentContentChangeEvent, 0, len(params.ContentChanges))
	for _, raw := range params.ContentChanges {
		if event, ok := raw.(protocol.TextDocumentContentChangeEvent); ok {
			events = append(events, event)
		}
	}

	if rec := ctx.Graph().Lookup(path); rec != nil {
		for _, event := range events {
			edit := changeEventToEdit(rec.Content, event)
			if err := ctx.Graph().ApplyEdit(path, []includegraph.Edit{edit}); err != nil {
				logging.Warning("[textDocument/didChange] apply_edit %s: %v", path, err)
				return nil
			}
			rec = ctx.Graph().Lookup(path)
			if rec == nil {
				return nil
			}
		}
		return nil
	}

	if temp := ctx.TempFiles().Lookup(path); temp != nil {
		content := temp.Content
		for _, event := range events {
			content = applyChangeToContent(content, event)
		}
		ctx.TempFiles().Update(path, content)
		return nil
	}

	logging.Warning("[textDocument/didChange] no tracked record for %s", path)
	return nil
}

// DidSave handles textDocument/didSave: reload the file from disk,
// reconcile its includes, and relint every entry it affects (§4.8),
// publishing the resulting diagnostics.
func DidSave(ctx types.ServerContext, context *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uri.ToPath(params.TextDocument.URI)
	if err != nil {
		logging.Warning("[textDocument/didSave] %v", err)
		return nil
	}

	if ctx.Graph().Lookup(path) == nil {
		return nil
	}

	if err := ctx.Graph().ReloadFromDisk(path); err != nil {
		logging.Warning("[textDocument/didSave] reload_from_disk %s: %v", path, err)
		return nil
	}

	diags, err := ctx.Lint().LintForChangedFiles([]string{path})
	if err != nil {
		logging.Warning("[textDocument/didSave] lint %s: %v", path, err)
		return nil
	}

	publishDiagnostics.PublishAll(context, ctx.Graph(), diags)
	return nil
}

// DidClose handles textDocument/didClose. Graph-tracked files persist
// regardless of buffer lifecycle; only temp-file buffers are discarded.
func DidClose(ctx types.ServerContext, context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uri.ToPath(params.TextDocument.URI)
	if err != nil {
		logging.Warning("[textDocument/didClose] %v", err)
		return nil
	}
	ctx.TempFiles().Close(path)
	return nil
}

// changeEventToEdit translates one LSP incremental change event, whose
// range is expressed in UTF-16 columns, into a byte-offset Edit against
// content's current bytes.
func changeEventToEdit(content string, change protocol.TextDocumentContentChangeEvent) includegraph.Edit {
	if change.Range == nil {
		return includegraph.Edit{StartLine: 0, StartCol: 0, OldLength: len(content), Replacement: change.Text}
	}

	lines := strings.Split(content, "\n")
	lineIndex := includegraph.BuildLineIndex(content)

	startLine := int(change.Range.Start.Line)
	endLine := int(change.Range.End.Line)

	startByteCol := 0
	if startLine >= 0 && startLine < len(lines) {
		startByteCol = includegraph.ByteColumn(lines[startLine], int(change.Range.Start.Character))
	}
	endByteCol := 0
	if endLine >= 0 && endLine < len(lines) {
		endByteCol = includegraph.ByteColumn(lines[endLine], int(change.Range.End.Character))
	}

	start := includegraph.ByteOffset(lineIndex, startLine, startByteCol, len(content))
	end := includegraph.ByteOffset(lineIndex, endLine, endByteCol, len(content))
	if end < start {
		end = start
	}

	return includegraph.Edit{
		StartLine:   startLine,
		StartCol:    startByteCol,
		OldLength:   end - start,
		Replacement: change.Text,
	}
}

// applyChangeToContent splices one change event directly into content;
// used for temp-file buffers, which have no incremental ApplyEdit of
// their own.
func applyChangeToContent(content string, change protocol.TextDocumentContentChangeEvent) string {
	if change.Range == nil {
		return change.Text
	}

	lineIndex := includegraph.BuildLineIndex(content)
	lines := strings.Split(content, "\n")

	startLine := int(change.Range.Start.Line)
	endLine := int(change.Range.End.Line)

	startByteCol := 0
	if startLine >= 0 && startLine < len(lines) {
		startByteCol = includegraph.ByteColumn(lines[startLine], int(change.Range.Start.Character))
	}
	endByteCol := 0
	if endLine >= 0 && endLine < len(lines) {
		endByteCol = includegraph.ByteColumn(lines[endLine], int(change.Range.End.Character))
	}

	start := includegraph.ByteOffset(lineIndex, startLine, startByteCol, len(content))
	end := includegraph.ByteOffset(lineIndex, endLine, endByteCol, len(content))
	if end < start {
		end = start
	}

	return content[:start] + change.Text + content[end:]
}
