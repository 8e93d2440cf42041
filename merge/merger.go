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

// Package merge flattens an entry shader and its includes into a single
// compilation unit, emitting integer-token #line directives so the
// diagnostics router can map compiler output back to source files.
package merge

import (
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/mcshader-lsp/includegraph"
	"bennypowers.dev/mcshader-lsp/shaderpack"
)

// maxDepth mirrors includegraph's depth bound (INV-3): beyond it, an
// unresolved include line is copied through rather than expanded, so the
// driver reports the error on the literal include line instead of the
// merger hanging or recursing without bound.
const maxDepth = 10

// Result is the product of a merge: the flattened source text and the
// map from file token to the workspace path it represents, so a
// diagnostics router can re-attach real paths to compiler output.
type Result struct {
	Source string
	Tokens map[int]string
}

// Merge flattens the entry shader at path (and its transitive includes)
// into a single compilation unit.
func Merge(graph *includegraph.Graph, entryPath string) (Result, error) {
	entry := graph.Lookup(entryPath)
	if entry == nil {
		return Result{}, includegraph.ErrNotAShaderEntry
	}

	tokens := map[int]string{0: entryPath}
	nextToken := 1

	var body strings.Builder
	mergeBody(graph, entry.Content, entry.IncludesOut, entry.Path, 0, &body, tokens, &nextToken, 0)

	merged := assemble(body.String(), entry.PackPath, entryPath)

	return Result{Source: merged, Tokens: tokens}, nil
}

// MergeTemp flattens an editor buffer opened outside any recognized pack
// (§1 item 5, §3 "Temp file record") the same way Merge flattens a graph
// entry. Its own includes resolve against graph (a temp file can still
// #include a file that belongs to a tracked pack), but the temp file
// itself is never a resolution target: nothing else can depend on it.
// spec.md:159 requires virtualMerge to succeed for a temp file with a
// valid stage; a buffer whose Stage is shaderpack.StageNone is rejected
// with ErrNotAShaderEntry.
func MergeTemp(graph *includegraph.Graph, rec *includegraph.TempRecord) (Result, error) {
	if rec.Stage == shaderpack.StageNone {
		return Result{}, includegraph.ErrNotAShaderEntry
	}

	tokens := map[int]string{0: rec.Path}
	nextToken := 1

	var body strings.Builder
	mergeBody(graph, rec.Content, rec.IncludesOut, rec.Path, 0, &body, tokens, &nextToken, 0)

	merged := assemble(body.String(), rec.PackPath, rec.Path)

	return Result{Source: merged, Tokens: tokens}, nil
}

// mergeBody writes content's expanded body (without the #version lift or
// entry's own leading #line) into body, recursing into includes bounded
// by depth. path identifies the file content/includesOut came from,
// purely for the #line directive comments.
func mergeBody(
	graph *includegraph.Graph,
	content string,
	includesOut []includegraph.IncludeRef,
	path string,
	token int,
	body *strings.Builder,
	tokens map[int]string,
	nextToken *int,
	depth int,
) {
	includesByLine := make(map[int]includegraph.IncludeRef, len(includesOut))
	for _, ref := range includesOut {
		includesByLine[ref.Line] = ref
	}

	lines := splitLines(content)
	for lineNum, line := range lines {
		if includegraph.IsLineDirective(line) {
			continue
		}
		if ref, isInclude := includesByLine[lineNum]; isInclude {
			child := resolveChild(graph, ref, depth)
			if child != nil {
				childToken := *nextToken
				*nextToken++
				tokens[childToken] = child.Path

				fmt.Fprintf(body, "#line 1 %d\t// %s\n", childToken, child.Path)
				mergeBody(graph, child.Content, child.IncludesOut, child.Path, childToken, body, tokens, nextToken, depth+1)
				fmt.Fprintf(body, "#line %d %d\t// %s\n", lineNum+2, token, path)
				continue
			}
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
}

// resolveChild returns the child record for ref if it is followable:
// within the depth bound, resolved to a real path, and present in the
// graph (either as a tracked record or readable fresh).
func resolveChild(graph *includegraph.Graph, ref includegraph.IncludeRef, depth int) *includegraph.Record {
	if depth >= maxDepth || ref.ResolvedPath == "" {
		return nil
	}
	child := graph.Lookup(ref.ResolvedPath)
	if child == nil || child.Missing {
		return nil
	}
	return child
}

// assemble implements step 3 of the algorithm: if a #version directive
// exists anywhere in body, lift it to the top; immediately after it,
// unless packPath's parent directory is literally "debug", inject the
// fixed macro block; then emit the entry's own "#line 1 0" marker before
// the remainder of the body (with the #version line removed from its
// original position).
func assemble(body, packPath, entryPath string) string {
	lines := splitLines(body)
	versionLineIdx := -1
	for i, line := range lines {
		if includegraph.IsVersionDirective(line) {
			versionLineIdx = i
			break
		}
	}

	entryMarker := fmt.Sprintf("#line 1 0\t// %s\n", entryPath)

	if versionLineIdx == -1 {
		return entryMarker + body
	}

	versionLine := lines[versionLineIdx]
	rest := append(append([]string{}, lines[:versionLineIdx]...), lines[versionLineIdx+1:]...)

	var out strings.Builder
	out.WriteString(versionLine)
	out.WriteByte('\n')
	if filepath.Base(filepath.Dir(packPath)) != "debug" {
		out.WriteString(optifineMacros)
	}
	out.WriteString(entryMarker)
	out.WriteString(strings.Join(rest, "\n"))
	out.WriteByte('\n')
	return out.String()
}

// splitLines splits content into lines the way Rust's str::lines() (and
// BufReader::lines()) do: a single trailing line terminator is consumed
// by the split rather than producing a final empty element, so the last
// real line of a file that (as is the overwhelming common case) ends in
// "\n" isn't followed by a spurious blank line in merged output.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}
