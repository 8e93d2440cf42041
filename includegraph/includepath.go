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
package includegraph

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrInvalidIncludePath is returned by JoinIncludePath when a ".." component
// would escape above the base path. No other component is rejected: empty
// components are skipped and every other one is appended as-is.
var ErrInvalidIncludePath = errors.New("unable to find parent while creating include path")

// JoinIncludePath implements include_path_join: join additional onto base,
// component by component, so that ".." pops a preceding normal component
// (failing if there is none to pop), "." is skipped, and any other
// component is appended. This mirrors the original's Rust path::Component
// walk exactly, rather than using filepath.Join's OS-dependent cleanup,
// because includes must normalize uniformly regardless of host platform.
func JoinIncludePath(base, additional string) (string, error) {
	buffer := strings.Split(filepath.ToSlash(filepath.Clean(base)), "/")
	for _, component := range strings.Split(filepath.ToSlash(additional), "/") {
		switch component {
		case "":
			continue
		case ".":
			continue
		case "..":
			if len(buffer) == 0 || buffer[len(buffer)-1] == "" || buffer[len(buffer)-1] == ".." {
				return "", ErrInvalidIncludePath
			}
			buffer = buffer[:len(buffer)-1]
		default:
			buffer = append(buffer, component)
		}
	}
	if len(buffer) == 0 {
		return "", ErrInvalidIncludePath
	}
	joined := strings.Join(buffer, "/")
	return filepath.FromSlash(joined), nil
}

// includeRegex matches a trimmed "#include "path"" line, capturing the
// quoted path and its (start, end) byte column within the line.
var includeRegex = regexp.MustCompile(`^\s*#include\s+"(.+)"`)

// mojImportRegex matches the partially-implemented "#moj_import name"
// alias (spec.md §9 / §4.9): normalize separators uniformly, do not guess
// at any further behavior.
var mojImportRegex = regexp.MustCompile(`^\s*#moj_import\s+(\S+)`)

// lineDirectiveRegex matches any #line directive authored in source, which
// the merger strips on output.
var lineDirectiveRegex = regexp.MustCompile(`^\s*#line`)

// versionRegex matches a line that begins, after optional whitespace, with
// a #version directive.
var versionRegex = regexp.MustCompile(`^\s*#version.*$`)

// IncludeMatch is one matched include reference within a line.
type IncludeMatch struct {
	RawPath       string // the literal text inside the quotes, or after moj_import
	ColStartBytes int
	ColEndBytes   int
	IsAbsolute    bool // begins with '/': resolved against the pack root
	IsMojImport   bool
}

// MatchIncludeLine inspects a single line (no trailing newline) and reports
// the include reference it contains, if any.
func MatchIncludeLine(line string) (IncludeMatch, bool) {
	if m := includeRegex.FindStringSubmatchIndex(line); m != nil {
		raw := line[m[2]:m[3]]
		return IncludeMatch{
			RawPath:       raw,
			ColStartBytes: m[2],
			ColEndBytes:   m[3],
			IsAbsolute:    strings.HasPrefix(raw, "/"),
		}, true
	}
	if m := mojImportRegex.FindStringSubmatchIndex(line); m != nil {
		raw := line[m[2]:m[3]]
		return IncludeMatch{
			RawPath:       raw,
			ColStartBytes: m[2],
			ColEndBytes:   m[3],
			IsMojImport:   true,
		}, true
	}
	return IncludeMatch{}, false
}

// IsLineDirective reports whether line is a #line directive authored in
// source (to be stripped by the merger, or ignored by include scanning).
func IsLineDirective(line string) bool {
	return lineDirectiveRegex.MatchString(line)
}

// IsVersionDirective reports whether line is a #version directive (leading
// whitespace allowed).
func IsVersionDirective(line string) bool {
	return versionRegex.MatchString(line)
}

// ResolveInclude turns a matched include reference into a normalized
// absolute path, given the pack root and the directory of the including
// file. The moj_import alias resolves to "<pack>/include/<name>" per
// spec.md §4.2/§9.
func ResolveInclude(m IncludeMatch, packPath, includingFileDir string) (string, error) {
	if m.IsMojImport {
		return JoinIncludePath(packPath, filepath.Join("include", m.RawPath))
	}
	if m.IsAbsolute {
		return JoinIncludePath(packPath, strings.TrimPrefix(m.RawPath, "/"))
	}
	return JoinIncludePath(includingFileDir, m.RawPath)
}

// RenameLiteral computes the new include-literal text for a rename
// target (§4.7 step 1), preserving the style of the original literal:
// a pack-root-absolute literal (leading "/") stays absolute, rewritten
// against newPath's position under packPath; anything else is rewritten
// relative to includingFileDir, using ".." chains as needed.
func RenameLiteral(oldRawPath, packPath, includingFileDir, newPath string) string {
	if strings.HasPrefix(oldRawPath, "/") {
		rel, err := filepath.Rel(packPath, newPath)
		if err == nil {
			return "/" + filepath.ToSlash(rel)
		}
	}
	rel, err := filepath.Rel(includingFileDir, newPath)
	if err != nil {
		return filepath.ToSlash(newPath)
	}
	return filepath.ToSlash(rel)
}
