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

// Package diagnostics turns a compiler log into per-file diagnostic
// lists, choosing the regex family by GPU vendor and mapping the
// merger's integer file tokens back to workspace paths.
package diagnostics

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Severity is the LSP-facing diagnostic severity.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInformation
)

// Diagnostic is one parsed compiler message, still keyed by file token
// (the caller resolves Token to a workspace path via the merger's token
// map).
type Diagnostic struct {
	Token int
	// RawToken is the regex's unparsed filepath capture. It equals
	// strconv.Itoa(Token) in the overwhelming common case (the merger's
	// own "#line 1 <token>" directives), but some driver output instead
	// echoes a literal filename; callers use it to fuzzy-resolve a path
	// the token map doesn't contain.
	RawToken string
	Line     int // 0-based
	Severity Severity
	Message  string
}

// nvidiaRegex matches NVIDIA's "<token>(<line>) : <severity> <code>:
// <message>" format.
var nvidiaRegex = regexp.MustCompile(`^(?P<filepath>\d+)\((?P<linenum>\d+)\) : (?P<severity>error|warning) [A-C]\d+: (?P<output>.+)$`)

// genericRegex matches the AMD/ATI family and every other vendor's
// "<SEVERITY>: <token>:<line>: '<context>' : <message>" format.
var genericRegex = regexp.MustCompile(`^(?P<severity>ERROR|WARNING): (?P<filepath>[^?<>*|"\n]+):(?P<linenum>\d+): (?:'.*' :|[a-z]+\(#\d+\)) +(?P<output>.+)$`)

// vendorsWithNoLineOffset is the vendor-string family that reports
// 0-based line numbers natively; every other vendor (including the
// "everything else" default) needs a line-offset subtraction of 1.
var vendorsWithNoLineOffset = map[string]bool{
	"AMD":                   true,
	"ATI Technologies":      true,
	"ATI Technologies Inc.": true,
}

// ParseLog parses a compiler log, choosing NVIDIA's regex when vendor
// contains "NVIDIA" (case-insensitively) and the generic/AMD regex
// otherwise. defaultToken is used when a matched line has no filepath
// capture resolvable to an int (the entry's own token, conventionally
// 0).
func ParseLog(vendor, log string, defaultToken int) []Diagnostic {
	isNvidia := strings.Contains(strings.ToUpper(vendor), "NVIDIA")

	var out []Diagnostic
	for _, line := range strings.Split(log, "\n") {
		if line == "" {
			continue
		}
		var diag *Diagnostic
		if isNvidia {
			diag = parseNvidiaLine(line, defaultToken)
		} else {
			diag = parseGenericLine(line, vendor, defaultToken)
		}
		if diag != nil {
			out = append(out, *diag)
		}
	}
	return out
}

func parseNvidiaLine(line string, defaultToken int) *Diagnostic {
	m := nvidiaRegex.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	names := nvidiaRegex.SubexpNames()
	fields := submatchFields(m, names)

	token := atoiOr(fields["filepath"], defaultToken)
	lineNum := atoiOr(fields["linenum"], 0)
	// NVIDIA reports 1-based where the merger's "#line 1" means the
	// first body line; the tool works 0-based, so subtract 1.
	lineNum--

	return &Diagnostic{
		Token:    token,
		RawToken: fields["filepath"],
		Line:     lineNum,
		Severity: mapSeverity(fields["severity"]),
		Message:  fields["output"],
	}
}

func parseGenericLine(line, vendor string, defaultToken int) *Diagnostic {
	m := genericRegex.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	names := genericRegex.SubexpNames()
	fields := submatchFields(m, names)

	token := atoiOr(fields["filepath"], defaultToken)
	lineNum := atoiOr(fields["linenum"], 0)
	if !vendorsWithNoLineOffset[vendor] {
		lineNum--
	}

	return &Diagnostic{
		Token:    token,
		RawToken: fields["filepath"],
		Line:     lineNum,
		Severity: mapSeverity(fields["severity"]),
		Message:  fields["output"],
	}
}

func submatchFields(m []string, names []string) map[string]string {
	fields := make(map[string]string, len(names))
	for i, name := range names {
		if name != "" && i < len(m) {
			fields[name] = m[i]
		}
	}
	return fields
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func mapSeverity(s string) Severity {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError
	case "warning":
		return SeverityWarning
	default:
		return SeverityInformation
	}
}

// MessageWithEntrySuffix appends ", from file: <entry_path>" so popup
// tooltips still disambiguate when identical errors appear across
// multiple entry shaders that share an include.
func MessageWithEntrySuffix(message, entryPath string) string {
	return fmt.Sprintf("%s, from file: %s", message, entryPath)
}
