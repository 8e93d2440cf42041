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
package diagnostics

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/gosimple/slug"
)

// fuzzyMatchMaxDistance bounds how far a raw filepath capture may sit
// from a known token's basename before it's accepted as a match;
// chosen the way the teacher's own attribute-suggestion code picks its
// distance cutoffs (small, name-length-scale constants, not a percentage).
const fuzzyMatchMaxDistance = 3

// unresolvedToken is passed to ParseLog in place of a default token so
// an unparseable filepath capture never accidentally aliases a real
// token (0, the entry's own) — Route needs to see the miss to attempt
// fuzzy resolution instead of silently routing to the entry.
const unresolvedToken = -1

// RoutedDiagnostic is one diagnostic already mapped from its merger
// token onto the real workspace path it belongs to.
type RoutedDiagnostic struct {
	Path     string
	Line     int
	Severity Severity
	Message  string
}

// Route parses log for vendor and resolves each diagnostic's token to a
// workspace path via tokens. When a token is outside the map, the raw
// filepath capture is checked for a numeric parse failure — some driver
// output echoes a literal filename instead of the merger's integer
// token — and fuzzy-matched against every known path's basename via
// Levenshtein distance; anything within fuzzyMatchMaxDistance is
// accepted, otherwise the diagnostic falls back to entryPath. Every
// message is suffixed per §4.5 so tooltips disambiguate shared includes
// across entries.
func Route(vendor, log string, tokens map[int]string, entryPath string) []RoutedDiagnostic {
	parsed := ParseLog(vendor, log, unresolvedToken)

	out := make([]RoutedDiagnostic, 0, len(parsed))
	for _, d := range parsed {
		path, ok := tokens[d.Token]
		if !ok {
			if fuzzy, found := fuzzyResolve(d.RawToken, tokens); found {
				path = fuzzy
			} else {
				path = entryPath
			}
		}
		out = append(out, RoutedDiagnostic{
			Path:     path,
			Line:     d.Line,
			Severity: d.Severity,
			Message:  MessageWithEntrySuffix(d.Message, entryPath),
		})
	}
	return out
}

// fuzzyResolve finds the known token path whose basename is closest to
// raw (itself usually a filename, not a number, or fuzzyResolve
// wouldn't have been reached). Returns false if raw is empty or nothing
// in tokens is within fuzzyMatchMaxDistance.
func fuzzyResolve(raw string, tokens map[int]string) (string, bool) {
	if raw == "" {
		return "", false
	}
	if _, err := strconv.Atoi(raw); err == nil {
		// A genuinely numeric token the map just doesn't contain; fuzzy
		// name matching wouldn't make this any more resolvable.
		return "", false
	}

	target := strings.ToLower(filepath.Base(raw))
	best := ""
	bestDistance := fuzzyMatchMaxDistance + 1
	for _, path := range tokens {
		distance := levenshtein.Distance(target, strings.ToLower(filepath.Base(path)), nil)
		if distance < bestDistance {
			bestDistance = distance
			best = path
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// VendorCacheKey derives a filesystem-safe key from a vendor string for
// callers that persist a per-vendor regex-family selection decision
// (e.g. to a session log directory named after it), since a raw vendor
// string like "ATI Technologies Inc." is not a safe path component on
// every OS.
func VendorCacheKey(vendor string) string {
	return slug.Make(vendor)
}

// GroupByPath buckets routed diagnostics by their resolved workspace
// path, the shape the lint orchestrator needs to replace each file's
// per-entry diagnostics slice.
func GroupByPath(diags []RoutedDiagnostic) map[string][]RoutedDiagnostic {
	byPath := make(map[string][]RoutedDiagnostic)
	for _, d := range diags {
		byPath[d.Path] = append(byPath[d.Path], d)
	}
	return byPath
}
