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

// Package lint ties the merger (package merge), the driver gateway
// (package driver) and the diagnostics router (package diagnostics)
// into the single orchestration the LSP façade calls on did_save and
// did_change_watched_files: lint every affected entry shader, replace
// each touched file's per-entry diagnostics slice, and report the
// union so the façade can publish it.
package lint

import (
	"sort"
	"sync"

	"bennypowers.dev/mcshader-lsp/diagnostics"
	"bennypowers.dev/mcshader-lsp/driver"
	"bennypowers.dev/mcshader-lsp/includegraph"
	"bennypowers.dev/mcshader-lsp/internal/logging"
	"bennypowers.dev/mcshader-lsp/merge"
)

// Orchestrator runs the C3→C4→C5 pipeline against one graph and driver.
type Orchestrator struct {
	Graph  *includegraph.Graph
	Driver driver.Driver

	loggedVendorsMu sync.Mutex
	loggedVendors   map[string]bool
}

// New returns an Orchestrator over graph and d.
func New(graph *includegraph.Graph, d driver.Driver) *Orchestrator {
	return &Orchestrator{Graph: graph, Driver: d, loggedVendors: make(map[string]bool)}
}

// logVendorOnce records, at most once per distinct vendor string for
// this Orchestrator's lifetime, which diagnostics regex family a vendor
// routed to — keyed by its filesystem-safe slug so the log line (and
// any future on-disk session dump keyed the same way) doesn't choke on
// a vendor string containing spaces or punctuation.
func (o *Orchestrator) logVendorOnce(vendor string) {
	key := diagnostics.VendorCacheKey(vendor)
	o.loggedVendorsMu.Lock()
	defer o.loggedVendorsMu.Unlock()
	if o.loggedVendors[key] {
		return
	}
	o.loggedVendors[key] = true
	logging.Debug("[lint] first validate for vendor %q (cache key %q)", vendor, key)
}

// LintForChangedFiles implements §4.8. changedPaths are the files whose
// content or edges just changed (a save, or a batch of watched-file
// events). The affected-entries set S is computed as the union of
// parent_shaders across changedPaths; every entry in S is relinted, and
// every file touched by any of those merges has its diagnostics map
// updated in place.
//
// The returned map is exactly what the façade should publish: one entry
// per file whose diagnostics changed, each already unioned across every
// entry that currently claims it. If S is empty — a pure include edit
// with no shader entry upstream — each changedPath is still present
// with an empty slice, so the façade clears any stale diagnostics for
// it instead of silently leaving them in place.
func (o *Orchestrator) LintForChangedFiles(changedPaths []string) (map[string][]includegraph.DiagnosticRef, error) {
	entrySet := make(map[string]bool)
	for _, path := range changedPaths {
		rec := o.Graph.Lookup(path)
		if rec == nil {
			continue
		}
		for entry := range rec.ParentShaders {
			entrySet[entry] = true
		}
	}

	published := make(map[string][]includegraph.DiagnosticRef)

	if len(entrySet) == 0 {
		for _, path := range changedPaths {
			published[path] = nil
		}
		return published, nil
	}

	entries := make([]string, 0, len(entrySet))
	for entry := range entrySet {
		entries = append(entries, entry)
	}
	sort.Strings(entries)

	vendor, err := o.Driver.Vendor()
	if err != nil {
		return nil, err
	}
	o.logVendorOnce(vendor)

	touched := make(map[string]bool)
	for _, entry := range entries {
		paths, err := o.lintEntry(entry, vendor)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			touched[p] = true
		}
	}

	for path := range touched {
		rec := o.Graph.Lookup(path)
		if rec == nil {
			continue
		}
		published[path] = unionDiagnostics(rec)
	}

	return published, nil
}

// lintEntry runs C3+C4+C5 for a single entry and replaces its slice of
// every file the merge touched, returning the set of touched paths.
func (o *Orchestrator) lintEntry(entryPath, vendor string) ([]string, error) {
	entry := o.Graph.Lookup(entryPath)
	if entry == nil {
		return nil, nil
	}

	result, err := merge.Merge(o.Graph, entryPath)
	if err != nil {
		return nil, err
	}

	log, ok, err := o.Driver.Validate(entry.Stage, result.Source)
	if err != nil {
		return nil, err
	}

	var routed []diagnostics.RoutedDiagnostic
	if !ok {
		routed = diagnostics.Route(vendor, log, result.Tokens, entryPath)
	}
	grouped := diagnostics.GroupByPath(routed)

	touched := make([]string, 0, len(result.Tokens))
	for _, path := range result.Tokens {
		rec := o.Graph.Lookup(path)
		if rec == nil {
			continue
		}
		rec.Diagnostics[entryPath] = toRefs(grouped[path])
		touched = append(touched, path)
	}
	return touched, nil
}

// unionDiagnostics flattens rec's per-entry diagnostics into one slice,
// ordered by entry path for deterministic publish order.
func unionDiagnostics(rec *includegraph.Record) []includegraph.DiagnosticRef {
	entries := make([]string, 0, len(rec.Diagnostics))
	for entry := range rec.Diagnostics {
		entries = append(entries, entry)
	}
	sort.Strings(entries)

	var out []includegraph.DiagnosticRef
	for _, entry := range entries {
		out = append(out, rec.Diagnostics[entry]...)
	}
	return out
}

func toRefs(routed []diagnostics.RoutedDiagnostic) []includegraph.DiagnosticRef {
	if len(routed) == 0 {
		return nil
	}
	refs := make([]includegraph.DiagnosticRef, len(routed))
	for i, d := range routed {
		refs[i] = includegraph.DiagnosticRef{
			Line:     d.Line,
			Severity: severityString(d.Severity),
			Message:  d.Message,
		}
	}
	return refs
}

func severityString(s diagnostics.Severity) string {
	switch s {
	case diagnostics.SeverityError:
		return "error"
	case diagnostics.SeverityWarning:
		return "warning"
	default:
		return "information"
	}
}
