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
	"fmt"

	"bennypowers.dev/mcshader-lsp/internal/logging"
	"bennypowers.dev/mcshader-lsp/lsp/types"
	"bennypowers.dev/mcshader-lsp/shaderpack"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized handles the LSP initialized notification: it runs scan_root
// over every workspace folder, upserting every discovered entry shader
// into the graph (§4.1 scan_root), and reports progress via the custom
// mcshader/status notification.
func Initialized(ctx types.ServerContext, context *glsp.Context, params *protocol.InitializedParams) error {
	logging.Status("loading", "Scanning shader packs...", "⚙")

	total := 0
	for _, root := range ctx.WorkspaceRoots() {
		entries, err := shaderpack.ScanRoot(root)
		if err != nil {
			logging.Warning("[INITIALIZED] scan_root %s: %v", root, err)
			continue
		}
		for _, e := range entries {
			if err := ctx.Graph().UpsertEntry(e.PackPath, e.Path, e.Stage); err != nil {
				logging.Warning("[INITIALIZED] upsert_entry %s: %v", e.Path, err)
			}
		}
		total += len(entries)
	}

	vendor, err := ctx.Driver().Vendor()
	if err != nil {
		logging.Warning("[INITIALIZED] driver vendor query failed: %v", err)
	} else {
		logging.Info("mcshader-lsp: driver vendor %q", vendor)
	}

	if version, err := ctx.Driver().Version(); err != nil {
		logging.Warning("[INITIALIZED] driver version query failed: %v", err)
	} else if !ctx.Config().MeetsMinDriverVersion(version) {
		logging.Warning("[INITIALIZED] driver version %q is below the configured minDriverVersion %q", version, ctx.Config().MinDriverVersion)
	}

	logging.Info("mcshader-lsp discovered %d shader entries across %d workspace folder(s)", total, len(ctx.WorkspaceRoots()))
	logging.Status("ready", fmt.Sprintf("%d shader entries", total), "⚙")

	return nil
}
