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
package workspace

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"bennypowers.dev/mcshader-lsp/internal/config"
	"bennypowers.dev/mcshader-lsp/internal/logging"
	"bennypowers.dev/mcshader-lsp/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeConfiguration re-decodes the mcshader key from the settings
// payload the client pushed and swaps it in atomically (§5, §6).
func DidChangeConfiguration(ctx types.ServerContext, context *glsp.Context, params *protocol.DidChangeConfigurationParams) error {
	v := viper.New()
	if err := v.MergeConfigMap(toStringMap(params.Settings)); err != nil {
		logging.Warning("[workspace/didChangeConfiguration] merge settings: %v", err)
		return nil
	}

	cfg, err := config.Decode(v)
	if err != nil {
		logging.Warning("[workspace/didChangeConfiguration] %v", err)
		return nil
	}

	ctx.SetConfig(cfg)
	logging.Info("mcshader-lsp: configuration updated (logLevel=%q, extraExtension=%v)", cfg.LogLevel, cfg.ExtraExtension)
	return nil
}

// toStringMap best-effort-coerces the settings payload (any, since
// clients differ in how they shape it) into the map[string]any viper
// expects for MergeConfigMap.
func toStringMap(settings any) map[string]any {
	out := make(map[string]any)
	if err := mapstructure.Decode(settings, &out); err != nil {
		return out
	}
	return out
}
