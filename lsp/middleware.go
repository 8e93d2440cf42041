/*
Copyright © 2025 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package lsp

import (
	"fmt"
	"runtime/debug"

	"bennypowers.dev/mcshader-lsp/internal/logging"
	"bennypowers.dev/mcshader-lsp/lsp/types"
	"github.com/tliron/glsp"
)

// method wraps an LSP handler that returns (result, error) with panic
// recovery and request/response logging. Returns the bare function type
// so it plugs directly into a protocol.Handler field.
func method[P, R any](
	s *Server,
	name string,
	handler func(types.ServerContext, *glsp.Context, P) (R, error),
) func(*glsp.Context, P) (R, error) {
	return func(ctx *glsp.Context, params P) (result R, err error) {
		defer func() {
			if r := recover(); r != nil {
				logging.Error("[LSP] panic in %s: %v\n%s", name, r, string(debug.Stack()))
				err = fmt.Errorf("internal error in %s", name)
				var zero R
				result = zero
			}
		}()

		logging.Debug("[LSP] %s started", name)
		result, err = handler(s, ctx, params)
		if err != nil {
			logging.Debug("[LSP] %s error: %v", name, err)
			return result, fmt.Errorf("%s: %w", name, err)
		}
		logging.Debug("[LSP] %s completed", name)
		return result, nil
	}
}

// notify wraps an LSP notification handler that returns only an error.
func notify[P any](
	s *Server,
	name string,
	handler func(types.ServerContext, *glsp.Context, P) error,
) func(*glsp.Context, P) error {
	return func(ctx *glsp.Context, params P) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logging.Error("[LSP] panic in %s: %v\n%s", name, r, string(debug.Stack()))
				err = fmt.Errorf("internal error in %s", name)
			}
		}()

		logging.Debug("[LSP] %s started", name)
		err = handler(s, ctx, params)
		if err != nil {
			logging.Debug("[LSP] %s error: %v", name, err)
			return fmt.Errorf("%s: %w", name, err)
		}
		logging.Debug("[LSP] %s completed", name)
		return nil
	}
}

// noParam wraps an LSP handler that takes no params (Shutdown).
func noParam(
	s *Server,
	name string,
	handler func(types.ServerContext, *glsp.Context) error,
) func(*glsp.Context) error {
	return func(ctx *glsp.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logging.Error("[LSP] panic in %s: %v\n%s", name, r, string(debug.Stack()))
				err = fmt.Errorf("internal error in %s", name)
			}
		}()

		logging.Debug("[LSP] %s started", name)
		err = handler(s, ctx)
		if err != nil {
			logging.Debug("[LSP] %s error: %v", name, err)
			return fmt.Errorf("%s: %w", name, err)
		}
		logging.Debug("[LSP] %s completed", name)
		return nil
	}
}
