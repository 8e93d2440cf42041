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

// Package driver wraps the single process-wide handle used to validate
// merged shader source against a real (or headless) GLSL compiler. The
// handle is not thread-mobile: every call must come from the single
// linting worker goroutine that owns it.
package driver

import "bennypowers.dev/mcshader-lsp/shaderpack"

// Driver compiles a throwaway shader object and reports the compile
// log on failure. Implementations MUST always release the shader
// object before returning, success or failure.
type Driver interface {
	// Vendor returns the GPU vendor string, read once at startup to
	// choose the diagnostics regex family.
	Vendor() (string, error)

	// Version returns the driver binary's own version string, read once
	// at startup and compared against the configured minimum floor
	// before Validate is trusted.
	Version() (string, error)

	// Validate compiles source as the given stage. An empty log with ok
	// true means success; a non-empty log with ok false means failure.
	Validate(stage shaderpack.Stage, source string) (log string, ok bool, err error)

	// Close releases any process-wide resources the driver holds.
	Close() error
}
