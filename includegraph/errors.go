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

import "errors"

// ErrUnknownFile is returned by operations that require an existing
// workspace file record (ApplyEdit, ReloadFromDisk, ReconcileIncludes)
// when called on a path the graph has never seen.
var ErrUnknownFile = errors.New("includegraph: no record for path")

// ErrNotAShaderEntry is returned by callers resolving a path to an entry
// (or a temp file with a valid stage) when neither holds, e.g. for
// execute_command("virtualMerge", uri) on a plain include file.
var ErrNotAShaderEntry = errors.New("includegraph: path is not a shader entry")
