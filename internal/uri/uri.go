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

// Package uri translates between LSP `file://` URIs and host paths, shared
// by the façade package and every lsp/methods/* subpackage so none of them
// need to import the top-level lsp package (which would cycle back).
package uri

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
)

// ToPath translates a `file://` URI to a canonical host path via standard
// percent-decoding, stripping the leading "/" of the decoded path
// component on Windows (§6 "On-disk layout consumed"). No URL-pattern
// library in the corpus applies to this narrow, one-shot translation, so
// it is implemented on net/url directly.
func ToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %q: %w", rawURI, err)
	}
	path := u.Path
	if runtime.GOOS == "windows" && len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

// FromPath is ToPath's inverse, for constructing document_link targets
// and rename WorkspaceEdits.
func FromPath(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
