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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteResolvesKnownToken(t *testing.T) {
	tokens := map[int]string{0: "/pack/composite.fsh", 1: "/pack/util.glsl"}
	log := "ERROR: 1:3: '' : bad swizzle"
	routed := Route("Generic", log, tokens, "/pack/composite.fsh")
	require.Len(t, routed, 1)
	assert.Equal(t, "/pack/util.glsl", routed[0].Path)
}

func TestRouteFuzzyMatchesFilenameWhenTokenCaptureIsntNumeric(t *testing.T) {
	tokens := map[int]string{0: "/pack/composite.fsh", 1: "/pack/util.glsl"}
	// A hand-crafted generic-family line whose "filepath" capture is a
	// literal filename rather than a merger token.
	log := "ERROR: util.glsl:3: '' : bad swizzle"
	routed := Route("Generic", log, tokens, "/pack/composite.fsh")
	require.Len(t, routed, 1)
	assert.Equal(t, "/pack/util.glsl", routed[0].Path)
}

func TestRouteFallsBackToEntryWhenNothingIsClose(t *testing.T) {
	tokens := map[int]string{0: "/pack/composite.fsh", 1: "/pack/util.glsl"}
	log := "ERROR: completely_unrelated_name_xyz:3: '' : bad swizzle"
	routed := Route("Generic", log, tokens, "/pack/composite.fsh")
	require.Len(t, routed, 1)
	assert.Equal(t, "/pack/composite.fsh", routed[0].Path)
}

func TestVendorCacheKeyIsFilesystemSafe(t *testing.T) {
	assert.Equal(t, "ati-technologies-inc", VendorCacheKey("ATI Technologies Inc."))
}
