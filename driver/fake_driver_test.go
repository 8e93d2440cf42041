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
package driver

import (
	"testing"

	"bennypowers.dev/mcshader-lsp/shaderpack"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeDriverLoadFixturesScriptsPerStageResponses(t *testing.T) {
	f := NewFakeDriver("Generic")
	f.LoadFixtures(`[
		{"stage": "frag", "contains": "explode", "log": "ERROR: 0:1: boom"},
		{"stage": "vert", "log": "ERROR: 0:1: vertex always fails"}
	]`)

	log, ok, err := f.Validate(shaderpack.StageFragment, "void main(){ explode(); }")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "ERROR: 0:1: boom", log)

	log, ok, err = f.Validate(shaderpack.StageFragment, "void main(){}")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", log)

	log, ok, err = f.Validate(shaderpack.StageVertex, "void main(){}")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "ERROR: 0:1: vertex always fails", log)
}

func TestFakeDriverCallsRecordsEveryInvocationInOrder(t *testing.T) {
	f := NewFakeDriver("Generic")
	_, _, err := f.Validate(shaderpack.StageFragment, "a")
	require.NoError(t, err)
	_, _, err = f.Validate(shaderpack.StageVertex, "b")
	require.NoError(t, err)

	want := []ValidateCall{
		{Stage: shaderpack.StageFragment, Source: "a"},
		{Stage: shaderpack.StageVertex, Source: "b"},
	}
	if diff := cmp.Diff(want, f.Calls()); diff != "" {
		t.Errorf("Calls() mismatch (-want +got):\n%s", diff)
	}
}
