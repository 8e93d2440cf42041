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
package shaderpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryStage(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		wantStage Stage
		wantOK    bool
	}{
		{"basic composite fragment", "composite.fsh", StageFragment, true},
		{"numbered composite", "composite12.vsh", StageVertex, true},
		{"closed base final", "final.fsh", StageFragment, true},
		{"gbuffers entry", "gbuffers_terrain_cutout_mip.gsh", StageGeometry, true},
		{"compute letter suffix", "composite_c.csh", StageCompute, true},
		{"compute numbered letter suffix", "composite7_c.csh", StageCompute, true},
		{"out of range number", "composite100.fsh", StageNone, false},
		{"letter suffix on non-compute extension", "composite_c.fsh", StageNone, false},
		{"unrecognized name", "util.glsl", StageNone, false},
		{"shadowcomp base", "shadowcomp.csh", StageCompute, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, ok := EntryStage(tt.filename)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantStage, stage)
			}
		})
	}
}

func TestIsDimensionFolder(t *testing.T) {
	assert.True(t, IsDimensionFolder("world-1"))
	assert.True(t, IsDimensionFolder("world1"))
	assert.True(t, IsDimensionFolder("world0"))
	assert.False(t, IsDimensionFolder("world"))
	assert.False(t, IsDimensionFolder("shaders"))
}

func TestIsTrackedExtension(t *testing.T) {
	assert.True(t, IsTrackedExtension("glsl"))
	assert.True(t, IsTrackedExtension("csh"))
	assert.False(t, IsTrackedExtension("txt"))
}
