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
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchedFilesGlobIncludesExtraExtensions(t *testing.T) {
	cfg := Config{ExtraExtension: []string{"inc"}}
	assert.Equal(t, "**/*.{vsh,gsh,fsh,csh,glsl,inc}", cfg.WatchedFilesGlob())
}

func TestMatchesWatchedExtension(t *testing.T) {
	cfg := Config{ExtraExtension: []string{"inc"}}
	assert.True(t, cfg.MatchesWatchedExtension("shaders/final.fsh"))
	assert.True(t, cfg.MatchesWatchedExtension("shaders/lib/common.inc"))
	assert.False(t, cfg.MatchesWatchedExtension("shaders/README.md"))
}

func TestIsLikelyDirectoryDelete(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.IsLikelyDirectoryDelete("shaders/world0"))
	assert.False(t, cfg.IsLikelyDirectoryDelete("shaders/world0/composite.fsh"))
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	cfg := Config{LogLevel: "verbose"}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsExtensionWithDot(t *testing.T) {
	cfg := Config{ExtraExtension: []string{".inc"}}
	assert.Error(t, cfg.Validate())
}

func TestCloneDeepCopiesExtraExtension(t *testing.T) {
	cfg := Config{ExtraExtension: []string{"inc"}}
	clone := cfg.Clone()
	clone.ExtraExtension[0] = "glslinc"
	require.Equal(t, "inc", cfg.ExtraExtension[0])
}

func TestValidateRejectsMalformedMinDriverVersion(t *testing.T) {
	cfg := Config{MinDriverVersion: "not-a-version"}
	assert.Error(t, cfg.Validate())
}

func TestMeetsMinDriverVersionWithNoFloorAlwaysTrue(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.MeetsMinDriverVersion("0.0.1"))
}

func TestMeetsMinDriverVersionComparesSemver(t *testing.T) {
	cfg := Config{MinDriverVersion: "11.8.0"}
	assert.True(t, cfg.MeetsMinDriverVersion("11.8.0"))
	assert.True(t, cfg.MeetsMinDriverVersion("12.0.0"))
	assert.False(t, cfg.MeetsMinDriverVersion("11.7.9"))
}
