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

// Package shaderpack implements the pack scanner: discovery of shader-pack
// roots and classification of the entry shaders they contain.
package shaderpack

import (
	"fmt"
	"regexp"
)

// Stage is the shader stage inferred from an entry shader's extension.
type Stage int

const (
	StageNone Stage = iota
	StageVertex
	StageFragment
	StageGeometry
	StageCompute
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageGeometry:
		return "geometry"
	case StageCompute:
		return "compute"
	default:
		return "none"
	}
}

// stageExtensions are the four recognized entry-shader extensions, in the
// order the original enumeration iterates them.
var stageExtensions = []string{"fsh", "vsh", "gsh", "csh"}

func stageForExtension(ext string) Stage {
	switch ext {
	case "vsh":
		return StageVertex
	case "fsh":
		return StageFragment
	case "gsh":
		return StageGeometry
	case "csh":
		return StageCompute
	default:
		return StageNone
	}
}

// gbuffersSuffixes is the closed list of gbuffers_* basenames.
var gbuffersSuffixes = []string{
	"armor_glint", "basic", "beaconbeam", "block", "clouds", "damagedblock",
	"entities", "entities_glowing", "hand", "hand_water", "item", "line",
	"skybasic", "skytextured", "spidereyes", "terrain", "terrain_cutout",
	"terrain_cutout_mip", "terrain_solid", "textured", "textured_lit",
	"water", "weather",
}

// closedBases is the closed set of non-numbered, non-suffixed entry bases.
var closedBases = []string{
	"composite_pre", "deferred_pre", "final", "shadow", "shadow_cutout", "shadow_solid",
}

// numberedBases are the bases that additionally accept a numeric suffix
// 1..99 and, for compute shaders only, a letter-variant suffix a..z (with
// the same 1..99 numbering applied before the letter).
var numberedBases = []string{"composite", "deferred", "prepare", "shadowcomp"}

// defaultShaders is the full set of recognized entry-shader filenames,
// built once at package init the same way the original builds its
// lazy_static DEFAULT_SHADERS HashSet.
var defaultShaders = buildDefaultShaders()

func buildDefaultShaders() map[string]Stage {
	set := make(map[string]Stage, 4316)
	for _, ext := range stageExtensions {
		stage := stageForExtension(ext)
		for _, base := range numberedBases {
			set[base+"."+ext] = stage
		}
		for i := 1; i <= 99; i++ {
			for _, base := range numberedBases {
				set[fmt.Sprintf("%s%d.%s", base, i, ext)] = stage
			}
		}
		for _, base := range closedBases {
			set[base+"."+ext] = stage
		}
		for _, g := range gbuffersSuffixes {
			set["gbuffers_"+g+"."+ext] = stage
		}
	}

	// Compute-only letter-variant suffixes, and their numbered forms.
	for c := byte('a'); c <= 'z'; c++ {
		suffix := string(c)
		for _, base := range numberedBases {
			set[base+"_"+suffix+".csh"] = StageCompute
		}
		for i := 1; i <= 99; i++ {
			for _, base := range numberedBases {
				set[fmt.Sprintf("%s%d_%s.csh", base, i, suffix)] = StageCompute
			}
		}
	}
	return set
}

// EntryStage reports the stage of filename if it is a recognized entry
// shader name, and whether it was recognized at all.
func EntryStage(filename string) (Stage, bool) {
	stage, ok := defaultShaders[filename]
	return stage, ok
}

// basicExtensions are the extensions a file must have to ever be tracked
// at all (entry or include), matching BASIC_EXTENSIONS.
var basicExtensions = map[string]bool{
	"vsh": true, "gsh": true, "fsh": true, "csh": true, "glsl": true,
}

// IsTrackedExtension reports whether ext (without the leading dot) is one
// of the base shader extensions.
func IsTrackedExtension(ext string) bool {
	return basicExtensions[ext]
}

// dimensionFolder matches a pack-root child directory that holds
// dimension-specific overrides, e.g. "world-1", "world1", "world0".
var dimensionFolder = regexp.MustCompile(`^world-?\d+`)

// IsDimensionFolder reports whether name matches the dimension-folder
// naming convention.
func IsDimensionFolder(name string) bool {
	return dimensionFolder.MatchString(name)
}
