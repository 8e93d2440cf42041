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
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"bennypowers.dev/mcshader-lsp/shaderpack"
)

// versionRegex pulls the first dotted-number token out of
// glslangValidator's "Glslang Version: SPIRV..." banner, e.g. "11.8.0".
var versionRegex = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// stageFlag maps a shader stage to the -S flag glslangValidator expects
// when reading source from stdin (it cannot infer stage from a
// filename extension in that mode).
var stageFlag = map[shaderpack.Stage]string{
	shaderpack.StageVertex:   "vert",
	shaderpack.StageFragment: "frag",
	shaderpack.StageGeometry: "geom",
	shaderpack.StageCompute:  "comp",
}

// ExecDriver validates shader source by shelling out to glslangValidator,
// the Khronos reference GLSL front end. No third-party Go binding for
// OpenGL or Vulkan appears anywhere in the retrieval pack (see
// DESIGN.md), so this is the one concern in the whole transform built
// on a stdlib facility (os/exec) rather than an imported library.
//
// glslangValidator happens to be an unusually good fit beyond "it's
// what's available": run in stdin mode it honors #line directives and
// reports errors as "ERROR: <token>:<line>: '<context>' : <message>",
// which is exactly the numeric-token, generic/AMD-shaped log format our
// merger (package merge) and diagnostics router (package diagnostics)
// are already built around.
type ExecDriver struct {
	binary string
}

// NewExecDriver returns a driver that invokes binary (found via PATH
// unless it contains a path separator). binary is typically
// "glslangValidator".
func NewExecDriver(binary string) *ExecDriver {
	return &ExecDriver{binary: binary}
}

// Vendor reports a fixed sentinel: glslangValidator validates against
// the GLSL language specification, not any particular GPU's compiler,
// so there is no vendor string to query. Returning "Generic" selects
// the diagnostics router's generic/AMD-shaped regex family, which (see
// the type doc above) is what glslangValidator's own output matches.
func (d *ExecDriver) Vendor() (string, error) {
	return "Generic", nil
}

// Version runs the binary with -v and extracts the first dotted-number
// token from its banner, normalized to a bare "major.minor[.patch]"
// string (no "v" prefix — callers that need a semver.Compare-ready
// string add it themselves, since not every caller wants one).
func (d *ExecDriver) Version() (string, error) {
	cmd := exec.Command(d.binary, "-v")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	// glslangValidator exits nonzero for "-v" the same way it does for
	// "--help"; the banner is still on stdout/stderr either way.
	_ = cmd.Run()

	m := versionRegex.FindString(out.String())
	if m == "" {
		return "", fmt.Errorf("driver: could not parse version from %s -v output", d.binary)
	}
	return m, nil
}

// Validate compiles source as the given stage by invoking
// glslangValidator in stdin mode. No timeout is imposed: a slow but
// legitimate compile is left to run to completion.
func (d *ExecDriver) Validate(stage shaderpack.Stage, source string) (string, bool, error) {
	flag, ok := stageFlag[stage]
	if !ok {
		return "", false, fmt.Errorf("driver: unsupported stage %v", stage)
	}

	cmd := exec.Command(d.binary, "--stdin", "-S", flag)
	cmd.Stdin = strings.NewReader(source)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stdout

	runErr := cmd.Run()
	log := stdout.String()
	if runErr == nil {
		return "", true, nil
	}
	if _, isExitErr := runErr.(*exec.ExitError); isExitErr {
		return log, false, nil
	}
	return "", false, fmt.Errorf("driver: invoking %s: %w", d.binary, runErr)
}

// Close is a no-op: ExecDriver holds no process-wide resource beyond
// the binary path.
func (d *ExecDriver) Close() error { return nil }
