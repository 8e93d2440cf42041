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

// Package config decodes the `mcshader` configuration key sent by the LSP
// client on initialize/did_change_configuration, and derives the
// watched-files glob from it.
package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/mod/semver"
)

// Config is the decoded shape of the `mcshader` key.
type Config struct {
	LogLevel       string   `mapstructure:"logLevel" yaml:"logLevel"`
	ExtraExtension []string `mapstructure:"extraExtension" yaml:"extraExtension"`
	// MinDriverVersion, if set, is the lowest driver.Driver.Version()
	// this workspace accepts, e.g. "1.3.0". Empty means no floor.
	MinDriverVersion string `mapstructure:"minDriverVersion" yaml:"minDriverVersion"`
}

// baseExtensions are always watched, regardless of ExtraExtension.
var baseExtensions = []string{"vsh", "gsh", "fsh", "csh", "glsl"}

// Default returns the configuration assumed before the client sends one.
func Default() Config {
	return Config{LogLevel: "info"}
}

// Clone returns a deep copy, the same shape as the teacher's CemConfig.Clone.
func (c Config) Clone() Config {
	clone := c
	if c.ExtraExtension != nil {
		clone.ExtraExtension = make([]string, len(c.ExtraExtension))
		copy(clone.ExtraExtension, c.ExtraExtension)
	}
	return clone
}

// WatchedFilesGlob builds the base glob extended with ExtraExtension, per
// spec: "**/*.{vsh,gsh,fsh,csh,glsl,<extras>}".
func (c Config) WatchedFilesGlob() string {
	exts := make([]string, 0, len(baseExtensions)+len(c.ExtraExtension))
	exts = append(exts, baseExtensions...)
	exts = append(exts, c.ExtraExtension...)
	return "**/*.{" + strings.Join(exts, ",") + "}"
}

// MatchesWatchedExtension reports whether path's extension is one of the
// watched set (base plus ExtraExtension).
func (c Config) MatchesWatchedExtension(path string) bool {
	ok, _ := doublestar.Match(c.WatchedFilesGlob(), path)
	return ok
}

// IsLikelyDirectoryDelete implements the "not-one-of" exclusion glob for
// delete events: doublestar has no negation syntax, so the exclusion is a
// plain boolean complement of MatchesWatchedExtension. A deleted path with
// no watched extension is, best-effort, a directory rather than a file
// (§4.6 "If it is a directory... no extension among watched").
func (c Config) IsLikelyDirectoryDelete(path string) bool {
	return !c.MatchesWatchedExtension(path)
}

// Validate checks LogLevel against the closed enum and ExtraExtension
// entries against the bare-extension shape (no dots, no path separators),
// mirroring the embedded JSON Schema enforced by Decode.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warning", "error", "critical":
	default:
		return fmt.Errorf("config: invalid logLevel %q", c.LogLevel)
	}
	for _, ext := range c.ExtraExtension {
		if ext == "" || strings.ContainsAny(ext, "./\\*") {
			return fmt.Errorf("config: invalid extraExtension %q", ext)
		}
	}
	if c.MinDriverVersion != "" && !semver.IsValid(toSemver(c.MinDriverVersion)) {
		return fmt.Errorf("config: invalid minDriverVersion %q", c.MinDriverVersion)
	}
	return nil
}

// MeetsMinDriverVersion reports whether driverVersion (as returned by
// driver.Driver.Version, typically a bare "major.minor[.patch]" string)
// satisfies MinDriverVersion. An unset floor, or a driver version that
// doesn't parse as a semver at all, is always accepted: the floor is a
// startup advisory, not a hard gate on using the driver.
func (c Config) MeetsMinDriverVersion(driverVersion string) bool {
	if c.MinDriverVersion == "" {
		return true
	}
	v := toSemver(driverVersion)
	if !semver.IsValid(v) {
		return true
	}
	return semver.Compare(v, toSemver(c.MinDriverVersion)) >= 0
}

// toSemver prefixes a bare "1.2.3"-shaped version with "v", the form
// golang.org/x/mod/semver requires.
func toSemver(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
