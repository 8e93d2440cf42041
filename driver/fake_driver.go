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
	"strings"
	"sync"

	"bennypowers.dev/mcshader-lsp/shaderpack"
	"github.com/tidwall/gjson"
)

// ValidateCall records one Validate invocation, for tests that assert
// on what the driver was asked to compile.
type ValidateCall struct {
	Stage  shaderpack.Stage
	Source string
}

// FakeDriver is an in-process, fully scripted Driver for unit tests of
// the linting orchestrator and diagnostics router, so they don't depend
// on a real glslangValidator binary being present.
type FakeDriver struct {
	mu sync.Mutex

	VendorString  string
	VersionString string
	// LogFor, if non-nil, is consulted first: it returns (log, ok) for
	// a given source, letting a test script per-source responses.
	LogFor func(stage shaderpack.Stage, source string) (string, bool)

	calls []ValidateCall
}

// NewFakeDriver returns a driver reporting vendorString and otherwise
// returning success (no log) for everything, until LogFor is set.
func NewFakeDriver(vendorString string) *FakeDriver {
	return &FakeDriver{VendorString: vendorString, VersionString: "999.0.0"}
}

func (f *FakeDriver) Vendor() (string, error) {
	return f.VendorString, nil
}

func (f *FakeDriver) Version() (string, error) {
	return f.VersionString, nil
}

func (f *FakeDriver) Validate(stage shaderpack.Stage, source string) (string, bool, error) {
	f.mu.Lock()
	f.calls = append(f.calls, ValidateCall{Stage: stage, Source: source})
	f.mu.Unlock()

	if f.LogFor == nil {
		return "", true, nil
	}
	log, ok := f.LogFor(stage, source)
	return log, ok, nil
}

func (f *FakeDriver) Close() error { return nil }

// LoadFixtures configures f.LogFor from a JSON array of scripted
// responses, so a test can script many stage/log combinations as data
// instead of a hand-written closure: `[{"stage":"frag","contains":"foo","log":"..."}]`.
// Validate returns the first fixture whose stage (if given) matches and
// whose contains substring (if given) appears in the source; a fixture
// with no "log" field scripts success. Uses gjson rather than a typed
// unmarshal since a fixture file is read-only ad hoc test data, not a
// wire format this binary also produces.
func (f *FakeDriver) LoadFixtures(fixtureJSON string) {
	type fixture struct {
		stage    shaderpack.Stage
		hasStage bool
		contains string
		log      string
		hasLog   bool
	}

	var fixtures []fixture
	gjson.Parse(fixtureJSON).ForEach(func(_, entry gjson.Result) bool {
		fx := fixture{contains: entry.Get("contains").String()}
		if s := entry.Get("stage"); s.Exists() {
			fx.stage, fx.hasStage = stageFromFixtureString(s.String())
		}
		if l := entry.Get("log"); l.Exists() {
			fx.log, fx.hasLog = l.String(), true
		}
		fixtures = append(fixtures, fx)
		return true
	})

	f.LogFor = func(stage shaderpack.Stage, source string) (string, bool) {
		for _, fx := range fixtures {
			if fx.hasStage && fx.stage != stage {
				continue
			}
			if fx.contains != "" && !strings.Contains(source, fx.contains) {
				continue
			}
			return fx.log, !fx.hasLog
		}
		return "", true
	}
}

func stageFromFixtureString(s string) (shaderpack.Stage, bool) {
	switch s {
	case "vert":
		return shaderpack.StageVertex, true
	case "frag":
		return shaderpack.StageFragment, true
	case "geom":
		return shaderpack.StageGeometry, true
	case "comp":
		return shaderpack.StageCompute, true
	default:
		return shaderpack.StageNone, false
	}
}

// Calls returns a copy of every Validate invocation recorded so far.
func (f *FakeDriver) Calls() []ValidateCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ValidateCall, len(f.calls))
	copy(out, f.calls)
	return out
}
