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
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bennypowers.dev/mcshader-lsp/driver"
	"bennypowers.dev/mcshader-lsp/includegraph"
	"bennypowers.dev/mcshader-lsp/internal/config"
	"bennypowers.dev/mcshader-lsp/internal/platform"
	"bennypowers.dev/mcshader-lsp/lint"
	"bennypowers.dev/mcshader-lsp/shaderpack"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// lintCmd wraps the pack scanner, include graph, and lint orchestrator
// for one-shot CI use: no LSP client involved, diagnostics printed
// straight to stdout.
var lintCmd = &cobra.Command{
	Use:   "lint <packroot>",
	Short: "Scan, merge, and validate every shader entry in a pack",
	Long: `Scan a shader pack's root, merge every discovered entry shader with its
#include tree, and validate the merged output against the configured
driver. Diagnostics are printed to stdout, one line per occurrence,
routed back to the include file that caused them. Exits 1 if any
entry produced an error-severity diagnostic.

With --watch, re-scans and re-lints the whole pack whenever a tracked
source file changes, printing a fresh report each time instead of
exiting.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		packRoot := args[0]

		watch, _ := cmd.Flags().GetBool("watch")
		if watch {
			return watchAndLint(packRoot)
		}

		hasError, err := runLint(packRoot)
		if err != nil {
			return err
		}
		if hasError {
			os.Exit(1)
		}
		return nil
	},
}

func newDriver() *driver.ExecDriver {
	binary := viper.GetString("mcshader.driverBinary")
	if binary == "" {
		binary = "glslangValidator"
	}
	return driver.NewExecDriver(binary)
}

// runLint performs one scan-merge-validate pass over packRoot, printing
// diagnostics to stdout. It reports whether any error-severity
// diagnostic was found.
func runLint(packRoot string) (bool, error) {
	entries, err := shaderpack.ScanRoot(packRoot)
	if err != nil {
		return false, fmt.Errorf("scanning %s: %w", packRoot, err)
	}

	graph := includegraph.NewGraph(nil)
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if err := graph.UpsertEntry(e.PackPath, e.Path, e.Stage); err != nil {
			return false, fmt.Errorf("upserting entry %s: %w", e.Path, err)
		}
		paths = append(paths, e.Path)
	}

	d := newDriver()
	defer d.Close()

	orchestrator := lint.New(graph, d)
	diags, err := orchestrator.LintForChangedFiles(paths)
	if err != nil {
		return false, fmt.Errorf("linting %s: %w", packRoot, err)
	}

	hasError := false
	for path, refs := range diags {
		for _, ref := range refs {
			fmt.Printf("%s:%d: %s: %s\n", path, ref.Line+1, ref.Severity, ref.Message)
			if ref.Severity == "error" {
				hasError = true
			}
		}
	}
	return hasError, nil
}

// watchAndLint re-runs runLint whenever a watched-extension file under
// packRoot changes, debouncing bursts of events (e.g. a save that
// touches several files) into a single re-lint.
func watchAndLint(packRoot string) error {
	fw, err := platform.NewFSNotifyFileWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer fw.Close()

	err = filepath.WalkDir(packRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", packRoot, err)
	}

	cfg := config.Default()

	pterm.Info.Printf("Watching %s for changes...\n", packRoot)
	if _, err := runLint(packRoot); err != nil {
		pterm.Error.Println(err)
	}

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false

	for {
		select {
		case event, ok := <-fw.Events():
			if !ok {
				return nil
			}
			if !cfg.MatchesWatchedExtension(event.Name) {
				continue
			}
			if !pending {
				pending = true
				debounce.Reset(200 * time.Millisecond)
			}
		case err, ok := <-fw.Errors():
			if !ok {
				return nil
			}
			pterm.Warning.Printf("watch error: %v\n", err)
		case <-debounce.C:
			pending = false
			pterm.Info.Println("Change detected, re-linting...")
			if _, err := runLint(packRoot); err != nil {
				pterm.Error.Println(err)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.Flags().Bool("watch", false, "Re-lint the pack whenever a tracked file changes")
}
