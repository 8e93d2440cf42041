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
	"os"
	"path/filepath"
	"strings"

	"bennypowers.dev/mcshader-lsp/internal/logging"
	gitignore "github.com/sabhiram/go-gitignore"
)

// Entry is one discovered entry shader.
type Entry struct {
	Path     string // absolute, canonical
	PackPath string // absolute path of the enclosing "shaders" directory
	Stage    Stage
}

// ScanRoot walks root depth-first looking for directories literally named
// "shaders". Every such directory is a pack root; entry shaders are
// collected from directly beneath it and from one dimension-folder level
// deep. Directories matched by the .gitignore at root (if there is one)
// are skipped; .gitignore files in subdirectories are not read.
func ScanRoot(root string) ([]Entry, error) {
	var entries []Entry
	ignore := loadGitignore(root)

	var walk func(dir string) error
	walk = func(dir string) error {
		items, err := os.ReadDir(dir)
		if err != nil {
			logging.Warning("shaderpack: cannot read directory %s: %v", dir, err)
			return nil
		}
		for _, item := range items {
			full := filepath.Join(dir, item.Name())
			if ignore != nil && ignore.MatchesPath(full) {
				continue
			}
			if !item.IsDir() {
				continue
			}
			if item.Name() == "shaders" {
				packEntries, err := scanPackRoot(full)
				if err != nil {
					logging.Warning("shaderpack: error scanning pack %s: %v", full, err)
					continue
				}
				entries = append(entries, packEntries...)
				continue
			}
			if err := walk(full); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	return entries, nil
}

// scanPackRoot collects entry shaders directly under packRoot and one
// dimension-folder level deep.
func scanPackRoot(packRoot string) ([]Entry, error) {
	var entries []Entry

	top, err := os.ReadDir(packRoot)
	if err != nil {
		return nil, err
	}
	for _, item := range top {
		if item.IsDir() {
			if IsDimensionFolder(item.Name()) {
				dimDir := filepath.Join(packRoot, item.Name())
				dimItems, err := os.ReadDir(dimDir)
				if err != nil {
					logging.Warning("shaderpack: cannot read dimension folder %s: %v", dimDir, err)
					continue
				}
				for _, dimItem := range dimItems {
					if dimItem.IsDir() {
						continue
					}
					if stage, ok := EntryStage(dimItem.Name()); ok {
						entries = append(entries, Entry{
							Path:     filepath.Join(dimDir, dimItem.Name()),
							PackPath: packRoot,
							Stage:    stage,
						})
					}
				}
			}
			continue
		}
		if stage, ok := EntryStage(item.Name()); ok {
			entries = append(entries, Entry{
				Path:     filepath.Join(packRoot, item.Name()),
				PackPath: packRoot,
				Stage:    stage,
			})
		}
	}
	return entries, nil
}

// FindPackRoot walks up from path looking for the nearest ancestor
// directory literally named "shaders", returning "" if none exists. It
// is the façade's best-effort way to find the pack root for a path it
// has no prior record of (a newly opened or newly created file).
func FindPackRoot(path string) string {
	dir := filepath.Dir(path)
	for {
		if filepath.Base(dir) == "shaders" {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ClassifyNewFile is scan_new_file: given a path and the pack root it was
// discovered under (the façade finds it with FindPackRoot), reports the
// entry stage if the path's basename and placement match
// the recognized entry pattern. It does not touch the filesystem.
func ClassifyNewFile(path, packRoot string) (Entry, bool) {
	rel, err := filepath.Rel(packRoot, path)
	if err != nil {
		return Entry{}, false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	switch len(parts) {
	case 1:
		if stage, ok := EntryStage(parts[0]); ok {
			return Entry{Path: path, PackPath: packRoot, Stage: stage}, true
		}
	case 2:
		if IsDimensionFolder(parts[0]) {
			if stage, ok := EntryStage(parts[1]); ok {
				return Entry{Path: path, PackPath: packRoot, Stage: stage}, true
			}
		}
	}
	return Entry{}, false
}

func loadGitignore(root string) *gitignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	ig, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		logging.Warning("shaderpack: invalid .gitignore at %s: %v", path, err)
		return nil
	}
	return ig
}
