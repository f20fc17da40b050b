package osts

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// maxSearchDepth bounds how far below each search directory FindFiles looks.
const maxSearchDepth = 4

// SearchDirs returns the directories scripts are usually saved to: the
// working directory, then Documents and Downloads under the home directory.
func SearchDirs() []string {
	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, "Documents"),
			filepath.Join(home, "Downloads"))
	}
	return dirs
}

// FindFiles returns every file called name under the usual directories.
// The match is exact and case-sensitive.
func FindFiles(name string) []string {
	return FindFilesIn(name, SearchDirs()...)
}

// FindFilesIn returns the sorted paths of files called name under dirs.
// Hidden directories and node_modules are skipped; unreadable directories
// are ignored.
func FindFilesIn(name string, dirs ...string) []string {
	seen := make(map[string]bool)
	var matches []string

	for _, root := range dirs {
		root = filepath.Clean(root)
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() && path != root {
					return fs.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				if path == root {
					return nil
				}
				if strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules" {
					return fs.SkipDir
				}
				if depth(root, path) >= maxSearchDepth {
					return fs.SkipDir
				}
				return nil
			}

			if d.Name() != name {
				return nil
			}
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			if !seen[path] {
				seen[path] = true
				matches = append(matches, path)
			}
			return nil
		})
	}

	sort.Strings(matches)
	return matches
}

func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
