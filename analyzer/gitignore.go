package analyzer

import (
	"bufio"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/frosts/permafrost/parser"
)

// GitignoreParser answers whether a path under rootDir is excluded by the
// root .gitignore
type GitignoreParser struct {
	rootDir          string
	ignorePatterns   []string
	negationPatterns []string
}

// NewGitignoreParser creates a new gitignore parser for the given directory
func NewGitignoreParser(rootDir string) *GitignoreParser {
	gp := &GitignoreParser{
		rootDir: rootDir,
	}
	gp.loadGitignore()
	return gp
}

// loadGitignore reads and parses the .gitignore file
func (gp *GitignoreParser) loadGitignore() {
	file, err := os.Open(filepath.Join(gp.rootDir, ".gitignore"))
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if pattern, ok := strings.CutPrefix(line, "!"); ok {
			gp.negationPatterns = append(gp.negationPatterns, pattern)
		} else {
			gp.ignorePatterns = append(gp.ignorePatterns, line)
		}
	}
}

// ShouldIgnore checks if a path should be ignored based on .gitignore patterns
func (gp *GitignoreParser) ShouldIgnore(p string) bool {
	relPath, err := filepath.Rel(gp.rootDir, p)
	if err != nil || relPath == "." {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range gp.ignorePatterns {
		if matchPattern(pattern, relPath) {
			for _, negation := range gp.negationPatterns {
				if matchPattern(negation, relPath) {
					return false
				}
			}
			return true
		}
	}
	return false
}

// matchPattern checks if a slash-separated relative path matches a
// gitignore pattern. A trailing slash matches a directory and everything
// below it; a leading slash anchors the pattern at the root; a pattern
// without a slash matches any path element.
func matchPattern(pattern, relPath string) bool {
	parts := strings.Split(relPath, "/")

	if dir, ok := strings.CutSuffix(pattern, "/"); ok {
		for _, part := range parts {
			if globMatch(dir, part) {
				return true
			}
		}
		return false
	}

	if anchored, ok := strings.CutPrefix(pattern, "/"); ok {
		return globMatch(anchored, relPath) || strings.HasPrefix(relPath, anchored+"/")
	}

	if !strings.Contains(pattern, "/") {
		for _, part := range parts {
			if globMatch(pattern, part) {
				return true
			}
		}
		return false
	}

	for i := range parts {
		if globMatch(pattern, strings.Join(parts[i:], "/")) {
			return true
		}
	}
	return false
}

func globMatch(pattern, name string) bool {
	ok, err := path.Match(pattern, name)
	return err == nil && ok
}

// skipDir reports directories that never hold scripts worth shrinking
func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") ||
		name == "node_modules" ||
		name == "build" ||
		name == "dist" ||
		name == "vendor"
}

// findScripts finds every script under root, leaving out ignored paths and
// outputs of earlier runs
func findScripts(root, suffix string) ([]string, error) {
	var scripts []string

	gitignoreParser := NewGitignoreParser(root)

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if p != root && gitignoreParser.ShouldIgnore(p) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if p != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if parser.Supported(p) && !isOutput(p, suffix) {
			scripts = append(scripts, p)
		}
		return nil
	})

	return scripts, err
}

// isOutput reports whether p was written by an earlier run
func isOutput(p, suffix string) bool {
	if suffix == "" {
		return false
	}
	stem := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	return strings.HasSuffix(stem, suffix)
}
