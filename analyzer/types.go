package analyzer

import (
	"io"
	"log/slog"

	"github.com/frosts/permafrost/compile"
	"github.com/frosts/permafrost/parser"
)

// DefaultSuffix is inserted before the extension of shrunk scripts.
const DefaultSuffix = ".min"

// Options control how scripts are shrunk and written
type Options struct {
	Dialect compile.Dialect
	Logger  *slog.Logger

	// Output overrides the output path of a single file; "-" writes the
	// shrunk source to Stdout. Ignored for directories.
	Output string
	// Suffix names outputs next to their inputs: frosts.osts -> frosts.min.osts
	Suffix string
	// Body writes .osts results as plain source instead of a container
	Body bool
	// Check verifies the shrunk source with a tree-sitter grammar
	Check bool

	Stdout io.Writer
}

// FileReport is the outcome of shrinking one script
type FileReport struct {
	Path       string
	OutputPath string // empty when written to stdout
	Result     *compile.Result

	// Issues are syntax errors the shrunk source has and the input did not
	Issues []parser.SyntaxIssue
	// MissingMethods are kept methods the grammar could not find in the record class
	MissingMethods []string

	Err error
}

// Failed reports whether the file could not be shrunk or failed verification
func (r *FileReport) Failed() bool {
	return r.Err != nil || len(r.Issues) > 0 || len(r.MissingMethods) > 0
}

// Saved returns the number of bytes removed
func (r *FileReport) Saved() int {
	if r.Result == nil {
		return 0
	}
	return r.Result.InputBytes - r.Result.OutputBytes
}
