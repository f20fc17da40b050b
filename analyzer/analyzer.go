package analyzer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/frosts/permafrost/compile"
	"github.com/frosts/permafrost/osts"
	"github.com/frosts/permafrost/parser"
)

// Shrinker reads scripts, compiles them and writes the results
type Shrinker struct {
	opts Options
}

// New creates a shrinker. Unset options fall back to the frosts dialect, a
// discarding logger, DefaultSuffix and os.Stdout.
func New(opts Options) *Shrinker {
	if opts.Dialect.NamespaceMarker == "" {
		opts.Dialect = compile.DefaultDialect()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Suffix == "" {
		opts.Suffix = DefaultSuffix
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	return &Shrinker{opts: opts}
}

// ShrinkPath shrinks a single script or every script under a directory
func (s *Shrinker) ShrinkPath(ctx context.Context, path string) ([]*FileReport, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return s.ShrinkDirectory(ctx, path)
	}

	report := s.ShrinkFile(ctx, path, s.opts.Output)
	return []*FileReport{report}, nil
}

// ShrinkDirectory shrinks every script under dir concurrently. Failures are
// recorded per file; the returned error is only set when the walk fails or
// ctx is cancelled.
func (s *Shrinker) ShrinkDirectory(ctx context.Context, dir string) ([]*FileReport, error) {
	scripts, err := findScripts(dir, s.opts.Suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to find scripts: %w", err)
	}
	s.opts.Logger.Info("found scripts", "dir", dir, "count", len(scripts))

	reports := make([]*FileReport, len(scripts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range scripts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = s.ShrinkFile(ctx, path, "")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Path < reports[j].Path
	})
	return reports, nil
}

// ShrinkFile shrinks the script at path and writes it to output, or next to
// the input when output is empty
func (s *Shrinker) ShrinkFile(ctx context.Context, path, output string) *FileReport {
	report := &FileReport{Path: path}
	log := s.opts.Logger.With("file", path)

	source, script, err := readScript(path)
	if err != nil {
		report.Err = err
		return report
	}

	result, err := compile.Run(source,
		compile.WithDialect(s.opts.Dialect),
		compile.WithLogger(log))
	if err != nil {
		report.Err = fmt.Errorf("failed to compile %s: %w", path, err)
		return report
	}
	report.Result = result

	if s.opts.Check {
		if err := s.verify(ctx, report, source); err != nil {
			log.Warn("verification skipped", "error", err)
		}
	}

	if output == "" {
		output = s.outputPath(path)
	}
	if output == "-" {
		_, err = io.WriteString(s.opts.Stdout, result.Output)
	} else {
		report.OutputPath = output
		err = s.writeScript(output, script, result.Output)
	}
	if err != nil {
		report.Err = err
	}

	log.Debug("shrunk", "output", report.OutputPath, "saved_bytes", report.Saved())
	return report
}

// readScript returns the source of path. For .osts containers the parsed
// container is returned too so the result can be written back into it.
func readScript(path string) (string, *osts.Script, error) {
	if strings.EqualFold(filepath.Ext(path), ".osts") {
		script, err := osts.ReadFile(path)
		if err != nil {
			return "", nil, err
		}
		return script.Body, script, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	text, err := osts.Decode(data)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(text), nil, nil
}

func (s *Shrinker) writeScript(path string, script *osts.Script, source string) error {
	if script != nil && !s.opts.Body {
		return script.WithBody(source).WriteFile(path)
	}
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// outputPath inserts the suffix before the extension: a/frosts.osts ->
// a/frosts.min.osts. Plain-source outputs of containers end in .ts.
func (s *Shrinker) outputPath(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	if s.opts.Body && strings.EqualFold(ext, ".osts") {
		ext = ".ts"
	}
	return stem + s.opts.Suffix + ext
}

// verify parses input and output with the grammar for path. Syntax issues
// are only attributed to shrinking when the input parsed cleanly.
func (s *Shrinker) verify(ctx context.Context, report *FileReport, input string) error {
	p, err := parser.CreateParser(report.Path)
	if err != nil {
		return err
	}
	defer p.Close()

	before, err := p.Check(ctx, []byte(input))
	if err != nil {
		return err
	}
	if len(before) > 0 {
		return fmt.Errorf("input has %d syntax issues", len(before))
	}

	output := []byte(report.Result.Output)
	report.Issues, err = p.Check(ctx, output)
	if err != nil {
		return err
	}

	if !report.Result.LibraryFound {
		return nil
	}

	class := strings.TrimSpace(strings.TrimPrefix(s.opts.Dialect.RecordConstructor, "new "))
	methods, err := p.ClassMethods(ctx, output, class)
	if err != nil {
		return err
	}
	report.MissingMethods = missingMethods(report.Result.Required, methods, s.opts.Dialect)
	return nil
}

// missingMethods lists required class members absent from declared.
// Problematic functions and aliases live outside the class.
func missingMethods(required, declared []string, d compile.Dialect) []string {
	have := make(map[string]bool, len(declared))
	for _, m := range declared {
		have[m] = true
	}
	outside := make(map[string]bool)
	for _, name := range d.ProblematicFunctions {
		outside[name] = true
	}
	for name := range d.RootAliases {
		outside[name] = true
	}

	var missing []string
	for _, name := range required {
		if !have[name] && !outside[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
