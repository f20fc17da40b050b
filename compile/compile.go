// Package compile shrinks a frosts script to the library methods its user
// section can reach.
//
// A run is a pure pipeline over one input string: preprocess, split the
// library block from the user section, extract helpers and methods, build
// the method call graph, find the methods reachable from the user
// section's calls and reassemble a smaller library in front of the user
// section.
package compile

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/frosts/permafrost/reachability"
)

// Result describes one compilation.
type Result struct {
	Output       string
	LibraryFound bool
	Roots        []string // names the user section invokes on the library
	Required     []string // methods and functions kept
	Removed      []string // methods dropped
	Unresolved   []string // roots with no library definition
	InputBytes   int
	OutputBytes  int
}

// Option configures a compilation.
type Option func(*options)

type options struct {
	dialect Dialect
	logger  *slog.Logger
}

// WithDialect replaces the default frosts dialect.
func WithDialect(d Dialect) Option {
	return func(o *options) {
		o.dialect = d
	}
}

// WithLogger sets the logger diagnostics are written to.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Compile returns raw reduced to the library code its user section needs.
func Compile(raw string, opts ...Option) (string, error) {
	result, err := Run(raw, opts...)
	if err != nil {
		return "", err
	}
	return result.Output, nil
}

// Run compiles raw and reports what was kept and dropped.
func Run(raw string, opts ...Option) (*Result, error) {
	o := options{
		dialect: DefaultDialect(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	d, log := o.dialect, o.logger

	source, err := Split(Preprocess(raw), d)
	if err != nil {
		return nil, fmt.Errorf("failed to split source: %w", err)
	}

	result := &Result{InputBytes: len(raw)}

	if source.Library == "" {
		log.Debug("no library block found", "marker", d.NamespaceMarker)
		result.Output = source.User
		result.OutputBytes = len(result.Output)
		return result, nil
	}
	result.LibraryFound = true

	functions, err := Extract(source.Library, d)
	if err != nil {
		return nil, fmt.Errorf("failed to extract library: %w", err)
	}
	log.Debug("library extracted",
		"methods", len(functions.Methods),
		"problematic", len(functions.Problematic))

	graph := reachability.BuildGraph(functions.Methods, d.SelfKeyword, d.Rules())

	parser := reachability.NewCallParser(d.Rules())
	parser.Parse(source.User, d.PublicAlias)
	result.Roots = parser.Methods()

	search := graph.Search(result.Roots, d.RootAliases)
	for _, root := range search.Unresolved {
		log.Debug("root is not a library method", "name", root)
	}

	unresolved := append([]string(nil), search.Unresolved...)
	keep := search.Required.Clone()
	for _, name := range search.Aliased {
		if _, ok := functions.Problematic[name]; !ok {
			log.Debug("aliased root is not defined in the library", "name", name)
			unresolved = append(unresolved, name)
			continue
		}
		keep.Add(name)
	}
	keep.Add(d.ConstructorKeyword)
	sort.Strings(unresolved)

	library, err := functions.Assemble(keep, d)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble library: %w", err)
	}

	result.Output = tidyLines(library + "\n" + source.User)
	result.OutputBytes = len(result.Output)
	result.Required = keep.Sorted()
	result.Unresolved = unresolved
	for _, name := range graph.Nodes() {
		if !keep.Has(name) {
			result.Removed = append(result.Removed, name)
		}
	}
	for _, name := range sortedKeys(functions.Problematic) {
		if !keep.Has(name) {
			result.Removed = append(result.Removed, name)
		}
	}

	log.Debug("library reduced",
		"kept", len(result.Required),
		"removed", len(result.Removed),
		"bytes_in", result.InputBytes,
		"bytes_out", result.OutputBytes)

	return result, nil
}
