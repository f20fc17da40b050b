package compile

import (
	"regexp"
	"strings"

	"github.com/frosts/permafrost/reachability"
)

// FunctionSet is the library block broken into addressable pieces.
type FunctionSet struct {
	// AlwaysTake is every line before the record constructor: helpers,
	// types and the class header. Unused problematic functions are cut
	// from it at assembly time.
	AlwaysTake string
	// Methods maps normalized method names to their original text.
	Methods map[string]string
	// Problematic maps flagged top-level functions to their text.
	Problematic map[string]string
}

// methodHeaderStart matches the first line of a method whose parameter list
// continues on following lines.
var methodHeaderStart = regexp.MustCompile(`^(?:(?:public|private|protected|static|async|override|readonly|get|set)\s+)*[A-Za-z_$][\w$]*\s*(?:<[^>]*>)?\s*\(`)

// Extract breaks a library block into always-kept text, problematic
// functions and record methods.
func Extract(library string, d Dialect) (*FunctionSet, error) {
	at := strings.Index(library, d.ConstructorKeyword)
	if at < 0 {
		return nil, ErrMissingConstructor
	}
	// Keep the constructor's indentation with its body.
	if start := strings.LastIndexByte(library[:at], '\n') + 1; strings.TrimSpace(library[start:at]) == "" {
		at = start
	}
	before, after := library[:at], library[at:]

	return &FunctionSet{
		AlwaysTake:  before,
		Methods:     extractMethods(after),
		Problematic: extractProblematic(before, d),
	}, nil
}

// extractProblematic captures the full text of every flagged top-level function.
func extractProblematic(region string, d Dialect) map[string]string {
	found := make(map[string]string)

	var (
		scanner   BraceScanner
		body      strings.Builder
		name      string
		capturing bool
	)

	for _, line := range splitLines(region) {
		if !capturing {
			fn, ok := functionName(strings.TrimSpace(line))
			if !ok || !d.isProblematic(fn) {
				continue
			}
			name, capturing = fn, true
			scanner.Reset()
			body.Reset()
		}

		body.WriteString(line)
		body.WriteByte('\n')

		if scanner.Advance(line) <= 0 && (scanner.Opened() || strings.Contains(line, "{")) {
			found[name] = body.String()
			capturing = false
		}
	}

	return found
}

// functionName returns the name of a top-level function declaration.
func functionName(trimmed string) (string, bool) {
	rest, ok := strings.CutPrefix(trimmed, "export ")
	if !ok {
		rest = trimmed
	}
	rest, ok = strings.CutPrefix(rest, "function ")
	if !ok {
		return "", false
	}
	name, _, ok := strings.Cut(rest, "(")
	if !ok {
		return "", false
	}
	return reachability.NormalizeName(name), true
}

// extractMethods captures every method body in the region that starts at
// the constructor, keyed by normalized name.
func extractMethods(region string) map[string]string {
	methods := make(map[string]string)

	var (
		scanner   BraceScanner
		body      strings.Builder
		name      string
		capturing bool
		pending   []string
	)

	for _, line := range splitLines(region) {
		trimmed := strings.TrimSpace(line)

		if !capturing {
			switch {
			case len(pending) > 0:
				if strings.HasSuffix(trimmed, ";") {
					pending = nil
					continue
				}
				pending = append(pending, line)
				if !strings.HasSuffix(trimmed, "{") {
					continue
				}

			case strings.Contains(trimmed, "(") && strings.HasSuffix(trimmed, "{"):
				pending = []string{line}

			case methodHeaderStart.MatchString(trimmed) && !strings.HasSuffix(trimmed, ";"):
				pending = []string{line}
				continue

			default:
				continue
			}

			header, _, _ := strings.Cut(strings.TrimSpace(pending[0]), "(")
			name = reachability.NormalizeName(header)
			capturing = true

			scanner.Reset()
			body.Reset()
			for _, h := range pending {
				body.WriteString(h)
				body.WriteByte('\n')
			}
			pending = nil

			if scanner.Advance(body.String()) > 0 {
				continue
			}
		} else {
			body.WriteString(line)
			body.WriteByte('\n')
			if scanner.Advance(line) > 0 {
				continue
			}
		}

		// Getter and setter pairs share a name; keep both bodies.
		methods[name] += body.String()
		capturing = false
	}

	return methods
}
