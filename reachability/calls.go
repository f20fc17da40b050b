package reachability

import "strings"

// CallParser discovers which local names hold record values in a block of
// code and which methods or properties are invoked on them. A CallParser
// is good for a single Parse; its sets are never shared.
type CallParser struct {
	rules    Rules
	tracking Set
	calls    Set
}

// NewCallParser returns a parser with the rules' seed phrases tracked.
func NewCallParser(rules Rules) *CallParser {
	p := &CallParser{
		rules:    rules,
		tracking: NewSet(),
		calls:    NewSet(),
	}
	for _, phrase := range rules.SeedPhrases {
		if phrase != "" {
			p.tracking.Add(phrase)
		}
	}
	return p
}

// Parse analyses code with root as the initial record reference.
func (p *CallParser) Parse(code, root string) {
	p.trackAssignments(code, root)
	p.collectChains(code)
	p.collectIterators(code)
	p.clean()
}

// Tracking returns the names believed to reference record values.
func (p *CallParser) Tracking() Set {
	return p.tracking
}

// Calls returns the invoked method and property names.
func (p *CallParser) Calls() Set {
	return p.calls
}

// Methods returns the invoked names in sorted order.
func (p *CallParser) Methods() []string {
	return p.calls.Sorted()
}

// trackAssignments adds every let/const binding whose right-hand side
// mentions a tracked name. Bindings of an escape-hatch call stay untracked.
// Several declarations may share a line.
func (p *CallParser) trackAssignments(code, root string) {
	p.tracking.Add(root)

	for _, line := range strings.Split(code, "\n") {
		for _, decl := range strings.Split(line, ";") {
			names, rhs, ok := parseAssignment(decl)
			if !ok || !p.mentionsTracked(rhs) || p.callsEscapeHatch(decl) {
				continue
			}
			for _, name := range names {
				p.tracking.Add(name)
			}
		}
	}
}

func (p *CallParser) mentionsTracked(rhs string) bool {
	for name := range p.tracking {
		if strings.Contains(rhs, name) {
			return true
		}
	}
	return false
}

func (p *CallParser) callsEscapeHatch(line string) bool {
	for _, m := range p.rules.EscapeHatches {
		if strings.Contains(line, "."+m+"(") || strings.Contains(line, "."+m+"<") {
			return true
		}
	}
	return false
}

func (p *CallParser) isReserved(name string) bool {
	field := identPrefix(name)
	for _, f := range p.rules.ReservedFields {
		if f == field {
			return true
		}
	}
	return false
}

// collectChains walks every ';'-delimited statement from its anchor and
// records each link of the chain.
func (p *CallParser) collectChains(code string) {
	tracked := p.tracking.Sorted()

	for _, stmt := range strings.Split(code, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		anchor, ok := SelectAnchor(stmt, tracked)
		if !ok {
			continue
		}
		p.walkChain(stmt[anchor.Pos+len(anchor.Name):])
	}
}

func (p *CallParser) walkChain(chain string) {
	parenDepth := 0

	for _, segment := range strings.Split(chain, ".") {
		trimmed := strings.TrimSpace(segment)
		if trimmed == "" {
			continue
		}

		base, _, _ := strings.Cut(trimmed, "(")
		base = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(base), ";"))

		switch {
		case base != "" && base[0] >= '0' && base[0] <= '9':
			// Fractional part of a numeric literal.
			continue
		case base != "" && p.isReserved(base):
			// Past a storage field the chain is plain data.
			return
		case base != "":
			p.record(base)
		default:
			parenDepth += strings.Count(trimmed, "(") - strings.Count(trimmed, ")")
			if parenDepth <= 0 && strings.HasSuffix(trimmed, ";") {
				return
			}
		}
	}
}

// record adds a chain link as a call. Type arguments are dropped so that
// apply<number> resolves to apply; anything left that is not a plain
// identifier is text the statement split cut mid-expression.
func (p *CallParser) record(base string) {
	name := NormalizeName(base)
	if name == "" || identPrefix(name) != name {
		return
	}
	p.calls.Add(name)
}

// collectIterators catches `for (... of x.method())` loops whose chain the
// statement split cuts apart.
func (p *CallParser) collectIterators(code string) {
	for _, name := range p.tracking.Sorted() {
		pattern := "of " + name + "."
		for from := 0; ; {
			i := strings.Index(code[from:], pattern)
			if i < 0 {
				break
			}
			rest := code[from+i+len(pattern):]
			from += i + len(pattern)

			method := rest
			if end := strings.IndexAny(rest, "( );\n\t"); end >= 0 {
				method = rest[:end]
			}
			method = strings.TrimSpace(method)
			if method != "" && !p.isReserved(method) {
				p.record(method)
			}
		}
	}
}

// clean drops names that are artifacts of splitting on '.' inside
// assignments.
func (p *CallParser) clean() {
	for name := range p.calls {
		if strings.HasPrefix(strings.TrimSpace(name), "=") {
			delete(p.calls, name)
		}
	}
}

// parseAssignment splits a let/const line into the bound names and the
// right-hand side. Both `let x = ...` and `let [a, b] = ...` are accepted.
func parseAssignment(line string) ([]string, string, bool) {
	trimmed := strings.TrimSpace(line)

	var decl string
	switch {
	case strings.HasPrefix(trimmed, "let "):
		decl = strings.TrimPrefix(trimmed, "let ")
	case strings.HasPrefix(trimmed, "const "):
		decl = strings.TrimPrefix(trimmed, "const ")
	default:
		return nil, "", false
	}

	lhs, rhs, ok := strings.Cut(decl, "=")
	if !ok {
		return nil, "", false
	}
	lhs = strings.TrimSpace(lhs)

	if strings.HasPrefix(lhs, "[") {
		inner, _, _ := strings.Cut(strings.TrimPrefix(lhs, "["), "]")
		var names []string
		for _, part := range strings.Split(inner, ",") {
			if name := identPrefix(strings.TrimSpace(part)); name != "" {
				names = append(names, name)
			}
		}
		return names, rhs, len(names) > 0
	}

	name := identPrefix(lhs)
	if name == "" {
		return nil, "", false
	}
	return []string{name}, rhs, true
}
