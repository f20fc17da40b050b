package reachability

import "strings"

// Anchor is the tracked identifier a statement's method chain hangs off.
type Anchor struct {
	Name string
	Pos  int // first whole-token occurrence of Name in the statement
}

// SelectAnchor ranks the tracked names found in stmt and returns the best
// one. A name qualifies when at least one whole-token occurrence is
// followed, ignoring whitespace, by '.' or '['. The longest qualifying name
// wins, so "df" never shadows "df_filtered"; equal lengths go to the
// earliest occurrence. The chain is walked from Pos.
func SelectAnchor(stmt string, tracked []string) (Anchor, bool) {
	var best Anchor
	found := false

	for _, name := range tracked {
		if name == "" || len(name) < len(best.Name) {
			continue
		}
		pos, ok := tokenPositions(stmt, name)
		if !ok {
			continue
		}
		if !found || len(name) > len(best.Name) || pos < best.Pos {
			best = Anchor{Name: name, Pos: pos}
			found = true
		}
	}

	return best, found
}

// tokenPositions returns the first whole-token offset of name in stmt and
// whether any occurrence starts a chain.
func tokenPositions(stmt, name string) (int, bool) {
	first, chained := -1, false

	for from := 0; from < len(stmt); {
		i := strings.Index(stmt[from:], name)
		if i < 0 {
			break
		}
		pos := from + i
		if isTokenMatch(stmt, pos, name) {
			if first < 0 {
				first = pos
			}
			if startsChain(stmt[pos+len(name):]) {
				chained = true
				break
			}
		}
		from = pos + 1
	}

	return first, chained
}

// isTokenMatch reports whether name at pos is not part of a longer identifier.
func isTokenMatch(code string, pos int, name string) bool {
	if pos > 0 && isIdentByte(code[pos-1]) {
		return false
	}
	end := pos + len(name)
	if end < len(code) && isIdentByte(code[end]) {
		return false
	}
	return true
}

func startsChain(rest string) bool {
	rest = strings.TrimLeft(rest, " \t\r\n")
	return strings.HasPrefix(rest, ".") || strings.HasPrefix(rest, "[")
}
