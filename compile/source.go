package compile

import "strings"

// SplitSource is a script divided into its library block and everything else.
type SplitSource struct {
	// Library is the first library namespace block, braces included.
	Library string
	// User holds every other line in original order.
	User string
}

// Split separates text into the library block opened by d.NamespaceMarker
// and the user section. Text without a marker is all user section. Only the
// first block is taken; a later marker line belongs to the user section.
func Split(text string, d Dialect) (SplitSource, error) {
	var library, user strings.Builder

	var scanner BraceScanner
	inside, done := false, false

	for _, line := range splitLines(text) {
		if !inside && !done && strings.Contains(line, d.NamespaceMarker) {
			inside = true
		}

		if !inside {
			user.WriteString(line)
			user.WriteByte('\n')
			continue
		}

		library.WriteString(line)
		library.WriteByte('\n')

		// A block opened and closed on the marker line itself counts as closed.
		if scanner.Advance(line) <= 0 && (scanner.Opened() || strings.Contains(line, "{")) {
			inside, done = false, true
		}
	}

	if inside {
		return SplitSource{}, ErrUnbalancedNamespace
	}

	return SplitSource{
		Library: library.String(),
		User:    user.String(),
	}, nil
}
