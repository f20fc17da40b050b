package compile

import "strings"

// BraceScanner tracks aggregate curly-brace depth across lines. It knows
// nothing about strings or comments; callers feed it preprocessed text.
type BraceScanner struct {
	depth  int
	opened bool
}

// Advance adds the braces on line to the running depth and returns it.
func (s *BraceScanner) Advance(line string) int {
	s.depth += strings.Count(line, "{") - strings.Count(line, "}")
	if s.depth > 0 {
		s.opened = true
	}
	return s.depth
}

// Depth returns the current depth.
func (s *BraceScanner) Depth() int {
	return s.depth
}

// Opened reports whether the depth has been positive since the last Reset.
func (s *BraceScanner) Opened() bool {
	return s.opened
}

// Closed reports whether a block was opened and has since returned to depth zero.
func (s *BraceScanner) Closed() bool {
	return s.opened && s.depth <= 0
}

// Reset clears the scanner for a new block.
func (s *BraceScanner) Reset() {
	s.depth = 0
	s.opened = false
}
