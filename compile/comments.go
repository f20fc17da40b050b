package compile

import (
	"strings"
	"unicode"
)

type scanState int

const (
	stateCode scanState = iota
	stateString
	stateLineComment
	stateBlockComment
)

// Preprocess strips comments from code, trims trailing whitespace on every
// line and collapses runs of blank lines into one. String and template
// literal contents are copied verbatim.
func Preprocess(code string) string {
	runes := []rune(code)

	var out strings.Builder
	out.Grow(len(code))

	state := stateCode
	var delim rune

	for i := 0; i < len(runes); i++ {
		c := runes[i]
		var next rune
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		switch state {
		case stateString:
			out.WriteRune(c)
			if c == '\\' && i+1 < len(runes) {
				i++
				out.WriteRune(runes[i])
				continue
			}
			if c == delim {
				state = stateCode
			}

		case stateLineComment:
			if c == '\n' {
				state = stateCode
				out.WriteByte('\n')
			}

		case stateBlockComment:
			if c == '*' && next == '/' {
				state = stateCode
				i++
			}

		default:
			switch {
			case c == '"' || c == '\'' || c == '`':
				state = stateString
				delim = c
				out.WriteRune(c)
			case c == '/' && next == '/':
				state = stateLineComment
				i++
			case c == '/' && next == '*':
				state = stateBlockComment
				i++
			default:
				out.WriteRune(c)
			}
		}
	}

	return tidyLines(out.String())
}

// tidyLines trims trailing whitespace and keeps at most one blank line in a
// row. Every emitted line ends with a newline.
func tidyLines(text string) string {
	var out strings.Builder
	out.Grow(len(text))

	lastBlank := false
	for _, line := range splitLines(text) {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if line == "" {
			if !lastBlank {
				out.WriteByte('\n')
			}
			lastBlank = true
			continue
		}
		out.WriteString(line)
		out.WriteByte('\n')
		lastBlank = false
	}

	return out.String()
}

// splitLines splits text on newlines without producing a trailing empty
// element for a final newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
