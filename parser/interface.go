package parser

import (
	"context"
	"fmt"
)

// Parser checks scripts with a tree-sitter grammar
type Parser interface {
	GetLanguage() string
	Close()
	Check(ctx context.Context, source []byte) ([]SyntaxIssue, error)
	ClassMethods(ctx context.Context, source []byte, class string) ([]string, error)
}

// SyntaxIssue is an error or missing node reported by the grammar
type SyntaxIssue struct {
	Line    int    // 1-based
	Column  int    // 1-based
	Kind    string // node type, "ERROR" for unparsable text
	Missing bool   // the parser inserted the node to recover
	Text    string // source covered by the node, truncated
}

func (i SyntaxIssue) String() string {
	if i.Missing {
		return fmt.Sprintf("%d:%d: missing %s", i.Line, i.Column, i.Kind)
	}
	return fmt.Sprintf("%d:%d: unexpected %q", i.Line, i.Column, i.Text)
}
