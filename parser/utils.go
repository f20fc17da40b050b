package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

const maxIssueText = 40

// DeduplicateStrings removes duplicate strings from a slice
func DeduplicateStrings(strs []string) []string {
	seen := make(map[string]bool)
	var result []string

	for _, s := range strs {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	return result
}

// WalkAST recursively traverses an AST and applies a visitor function to each node.
// Returning false from the visitor skips the node's children.
func WalkAST(node *sitter.Node, source []byte, visitor func(*sitter.Node) bool) {
	if node == nil || !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		WalkAST(node.Child(i), source, visitor)
	}
}

func truncate(text string) string {
	if len(text) > maxIssueText {
		return text[:maxIssueText] + "..."
	}
	return text
}
