package parser

import (
	"context"
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// JavaScriptParser uses the official tree-sitter bindings, which ship the
// JavaScript grammar separately from the smacker bundle.
type JavaScriptParser struct {
	parser *tree_sitter.Parser
}

func NewJavaScriptParser() (*JavaScriptParser, error) {
	parser := tree_sitter.NewParser()
	language := tree_sitter.NewLanguage(tree_sitter_javascript.Language())
	if err := parser.SetLanguage(language); err != nil {
		parser.Close()
		return nil, fmt.Errorf("failed to load javascript grammar: %w", err)
	}

	return &JavaScriptParser{parser: parser}, nil
}

func (p *JavaScriptParser) GetLanguage() string {
	return "javascript"
}

func (p *JavaScriptParser) Close() {
	p.parser.Close()
}

func (p *JavaScriptParser) parse(ctx context.Context, source []byte) (*tree_sitter.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse javascript source")
	}
	return tree, nil
}

// walk visits node and, while visitor returns true, its children
func walk(node *tree_sitter.Node, visitor func(*tree_sitter.Node) bool) {
	if node == nil || !visitor(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		walk(node.Child(i), visitor)
	}
}

func (p *JavaScriptParser) Check(ctx context.Context, source []byte) ([]SyntaxIssue, error) {
	tree, err := p.parse(ctx, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}

	var issues []SyntaxIssue
	walk(root, func(n *tree_sitter.Node) bool {
		if !n.IsMissing() && !n.IsError() {
			return n.HasError()
		}
		point := n.StartPosition()
		issues = append(issues, SyntaxIssue{
			Line:    int(point.Row) + 1,
			Column:  int(point.Column) + 1,
			Kind:    n.Kind(),
			Missing: n.IsMissing(),
			Text:    truncate(n.Utf8Text(source)),
		})
		return false
	})

	return issues, nil
}

func (p *JavaScriptParser) ClassMethods(ctx context.Context, source []byte, class string) ([]string, error) {
	tree, err := p.parse(ctx, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var methods []string
	found := false

	walk(tree.RootNode(), func(n *tree_sitter.Node) bool {
		if n.Kind() != "class_declaration" {
			return true
		}
		name := n.ChildByFieldName("name")
		if name == nil || name.Utf8Text(source) != class {
			return true
		}
		found = true

		body := n.ChildByFieldName("body")
		if body == nil {
			return false
		}
		for i := uint(0); i < body.ChildCount(); i++ {
			child := body.Child(i)
			if child.Kind() != "method_definition" {
				continue
			}
			if method := child.ChildByFieldName("name"); method != nil {
				methods = append(methods, method.Utf8Text(source))
			}
		}
		return false
	})

	if !found {
		return nil, fmt.Errorf("class %s not found", class)
	}
	return DeduplicateStrings(methods), nil
}
