package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// BaseParser holds a smacker tree-sitter parser and its grammar
type BaseParser struct {
	parser   *sitter.Parser
	language *sitter.Language
	langName string
}

type TypeScriptParser struct {
	BaseParser
}

// NewTypeScriptParser creates a parser for TypeScript and Office Script sources
func NewTypeScriptParser() (*TypeScriptParser, error) {
	parser := sitter.NewParser()
	language := typescript.GetLanguage()
	parser.SetLanguage(language)

	return &TypeScriptParser{
		BaseParser: BaseParser{
			parser:   parser,
			language: language,
			langName: "typescript",
		},
	}, nil
}

// GetLanguage returns the language name for this parser
func (bp *BaseParser) GetLanguage() string {
	return bp.langName
}

func (bp *BaseParser) Close() {
	bp.parser.Close()
}

func (bp *BaseParser) parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	tree, err := bp.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s source: %w", bp.langName, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s source", bp.langName)
	}
	return tree, nil
}

// Check reports every error and missing node in source
func (p *TypeScriptParser) Check(ctx context.Context, source []byte) ([]SyntaxIssue, error) {
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
	WalkAST(root, source, func(n *sitter.Node) bool {
		switch {
		case n.IsMissing():
			issues = append(issues, newIssue(n, source, true))
			return false
		case n.IsError():
			issues = append(issues, newIssue(n, source, false))
			return false
		}
		return n.HasError()
	})

	return issues, nil
}

func newIssue(n *sitter.Node, source []byte, missing bool) SyntaxIssue {
	point := n.StartPoint()
	return SyntaxIssue{
		Line:    int(point.Row) + 1,
		Column:  int(point.Column) + 1,
		Kind:    n.Type(),
		Missing: missing,
		Text:    truncate(n.Content(source)),
	}
}

// ClassMethods lists the method names declared by class, in source order.
// Getter and setter pairs appear once.
func (p *TypeScriptParser) ClassMethods(ctx context.Context, source []byte, class string) ([]string, error) {
	tree, err := p.parse(ctx, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var methods []string
	found := false

	WalkAST(tree.RootNode(), source, func(n *sitter.Node) bool {
		switch n.Type() {
		case "class_declaration", "abstract_class_declaration":
			name := n.ChildByFieldName("name")
			if name == nil || name.Content(source) != class {
				return true
			}
			found = true
			methods = append(methods, p.processClassBody(n.ChildByFieldName("body"), source)...)
			return false
		}
		return true
	})

	if !found {
		return nil, fmt.Errorf("class %s not found", class)
	}
	return DeduplicateStrings(methods), nil
}

func (p *TypeScriptParser) processClassBody(body *sitter.Node, source []byte) []string {
	if body == nil {
		return nil
	}

	var methods []string
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		if child.Type() != "method_definition" {
			continue
		}
		if name := child.ChildByFieldName("name"); name != nil {
			methods = append(methods, name.Content(source))
		}
	}
	return methods
}
