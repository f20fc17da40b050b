package parser

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CreateParser creates the appropriate parser based on file extension
func CreateParser(filePath string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".osts", ".ts":
		return NewTypeScriptParser()
	case ".js", ".mjs", ".cjs":
		return NewJavaScriptParser()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// Supported reports whether CreateParser accepts filePath
func Supported(filePath string) bool {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".osts", ".ts", ".js", ".mjs", ".cjs":
		return true
	}
	return false
}
