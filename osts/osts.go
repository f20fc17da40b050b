// Package osts reads and writes Office Script (.osts) containers.
package osts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Script is the JSON document an .osts file holds. Field order matches the
// files Excel writes so a read/write round trip is byte-stable.
type Script struct {
	Version        string          `json:"version"`
	Body           string          `json:"body"`
	Description    string          `json:"description"`
	NoCodeMetadata json.RawMessage `json:"noCodeMetadata"`
	ParameterInfo  string          `json:"parameterInfo"`
	APIInfo        string          `json:"apiInfo"`
}

// Decode converts raw file bytes to UTF-8 text. A UTF-8 or UTF-16 byte
// order mark selects the encoding and is dropped; without one the bytes are
// taken as UTF-8.
func Decode(data []byte) ([]byte, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return nil, fmt.Errorf("error decoding text: %w", err)
	}
	return out, nil
}

// Parse decodes an .osts document.
func Parse(data []byte) (*Script, error) {
	text, err := Decode(data)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := json.Unmarshal(text, &script); err != nil {
		return nil, fmt.Errorf("error decoding JSON: %w", err)
	}
	return &script, nil
}

// ReadFile loads and parses the .osts file at path.
func ReadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	script, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return script, nil
}

// Marshal encodes the script as compact JSON without HTML escaping, so
// generic signatures such as apply<T> stay readable.
func (s *Script) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("error encoding script: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteFile writes the encoded script to path.
func (s *Script) WriteFile(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// WithBody returns a copy of s holding body.
func (s *Script) WithBody(body string) *Script {
	out := *s
	out.Body = body
	return &out
}
