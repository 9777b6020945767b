package action

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Script is the document form of an action list. A bare list is accepted too.
type Script struct {
	Actions []Request `yaml:"actions"`
}

// LoadScript reads and parses an action script from disk
func LoadScript(path string) ([]Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	requests, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return requests, nil
}

// ParseScript decodes a YAML or JSON action list
func ParseScript(data []byte) ([]Request, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty script")
	}

	var node yaml.Node
	if err := yaml.Unmarshal(trimmed, &node); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	var requests []Request
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.MappingNode {
		var doc Script
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse script: %w", err)
		}
		requests = doc.Actions
	} else {
		if err := node.Decode(&requests); err != nil {
			return nil, fmt.Errorf("failed to parse script: %w", err)
		}
	}

	for i, req := range requests {
		if req.Type == "" {
			return nil, fmt.Errorf("action %d: missing action type", i+1)
		}
	}

	return requests, nil
}

// ExtractJSONArray returns the first balanced JSON array found in text.
// Model responses often wrap the array in prose or code fences.
func ExtractJSONArray(text string) (string, error) {
	start := strings.Index(text, "[")
	if start == -1 {
		return "", fmt.Errorf("no JSON array found in response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", fmt.Errorf("no matching closing bracket found")
}
