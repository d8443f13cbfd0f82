// Package frontmatter reads a file of the shape
//
//	---
//	<yaml config>
//	---
//	<body>
//
// splitting it into a decoded Config and the raw body string. It is an
// explicit collaborator (spec.md's "external collaborators" list
// names "the YAML frontmatter loader"): it never parses Rill source
// itself, only the config header in front of it — the body is handed
// back unparsed for the host's own lexer/parser to turn into an AST.
//
// Grounded on gopkg.in/yaml.v3's struct-tag decoding idiom
// (go-tools/cmd/devshell/dslyaml), simplified to a flat config struct
// since there is no polymorphic node shape to decode here.
package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opal-lang/rill/value"
)

const delimiter = "---"

// Config is the YAML-decoded frontmatter header. Field names match the
// rtctx.Config vocabulary (spec §6): timeout_ms, auto_exceptions,
// variables.
type Config struct {
	TimeoutMS      int            `yaml:"timeout_ms"`
	AutoExceptions []string       `yaml:"auto_exceptions"`
	Variables      map[string]any `yaml:"variables"`
}

// Document is a parsed frontmatter file.
type Document struct {
	Config Config
	Body   string
}

// Parse splits source on its leading "---" delimiters, decodes the
// header as YAML, and returns the remainder verbatim as Body. A source
// with no frontmatter header (doesn't start with "---") is returned
// with a zero Config and the whole input as Body — frontmatter is
// optional.
func Parse(source string) (Document, error) {
	trimmed := strings.TrimPrefix(source, "﻿") // tolerate a BOM
	if !strings.HasPrefix(strings.TrimLeft(trimmed, " \t"), delimiter) {
		return Document{Body: source}, nil
	}

	lines := strings.Split(trimmed, "\n")
	if strings.TrimSpace(lines[0]) != delimiter {
		return Document{Body: source}, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return Document{}, fmt.Errorf("frontmatter: unterminated %q header", delimiter)
	}

	header := strings.Join(lines[1:end], "\n")
	body := strings.Join(lines[end+1:], "\n")
	body = strings.TrimPrefix(body, "\n")

	var cfg Config
	if strings.TrimSpace(header) != "" {
		if err := yaml.Unmarshal([]byte(header), &cfg); err != nil {
			return Document{}, fmt.Errorf("frontmatter: invalid yaml header: %w", err)
		}
	}
	return Document{Config: cfg, Body: body}, nil
}

// RuntimeVariables converts the decoded `variables` block into rill
// Values, ready to seed rtctx.Config.Variables. YAML's scalar decoding
// (int, int64, float64, string, bool) is normalized by value.FromPlain
// the same way a parsed JSON document is.
func (c Config) RuntimeVariables() map[string]value.Value {
	out := make(map[string]value.Value, len(c.Variables))
	for k, v := range c.Variables {
		out[k] = value.FromPlain(v)
	}
	return out
}
