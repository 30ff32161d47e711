package steering

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---\n"

// FrontMatter is the YAML header above a document body. It carries either
// an inclusion policy or a Cursor rule description.
type FrontMatter struct {
	Inclusion   *Inclusion
	Description string
	AlwaysApply bool
}

// NewInclusionFrontMatter wraps inc in a header.
func NewInclusionFrontMatter(inc Inclusion) *FrontMatter {
	return &FrontMatter{Inclusion: &inc}
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func (fm *FrontMatter) node() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		n.Content = append(n.Content, scalar(key), value)
	}
	if fm.Inclusion != nil {
		add("inclusion", scalar(string(fm.Inclusion.Mode())))
		if fm.Inclusion.Mode() == InclusionFileMatch {
			p := scalar(fm.Inclusion.Pattern())
			p.Style = yaml.DoubleQuotedStyle
			add("fileMatchPattern", p)
		}
	}
	if fm.Description != "" {
		add("description", scalar(fm.Description))
	}
	if fm.AlwaysApply {
		add("alwaysApply", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"})
	}
	return n
}

// Encode renders the header including both fences.
func (fm *FrontMatter) Encode() (string, error) {
	if fm.Inclusion != nil && !fm.Inclusion.valid() {
		return "", fmt.Errorf("%w: mode %q with pattern %q", ErrInvalidInclusion, fm.Inclusion.mode, fm.Inclusion.pattern)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if err := enc.Encode(fm.node()); err != nil {
		return "", fmt.Errorf("steering: encode front-matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("steering: encode front-matter: %w", err)
	}
	return fence + buf.String() + fence, nil
}

// rawFrontMatter is the decoded shape of every header this package writes.
type rawFrontMatter struct {
	Inclusion        string `yaml:"inclusion"`
	FileMatchPattern string `yaml:"fileMatchPattern"`
	Description      string `yaml:"description"`
	AlwaysApply      bool   `yaml:"alwaysApply"`
}

// ParseFrontMatter splits a rendered document into its header and body. A
// document without a header yields a nil FrontMatter and the whole text.
func ParseFrontMatter(text string) (*FrontMatter, string, error) {
	if !strings.HasPrefix(text, fence) {
		return nil, text, nil
	}
	rest := text[len(fence):]

	var head, body string
	if strings.HasPrefix(rest, fence) {
		body = rest[len(fence):]
	} else {
		var ok bool
		head, body, ok = strings.Cut(rest, "\n"+fence)
		if !ok {
			return nil, "", fmt.Errorf("steering: front-matter is not terminated")
		}
	}

	var raw rawFrontMatter
	if err := yaml.Unmarshal([]byte(head), &raw); err != nil {
		return nil, "", fmt.Errorf("steering: decode front-matter: %w", err)
	}
	fm := &FrontMatter{Description: raw.Description, AlwaysApply: raw.AlwaysApply}
	if raw.Inclusion != "" {
		inc, err := ParseInclusion(raw.Inclusion, raw.FileMatchPattern)
		if err != nil {
			return nil, "", err
		}
		fm.Inclusion = &inc
	}
	return fm, strings.TrimPrefix(body, "\n"), nil
}
