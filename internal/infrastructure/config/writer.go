package config

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/pelletier/go-toml/v2"
)

// schemaDirective lets TOML language servers pick up the generated schema.
const schemaDirective = "#:schema ./" + schemaFileName + "\n\n"

var sectionHeaderRE = regexp.MustCompile(`^(\s*)\[([^\]]+)\]\s*$`)

// WriteConfigOrdered writes the configuration with deterministic ordering:
// struct fields in definition order, tables sorted by name. The file is
// replaced atomically so a watcher never reads a partial document.
func WriteConfigOrdered(cfg *Config, path string) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)

	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	content := schemaDirective + sortTOMLSections(buf.String())
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// sortTOMLSections reorders tables alphabetically by their dotted header,
// keeping top-level keys first.
func sortTOMLSections(content string) string {
	type section struct {
		header string
		lines  []string
	}

	var (
		sections []section
		current  *section
		preamble []string
	)

	for _, line := range strings.Split(content, "\n") {
		if match := sectionHeaderRE.FindStringSubmatch(line); match != nil {
			if current != nil {
				sections = append(sections, *current)
			}
			current = &section{header: match[2], lines: []string{line}}
			continue
		}
		if current != nil {
			current.lines = append(current.lines, line)
		} else {
			preamble = append(preamble, line)
		}
	}
	if current != nil {
		sections = append(sections, *current)
	}

	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].header < sections[j].header
	})

	var result strings.Builder
	for _, line := range preamble {
		if strings.TrimSpace(line) == "" {
			continue
		}
		result.WriteString(line)
		result.WriteString("\n")
	}

	for _, sec := range sections {
		if result.Len() > 0 {
			result.WriteString("\n")
		}
		// Drop trailing blank lines; one separator is added per section.
		lines := sec.lines
		for len(lines) > 1 && strings.TrimSpace(lines[len(lines)-1]) == "" {
			lines = lines[:len(lines)-1]
		}
		for _, line := range lines {
			result.WriteString(line)
			result.WriteString("\n")
		}
	}

	return result.String()
}
