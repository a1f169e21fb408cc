// SPDX-FileCopyrightText: © 2024 The movesyntax authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest parses Move.toml-style package manifests: a small,
// flat, section-based configuration format, scanned by hand the way the
// teacher's gcommon.go scans raw source rather than via a grammar
// library -- a second participle grammar isn't worth it for input this
// simple (see DESIGN.md). Declared semantic versions are validated with
// golang.org/x/mod/semver, the same library the teacher's SemVer node
// validates against.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Package is the "[package]" section of a manifest.
type Package struct {
	Name    string
	Version string
	Authors []string
}

// Dependency is one "[dependencies.Name]" section: either a local path
// or a git remote pinned to a revision.
type Dependency struct {
	Name string
	Path string
	Git  string
	Rev  string
}

// Manifest is a fully parsed Move.toml.
type Manifest struct {
	Package      Package
	Dependencies []Dependency
	Addresses    map[string]string
}

// Error reports a problem at a specific line of the manifest source.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("manifest:%d: %s", e.Line, e.Message)
}

func newError(line int, format string, args ...interface{}) *Error {
	return &Error{Line: line, Message: fmt.Sprintf(format, args...)}
}

// Parse reads a Move.toml-style manifest from r.
func Parse(r io.Reader) (*Manifest, error) {
	m := &Manifest{Addresses: map[string]string{}}

	scanner := bufio.NewScanner(r)

	var (
		section string
		depName string
		lineNo  int
		dep     *Dependency
	)

	flushDep := func() {
		if dep != nil {
			m.Dependencies = append(m.Dependencies, *dep)
			dep = nil
		}
	}

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			flushDep()

			header := strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")

			switch {
			case header == "package":
				section = "package"
			case header == "addresses":
				section = "addresses"
			case strings.HasPrefix(header, "dependencies."):
				section = "dependencies"
				depName = strings.TrimPrefix(header, "dependencies.")
				dep = &Dependency{Name: depName}
			default:
				return nil, newError(lineNo, "unknown section %q", header)
			}

			continue
		}

		key, value, err := parseKeyValue(lineNo, line)
		if err != nil {
			return nil, err
		}

		switch section {
		case "package":
			if err := m.Package.set(lineNo, key, value); err != nil {
				return nil, err
			}
		case "addresses":
			m.Addresses[key] = strings.Trim(value, `"`)
		case "dependencies":
			if dep == nil {
				return nil, newError(lineNo, "dependency entry outside a [dependencies.Name] section")
			}

			if err := dep.set(lineNo, key, value); err != nil {
				return nil, err
			}
		default:
			return nil, newError(lineNo, "key %q outside any section", key)
		}
	}

	flushDep()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if m.Package.Name == "" {
		return nil, fmt.Errorf("manifest: missing required [package] name")
	}

	return m, nil
}

func parseKeyValue(line int, s string) (string, string, error) {
	idx := strings.Index(s, "=")
	if idx < 0 {
		return "", "", newError(line, "expected key = value")
	}

	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+1:]), nil
}

func (pkg *Package) set(line int, key, value string) error {
	switch key {
	case "name":
		unquoted, err := unquote(line, value)
		if err != nil {
			return err
		}

		pkg.Name = unquoted
	case "version":
		unquoted, err := unquote(line, value)
		if err != nil {
			return err
		}

		v := unquoted
		if !strings.HasPrefix(v, "v") {
			v = "v" + v
		}

		if !semver.IsValid(v) {
			return newError(line, "invalid semantic version %q", unquoted)
		}

		pkg.Version = unquoted
	case "authors":
		authors, err := unquoteList(line, value)
		if err != nil {
			return err
		}

		pkg.Authors = authors
	default:
		return newError(line, "unknown package key %q", key)
	}

	return nil
}

func (d *Dependency) set(line int, key, value string) error {
	unquoted, err := unquote(line, value)
	if err != nil {
		return err
	}

	switch key {
	case "local":
		d.Path = unquoted
	case "git":
		d.Git = unquoted
	case "rev":
		d.Rev = unquoted
	default:
		return newError(line, "unknown dependency key %q", key)
	}

	return nil
}

func unquote(line int, s string) (string, error) {
	v, err := strconv.Unquote(s)
	if err != nil {
		return "", newError(line, "expected a quoted string, got %q", s)
	}

	return v, nil
}

// unquoteList parses a TOML-style bracketed list of quoted strings, e.g.
// `["Alice <alice@example.com>", "Bob"]`.
func unquoteList(line int, s string) ([]string, error) {
	s = strings.TrimSpace(s)

	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, newError(line, "expected a bracketed list, got %q", s)
	}

	inner := strings.TrimSpace(s[1 : len(s)-1])

	if inner == "" {
		return nil, nil
	}

	var out []string

	for _, part := range strings.Split(inner, ",") {
		v, err := unquote(line, strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}
