// Where: internal/infra/routes/routes.go
// What: Add and remove resource routes in config/routes.rb.
// Why: Scaffolds register their controller with the router and destroy undoes it.
package routes

import (
	"errors"
	"regexp"
	"strings"
)

// ErrSentinelNotFound reports a routes file without a recognizable draw block.
var ErrSentinelNotFound = errors.New("routes draw block not found")

var (
	legacySentinel = regexp.MustCompile(`(?m)^[ \t]*ActionController::Routing::Routes\.draw do \|map\|[ \t]*$`)
	modernSentinel = regexp.MustCompile(`(?m)^[ \t]*(?:Rails\.application|[\w:]+::Application)\.routes\.draw do(?:[ \t]*\|\w+\|)?[ \t]*$`)
)

// Declaration returns the unindented lines declaring resource in the
// dialect of content. A namespaced resource ("admin/posts") is wrapped in
// one namespace block per segment.
func Declaration(content, resource string) ([]string, error) {
	switch {
	case legacySentinel.MatchString(content):
		return declaration(true, resource), nil
	case modernSentinel.MatchString(content):
		return declaration(false, resource), nil
	default:
		return nil, ErrSentinelNotFound
	}
}

// Line returns the declaration of resource on a single line, for status output.
func Line(content, resource string) (string, error) {
	lines, err := Declaration(content, resource)
	if err != nil {
		return "", err
	}
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, " "), nil
}

// Contains reports whether content already declares resource. A plain
// resource matches with trailing options, comments or a nested block.
func Contains(content, resource string) bool {
	namespaces, name := split(resource)
	if len(namespaces) == 0 {
		return presencePattern(name).MatchString(content)
	}
	return blockPattern(true, resource).MatchString(content) || blockPattern(false, resource).MatchString(content)
}

// Insert adds the declaration for resource right after the draw block
// opener. It reports false when the route is already present.
func Insert(content, resource string) (string, bool, error) {
	lines, err := Declaration(content, resource)
	if err != nil {
		return content, false, err
	}
	if Contains(content, resource) {
		return content, false, nil
	}
	sentinel := legacySentinel
	if !legacySentinel.MatchString(content) {
		sentinel = modernSentinel
	}
	loc := sentinel.FindStringIndex(content)
	opener := content[loc[0]:loc[1]]
	indent := opener[:len(opener)-len(strings.TrimLeft(opener, " \t"))] + "  "

	var insertion strings.Builder
	for _, line := range lines {
		insertion.WriteString("\n" + indent + line)
	}
	return content[:loc[1]] + insertion.String() + content[loc[1]:], true, nil
}

// Remove deletes declarations of resource that match what Insert writes.
// Customized declarations are left alone. It reports false when nothing
// was removed.
func Remove(content, resource string) (string, bool) {
	patterns := []*regexp.Regexp{blockPattern(true, resource)}
	if namespaces, _ := split(resource); len(namespaces) > 0 {
		patterns = append(patterns, blockPattern(false, resource))
	}
	removed := false
	for _, pattern := range patterns {
		if pattern.MatchString(content) {
			content = pattern.ReplaceAllString(content, "")
			removed = true
		}
	}
	return content, removed
}

func split(resource string) ([]string, string) {
	parts := strings.Split(strings.Trim(resource, "/"), "/")
	return parts[:len(parts)-1], parts[len(parts)-1]
}

func declaration(legacy bool, resource string) []string {
	namespaces, name := split(resource)
	var lines []string
	receiver := "map"
	for depth, namespace := range namespaces {
		pad := strings.Repeat("  ", depth)
		if legacy {
			lines = append(lines, pad+receiver+".namespace :"+namespace+" do |"+namespace+"|")
			receiver = namespace
		} else {
			lines = append(lines, pad+"namespace :"+namespace+" do")
		}
	}
	pad := strings.Repeat("  ", len(namespaces))
	if legacy {
		lines = append(lines, pad+receiver+".resources :"+name)
	} else {
		lines = append(lines, pad+"resources :"+name)
	}
	for depth := len(namespaces) - 1; depth >= 0; depth-- {
		lines = append(lines, strings.Repeat("  ", depth)+"end")
	}
	return lines
}

func presencePattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^[ \t]*(?:map\.)?resources[ \t]+:` + regexp.QuoteMeta(name) + `\b`)
}

// blockPattern matches the declaration exactly as Insert writes it, at any
// indentation, including its line break. For a plain resource both
// dialects share one pattern.
func blockPattern(legacy bool, resource string) *regexp.Regexp {
	namespaces, name := split(resource)
	if len(namespaces) == 0 {
		return regexp.MustCompile(`(?m)^[ \t]*(?:map\.)?resources :` + regexp.QuoteMeta(name) + `[ \t]*(?:\r?\n|$)`)
	}
	lines := declaration(legacy, resource)
	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = `[ \t]*` + regexp.QuoteMeta(strings.TrimSpace(line)) + `[ \t]*`
	}
	return regexp.MustCompile(`(?m)^` + strings.Join(parts, `\r?\n`) + `(?:\r?\n|$)`)
}
