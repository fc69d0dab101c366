// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package markdown

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Rule rewrites every match of Pattern with Replacement. Replacement uses
// regexp.Expand syntax ($1, ${name}).
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// Apply runs the rule over text.
func (r Rule) Apply(text string) string {
	if r.Pattern == nil {
		return text
	}
	return r.Pattern.ReplaceAllString(text, r.Replacement)
}

func applyRules(text string, rules []Rule) string {
	for _, r := range rules {
		text = r.Apply(text)
	}
	return text
}

const month = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|June?|July?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\.?`

// Every rule is anchored at line start and leaves a heading or list marker
// when it fires. The separator rules run first so no later rule can expose
// new input for an earlier one.
var whiteboardRuleDefs = []struct {
	name, pattern, replacement string
}{
	{"trailing-separators", `(?m)·+[ \t]*$`, ""},
	{"stray-separators", `·+`, ""},
	{"sections", `(?m)^[ \t]*(\d+)[ \t]*(Sections?)[ \t]*(CSE\d+)`, "- ${1} ${2} ${3}"},
	{"course-code", `(?m)^[ \t]*(CSE\d+)`, "- ${1}"},
	{"emails", `(?m)^[ \t]*(\d+)[ \t]*emails\b`, "- ${1} emails"},
	{"sales-calls", `(?m)^[ \t]*(\d+)[ \t]*Sales Calls\b`, "- ${1} Sales Calls"},
	{"bootcamps", `(?m)^[ \t]*(\d+)[ \t]*Bootcamps\b`, "- ${1} Bootcamps"},
	{"pitch-competitions", `(?m)^[ \t]*(\d+)[ \t]*Pitch Compet(?:it)?ions\b`, "- ${1} Pitch Competitions"},
	{"internships", `(?m)^[ \t]*(\d+)[ \t]*Internships\b`, "- ${1} Internships"},
	{"exam-reviews", `(?m)^[ \t]*(\d+)[ \t]*Exam Reviews\b`, "- ${1} Exam Reviews"},
	{"month-range", `(?m)^[ \t]*(` + month + `[ \t]*\d{1,2}[ \t]*-[ \t]*` + month + `[ \t]*/?[ \t]*\d{1,2})`, "## ${1}"},
	{"slash-range", `(?m)^[ \t]*(\d{1,2}/\d{1,2}[ \t]*-[ \t]*\d{1,2})`, "## ${1}"},
	{"month-day", `(?m)^[ \t]*(` + month + ` \d{1,2}(?:st|nd|rd|th)?)\b`, "## ${1}"},
}

// WhiteboardRules returns the built-in rule table, tuned for whiteboard
// planning notes (course sections, outreach counts, date ranges). The
// returned slice is a fresh copy.
func WhiteboardRules() []Rule {
	rules := make([]Rule, 0, len(whiteboardRuleDefs))
	for _, d := range whiteboardRuleDefs {
		rules = append(rules, Rule{
			Name:        d.name,
			Pattern:     regexp.MustCompile(d.pattern),
			Replacement: d.replacement,
		})
	}
	return rules
}

type ruleFile struct {
	Rules []struct {
		Name        string `yaml:"name"`
		Pattern     string `yaml:"pattern"`
		Replacement string `yaml:"replacement"`
	} `yaml:"rules"`
}

// LoadRules reads an ordered rule table from YAML:
//
//	rules:
//	  - name: emails
//	    pattern: '(?m)^[ \t]*(\d+)[ \t]*emails\b'
//	    replacement: '- ${1} emails'
func LoadRules(r io.Reader) ([]Rule, error) {
	var f ruleFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return []Rule{}, nil
		}
		return nil, fmt.Errorf("decoding rules: %w", err)
	}

	rules := make([]Rule, 0, len(f.Rules))
	for i, def := range f.Rules {
		name := def.Name
		if name == "" {
			name = fmt.Sprintf("rule-%d", i+1)
		}
		if def.Pattern == "" {
			return nil, fmt.Errorf("rule %q: pattern is required", name)
		}
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", name, err)
		}
		rules = append(rules, Rule{Name: name, Pattern: re, Replacement: def.Replacement})
	}
	return rules, nil
}

// LoadRulesFile reads a rule table from a YAML file.
func LoadRulesFile(path string) ([]Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rules file: %w", err)
	}
	defer f.Close()
	return LoadRules(f)
}
