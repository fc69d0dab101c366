// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package markdown

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	reComment    = regexp.MustCompile(`(?s)<!--.*?-->`)
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
	reEmptyHead  = regexp.MustCompile(`(?m)^[ \t]*#+[ \t]*$`)
	reEmptyItem  = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]*$`)

	// A marker only counts when text follows it, so a line that cleanup
	// deletes can never flip the gate on a second pass.
	reHeadingMarker = regexp.MustCompile(`(?m)(?:^|[ \t])#{1,6}[ \t]+\S`)
	reListMarker    = regexp.MustCompile(`(?m)^[ \t]*(?:[-*+]|\d+\.)[ \t]+\S`)
)

// Only these five entities are decoded; everything else passes through.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// Normalizer cleans Markdown returned by the conversion service. It is
// immutable after construction and safe for concurrent use.
type Normalizer struct {
	expand bool
	rules  []Rule
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLineBreakExpansion toggles doubling of every newline. Enabled by
// default so renderers that collapse single newlines still separate lines.
func WithLineBreakExpansion(enabled bool) Option {
	return func(n *Normalizer) {
		n.expand = enabled
	}
}

// WithRules replaces the heuristic rule table.
func WithRules(rules []Rule) Option {
	return func(n *Normalizer) {
		n.rules = append([]Rule(nil), rules...)
	}
}

// WithoutHeuristics disables the heuristic structuring pass.
func WithoutHeuristics() Option {
	return func(n *Normalizer) {
		n.rules = nil
	}
}

// NewNormalizer creates a Normalizer with line break expansion and the
// whiteboard rule table unless options say otherwise.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		expand: true,
		rules:  WhiteboardRules(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Rules returns a copy of the configured rule table.
func (n *Normalizer) Rules() []Rule {
	return append([]Rule(nil), n.rules...)
}

// With returns a copy of n with opts applied on top of its settings.
func (n *Normalizer) With(opts ...Option) *Normalizer {
	c := &Normalizer{expand: n.expand, rules: n.Rules()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Normalize converts raw service output into display-ready Markdown.
func (n *Normalizer) Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	text := raw
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}

	text = stripAndDecode(text)
	text = reCRLF.ReplaceAllString(text, "\n")
	if n.expand {
		text = strings.ReplaceAll(text, "\n", "\n\n")
	}

	if !HasStructure(text) {
		text = n.structure(text)
	}

	return cleanup(text)
}

// maxRulePasses bounds how often the rule table is re-applied after
// stripping uncovers new text.
const maxRulePasses = 8

// structure applies the rule table. Rules may delete characters and join a
// new comment or entity together, so the result is stripped again and the
// rules re-run on whatever that uncovered.
func (n *Normalizer) structure(text string) string {
	for i := 0; i < maxRulePasses; i++ {
		ruled := applyRules(text, n.rules)
		text = stripAndDecode(ruled)
		if text == ruled {
			break
		}
	}
	return text
}

// stripAndDecode removes comments and decodes entities until the text is
// stable, so decoded text cannot smuggle in a new comment or entity.
func stripAndDecode(s string) string {
	for {
		next := reComment.ReplaceAllString(s, "")
		next = entityReplacer.Replace(next)
		if next == s {
			return next
		}
		s = next
	}
}

func cleanup(s string) string {
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	s = reEmptyHead.ReplaceAllString(s, "")
	s = reEmptyItem.ReplaceAllString(s, "")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// HasStructure reports whether text already carries a Markdown heading or
// list marker. One hit anywhere disables heuristic structuring for the
// whole document.
func HasStructure(text string) bool {
	return reHeadingMarker.MatchString(text) || reListMarker.MatchString(text)
}

var defaultNormalizer = NewNormalizer()

// Normalize runs the default Normalizer.
func Normalize(raw string) string {
	return defaultNormalizer.Normalize(raw)
}

// NormalizeValue normalizes a decoded JSON value. Anything that is not a
// string yields an empty string.
func NormalizeValue(v any) string {
	return defaultNormalizer.NormalizeValue(v)
}

// NormalizeValue is the method form of the package-level NormalizeValue.
func (n *Normalizer) NormalizeValue(v any) string {
	switch t := v.(type) {
	case string:
		return n.Normalize(t)
	case *string:
		if t == nil {
			return ""
		}
		return n.Normalize(*t)
	case []byte:
		return n.Normalize(string(t))
	default:
		return ""
	}
}
