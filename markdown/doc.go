// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package markdown cleans the Markdown returned by the conversion service.

# Normalizing

	out := markdown.Normalize(raw)

The pipeline always runs in this order:

 1. Strip HTML comments (<!-- ... -->).
 2. Decode &amp; &lt; &gt; &quot; &#39;. Steps 1 and 2 repeat until stable.
 3. Convert CRLF to LF and double every newline.
 4. Detect existing structure (HasStructure).
 5. If there is none, apply the heuristic rule table.
 6. Collapse blank lines, drop empty headings and bullets, trim.

Normalize never fails and is idempotent.

# Rules

The heuristic pass is an ordered []Rule. WhiteboardRules is the built-in
table; a replacement can be loaded from YAML with LoadRulesFile and passed
with WithRules. Custom rules should leave a heading or list marker on every
line they rewrite, otherwise a second pass may rewrite the line again.
*/
package markdown
