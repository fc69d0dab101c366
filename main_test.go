package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/board2md/cliparse"
	"github.com/danielhkuo/board2md/markdown"
)

func TestNewNormalizer(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		n, err := newNormalizer(cliparse.Config{ExpandLineBreaks: true, Heuristics: true})
		require.NoError(t, err)
		assert.Len(t, n.Rules(), len(markdown.WhiteboardRules()))
		assert.Equal(t, "## Oct 3\n\n- 10 emails", n.Normalize("Oct 3\n10 emails"))
	})

	t.Run("heuristics off ignores rules file", func(t *testing.T) {
		n, err := newNormalizer(cliparse.Config{RulesFile: "does-not-exist.yaml"})
		require.NoError(t, err)
		assert.Empty(t, n.Rules())
		assert.Equal(t, "Oct 3\n10 emails", n.Normalize("Oct 3\n10 emails"))
	})

	t.Run("rules file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rules:\n  - name: todo\n    pattern: '(?m)^TODO (.+)$'\n    replacement: '- [ ] ${1}'\n"), 0o644))

		n, err := newNormalizer(cliparse.Config{Heuristics: true, RulesFile: path})
		require.NoError(t, err)
		assert.Equal(t, "- [ ] ship it", n.Normalize("TODO ship it"))
	})

	t.Run("missing rules file", func(t *testing.T) {
		_, err := newNormalizer(cliparse.Config{Heuristics: true, RulesFile: filepath.Join(t.TempDir(), "nope.yaml")})
		assert.Error(t, err)
	})
}
