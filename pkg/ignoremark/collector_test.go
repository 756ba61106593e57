package ignoremark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basilforge/lispfmt/pkg/syntax"
)

func parse(t *testing.T, src string) *syntax.Node {
	t.Helper()
	tree, err := syntax.Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	return tree.RootNode()
}

func TestCollect(t *testing.T) {
	t.Run("no markers", func(t *testing.T) {
		root := parse(t, "(defn f [x] x)\n")
		res := Collect(root)
		assert.Empty(t, res.LineRanges)
		assert.Empty(t, res.ByteRanges)
	})

	t.Run("single marker protects next form", func(t *testing.T) {
		src := "(ns foo)\n#_:lispfmt/ignore\n(defn very-long-line-that-would-otherwise-violate [] 1)\n"
		root := parse(t, src)
		res := Collect(root)
		require.Len(t, res.LineRanges, 1)
		assert.Equal(t, 3, res.LineRanges[0].Start)
		assert.Equal(t, 3, res.LineRanges[0].End)
	})

	t.Run("back to back markers chain", func(t *testing.T) {
		src := "#_:lispfmt/ignore\n#_:lispfmt/ignore\n(protected-form)\n"
		root := parse(t, src)
		res := Collect(root)
		require.Len(t, res.LineRanges, 2)
		// First marker's target is the second marker itself.
		assert.Equal(t, 2, res.LineRanges[0].Start)
		assert.Equal(t, 2, res.LineRanges[0].End)
		// Second marker protects the real form.
		assert.Equal(t, 3, res.LineRanges[1].Start)
	})

	t.Run("orphaned trailing marker records nothing", func(t *testing.T) {
		src := "(ns foo)\n#_:lispfmt/ignore\n"
		root := parse(t, src)
		res := Collect(root)
		assert.Empty(t, res.LineRanges)
	})

	t.Run("unrelated discard is not a marker", func(t *testing.T) {
		src := "#_:something/else\n(defn f [] 1)\n"
		root := parse(t, src)
		res := Collect(root)
		assert.Empty(t, res.LineRanges)
	})

	t.Run("marker nested inside a form protects a sibling within it", func(t *testing.T) {
		src := "(do\n  #_:lispfmt/ignore\n  (inner-form))\n"
		root := parse(t, src)
		res := Collect(root)
		require.Len(t, res.LineRanges, 1)
		assert.Equal(t, 3, res.LineRanges[0].Start)
	})
}
