// AngelaMos | 2026
// slug_test.go

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	t.Run("lowercases and hyphenates", func(t *testing.T) {
		slug := Slugify("Jane Q. Public")
		assert.True(t, strings.HasPrefix(slug, "jane-q-public-"), slug)
	})

	t.Run("collapses runs of separators", func(t *testing.T) {
		slug := Slugify("a   --  b")
		assert.True(t, strings.HasPrefix(slug, "a-b-"), slug)
	})

	t.Run("empty input still yields a slug", func(t *testing.T) {
		slug := Slugify("!!!")
		assert.NotEmpty(t, slug)
		assert.NotContains(t, slug, "!")
	})

	t.Run("same name never collides", func(t *testing.T) {
		a := Slugify("Sam Smith")
		b := Slugify("Sam Smith")
		assert.NotEqual(t, a, b)
	})

	t.Run("long names are truncated", func(t *testing.T) {
		slug := Slugify(strings.Repeat("verylongname", 20))
		require.LessOrEqual(t, len(slug), maxSlugBase+1+8)
	})
}
