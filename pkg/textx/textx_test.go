package textx_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/merchbase/site-api/pkg/textx"
)

func TestSanitizeText(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "hello world", textx.SanitizeText("  hello\x00 world\x07  "))
	assert.Equal(t, "a\nb", textx.SanitizeText("a\nb"))
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "abc", textx.Truncate("abc", 10))
	assert.Equal(t, "ab", textx.Truncate("abc", 2))
	assert.Equal(t, "", textx.Truncate("abc", 0))
	// Rune boundary: multi-byte characters are not split.
	assert.Equal(t, "héll", textx.Truncate("héllo", 4))
	long := strings.Repeat("x", 60000)
	assert.Len(t, textx.Truncate(long, 50000), 50000)
}

func TestExcerpt(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "one two", textx.Excerpt("one\n\n  two", 20))
	got := textx.Excerpt(strings.Repeat("word ", 100), 20)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), 23)
}
