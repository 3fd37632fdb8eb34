package helper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "belajar-go-dasar", Slugify("Belajar Go Dasar", 0))
	assert.Equal(t, "cafe-resume", Slugify("Café Résumé", 0))
	assert.Equal(t, "a-b-c", Slugify("  a   b---c  ", 0))
	assert.Equal(t, "", Slugify("!!!", 0))

	long := strings.Repeat("a", 150)
	assert.Len(t, Slugify(long, 100), 100)
}

func TestGenerateCourseSlug(t *testing.T) {
	slug, err := GenerateCourseSlug("Belajar Go", "budi_123")
	require.NoError(t, err)
	assert.Equal(t, "belajar-go-budi-123", slug)

	_, err = GenerateCourseSlug("!!!", "budi")
	assert.Error(t, err)
}

func TestGenerateChapterSlug(t *testing.T) {
	slug := GenerateChapterSlug("belajar-go-budi", 2, "ab3d")
	assert.Equal(t, "belajar-go-budi-chapter-2-ab3d", slug)

	// Tanpa suffix → suffix acak 4 karakter
	generated := GenerateChapterSlug("belajar-go-budi", 1, "")
	assert.True(t, strings.HasPrefix(generated, "belajar-go-budi-chapter-1-"))
	assert.Len(t, SuffixFromSlug(generated), 4)
}

func TestSuffixFromSlug(t *testing.T) {
	assert.Equal(t, "ab3d", SuffixFromSlug("x-chapter-1-ab3d"))
}

func TestRandomSuffixCharset(t *testing.T) {
	s := RandomSuffix(16)
	require.Len(t, s, 16)
	for _, r := range s {
		assert.Contains(t, suffixAlphabet, string(r))
	}
}
