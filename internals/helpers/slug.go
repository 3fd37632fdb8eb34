// file: internals/helpers/slug.go
package helper

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Slugify mengubah teks bebas jadi slug [a-z0-9-], hilangkan diakritik,
// kompres "-", trim ujung, enforce maxLen (default 100 jika <=0).
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	s = strings.ToLower(strings.TrimSpace(s))

	// Strip diakritik (é → e, dll)
	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) { // mark nonspacing
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	// Keep [a-z0-9-]
	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if utf8.RuneCountInString(s) > maxLen {
		rs := []rune(s)
		s = strings.Trim(string(rs[:maxLen]), "-")
	}
	return s
}

// GenerateCourseSlug: slug course global = {title}-{username}.
func GenerateCourseSlug(title, username string) (string, error) {
	cleanTitle := Slugify(title, 100)
	cleanUsername := Slugify(username, 50)
	if cleanTitle == "" || cleanUsername == "" {
		return "", fmt.Errorf("title and username are required to generate a course slug")
	}
	return cleanTitle + "-" + cleanUsername, nil
}

// GenerateChapterSlug: {courseSlug}-chapter-{nomor}-{suffix acak}.
// chapterNumber = order + 1 (1-based untuk tampilan).
func GenerateChapterSlug(courseSlug string, chapterNumber int, suffix string) string {
	if suffix == "" {
		suffix = RandomSuffix(4)
	}
	return fmt.Sprintf("%s-chapter-%d-%s", courseSlug, chapterNumber, suffix)
}

// SuffixFromSlug mengambil segmen terakhir slug (suffix acak chapter).
func SuffixFromSlug(slug string) string {
	parts := strings.Split(slug, "-")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomSuffix menghasilkan n karakter acak lowercase alnum.
func RandomSuffix(n int) string {
	if n <= 0 {
		n = 4
	}
	b := make([]byte, n)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = suffixAlphabet[int(b[i])%len(suffixAlphabet)]
	}
	return string(b)
}
