package service

import (
	"regexp"
	"strings"
)

// maxPerPage caps page sizes across all list endpoints.
const maxPerPage = 100

var slugifyPattern = regexp.MustCompile(`[^a-z0-9]+`)

// normalizePage clamps page and perPage into their valid ranges and returns
// the query offset.
func normalizePage(page, perPage int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage, (page - 1) * perPage
}

// lastPage returns the highest page number that still has items.
func lastPage(total, perPage int) int {
	if total <= 0 {
		return 1
	}
	return (total-1)/perPage + 1
}

// slugify converts a title into a URL-safe slug: lowercase with runs of
// non-alphanumeric characters collapsed into single hyphens.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugifyPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// titleCase capitalizes the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
