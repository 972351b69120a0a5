package identifier

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// maxRandomAttempts bounds the random-suffix fallback in ZoneSlug. The
// fallback only runs when every prefix of the name is already taken, so
// hitting the cap means the slug space around this name is effectively
// exhausted and the caller should surface an error.
const maxRandomAttempts = 100

var nonSlugChars = regexp.MustCompile(`[^a-z\s-]`)

// Generator produces short human-readable identifiers for zones and
// officials. It is not safe for concurrent use; each request-scoped
// service call gets its candidates checked against the store afresh.
type Generator struct {
	rand *rand.Rand
}

// NewGenerator creates a generator seeded from the current time.
func NewGenerator() *Generator {
	return &Generator{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ZoneSlug generates a unique slug for a zone name. Candidates are tried in
// order of readability: the full hyphenated name, then word initials, then
// growing prefixes, then the hyphenated name with a random letter appended.
// Each candidate is checked through taken at the moment it is considered;
// results are never cached across steps, so a concurrent creation is caught
// as late as possible. The store's uniqueness constraint remains the final
// backstop for the read-then-write race.
func (g *Generator) ZoneSlug(name string, taken func(slug string) (bool, error)) (string, error) {
	cleaned := strings.TrimSpace(strings.ToLower(name))
	cleaned = nonSlugChars.ReplaceAllString(cleaned, "")

	full := strings.ReplaceAll(cleaned, " ", "-")
	if full == "" {
		return "", fmt.Errorf("zone name %q has no usable characters", name)
	}

	inUse, err := taken(full)
	if err != nil {
		return "", fmt.Errorf("failed to check slug %q: %w", full, err)
	}
	if !inUse {
		return full, nil
	}

	words := strings.Fields(cleaned)
	if len(words) > 1 {
		var b strings.Builder
		for _, word := range words {
			b.WriteByte(word[0])
		}
		initials := b.String()
		inUse, err := taken(initials)
		if err != nil {
			return "", fmt.Errorf("failed to check slug %q: %w", initials, err)
		}
		if !inUse {
			return initials, nil
		}
	}

	for i := 2; i <= len(full); i++ {
		candidate := full[:i]
		inUse, err := taken(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug %q: %w", candidate, err)
		}
		if !inUse {
			return candidate, nil
		}
	}

	for attempt := 0; attempt < maxRandomAttempts; attempt++ {
		candidate := fmt.Sprintf("%s-%c", full, 'a'+rune(g.rand.Intn(26)))
		inUse, err := taken(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug %q: %w", candidate, err)
		}
		if !inUse {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("exhausted slug candidates for zone name %q", name)
}

// OfficialID generates a short identifier from the official's initials and
// a 4-digit random number, e.g. "AL4821". Uniqueness is not checked here;
// duplicate identifiers are an accepted limitation of the format.
func (g *Generator) OfficialID(firstName, lastName string) string {
	return fmt.Sprintf("%c%c%d",
		initialOf(firstName),
		initialOf(lastName),
		1000+g.rand.Intn(9000))
}

func initialOf(name string) rune {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 'X'
	}
	r, _ := utf8.DecodeRuneInString(trimmed)
	return unicode.ToUpper(r)
}
