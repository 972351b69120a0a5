package identifier

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func takenSet(slugs ...string) func(string) (bool, error) {
	set := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		set[s] = true
	}
	return func(slug string) (bool, error) {
		return set[slug], nil
	}
}

func TestZoneSlug(t *testing.T) {
	g := NewGenerator()

	t.Run("uses full hyphenated name when free", func(t *testing.T) {
		slug, err := g.ZoneSlug("Ibadan North", takenSet())
		require.NoError(t, err)
		assert.Equal(t, "ibadan-north", slug)
	})

	t.Run("strips non-letter characters", func(t *testing.T) {
		slug, err := g.ZoneSlug("  Eti-Osa 2!  ", takenSet())
		require.NoError(t, err)
		assert.Equal(t, "eti-osa", slug)
	})

	t.Run("falls back to initials for multi-word names", func(t *testing.T) {
		slug, err := g.ZoneSlug("Ibadan North", takenSet("ibadan-north"))
		require.NoError(t, err)
		assert.Equal(t, "in", slug)
	})

	t.Run("skips initials for single-word names", func(t *testing.T) {
		slug, err := g.ZoneSlug("Ikeja", takenSet("ikeja"))
		require.NoError(t, err)
		assert.Equal(t, "ik", slug)
	})

	t.Run("grows prefixes when initials are taken", func(t *testing.T) {
		slug, err := g.ZoneSlug("Ibadan North", takenSet("ibadan-north", "in", "ib"))
		require.NoError(t, err)
		assert.Equal(t, "iba", slug)
	})

	t.Run("appends random letter when every prefix is taken", func(t *testing.T) {
		taken := map[string]bool{"abuja": true, "ab": true, "abu": true, "abuj": true}
		slug, err := g.ZoneSlug("Abuja", func(s string) (bool, error) {
			return taken[s], nil
		})
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^abuja-[a-z]$`), slug)
	})

	t.Run("errors when candidates are exhausted", func(t *testing.T) {
		_, err := g.ZoneSlug("Abuja", func(string) (bool, error) {
			return true, nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exhausted")
	})

	t.Run("errors on names with no usable characters", func(t *testing.T) {
		_, err := g.ZoneSlug("123!", takenSet())
		require.Error(t, err)
	})

	t.Run("propagates lookup errors", func(t *testing.T) {
		lookupErr := errors.New("db down")
		_, err := g.ZoneSlug("Ibadan North", func(string) (bool, error) {
			return false, lookupErr
		})
		require.ErrorIs(t, err, lookupErr)
	})
}

func TestOfficialID(t *testing.T) {
	g := NewGenerator()

	t.Run("combines initials with four digits", func(t *testing.T) {
		id := g.OfficialID("Adewale", "Lawal")
		assert.Regexp(t, regexp.MustCompile(`^AL\d{4}$`), id)
	})

	t.Run("uppercases initials", func(t *testing.T) {
		id := g.OfficialID("bola", "tinubu")
		assert.True(t, strings.HasPrefix(id, "BT"))
	})

	t.Run("substitutes X for missing names", func(t *testing.T) {
		id := g.OfficialID("", "  ")
		assert.Regexp(t, regexp.MustCompile(`^XX\d{4}$`), id)
	})

	t.Run("keeps non-ASCII initials intact", func(t *testing.T) {
		id := g.OfficialID("Ángel", "Ødegaard")
		assert.Regexp(t, regexp.MustCompile(`^ÁØ\d{4}$`), id)
	})
}
