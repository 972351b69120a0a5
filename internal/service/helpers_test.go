package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sobilo34/Tyma-server/internal/errs"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name          string
		page, perPage int
		wantPage      int
		wantPerPage   int
		wantOffset    int
	}{
		{"defaults stand", 1, 20, 1, 20, 0},
		{"zero page clamps to one", 0, 20, 1, 20, 0},
		{"negative page clamps to one", -3, 20, 1, 20, 0},
		{"per page capped at 100", 2, 500, 2, 100, 100},
		{"zero per page clamps to one", 1, 0, 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, perPage, offset := normalizePage(tt.page, tt.perPage)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPerPage, perPage)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestLastPage(t *testing.T) {
	assert.Equal(t, 1, lastPage(0, 20))
	assert.Equal(t, 1, lastPage(20, 20))
	assert.Equal(t, 2, lastPage(21, 20))
	assert.Equal(t, 5, lastPage(100, 20))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "community-town-hall", slugify("Community Town Hall!"))
	assert.Equal(t, "back-to-school-2026", slugify("  Back to School: 2026  "))
	assert.Equal(t, "", slugify("!!!"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Ibadan North", titleCase("ibadan north"))
	assert.Equal(t, "Ikeja", titleCase("IKEJA"))
	assert.Equal(t, "", titleCase("   "))
}

func TestValidateUpload(t *testing.T) {
	t.Run("accepts every allowed content type", func(t *testing.T) {
		for contentType := range allowedImageTypes {
			u := &Upload{Filename: "f", ContentType: contentType, Size: 100, Data: strings.NewReader("x")}
			assert.NoError(t, validateUpload(u), contentType)
		}
	})

	t.Run("rejects unsupported content type", func(t *testing.T) {
		u := &Upload{Filename: "f.pdf", ContentType: "application/pdf", Size: 100}
		err := validateUpload(u)
		require.True(t, errs.IsValidation(err))
	})

	t.Run("rejects payload over the size limit", func(t *testing.T) {
		u := &Upload{Filename: "f.jpg", ContentType: "image/jpeg", Size: MaxUploadSize + 1}
		err := validateUpload(u)
		require.True(t, errs.IsValidation(err))
	})

	t.Run("accepts payload exactly at the size limit", func(t *testing.T) {
		u := &Upload{Filename: "f.jpg", ContentType: "image/jpeg", Size: MaxUploadSize}
		assert.NoError(t, validateUpload(u))
	})
}

func TestImagePath(t *testing.T) {
	u := &Upload{Filename: "photo.png", ContentType: "image/png"}
	assert.Equal(t, "tyma_images/abc.png", imagePath("abc", u))

	u = &Upload{Filename: "banner.webp", ContentType: "image/webp"}
	assert.Equal(t, "tyma_images/xyz.webp", imagePath("xyz", u))
}
