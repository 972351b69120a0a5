package models

import (
	"fmt"
	"time"
)

// OwnerKind identifies which entity type an image is attached to.
// The set of kinds is closed; anything outside it is rejected at parse time.
type OwnerKind string

const (
	OwnerOfficial  OwnerKind = "official"
	OwnerNewsEvent OwnerKind = "news_event"
)

// ParseOwnerKind converts a wire string into an OwnerKind.
func ParseOwnerKind(s string) (OwnerKind, error) {
	switch OwnerKind(s) {
	case OwnerOfficial:
		return OwnerOfficial, nil
	case OwnerNewsEvent:
		return OwnerNewsEvent, nil
	default:
		return "", fmt.Errorf("unknown owner kind %q", s)
	}
}

// OwnerRef identifies the entity an image belongs to.
type OwnerRef struct {
	Kind OwnerKind
	ID   string
}

// Image type/context values.
const (
	ImageTypeProfile   = "PROFILE"
	ImageTypeFeatured  = "FEATURED"
	ImageTypeGallery   = "GALLERY"
	ImageTypeThumbnail = "THUMBNAIL"
	ImageTypeLogo      = "LOGO"
	ImageTypeOther     = "OTHER"
)

// ValidImageType reports whether t is one of the known image types.
func ValidImageType(t string) bool {
	switch t {
	case ImageTypeProfile, ImageTypeFeatured, ImageTypeGallery,
		ImageTypeThumbnail, ImageTypeLogo, ImageTypeOther:
		return true
	}
	return false
}

// Image represents a stored image record. The owner reference columns are
// both set or both NULL, never one without the other.
type Image struct {
	ID        string     `db:"id" json:"id"`
	Title     string     `db:"title" json:"title"`
	Path      string     `db:"path" json:"-"`
	URL       string     `db:"url" json:"url"`
	AltText   string     `db:"alt_text" json:"alt_text"`
	Caption   string     `db:"caption" json:"caption"`
	ImageType string     `db:"image_type" json:"image_type"`
	OwnerKind *OwnerKind `db:"owner_kind" json:"owner_kind,omitempty"`
	OwnerID   *string    `db:"owner_id" json:"owner_id,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Linked reports whether the image currently has an owner reference.
func (i *Image) Linked() bool {
	return i.OwnerKind != nil && i.OwnerID != nil
}
