package models

import "time"

// Official position values.
const (
	PositionChairman     = "CHAIRMAN"
	PositionViceChairman = "VICE_CHAIRMAN"
	PositionCoordinator  = "COORDINATOR"
)

// Official type values.
const (
	OfficialTypeBoard     = "BOARD"
	OfficialTypeStaff     = "STAFF"
	OfficialTypeVolunteer = "VOLUNTEER"
	OfficialTypeAdvisor   = "ADVISOR"
	OfficialTypeAdmin     = "ADMIN"
)

// ValidPosition reports whether p is a known position.
func ValidPosition(p string) bool {
	switch p {
	case PositionChairman, PositionViceChairman, PositionCoordinator:
		return true
	}
	return false
}

// ValidOfficialType reports whether t is a known official type.
func ValidOfficialType(t string) bool {
	switch t {
	case OfficialTypeBoard, OfficialTypeStaff, OfficialTypeVolunteer,
		OfficialTypeAdvisor, OfficialTypeAdmin:
		return true
	}
	return false
}

// Official represents an organization official. OfficialID is the short
// human-readable identifier generated at creation; ProfileImageID is the
// denormalized pointer to the official's current profile image, which must
// always agree with that image's owner reference.
type Official struct {
	ID             string     `db:"id" json:"id"`
	OfficialID     string     `db:"official_id" json:"official_id"`
	ZoneID         string     `db:"zone_id" json:"-"`
	Name           string     `db:"name" json:"name"`
	Phone          string     `db:"phone" json:"phone"`
	Email          string     `db:"email" json:"email"`
	Position       string     `db:"position" json:"position"`
	OfficialType   string     `db:"official_type" json:"official_type"`
	Bio            string     `db:"bio" json:"bio"`
	ProfileImageID *string    `db:"profile_image_id" json:"-"`
	IsActive       bool       `db:"is_active" json:"is_active"`
	DisplayOrder   int        `db:"display_order" json:"display_order"`
	StartDate      *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate        *time.Time `db:"end_date" json:"end_date,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`

	Zone         *Zone  `db:"-" json:"zone,omitempty"`
	ProfileImage *Image `db:"-" json:"profile_image,omitempty"`
}
