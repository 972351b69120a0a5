package models

import "time"

// Contact subject values with display labels, in presentation order.
var ContactSubjects = []struct {
	Value string `json:"value"`
	Label string `json:"label"`
}{
	{"GENERAL", "General Inquiry"},
	{"PROGRAM", "Program Information"},
	{"VOLUNTEER", "Volunteer Opportunity"},
	{"DONATION", "Donation Question"},
	{"FEEDBACK", "Feedback/Suggestion"},
	{"OTHER", "Other"},
}

// ValidContactSubject reports whether s is a known subject value.
func ValidContactSubject(s string) bool {
	for _, subject := range ContactSubjects {
		if subject.Value == s {
			return true
		}
	}
	return false
}

// ContactSubmission represents a contact-form submission.
type ContactSubmission struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	Phone         string    `db:"phone" json:"phone"`
	Subject       string    `db:"subject" json:"subject"`
	Message       string    `db:"message" json:"message"`
	IsResponded   bool      `db:"is_responded" json:"is_responded"`
	ResponseNotes string    `db:"response_notes" json:"response_notes"`
	SubmittedAt   time.Time `db:"submitted_at" json:"submitted_at"`
}
