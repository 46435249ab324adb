package domain

import (
	"time"
)

// RequiredLetterFields lists every content field a letter must carry at
// creation time, in the order the client form presents them. Validation
// error messages enumerate missing fields in this order.
var RequiredLetterFields = []string{
	"applicantName",
	"relationship",
	"durationKnown",
	"institution",
	"targetProgram",
	"targetInstitution",
	"fieldDomain",
	"observedQualities",
	"achievements",
	"softTraits",
	"referrerName",
	"referrerTitle",
	"referrerEmail",
	"tone",
	"lorType",
	"recommendationStrength",
}

// Letter is a persisted recommendation-letter context plus (optionally) the
// generated or user-edited letter body. UserID is set from the authenticated
// session only and is immutable after creation.
type Letter struct {
	ID     int64  `json:"id" db:"id"`
	UserID string `json:"userId" db:"user_id"`

	ApplicantName          string `json:"applicantName" db:"applicant_name"`
	Relationship           string `json:"relationship" db:"relationship"`
	DurationKnown          string `json:"durationKnown" db:"duration_known"`
	Institution            string `json:"institution" db:"institution"`
	TargetProgram          string `json:"targetProgram" db:"target_program"`
	TargetInstitution      string `json:"targetInstitution" db:"target_institution"`
	FieldDomain            string `json:"fieldDomain" db:"field_domain"`
	ObservedQualities      string `json:"observedQualities" db:"observed_qualities"`
	Achievements           string `json:"achievements" db:"achievements"`
	SoftTraits             string `json:"softTraits" db:"soft_traits"`
	ReferrerName           string `json:"referrerName" db:"referrer_name"`
	ReferrerTitle          string `json:"referrerTitle" db:"referrer_title"`
	ReferrerEmail          string `json:"referrerEmail" db:"referrer_email"`
	Tone                   string `json:"tone" db:"tone"`
	LORType                string `json:"lorType" db:"lor_type"`
	RecommendationStrength string `json:"recommendationStrength" db:"recommendation_strength"`

	// Anecdote is an optional supporting story; nil when never supplied.
	Anecdote *string `json:"anecdote" db:"anecdote"`

	// Content holds the generated or user-edited letter body (rich-text
	// markup). A letter may exist as a draft before any generation, so
	// nil is a valid state.
	Content *string `json:"content" db:"content"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// LetterFields holds the sanitized content fields for a create. All required
// fields are guaranteed non-empty and trimmed by the validator; ReferrerEmail
// is lower-cased.
type LetterFields struct {
	ApplicantName          string
	Relationship           string
	DurationKnown          string
	Institution            string
	TargetProgram          string
	TargetInstitution      string
	FieldDomain            string
	ObservedQualities      string
	Achievements           string
	SoftTraits             string
	ReferrerName           string
	ReferrerTitle          string
	ReferrerEmail          string
	Tone                   string
	LORType                string
	RecommendationStrength string
	Anecdote               *string
	Content                *string
}
