package letter

import (
	"regexp"
	"strings"

	"github.com/ignite/letterdesk/internal/domain"
)

// emailRegex requires exactly one '@' with a non-empty local part and a
// dot-containing domain. Deliberately simple: real validation happens when
// the referrer's mailbox is actually used, not here.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// isValidEmail reports whether s matches the local@domain.tld shape.
func isValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// userIDKeys are the payload spellings that would override record ownership.
// Their presence is rejected before any other validation runs.
var userIDKeys = []string{"userId", "user_id"}

// OptionalText is a tri-state update value for nullable columns.
// Set=false leaves the stored value untouched; Set=true with Value=nil
// clears it.
type OptionalText struct {
	Set   bool
	Value *string
}

// UpdateFields holds the sanitized mutable fields of a partial update.
// Nil pointers are not applied.
type UpdateFields struct {
	ApplicantName          *string
	Relationship           *string
	DurationKnown          *string
	Institution            *string
	TargetProgram          *string
	TargetInstitution      *string
	FieldDomain            *string
	ObservedQualities      *string
	Achievements           *string
	SoftTraits             *string
	ReferrerName           *string
	ReferrerTitle          *string
	ReferrerEmail          *string
	Tone                   *string
	LORType                *string
	RecommendationStrength *string
	Anecdote               OptionalText
	Content                OptionalText
}

// Empty reports whether the update carries no field at all.
func (u *UpdateFields) Empty() bool {
	return u.ApplicantName == nil && u.Relationship == nil && u.DurationKnown == nil &&
		u.Institution == nil && u.TargetProgram == nil && u.TargetInstitution == nil &&
		u.FieldDomain == nil && u.ObservedQualities == nil && u.Achievements == nil &&
		u.SoftTraits == nil && u.ReferrerName == nil && u.ReferrerTitle == nil &&
		u.ReferrerEmail == nil && u.Tone == nil && u.LORType == nil &&
		u.RecommendationStrength == nil && !u.Anecdote.Set && !u.Content.Set
}

// fieldString extracts a usable string from a decoded JSON value. Anything
// that is not a string, or trims to empty, counts as absent (mirrors the
// falsy check the web client relies on).
func fieldString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// optionalString normalizes an optional value: empty or non-string input
// becomes nil rather than the empty string.
func optionalString(v any) *string {
	s, ok := fieldString(v)
	if !ok {
		return nil
	}
	return &s
}

// rejectUserIDOverride fails when the payload carries an ownership field.
// Checked before anything else so the distinct error is never masked by a
// missing-fields response.
func rejectUserIDOverride(payload map[string]any) error {
	for _, k := range userIDKeys {
		if _, present := payload[k]; present {
			return ErrUserIDNotAllowed
		}
	}
	return nil
}

// ValidateCreate checks and sanitizes a create payload. All 16 required
// fields must be present and non-empty; the returned error lists every
// missing field, not just the first. Pure function: no side effects beyond
// the returned field set.
func ValidateCreate(payload map[string]any) (*domain.LetterFields, error) {
	if err := rejectUserIDOverride(payload); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(domain.RequiredLetterFields))
	var missing []string
	for _, name := range domain.RequiredLetterFields {
		s, ok := fieldString(payload[name])
		if !ok {
			missing = append(missing, name)
			continue
		}
		values[name] = s
	}
	if len(missing) > 0 {
		return nil, missingFieldsError(missing)
	}

	email := strings.ToLower(values["referrerEmail"])
	if !isValidEmail(email) {
		return nil, invalidFieldError("referrerEmail", "invalid email format for referrerEmail")
	}

	return &domain.LetterFields{
		ApplicantName:          values["applicantName"],
		Relationship:           values["relationship"],
		DurationKnown:          values["durationKnown"],
		Institution:            values["institution"],
		TargetProgram:          values["targetProgram"],
		TargetInstitution:      values["targetInstitution"],
		FieldDomain:            values["fieldDomain"],
		ObservedQualities:      values["observedQualities"],
		Achievements:           values["achievements"],
		SoftTraits:             values["softTraits"],
		ReferrerName:           values["referrerName"],
		ReferrerTitle:          values["referrerTitle"],
		ReferrerEmail:          email,
		Tone:                   values["tone"],
		LORType:                values["lorType"],
		RecommendationStrength: values["recommendationStrength"],
		Anecdote:               optionalString(payload["anecdote"]),
		Content:                optionalString(payload["content"]),
	}, nil
}

// ValidateUpdate checks and sanitizes a partial-update payload. Each field
// present in the payload is validated independently; absent fields are left
// untouched.
func ValidateUpdate(payload map[string]any) (*UpdateFields, error) {
	if err := rejectUserIDOverride(payload); err != nil {
		return nil, err
	}

	u := &UpdateFields{}
	setters := map[string]**string{
		"applicantName":          &u.ApplicantName,
		"relationship":           &u.Relationship,
		"durationKnown":          &u.DurationKnown,
		"institution":            &u.Institution,
		"targetProgram":          &u.TargetProgram,
		"targetInstitution":      &u.TargetInstitution,
		"fieldDomain":            &u.FieldDomain,
		"observedQualities":      &u.ObservedQualities,
		"achievements":           &u.Achievements,
		"softTraits":             &u.SoftTraits,
		"referrerName":           &u.ReferrerName,
		"referrerTitle":          &u.ReferrerTitle,
		"tone":                   &u.Tone,
		"lorType":                &u.LORType,
		"recommendationStrength": &u.RecommendationStrength,
	}
	for name, dst := range setters {
		v, present := payload[name]
		if !present {
			continue
		}
		s, ok := fieldString(v)
		if !ok {
			return nil, invalidFieldError(name, name+" must be a non-empty string")
		}
		*dst = &s
	}

	if v, present := payload["referrerEmail"]; present {
		s, ok := fieldString(v)
		if !ok {
			return nil, invalidFieldError("referrerEmail", "referrerEmail must be a non-empty string")
		}
		s = strings.ToLower(s)
		if !isValidEmail(s) {
			return nil, invalidFieldError("referrerEmail", "invalid email format for referrerEmail")
		}
		u.ReferrerEmail = &s
	}

	if v, present := payload["anecdote"]; present {
		u.Anecdote = OptionalText{Set: true, Value: optionalString(v)}
	}
	if v, present := payload["content"]; present {
		u.Content = OptionalText{Set: true, Value: optionalString(v)}
	}

	return u, nil
}
