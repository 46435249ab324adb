package letter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/letterdesk/internal/domain"
)

func validCreatePayload() map[string]any {
	return map[string]any{
		"applicantName":          "Jane Doe",
		"relationship":           "Thesis advisor",
		"durationKnown":          "3 years",
		"institution":            "State University",
		"targetProgram":          "PhD in Computer Science",
		"targetInstitution":      "MIT",
		"fieldDomain":            "Distributed Systems",
		"observedQualities":      "Analytical rigor, curiosity",
		"achievements":           "Published two papers",
		"softTraits":             "Collaborative, resilient",
		"referrerName":           "Prof. Alan Smith",
		"referrerTitle":          "Professor of Computer Science",
		"referrerEmail":          "Prof@Uni.EDU",
		"tone":                   "formal",
		"lorType":                "academic",
		"recommendationStrength": "very strong",
	}
}

func TestValidateCreate(t *testing.T) {
	fields, err := ValidateCreate(validCreatePayload())
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", fields.ApplicantName)
	assert.Equal(t, "prof@uni.edu", fields.ReferrerEmail, "email is lower-cased")
	assert.Nil(t, fields.Anecdote)
	assert.Nil(t, fields.Content)
}

func TestValidateCreateTrimsWhitespace(t *testing.T) {
	p := validCreatePayload()
	p["applicantName"] = "  Jane Doe  "
	p["referrerEmail"] = "  prof@uni.edu "

	fields, err := ValidateCreate(p)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", fields.ApplicantName)
	assert.Equal(t, "prof@uni.edu", fields.ReferrerEmail)
}

func TestValidateCreateListsAllMissingFields(t *testing.T) {
	p := validCreatePayload()
	delete(p, "applicantName")
	p["tone"] = ""         // empty counts as missing
	p["lorType"] = nil     // null counts as missing
	p["institution"] = "  " // whitespace-only counts as missing

	_, err := ValidateCreate(p)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{"applicantName", "institution", "tone", "lorType"}, verr.Fields)
}

func TestValidateCreateRejectsUserIDOverride(t *testing.T) {
	for _, key := range []string{"userId", "user_id"} {
		p := validCreatePayload()
		delete(p, "applicantName") // would also be invalid
		p[key] = "someone-else"

		_, err := ValidateCreate(p)
		// Ownership check runs before field validation.
		assert.ErrorIs(t, err, ErrUserIDNotAllowed, "key %q", key)
	}
}

func TestValidateCreateBadEmail(t *testing.T) {
	for _, email := range []string{"no-at-sign", "two@@uni.edu", "@uni.edu", "prof@nodot", "prof@uni.edu extra"} {
		p := validCreatePayload()
		p["referrerEmail"] = email

		_, err := ValidateCreate(p)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "email %q should fail", email)
		assert.Equal(t, []string{"referrerEmail"}, verr.Fields)
	}
}

func TestValidateCreateOptionalFields(t *testing.T) {
	p := validCreatePayload()
	p["anecdote"] = "  She debugged a consensus bug overnight.  "
	p["content"] = ""

	fields, err := ValidateCreate(p)
	require.NoError(t, err)
	require.NotNil(t, fields.Anecdote)
	assert.Equal(t, "She debugged a consensus bug overnight.", *fields.Anecdote)
	assert.Nil(t, fields.Content, "empty string normalizes to null")
}

func TestValidateUpdatePartial(t *testing.T) {
	u, err := ValidateUpdate(map[string]any{"tone": "warm"})
	require.NoError(t, err)

	require.NotNil(t, u.Tone)
	assert.Equal(t, "warm", *u.Tone)
	assert.Nil(t, u.ApplicantName)
	assert.False(t, u.Anecdote.Set)
	assert.False(t, u.Content.Set)
}

func TestValidateUpdateRejectsUserIDOverride(t *testing.T) {
	_, err := ValidateUpdate(map[string]any{"user_id": "x", "tone": "warm"})
	assert.ErrorIs(t, err, ErrUserIDNotAllowed)
}

func TestValidateUpdateEmail(t *testing.T) {
	u, err := ValidateUpdate(map[string]any{"referrerEmail": " Prof@Uni.edu "})
	require.NoError(t, err)
	require.NotNil(t, u.ReferrerEmail)
	assert.Equal(t, "prof@uni.edu", *u.ReferrerEmail)

	_, err = ValidateUpdate(map[string]any{"referrerEmail": "bogus"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"referrerEmail"}, verr.Fields)
}

func TestValidateUpdateClearsOptionals(t *testing.T) {
	u, err := ValidateUpdate(map[string]any{"anecdote": "", "content": nil})
	require.NoError(t, err)

	assert.True(t, u.Anecdote.Set)
	assert.Nil(t, u.Anecdote.Value)
	assert.True(t, u.Content.Set)
	assert.Nil(t, u.Content.Value)
}

func TestValidateUpdateEmpty(t *testing.T) {
	u, err := ValidateUpdate(map[string]any{})
	require.NoError(t, err)
	assert.True(t, u.Empty())
}

func TestRequiredFieldCount(t *testing.T) {
	// The data model fixes exactly 16 required content fields.
	assert.Len(t, domain.RequiredLetterFields, 16)
}
