package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/letterdesk/internal/auth"
	"github.com/ignite/letterdesk/internal/config"
	"github.com/ignite/letterdesk/internal/domain"
	"github.com/ignite/letterdesk/internal/genai"
	"github.com/ignite/letterdesk/internal/pkg/httputil"
	"github.com/ignite/letterdesk/internal/prompt"
	"github.com/ignite/letterdesk/internal/service/letter"
)

// stubRepo is a minimal in-memory letter.Repository for handler tests.
type stubRepo struct {
	nextID  int64
	letters map[int64]*domain.Letter
}

func newStubRepo() *stubRepo {
	return &stubRepo{nextID: 1, letters: make(map[int64]*domain.Letter)}
}

func (s *stubRepo) Create(_ context.Context, userID string, f *domain.LetterFields) (*domain.Letter, error) {
	now := time.Now()
	l := &domain.Letter{
		ID: s.nextID, UserID: userID,
		ApplicantName: f.ApplicantName, Relationship: f.Relationship,
		DurationKnown: f.DurationKnown, Institution: f.Institution,
		TargetProgram: f.TargetProgram, TargetInstitution: f.TargetInstitution,
		FieldDomain: f.FieldDomain, ObservedQualities: f.ObservedQualities,
		Achievements: f.Achievements, SoftTraits: f.SoftTraits,
		ReferrerName: f.ReferrerName, ReferrerTitle: f.ReferrerTitle,
		ReferrerEmail: f.ReferrerEmail, Tone: f.Tone, LORType: f.LORType,
		RecommendationStrength: f.RecommendationStrength,
		Anecdote:               f.Anecdote, Content: f.Content,
		CreatedAt: now, UpdatedAt: now,
	}
	s.nextID++
	s.letters[l.ID] = l
	return l, nil
}

func (s *stubRepo) Get(_ context.Context, userID string, id int64) (*domain.Letter, error) {
	l, ok := s.letters[id]
	if !ok || l.UserID != userID {
		return nil, letter.ErrNotFound
	}
	return l, nil
}

func (s *stubRepo) List(_ context.Context, userID string, _ letter.ListFilter) ([]domain.Letter, error) {
	var out []domain.Letter
	for id := int64(1); id < s.nextID; id++ {
		if l, ok := s.letters[id]; ok && l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (s *stubRepo) Update(_ context.Context, userID string, id int64, u *letter.UpdateFields) error {
	l, ok := s.letters[id]
	if !ok || l.UserID != userID {
		return letter.ErrNotFound
	}
	if u.Tone != nil {
		l.Tone = *u.Tone
	}
	if u.Content.Set {
		l.Content = u.Content.Value
	}
	return nil
}

func (s *stubRepo) Delete(_ context.Context, userID string, id int64) error {
	l, ok := s.letters[id]
	if !ok || l.UserID != userID {
		return letter.ErrNotFound
	}
	delete(s.letters, id)
	return nil
}

// stubGenerator returns a fixed draft or a canned error.
type stubGenerator struct {
	content string
	err     error
}

func (s *stubGenerator) GenerateLetter(_ context.Context, _ string) (string, error) {
	return s.content, s.err
}

type testEnv struct {
	router  http.Handler
	repo    *stubRepo
	gen     *stubGenerator
	cookie  *http.Cookie
	manager *auth.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := newStubRepo()
	gen := &stubGenerator{content: "Dear Admissions Committee, ..."}

	builder, err := prompt.NewBuilder()
	require.NoError(t, err)

	store := auth.NewMemorySessionStore()
	authCfg := config.AuthConfig{Enabled: true, CookieName: "letterdesk_session", CookieMaxAge: 3600}
	manager := auth.NewManager(authCfg, store, "http://localhost:8080")

	require.NoError(t, store.Put(context.Background(), "sid-1", &auth.Session{
		UserID:    "user-1",
		Email:     "jane@example.com",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	handlers := NewHandlers(letter.NewService(repo), builder, gen)
	router := SetupRoutes(config.ServerConfig{}, handlers, NewHealthChecker(nil, nil), manager)

	return &testEnv{
		router:  router,
		repo:    repo,
		gen:     gen,
		cookie:  &http.Cookie{Name: "letterdesk_session", Value: "sid-1"},
		manager: manager,
	}
}

func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(e.cookie)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func createPayload() map[string]any {
	return map[string]any{
		"applicantName":          "Jane Doe",
		"relationship":           "Thesis advisor",
		"durationKnown":          "3 years",
		"institution":            "State University",
		"targetProgram":          "PhD in Computer Science",
		"targetInstitution":      "MIT",
		"fieldDomain":            "Distributed Systems",
		"observedQualities":      "Analytical rigor",
		"achievements":           "Published two papers",
		"softTraits":             "Collaborative",
		"referrerName":           "Prof. Alan Smith",
		"referrerTitle":          "Professor",
		"referrerEmail":          "prof@uni.edu",
		"tone":                   "formal",
		"lorType":                "academic",
		"recommendationStrength": "very strong",
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var e httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestAPIRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/letters", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, rec).Code)
}

func TestCreateLetter(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/letters", createPayload())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var l domain.Letter
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &l))
	assert.Equal(t, int64(1), l.ID)
	assert.Equal(t, "user-1", l.UserID)
	assert.Equal(t, "Jane Doe", l.ApplicantName)
}

func TestCreateLetterMissingFields(t *testing.T) {
	env := newTestEnv(t)

	p := createPayload()
	delete(p, "applicantName")
	delete(p, "tone")
	rec := env.do(t, http.MethodPost, "/api/letters", p)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", e.Code)
	assert.Contains(t, e.Error, "applicantName")
	assert.Contains(t, e.Error, "tone")
}

func TestCreateLetterRejectsUserID(t *testing.T) {
	env := newTestEnv(t)

	p := createPayload()
	p["userId"] = "someone-else"
	rec := env.do(t, http.MethodPost, "/api/letters", p)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "USER_ID_NOT_ALLOWED", decodeError(t, rec).Code)
}

func TestGetLetterInvalidID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/letters?id=abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ID", decodeError(t, rec).Code)
}

func TestGetLetterNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/letters?id=99", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Code)
}

func TestListLetters(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/letters", createPayload()).Code)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/letters", createPayload()).Code)

	rec := env.do(t, http.MethodGet, "/api/letters", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var ls []domain.Letter
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ls))
	assert.Len(t, ls, 2)
}

func TestListLettersEmptyIsArray(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/letters", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestListLettersInvalidLimit(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/letters?limit=abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Code)
}

func TestUpdateLetter(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/letters", createPayload()).Code)

	rec := env.do(t, http.MethodPut, "/api/letters?id=1", map[string]any{"tone": "warm"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var l domain.Letter
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &l))
	assert.Equal(t, "warm", l.Tone)
}

func TestDeleteLetter(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/letters", createPayload()).Code)

	rec := env.do(t, http.MethodDelete, "/api/letters?id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Letter deleted successfully", resp["message"])
	assert.Equal(t, float64(1), resp["id"])

	rec = env.do(t, http.MethodGet, "/api/letters?id=1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateLetter(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/generate", createPayload())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Dear Admissions Committee, ...", resp["content"])
}

func TestGenerateLetterValidatesPayload(t *testing.T) {
	env := newTestEnv(t)

	p := createPayload()
	delete(p, "referrerEmail")
	rec := env.do(t, http.MethodPost, "/api/generate", p)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Code)
}

func TestGenerateLetterUpstreamFailure(t *testing.T) {
	env := newTestEnv(t)
	env.gen.err = &genai.UpstreamError{Status: 429, Payload: json.RawMessage(`{"error":"quota"}`)}

	rec := env.do(t, http.MethodPost, "/api/generate", createPayload())
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "GENERATION_ERROR", decodeError(t, rec).Code)
}

func TestGenerateLetterMissingAPIKey(t *testing.T) {
	env := newTestEnv(t)
	env.gen.err = genai.ErrAPIKeyMissing

	rec := env.do(t, http.MethodPost, "/api/generate", createPayload())
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "API_KEY_MISSING", decodeError(t, rec).Code)
}

func TestExportLetterPDF(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/letters", createPayload()).Code)
	rec := env.do(t, http.MethodPut, "/api/letters?id=1", map[string]any{"content": "Dear Committee,\n\nJane is great."})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/letters/export?id=1&format=pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "letter_of_recommendation.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestExportLetterDOCX(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/letters", createPayload()).Code)
	rec := env.do(t, http.MethodPut, "/api/letters?id=1", map[string]any{"content": "Jane is great."})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/letters/export?id=1&format=docx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", rec.Header().Get("Content-Type"))
	// docx is a zip package
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestExportLetterNoContent(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/letters", createPayload()).Code)

	rec := env.do(t, http.MethodGet, "/api/letters/export?id=1&format=pdf", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Code)
}

func TestExportLetterBadFormat(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/letters/export?id=1&format=txt", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Code)
}

func TestHealthOpenWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
