package letter

import (
	"context"

	"github.com/ignite/letterdesk/internal/domain"
	"github.com/ignite/letterdesk/internal/pkg/logger"
)

const (
	// DefaultListLimit is used when the caller supplies no limit.
	DefaultListLimit = 10
	// MaxListLimit caps page size; larger requests are clamped, not rejected.
	MaxListLimit = 100
)

// Service implements letter business logic: payload validation and
// sanitization in front of the repository. All public methods are safe for
// concurrent use if the underlying repository is concurrency-safe.
type Service struct {
	repo Repository
}

// NewService creates a letter service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the raw payload and persists a new letter owned by userID.
func (s *Service) Create(ctx context.Context, userID string, payload map[string]any) (*domain.Letter, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	fields, err := ValidateCreate(payload)
	if err != nil {
		return nil, err
	}
	l, err := s.repo.Create(ctx, userID, fields)
	if err != nil {
		return nil, err
	}
	logger.Info("letter created", "letter_id", l.ID, "user_id", userID, "applicant", l.ApplicantName)
	return l, nil
}

// Get returns a single owned letter.
func (s *Service) Get(ctx context.Context, userID string, id int64) (*domain.Letter, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.repo.Get(ctx, userID, id)
}

// List returns the caller's letters. The limit defaults to DefaultListLimit
// and is clamped to MaxListLimit; negative limit or offset is a validation
// error rather than a silent fix.
func (s *Service) List(ctx context.Context, userID string, f ListFilter) ([]domain.Letter, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if f.Limit < 0 {
		return nil, invalidFieldError("limit", "invalid limit parameter")
	}
	if f.Offset < 0 {
		return nil, invalidFieldError("offset", "invalid offset parameter")
	}
	if f.Limit == 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	return s.repo.List(ctx, userID, f)
}

// Update validates the partial payload, applies the supplied fields, and
// returns the updated record.
func (s *Service) Update(ctx context.Context, userID string, id int64, payload map[string]any) (*domain.Letter, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	u, err := ValidateUpdate(payload)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, userID, id, u); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID, id)
}

// Delete removes an owned letter, irreversibly.
func (s *Service) Delete(ctx context.Context, userID string, id int64) error {
	if userID == "" {
		return ErrUnauthorized
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	logger.Info("letter deleted", "letter_id", id, "user_id", userID)
	return nil
}
