package letter

import (
	"context"

	"github.com/ignite/letterdesk/internal/domain"
)

// Repository defines the data access contract for letters.
// Implementations must be safe for concurrent use, and every operation is
// scoped by (id, userID) jointly: a non-owner can never observe a record.
type Repository interface {
	// Create inserts a new letter owned by userID and returns the full
	// persisted record, including the store-assigned id and timestamps.
	Create(ctx context.Context, userID string, f *domain.LetterFields) (*domain.Letter, error)

	// Get returns a single owned letter. Returns ErrNotFound when the id
	// doesn't exist or belongs to another user.
	Get(ctx context.Context, userID string, id int64) (*domain.Letter, error)

	// List returns letters owned by userID matching the filter, in stable
	// insertion order.
	List(ctx context.Context, userID string, f ListFilter) ([]domain.Letter, error)

	// Update applies only the supplied fields and refreshes updated_at in
	// the same statement. Returns ErrNotFound when no owned row matched —
	// an update can never resurrect a deleted letter.
	Update(ctx context.Context, userID string, id int64, u *UpdateFields) error

	// Delete removes an owned letter. Returns ErrNotFound when no owned
	// row matched.
	Delete(ctx context.Context, userID string, id int64) error
}

// ListFilter controls pagination and search for letter lists. Search is a
// case-insensitive substring match across applicantName, targetProgram,
// targetInstitution and fieldDomain, always AND'ed with the ownership filter.
type ListFilter struct {
	Limit  int
	Offset int
	Search string
}
