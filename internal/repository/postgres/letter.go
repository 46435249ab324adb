package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/letterdesk/internal/domain"
	"github.com/ignite/letterdesk/internal/service/letter"
)

// letterColumns is the full column list in scan order.
const letterColumns = `id, user_id, applicant_name, relationship, duration_known,
	institution, target_program, target_institution, field_domain,
	observed_qualities, achievements, soft_traits, referrer_name,
	referrer_title, referrer_email, tone, lor_type, recommendation_strength,
	anecdote, content, created_at, updated_at`

// LetterRepo implements letter.Repository against PostgreSQL.
type LetterRepo struct{ db *sql.DB }

// NewLetterRepo creates a Postgres-backed letter repository.
func NewLetterRepo(db *sql.DB) *LetterRepo { return &LetterRepo{db: db} }

func scanLetter(row interface{ Scan(...any) error }) (*domain.Letter, error) {
	l := &domain.Letter{}
	err := row.Scan(
		&l.ID, &l.UserID, &l.ApplicantName, &l.Relationship, &l.DurationKnown,
		&l.Institution, &l.TargetProgram, &l.TargetInstitution, &l.FieldDomain,
		&l.ObservedQualities, &l.Achievements, &l.SoftTraits, &l.ReferrerName,
		&l.ReferrerTitle, &l.ReferrerEmail, &l.Tone, &l.LORType, &l.RecommendationStrength,
		&l.Anecdote, &l.Content, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *LetterRepo) Create(ctx context.Context, userID string, f *domain.LetterFields) (*domain.Letter, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO letters
			(user_id, applicant_name, relationship, duration_known, institution,
			 target_program, target_institution, field_domain, observed_qualities,
			 achievements, soft_traits, referrer_name, referrer_title,
			 referrer_email, tone, lor_type, recommendation_strength,
			 anecdote, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, NOW(), NOW())
		RETURNING `+letterColumns,
		userID, f.ApplicantName, f.Relationship, f.DurationKnown, f.Institution,
		f.TargetProgram, f.TargetInstitution, f.FieldDomain, f.ObservedQualities,
		f.Achievements, f.SoftTraits, f.ReferrerName, f.ReferrerTitle,
		f.ReferrerEmail, f.Tone, f.LORType, f.RecommendationStrength,
		f.Anecdote, f.Content)

	l, err := scanLetter(row)
	if err != nil {
		return nil, fmt.Errorf("create letter: %w", err)
	}
	return l, nil
}

func (r *LetterRepo) Get(ctx context.Context, userID string, id int64) (*domain.Letter, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+letterColumns+`
		FROM letters
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	l, err := scanLetter(row)
	if err == sql.ErrNoRows {
		return nil, letter.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get letter: %w", err)
	}
	return l, nil
}

func (r *LetterRepo) List(ctx context.Context, userID string, f letter.ListFilter) ([]domain.Letter, error) {
	q := `
		SELECT ` + letterColumns + `
		FROM letters
		WHERE user_id = $1`
	args := []interface{}{userID}
	idx := 2

	// The search term is a substring match across the fields shown in the
	// list view, always inside the ownership filter.
	if f.Search != "" {
		q += fmt.Sprintf(` AND (applicant_name ILIKE $%d OR target_program ILIKE $%d
			OR target_institution ILIKE $%d OR field_domain ILIKE $%d)`, idx, idx, idx, idx)
		args = append(args, "%"+f.Search+"%")
		idx++
	}

	q += fmt.Sprintf(" ORDER BY id ASC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list letters: %w", err)
	}
	defer rows.Close()

	var out []domain.Letter
	for rows.Next() {
		l, err := scanLetter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan letter: %w", err)
		}
		out = append(out, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list letters: %w", err)
	}
	return out, nil
}

func (r *LetterRepo) Update(ctx context.Context, userID string, id int64, u *letter.UpdateFields) error {
	sets := []string{}
	args := []interface{}{}
	idx := 1
	add := func(col string, val interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if u.ApplicantName != nil {
		add("applicant_name", *u.ApplicantName)
	}
	if u.Relationship != nil {
		add("relationship", *u.Relationship)
	}
	if u.DurationKnown != nil {
		add("duration_known", *u.DurationKnown)
	}
	if u.Institution != nil {
		add("institution", *u.Institution)
	}
	if u.TargetProgram != nil {
		add("target_program", *u.TargetProgram)
	}
	if u.TargetInstitution != nil {
		add("target_institution", *u.TargetInstitution)
	}
	if u.FieldDomain != nil {
		add("field_domain", *u.FieldDomain)
	}
	if u.ObservedQualities != nil {
		add("observed_qualities", *u.ObservedQualities)
	}
	if u.Achievements != nil {
		add("achievements", *u.Achievements)
	}
	if u.SoftTraits != nil {
		add("soft_traits", *u.SoftTraits)
	}
	if u.ReferrerName != nil {
		add("referrer_name", *u.ReferrerName)
	}
	if u.ReferrerTitle != nil {
		add("referrer_title", *u.ReferrerTitle)
	}
	if u.ReferrerEmail != nil {
		add("referrer_email", *u.ReferrerEmail)
	}
	if u.Tone != nil {
		add("tone", *u.Tone)
	}
	if u.LORType != nil {
		add("lor_type", *u.LORType)
	}
	if u.RecommendationStrength != nil {
		add("recommendation_strength", *u.RecommendationStrength)
	}
	if u.Anecdote.Set {
		add("anecdote", u.Anecdote.Value)
	}
	if u.Content.Set {
		add("content", u.Content.Value)
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")
	q := fmt.Sprintf("UPDATE letters SET %s WHERE id = $%d AND user_id = $%d",
		joinComma(sets), idx, idx+1)
	args = append(args, id, userID)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update letter: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return letter.ErrNotFound
	}
	return nil
}

func (r *LetterRepo) Delete(ctx context.Context, userID string, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM letters
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete letter: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return letter.ErrNotFound
	}
	return nil
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
