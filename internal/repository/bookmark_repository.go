package repository

import (
	"context"

	"intern-match/internal/database"
	"intern-match/internal/database/postgres"
	"intern-match/internal/domain/bookmark"
	"intern-match/internal/domain/internship"

	"github.com/google/uuid"
)

type PostgresBookmarkRepository struct {
	db database.DB
}

func NewPostgresBookmarkRepository(db database.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

func (r *PostgresBookmarkRepository) Toggle(ctx context.Context, userID, internshipID uuid.UUID) (bool, error) {
	bookmarked := false
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		// Toggles on the same internship queue on its row so each one sees
		// the previous outcome.
		var locked uuid.UUID
		if err := tx.QueryRow(ctx,
			`SELECT id FROM internships WHERE id = $1 FOR UPDATE`,
			internshipID,
		).Scan(&locked); err != nil {
			if postgres.IsNoRows(err) {
				return internship.ErrNotFound
			}
			return err
		}

		removed, err := tx.Exec(ctx,
			`DELETE FROM bookmarks WHERE user_id = $1 AND internship_id = $2`,
			userID, internshipID,
		)
		if err != nil {
			return err
		}
		if removed > 0 {
			return nil
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO bookmarks (user_id, internship_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, internshipID,
		); err != nil {
			if postgres.IsForeignKeyViolation(err) {
				return internship.ErrNotFound
			}
			return err
		}
		bookmarked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return bookmarked, nil
}

func (r *PostgresBookmarkRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]bookmark.Bookmark, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, internship_id, created_at FROM bookmarks WHERE user_id = $1 ORDER BY created_at DESC, internship_id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]bookmark.Bookmark, 0)
	for rows.Next() {
		var b bookmark.Bookmark
		if err := rows.Scan(&b.UserID, &b.InternshipID, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
