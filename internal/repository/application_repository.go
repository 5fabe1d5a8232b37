package repository

import (
	"context"
	"time"

	"intern-match/internal/database"
	"intern-match/internal/database/postgres"
	"intern-match/internal/domain/application"
	"intern-match/internal/domain/internship"
	"intern-match/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, user_id, internship_id, status, applied_at, updated_at`

// Apply locks the internship row so concurrent applications to the same
// posting are serialized and applied_count stays exact.
func (r *PostgresApplicationRepository) Apply(ctx context.Context, a application.Application, opts application.ApplyOptions) (application.Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now().UTC()
	}
	a.UpdatedAt = a.AppliedAt
	a.Status = application.StatusPending

	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		var total, applied int
		err := tx.QueryRow(ctx,
			`SELECT total_positions, applied_count FROM internships WHERE id = $1 FOR UPDATE`,
			a.InternshipID,
		).Scan(&total, &applied)
		if err != nil {
			if postgres.IsNoRows(err) {
				return internship.ErrNotFound
			}
			return err
		}

		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM applications WHERE user_id = $1 AND internship_id = $2)`,
			a.UserID, a.InternshipID,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return application.ErrAlreadyApplied
		}

		if opts.EnforceCapacity && (internship.Internship{TotalPositions: total, AppliedCount: applied}).Full() {
			return application.ErrInternshipFull
		}

		inserted, err := tx.Exec(ctx,
			`INSERT INTO applications (id, user_id, internship_id, status, applied_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (user_id, internship_id) DO NOTHING`,
			a.ID, a.UserID, a.InternshipID, string(a.Status), a.AppliedAt, a.UpdatedAt,
		)
		if err != nil {
			if postgres.IsForeignKeyViolation(err) {
				return user.ErrNotFound
			}
			return err
		}
		if inserted == 0 {
			return application.ErrAlreadyApplied
		}

		_, err = tx.Exec(ctx, `UPDATE internships SET applied_count = applied_count + 1 WHERE id = $1`, a.InternshipID)
		return err
	})
	if err != nil {
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	a, err := scanApplication(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE user_id = $1 ORDER BY applied_at DESC, id ASC`,
		userID,
	)
}

func (r *PostgresApplicationRepository) List(ctx context.Context, status application.Status) ([]application.Application, error) {
	if status == "" {
		return r.list(ctx, `SELECT `+applicationColumns+` FROM applications ORDER BY applied_at DESC, id ASC`)
	}
	return r.list(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE status = $1 ORDER BY applied_at DESC, id ASC`,
		string(status),
	)
}

func (r *PostgresApplicationRepository) ListInternshipIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return queryIDs(ctx, r.db, `SELECT internship_id FROM applications WHERE user_id = $1`, userID)
}

func (r *PostgresApplicationRepository) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to application.Status) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE applications SET status = $3, updated_at = now()
		 WHERE id = $1 AND status = $2
		 RETURNING `+applicationColumns,
		id, string(from), string(to),
	)
	a, err := scanApplication(row)
	if err == nil {
		return a, nil
	}
	if !postgres.IsNoRows(err) {
		return application.Application{}, err
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return application.Application{}, err
	}
	return application.Application{}, application.ErrStatusChanged
}

func (r *PostgresApplicationRepository) list(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	if err := row.Scan(&a.ID, &a.UserID, &a.InternshipID, &status, &a.AppliedAt, &a.UpdatedAt); err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}
