package repository

import (
	"context"
	"time"

	"intern-match/internal/database"
	"intern-match/internal/database/postgres"
	"intern-match/internal/domain/internship"

	"github.com/google/uuid"
)

type PostgresInternshipRepository struct {
	db database.DB
}

func NewPostgresInternshipRepository(db database.DB) *PostgresInternshipRepository {
	return &PostgresInternshipRepository{db: db}
}

const internshipColumns = `id, title, organization, department, location, duration, stipend, description,
	required_skills, interests, education_levels, total_positions, applied_count, created_at`

func (r *PostgresInternshipRepository) List(ctx context.Context) ([]internship.Internship, error) {
	rows, err := r.db.Query(ctx, `SELECT `+internshipColumns+` FROM internships ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]internship.Internship, 0)
	for rows.Next() {
		in, err := scanInternship(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresInternshipRepository) GetByID(ctx context.Context, id uuid.UUID) (internship.Internship, error) {
	row := r.db.QueryRow(ctx, `SELECT `+internshipColumns+` FROM internships WHERE id = $1`, id)
	in, err := scanInternship(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return internship.Internship{}, internship.ErrNotFound
		}
		return internship.Internship{}, err
	}
	return in, nil
}

func (r *PostgresInternshipRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM internships WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *PostgresInternshipRepository) Create(ctx context.Context, in internship.Internship) (internship.Internship, error) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO internships (id, title, organization, department, location, duration, stipend, description,
			required_skills, interests, education_levels, total_positions, applied_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		in.ID, in.Title, in.Organization, in.Department, in.Location, in.Duration, in.Stipend, in.Description,
		nonNil(in.RequiredSkills), nonNil(in.Interests), nonNil(in.EducationLevels), in.TotalPositions, in.AppliedCount, in.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return internship.Internship{}, internship.ErrDuplicate
		}
		return internship.Internship{}, err
	}
	return in, nil
}

func (r *PostgresInternshipRepository) Upsert(ctx context.Context, items []internship.Internship) (int, error) {
	n := 0
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, in := range items {
			if in.ID == uuid.Nil {
				in.ID = uuid.New()
			}
			affected, err := tx.Exec(ctx,
				`INSERT INTO internships (id, title, organization, department, location, duration, stipend, description,
					required_skills, interests, education_levels, total_positions)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
				 ON CONFLICT (lower(btrim(title)), lower(btrim(organization))) DO UPDATE SET
					department = EXCLUDED.department,
					location = EXCLUDED.location,
					duration = EXCLUDED.duration,
					stipend = EXCLUDED.stipend,
					description = EXCLUDED.description,
					required_skills = EXCLUDED.required_skills,
					interests = EXCLUDED.interests,
					education_levels = EXCLUDED.education_levels,
					total_positions = EXCLUDED.total_positions`,
				in.ID, in.Title, in.Organization, in.Department, in.Location, in.Duration, in.Stipend, in.Description,
				nonNil(in.RequiredSkills), nonNil(in.Interests), nonNil(in.EducationLevels), in.TotalPositions,
			)
			if err != nil {
				return err
			}
			n += int(affected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresInternshipRepository) Dismiss(ctx context.Context, userID, internshipID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO dismissals (user_id, internship_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, internshipID,
	)
	if err != nil && postgres.IsForeignKeyViolation(err) {
		return internship.ErrNotFound
	}
	return err
}

func (r *PostgresInternshipRepository) ListDismissedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return queryIDs(ctx, r.db, `SELECT internship_id FROM dismissals WHERE user_id = $1`, userID)
}

func scanInternship(row database.Row) (internship.Internship, error) {
	var in internship.Internship
	err := row.Scan(
		&in.ID, &in.Title, &in.Organization, &in.Department, &in.Location, &in.Duration, &in.Stipend, &in.Description,
		&in.RequiredSkills, &in.Interests, &in.EducationLevels, &in.TotalPositions, &in.AppliedCount, &in.CreatedAt,
	)
	return in, err
}

func queryIDs(ctx context.Context, db database.DB, query string, args ...any) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
