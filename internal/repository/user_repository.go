package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"intern-match/internal/database"
	"intern-match/internal/database/postgres"
	"intern-match/internal/domain/profile"
	"intern-match/internal/domain/user"

	"github.com/google/uuid"
)

// PostgresUserRepository stores users and their profile documents. The
// profile lives in the users.profile_data jsonb column.
type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, name, email, phone, password_hash, role, onboarding_completed, created_at, updated_at`

func (r *PostgresUserRepository) CreateUser(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, name, email, phone, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Name, strings.ToLower(u.Email), u.Phone, u.PasswordHash, string(u.Role), u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, strings.TrimSpace(email))
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`,
		strings.TrimSpace(email),
	).Scan(&exists)
	return exists, err
}

func (r *PostgresUserRepository) UpdateContact(ctx context.Context, id uuid.UUID, name, phone string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE users SET name = $2, phone = $3, updated_at = now() WHERE id = $1`,
		id, name, phone,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) GetProfile(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `SELECT profile_data FROM users WHERE id = $1`, userID).Scan(&raw)
	if err != nil {
		if postgres.IsNoRows(err) {
			return profile.Profile{}, user.ErrNotFound
		}
		return profile.Profile{}, err
	}

	p := profile.Profile{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			return profile.Profile{}, fmt.Errorf("decode profile %s: %w", userID, err)
		}
	}
	p.UserID = userID
	return p, nil
}

func (r *PostgresUserRepository) SaveProfile(ctx context.Context, p profile.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	affected, err := r.db.Exec(ctx,
		`UPDATE users SET profile_data = $2, onboarding_completed = TRUE, updated_at = now() WHERE id = $1`,
		p.UserID, raw,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &role, &u.OnboardingCompleted, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if postgres.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}
