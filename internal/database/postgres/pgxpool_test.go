package postgres

import (
	"errors"
	"fmt"
	"testing"

	"intern-match/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		DBHost:     "db",
		DBPort:     "5432",
		DBName:     "intern_match",
		DBUser:     "app",
		DBPassword: "p@ss word",
		DBSSLMode:  "disable",
	}
	got := DSN(cfg, "pgx5")
	want := "pgx5://app:p%40ss%20word@db:5432/intern_match?sslmode=disable"
	if got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}

func TestErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	if !IsUniqueViolation(unique) || IsUniqueViolation(fk) {
		t.Fatalf("unique violation misclassified")
	}
	if !IsForeignKeyViolation(fk) || IsForeignKeyViolation(unique) {
		t.Fatalf("fk violation misclassified")
	}
	if !IsNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)) || IsNoRows(errors.New("boom")) {
		t.Fatalf("no rows misclassified")
	}
}
