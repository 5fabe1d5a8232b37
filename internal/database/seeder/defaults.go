package seeder

import (
	"intern-match/internal/config"
	"intern-match/internal/domain/internship"
	"intern-match/internal/domain/user"
)

func Defaults(cfg config.SeedConfig, users user.Repository, internships internship.Repository) []Seeder {
	out := []Seeder{InternshipSeeder{Internships: internships}}
	if cfg.AdminPassword != "" {
		out = append(out, AdminSeeder{
			Users:     users,
			AdminName: cfg.AdminName,
			Email:     cfg.AdminEmail,
			Password:  cfg.AdminPassword,
		})
	}
	return out
}
