package seeder

import "context"

// Seeder inserts reference data. Implementations must be safe to run on every
// boot.
type Seeder interface {
	Name() string
	Run(ctx context.Context) error
}
