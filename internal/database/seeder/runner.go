package seeder

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type Runner struct {
	Seeders []Seeder
	Log     *zap.Logger
}

func (r Runner) Run(ctx context.Context) error {
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Log != nil {
			r.Log.Info("seeder finished", zap.String("seeder", s.Name()))
		}
	}
	return nil
}
