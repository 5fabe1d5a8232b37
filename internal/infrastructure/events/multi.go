package events

import (
	"context"
	"errors"

	"intern-match/internal/usecase"
)

// Multi publishes to every target and joins their errors.
type Multi []usecase.EventPublisher

func (m Multi) Publish(ctx context.Context, e usecase.Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
