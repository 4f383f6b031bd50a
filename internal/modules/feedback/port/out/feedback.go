package out

import (
	"context"

	"faithtrack/internal/modules/feedback/domain"
)

// ResolutionSource supplies read-only resolution snapshots.
type ResolutionSource interface {
	Get(ctx context.Context, id string) (domain.Resolution, error)
	ListByUser(ctx context.Context, userRef string) ([]domain.Resolution, error)
}
