package out

import (
	"context"

	"faithtrack/internal/modules/resolution/domain"
)

// Repository persists resolutions together with their progress entries.
// FindByID, Update, Delete and AppendEntry report apperrors.ErrNotFound for
// unknown ids.
type Repository interface {
	Create(ctx context.Context, resolution domain.Resolution) error
	ListByUser(ctx context.Context, userID string) ([]domain.Resolution, error)
	FindByID(ctx context.Context, id string) (domain.Resolution, error)
	// Update writes the editable fields only. Current and entries are
	// never touched.
	Update(ctx context.Context, resolution domain.Resolution) error
	Delete(ctx context.Context, id string) error
	// AppendEntry stores entry and recomputes current from all entries of
	// the resolution in one step.
	AppendEntry(ctx context.Context, resolutionID string, entry domain.ProgressEntry) (domain.Resolution, error)
}
