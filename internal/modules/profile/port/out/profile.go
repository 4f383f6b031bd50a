package out

import (
	"context"

	"faithtrack/internal/modules/profile/domain"
)

type ProfileStore interface {
	Save(ctx context.Context, profile domain.Profile) (string, error)
	List(ctx context.Context) ([]domain.Profile, error)
}
