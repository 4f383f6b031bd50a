package out

import (
	"context"

	"faithtrack/internal/modules/feedback/domain"
	feedbackout "faithtrack/internal/modules/feedback/port/out"
	resolutiondto "faithtrack/internal/modules/resolution/dto"
	resolutionin "faithtrack/internal/modules/resolution/port/in"
)

// ResolutionSourceAdapter reads resolutions through the resolution module.
type ResolutionSourceAdapter struct {
	resolutions resolutionin.Usecase
}

func NewResolutionSourceAdapter(resolutions resolutionin.Usecase) feedbackout.ResolutionSource {
	return &ResolutionSourceAdapter{resolutions: resolutions}
}

func (a *ResolutionSourceAdapter) Get(ctx context.Context, id string) (domain.Resolution, error) {
	r, err := a.resolutions.Get(ctx, id)
	if err != nil {
		return domain.Resolution{}, err
	}
	return toDomain(r), nil
}

func (a *ResolutionSourceAdapter) ListByUser(ctx context.Context, userRef string) ([]domain.Resolution, error) {
	items, err := a.resolutions.List(ctx, userRef)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Resolution, 0, len(items))
	for _, r := range items {
		out = append(out, toDomain(r))
	}
	return out, nil
}

func toDomain(r resolutiondto.ResolutionOutput) domain.Resolution {
	entries := make([]domain.Entry, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, domain.Entry{ID: e.ID, Amount: e.Amount, Note: e.Note, Date: e.Date})
	}
	return domain.Resolution{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Category:    domain.ParseCategory(r.Category),
		Target:      r.Target,
		Current:     r.Current,
		Unit:        r.Unit,
		CreatedAt:   r.CreatedAt,
		Deadline:    r.Deadline,
		Entries:     entries,
	}
}
