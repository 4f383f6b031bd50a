package usecase_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"go.uber.org/zap"

	profileoutadapter "faithtrack/internal/modules/profile/adapter/out"
	profiledto "faithtrack/internal/modules/profile/dto"
	profileservice "faithtrack/internal/modules/profile/service"
	profileusecase "faithtrack/internal/modules/profile/usecase"
	resolutionoutadapter "faithtrack/internal/modules/resolution/adapter/out"
	"faithtrack/internal/modules/resolution/dto"
	"faithtrack/internal/modules/resolution/service"
	"faithtrack/internal/modules/resolution/usecase"
	apperrors "faithtrack/internal/platform/errors"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return "id-" + string(rune('a'+s.n-1)) + "-0000000"
}

func TestCreateListUpdateLogAndDelete(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	ids := &seqID{}

	profiles := profileusecase.NewInteractor(profileservice.NewProfileService(clk, ids, profileoutadapter.NewVaultProfileStore(vault)))
	owner, err := profiles.Register(ctx, profiledto.RegisterInput{Name: "Amani", Email: "amani@example.com"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	svc := service.NewResolutionService(clk, ids, resolutionoutadapter.NewVaultRepository(vault))
	uc := usecase.NewInteractor(svc, profiles, zap.NewNop())

	deadline := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	bible, err := uc.Create(ctx, dto.CreateInput{UserID: "AMANI@example.com", Title: "Read the Bible", Category: "Spiritual", Target: 1189, Deadline: deadline})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if bible.UserID != owner.ID || bible.Unit != "chapters" || bible.Current != 0 || bible.Category != "spiritual" {
		t.Fatalf("unexpected resolution %+v", bible)
	}

	clk.now = clk.now.Add(time.Hour)
	savings, err := uc.Create(ctx, dto.CreateInput{UserID: owner.ID, Title: "Save", Category: "financial", Target: 50000, Unit: "KES", Deadline: deadline})
	if err != nil {
		t.Fatalf("create savings: %v", err)
	}

	if _, err := uc.Create(ctx, dto.CreateInput{UserID: owner.ID, Title: "Bad", Category: "fitness", Target: 1, Deadline: deadline}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown category, got %v", err)
	}
	if _, err := uc.Create(ctx, dto.CreateInput{UserID: "ghost@example.com", Title: "Nope", Category: "custom", Target: 1, Deadline: deadline}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}

	list, err := uc.List(ctx, owner.Email)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != bible.ID || list[1].ID != savings.ID {
		t.Fatalf("expected creation order, got %+v", list)
	}
	if _, err := uc.List(ctx, ""); !errors.Is(err, apperrors.ErrNoUser) {
		t.Fatalf("expected ErrNoUser, got %v", err)
	}

	clk.now = clk.now.AddDate(0, 0, 1)
	if _, err := uc.LogProgress(ctx, dto.LogProgressInput{ResolutionID: savings.ID, Amount: 1500, Note: " first pay "}); err != nil {
		t.Fatalf("log: %v", err)
	}
	logged, err := uc.LogProgress(ctx, dto.LogProgressInput{ResolutionID: savings.ID, Amount: 500})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if logged.Current != 2000 || len(logged.Entries) != 2 || logged.Entries[0].Note != "first pay" {
		t.Fatalf("unexpected progress %+v", logged)
	}
	if !logged.Entries[0].Date.Equal(clk.now) {
		t.Fatalf("entry should be dated now, got %v", logged.Entries[0].Date)
	}
	if _, err := uc.LogProgress(ctx, dto.LogProgressInput{ResolutionID: savings.ID, Amount: math.Inf(1)}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for infinite amount, got %v", err)
	}

	title := "Emergency Savings"
	target := 60000.0
	updated, err := uc.Update(ctx, dto.UpdateInput{ID: savings.ID, Title: &title, Target: &target})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != title || updated.Target != target || updated.Current != 2000 {
		t.Fatalf("unexpected update result %+v", updated)
	}
	zero := 0.0
	if _, err := uc.Update(ctx, dto.UpdateInput{ID: savings.ID, Target: &zero}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.Update(ctx, dto.UpdateInput{ID: "missing", Title: &title}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := uc.Delete(ctx, bible.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := uc.Delete(ctx, bible.ID); err != nil {
		t.Fatalf("deleting twice should succeed, got %v", err)
	}
	if _, err := uc.Get(ctx, bible.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	got, err := uc.Get(ctx, savings.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != title {
		t.Fatalf("unexpected title %q", got.Title)
	}
}
