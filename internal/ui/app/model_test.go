package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	fbdto "faithtrack/internal/modules/feedback/dto"
	resdto "faithtrack/internal/modules/resolution/dto"
	resolutionsview "faithtrack/internal/ui/views/resolutions"
)

type fakeResolutions struct {
	items  []resdto.ResolutionOutput
	logged []float64
	notes  []string
}

func (f *fakeResolutions) List(context.Context, string) ([]resdto.ResolutionOutput, error) {
	return f.items, nil
}

func (f *fakeResolutions) LogProgress(_ context.Context, id string, amount float64, note string) (resdto.ResolutionOutput, error) {
	f.logged = append(f.logged, amount)
	f.notes = append(f.notes, note)
	out := f.items[0]
	out.Current += amount
	return out, nil
}

type fakeFeedback struct{}

func (fakeFeedback) Detail(_ context.Context, id string) (fbdto.DetailOutput, error) {
	return fbdto.DetailOutput{Report: fbdto.ReportOutput{ResolutionID: id, Status: "on-track"}}, nil
}

func (fakeFeedback) Dashboard(_ context.Context, userRef string) (fbdto.DashboardOutput, error) {
	return fbdto.DashboardOutput{UserID: userRef}, nil
}

func (fakeFeedback) Verse(_ context.Context, category string) (fbdto.VerseOutput, error) {
	return fbdto.VerseOutput{Category: category, Text: "text", Reference: "Ref 1:1"}, nil
}

func loadedModel(t *testing.T, res *fakeResolutions) Model {
	t.Helper()
	m := NewModel("grace@example.com", res, fakeFeedback{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	next, _ = next.(Model).Update(resolutionsview.ListLoadedMsg{Resolutions: res.items})
	return next.(Model)
}

func TestPaletteLogRequiresPositiveAmount(t *testing.T) {
	t.Parallel()
	res := &fakeResolutions{items: []resdto.ResolutionOutput{{ID: "r-1", Title: "Read", Category: "spiritual", Target: 10}}}
	m := loadedModel(t, res)

	for _, input := range []string{"log", "log abc", "log -2", "log 0"} {
		next, cmd := m.executePalette(input)
		if cmd != nil {
			t.Fatalf("%q: expected no command", input)
		}
		if got := next.(Model).status; got == "ready" {
			t.Fatalf("%q: expected an error status", input)
		}
	}
	if len(res.logged) != 0 {
		t.Fatalf("expected nothing logged, got %v", res.logged)
	}
}

func TestPaletteLogCallsPortWithNote(t *testing.T) {
	t.Parallel()
	res := &fakeResolutions{items: []resdto.ResolutionOutput{{ID: "r-1", Title: "Read", Category: "spiritual", Target: 10}}}
	m := loadedModel(t, res)

	_, cmd := m.executePalette("log 2.5 psalms at dawn")
	if cmd == nil {
		t.Fatal("expected a command")
	}
	raw := cmd()
	msg, ok := raw.(progressLoggedMsg)
	if !ok {
		t.Fatalf("unexpected message %T", raw)
	}
	if msg.err != nil {
		t.Fatalf("log: %v", msg.err)
	}
	if len(res.logged) != 1 || res.logged[0] != 2.5 || res.notes[0] != "psalms at dawn" {
		t.Fatalf("unexpected calls: %v %q", res.logged, res.notes)
	}
}

func TestPaletteUnknownCommand(t *testing.T) {
	t.Parallel()
	m := loadedModel(t, &fakeResolutions{})
	next, _ := m.executePalette("pray")
	if got := next.(Model).status; got != "unknown command: pray" {
		t.Fatalf("unexpected status %q", got)
	}
}

type chanSender chan tea.Msg

func (c chanSender) Send(msg tea.Msg) { c <- msg }

func TestWatcherSignalsMarkdownChanges(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	notes := filepath.Join(root, "resolutions")
	if err := os.MkdirAll(notes, 0o755); err != nil {
		t.Fatal(err)
	}
	sent := make(chanSender, 4)
	stop, err := StartWatcher(root, sent, zap.NewNop())
	if err != nil {
		t.Fatalf("start watcher: %v", err)
	}
	defer stop()

	if err := os.WriteFile(filepath.Join(notes, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(notes, "read-proverbs.md"), []byte("# hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-sent:
		if _, ok := msg.(VaultChangedMsg); !ok {
			t.Fatalf("unexpected message %T", msg)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no change signalled")
	}
}
