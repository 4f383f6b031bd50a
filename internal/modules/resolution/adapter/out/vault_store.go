package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"faithtrack/internal/modules/resolution/domain"
	resolutionout "faithtrack/internal/modules/resolution/port/out"
	apperrors "faithtrack/internal/platform/errors"
	"faithtrack/internal/platform/id"
	"faithtrack/internal/platform/markdown"
	"faithtrack/internal/platform/slug"
)

const defaultNoteBody = "## Why This Matters\n\n## Reflections\n"

var logBlock = markdown.Block{Start: domain.ManagedLogStart, End: domain.ManagedLogEnd}

// VaultRepository keeps one markdown note per resolution under
// <vault>/resolutions. Entries live in the frontmatter; the body carries a
// generated progress table next to whatever the user wrote.
type VaultRepository struct {
	vaultPath string
	mu        sync.Mutex
}

func NewVaultRepository(vaultPath string) resolutionout.Repository {
	return &VaultRepository{vaultPath: vaultPath}
}

type entryMeta struct {
	ID     string  `yaml:"id"`
	Amount float64 `yaml:"amount"`
	Note   string  `yaml:"note,omitempty"`
	Date   string  `yaml:"date"`
}

type resolutionMeta struct {
	SchemaVersion int         `yaml:"schema_version"`
	ID            string      `yaml:"id"`
	UserID        string      `yaml:"user_id"`
	Title         string      `yaml:"title"`
	Description   string      `yaml:"description,omitempty"`
	Category      string      `yaml:"category"`
	Target        float64     `yaml:"target"`
	Current       float64     `yaml:"current"`
	Unit          string      `yaml:"unit,omitempty"`
	CreatedAt     string      `yaml:"created_at"`
	Deadline      string      `yaml:"deadline"`
	Entries       []entryMeta `yaml:"entries"`
}

type note struct {
	path       string
	resolution domain.Resolution
	body       string
}

func (s *VaultRepository) Create(_ context.Context, resolution domain.Resolution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir(), slug.WithSuffix(resolution.Title, id.Short(resolution.ID))+".md")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: note %s already exists", apperrors.ErrInvalidInput, path)
	}
	return s.write(note{path: path, resolution: resolution, body: defaultNoteBody})
}

func (s *VaultRepository) ListByUser(_ context.Context, userID string) ([]domain.Resolution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Resolution, 0, len(notes))
	for _, n := range notes {
		if n.resolution.UserID == userID {
			out = append(out, n.resolution)
		}
	}
	return out, nil
}

func (s *VaultRepository) FindByID(_ context.Context, id string) (domain.Resolution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.find(id)
	if err != nil {
		return domain.Resolution{}, err
	}
	return n.resolution, nil
}

func (s *VaultRepository) Update(_ context.Context, resolution domain.Resolution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.find(resolution.ID)
	if err != nil {
		return err
	}
	r := n.resolution
	r.Title = resolution.Title
	r.Description = resolution.Description
	r.Category = resolution.Category
	r.Target = resolution.Target
	r.Unit = resolution.Unit
	r.Deadline = resolution.Deadline
	n.resolution = r
	return s.write(n)
}

func (s *VaultRepository) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.find(id)
	if err != nil {
		return err
	}
	if err := os.Remove(n.path); err != nil {
		return fmt.Errorf("remove %s: %w", n.path, err)
	}
	return nil
}

func (s *VaultRepository) AppendEntry(_ context.Context, resolutionID string, entry domain.ProgressEntry) (domain.Resolution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.find(resolutionID)
	if err != nil {
		return domain.Resolution{}, err
	}
	n.resolution.Entries = append(n.resolution.Entries, entry)
	n.resolution.Recompute()
	if err := s.write(n); err != nil {
		return domain.Resolution{}, err
	}
	return n.resolution, nil
}

func (s *VaultRepository) dir() string {
	return filepath.Join(s.vaultPath, "resolutions")
}

func (s *VaultRepository) find(id string) (note, error) {
	notes, err := s.load()
	if err != nil {
		return note{}, err
	}
	for _, n := range notes {
		if n.resolution.ID == id {
			return n, nil
		}
	}
	return note{}, fmt.Errorf("resolution %q: %w", id, apperrors.ErrNotFound)
}

func (s *VaultRepository) load() ([]note, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir(), "*.md"))
	if err != nil {
		return nil, fmt.Errorf("glob resolution notes: %w", err)
	}
	sort.Strings(matches)

	out := make([]note, 0, len(matches))
	for _, path := range matches {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		meta := resolutionMeta{}
		body, decodeErr := markdown.Decode(string(content), &meta)
		if decodeErr != nil {
			return nil, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
		resolution, convErr := fromMeta(meta)
		if convErr != nil {
			return nil, fmt.Errorf("decode resolution %s: %w", path, convErr)
		}
		out = append(out, note{path: path, resolution: resolution, body: body})
	}
	return out, nil
}

func (s *VaultRepository) write(n note) error {
	if err := os.MkdirAll(filepath.Dir(n.path), 0o755); err != nil {
		return fmt.Errorf("create resolution directory: %w", err)
	}
	body := n.body
	if strings.TrimSpace(logBlock.Strip(body)) == "" {
		body = defaultNoteBody
	}
	body = logBlock.Replace(body, renderLog(n.resolution))

	rendered, err := markdown.Encode(toMeta(n.resolution), body)
	if err != nil {
		return err
	}
	tmp := n.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write resolution note: %w", err)
	}
	if err := os.Rename(tmp, n.path); err != nil {
		return fmt.Errorf("replace resolution note: %w", err)
	}
	return nil
}

func renderLog(r domain.Resolution) string {
	var b strings.Builder
	b.WriteString("## Progress Log\n\n")
	if len(r.Entries) == 0 {
		b.WriteString("_No progress logged yet._")
		return b.String()
	}
	b.WriteString("| Date | Amount | Note |\n|---|---|---|")
	for _, e := range r.Entries {
		amount := humanize.Commaf(e.Amount)
		if r.Unit != "" {
			amount += " " + r.Unit
		}
		fmt.Fprintf(&b, "\n| %s | %s | %s |", e.Date.Format("2006-01-02"), amount, strings.ReplaceAll(e.Note, "|", "\\|"))
	}
	fmt.Fprintf(&b, "\n\nTotal: %s of %s", humanize.Commaf(r.Current), humanize.Commaf(r.Target))
	return b.String()
}

func toMeta(r domain.Resolution) resolutionMeta {
	entries := make([]entryMeta, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, entryMeta{ID: e.ID, Amount: e.Amount, Note: e.Note, Date: e.Date.Format(time.RFC3339Nano)})
	}
	return resolutionMeta{
		SchemaVersion: domain.SchemaVersion,
		ID:            r.ID,
		UserID:        r.UserID,
		Title:         r.Title,
		Description:   r.Description,
		Category:      string(r.Category),
		Target:        r.Target,
		Current:       r.Current,
		Unit:          r.Unit,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339Nano),
		Deadline:      r.Deadline.Format(time.RFC3339Nano),
		Entries:       entries,
	}
}

func fromMeta(meta resolutionMeta) (domain.Resolution, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, meta.CreatedAt)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("created_at: %w", err)
	}
	deadline, err := time.Parse(time.RFC3339Nano, meta.Deadline)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("deadline: %w", err)
	}
	r := domain.Resolution{
		ID:          meta.ID,
		UserID:      meta.UserID,
		Title:       meta.Title,
		Description: meta.Description,
		Category:    domain.Category(meta.Category),
		Target:      meta.Target,
		Current:     meta.Current,
		Unit:        meta.Unit,
		CreatedAt:   createdAt,
		Deadline:    deadline,
	}
	for _, e := range meta.Entries {
		date, err := time.Parse(time.RFC3339Nano, e.Date)
		if err != nil {
			return domain.Resolution{}, fmt.Errorf("entry %s date: %w", e.ID, err)
		}
		r.Entries = append(r.Entries, domain.ProgressEntry{ID: e.ID, Amount: e.Amount, Note: e.Note, Date: date})
	}
	// Entries are the source of truth; the stored total may be hand-edited.
	r.Recompute()
	if err := r.Validate(); err != nil {
		return domain.Resolution{}, err
	}
	return r, nil
}
