package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"faithtrack/internal/modules/resolution/domain"
	apperrors "faithtrack/internal/platform/errors"
	"faithtrack/internal/platform/tx"
)

// Placeholder selects how bind parameters are written.
type Placeholder int

const (
	// PlaceholderQuestion is the SQLite style: ?, ?, ?
	PlaceholderQuestion Placeholder = iota
	// PlaceholderDollar is the Postgres style: $1, $2, $3
	PlaceholderDollar
)

// rebind rewrites ? markers for the target database.
func (p Placeholder) rebind(query string) string {
	if p != PlaceholderDollar {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// forUpdate adds a row lock where the database supports one. SQLite runs on a
// single connection, so its transactions are already serialised.
func (p Placeholder) forUpdate(query string) string {
	if p != PlaceholderDollar {
		return query
	}
	return query + " FOR UPDATE"
}

// SQLRepository stores resolutions in two tables, resolutions and
// progress_entries. Timestamps are epoch milliseconds.
type SQLRepository struct {
	db          *sql.DB
	placeholder Placeholder
}

func NewSQLRepository(db *sql.DB, placeholder Placeholder) *SQLRepository {
	return &SQLRepository{db: db, placeholder: placeholder}
}

func (s *SQLRepository) Close() error {
	return s.db.Close()
}

const resolutionColumns = `id, user_id, title, description, category, target, current_amount, unit, created_at, deadline`

func (s *SQLRepository) Create(ctx context.Context, r domain.Resolution) error {
	query := s.placeholder.rebind(`INSERT INTO resolutions (` + resolutionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.UserID, r.Title, r.Description, string(r.Category),
		r.Target, r.Current, r.Unit, r.CreatedAt.UnixMilli(), r.Deadline.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert resolution: %w", err)
	}
	return nil
}

func (s *SQLRepository) ListByUser(ctx context.Context, userID string) ([]domain.Resolution, error) {
	query := s.placeholder.rebind(`SELECT ` + resolutionColumns + ` FROM resolutions WHERE user_id = ? ORDER BY created_at, id`)
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query resolutions: %w", err)
	}
	defer rows.Close()

	out := []domain.Resolution{}
	index := map[string]int{}
	for rows.Next() {
		r, scanErr := scanResolution(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		index[r.ID] = len(out)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resolutions: %w", err)
	}
	if len(out) == 0 {
		return out, nil
	}

	entryQuery := s.placeholder.rebind(`SELECT e.resolution_id, e.id, e.amount, e.note, e.logged_at
FROM progress_entries e JOIN resolutions r ON r.id = e.resolution_id
WHERE r.user_id = ? ORDER BY e.resolution_id, e.seq`)
	entryRows, err := s.db.QueryContext(ctx, entryQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer entryRows.Close()
	for entryRows.Next() {
		var resolutionID string
		entry, scanErr := scanEntry(entryRows, &resolutionID)
		if scanErr != nil {
			return nil, scanErr
		}
		if i, ok := index[resolutionID]; ok {
			out[i].Entries = append(out[i].Entries, entry)
		}
	}
	if err := entryRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

func (s *SQLRepository) FindByID(ctx context.Context, id string) (domain.Resolution, error) {
	return s.findByID(ctx, s.db, id)
}

func (s *SQLRepository) findByID(ctx context.Context, q tx.DBTX, id string) (domain.Resolution, error) {
	query := s.placeholder.rebind(`SELECT ` + resolutionColumns + ` FROM resolutions WHERE id = ?`)
	r, err := scanResolution(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Resolution{}, fmt.Errorf("resolution %q: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Resolution{}, err
	}

	entryQuery := s.placeholder.rebind(`SELECT resolution_id, id, amount, note, logged_at FROM progress_entries WHERE resolution_id = ? ORDER BY seq`)
	rows, err := q.QueryContext(ctx, entryQuery, id)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var resolutionID string
		entry, scanErr := scanEntry(rows, &resolutionID)
		if scanErr != nil {
			return domain.Resolution{}, scanErr
		}
		r.Entries = append(r.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return domain.Resolution{}, fmt.Errorf("iterate entries: %w", err)
	}
	return r, nil
}

func (s *SQLRepository) Update(ctx context.Context, r domain.Resolution) error {
	query := s.placeholder.rebind(`UPDATE resolutions SET title = ?, description = ?, category = ?, target = ?, unit = ?, deadline = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query,
		r.Title, r.Description, string(r.Category), r.Target, r.Unit, r.Deadline.UnixMilli(), r.ID,
	)
	if err != nil {
		return fmt.Errorf("update resolution: %w", err)
	}
	return requireAffected(res, r.ID)
}

func (s *SQLRepository) Delete(ctx context.Context, id string) error {
	return tx.Within(ctx, s.db, func(ctx context.Context, q tx.DBTX) error {
		if _, err := q.ExecContext(ctx, s.placeholder.rebind(`DELETE FROM progress_entries WHERE resolution_id = ?`), id); err != nil {
			return fmt.Errorf("delete entries: %w", err)
		}
		res, err := q.ExecContext(ctx, s.placeholder.rebind(`DELETE FROM resolutions WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("delete resolution: %w", err)
		}
		return requireAffected(res, id)
	})
}

func (s *SQLRepository) AppendEntry(ctx context.Context, resolutionID string, entry domain.ProgressEntry) (domain.Resolution, error) {
	var out domain.Resolution
	err := tx.Within(ctx, s.db, func(ctx context.Context, q tx.DBTX) error {
		var exists int
		// Concurrent appends queue on the resolution row, so each SUM sees
		// every committed entry and seq stays unique.
		lock := s.placeholder.forUpdate(s.placeholder.rebind(`SELECT 1 FROM resolutions WHERE id = ?`))
		err := q.QueryRowContext(ctx, lock, resolutionID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("resolution %q: %w", resolutionID, apperrors.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("lookup resolution: %w", err)
		}
		insert := s.placeholder.rebind(`INSERT INTO progress_entries (id, resolution_id, amount, note, logged_at, seq)
VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM progress_entries WHERE resolution_id = ?))`)
		if _, err := q.ExecContext(ctx, insert, entry.ID, resolutionID, entry.Amount, entry.Note, entry.Date.UnixMilli(), resolutionID); err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
		recompute := s.placeholder.rebind(`UPDATE resolutions SET current_amount = (SELECT COALESCE(SUM(amount), 0) FROM progress_entries WHERE resolution_id = ?) WHERE id = ?`)
		if _, err := q.ExecContext(ctx, recompute, resolutionID, resolutionID); err != nil {
			return fmt.Errorf("recompute current: %w", err)
		}
		out, err = s.findByID(ctx, q, resolutionID)
		return err
	})
	if err != nil {
		return domain.Resolution{}, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResolution(row scanner) (domain.Resolution, error) {
	var (
		r         domain.Resolution
		category  string
		createdAt int64
		deadline  int64
	)
	err := row.Scan(&r.ID, &r.UserID, &r.Title, &r.Description, &category, &r.Target, &r.Current, &r.Unit, &createdAt, &deadline)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Resolution{}, err
	}
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("scan resolution: %w", err)
	}
	r.Category = domain.Category(category)
	r.CreatedAt = time.UnixMilli(createdAt).UTC()
	r.Deadline = time.UnixMilli(deadline).UTC()
	return r, nil
}

func scanEntry(row scanner, resolutionID *string) (domain.ProgressEntry, error) {
	var (
		e        domain.ProgressEntry
		loggedAt int64
	)
	if err := row.Scan(resolutionID, &e.ID, &e.Amount, &e.Note, &loggedAt); err != nil {
		return domain.ProgressEntry{}, fmt.Errorf("scan entry: %w", err)
	}
	e.Date = time.UnixMilli(loggedAt).UTC()
	return e, nil
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("resolution %q: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
