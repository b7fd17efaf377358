package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/recdash/internal/common"
	"github.com/Veraticus/recdash/internal/model"
)

// DefaultListLimit bounds ListCycles when the caller passes no limit.
const DefaultListLimit = 20

// RecordCycle writes a settled load cycle and its endpoint outcomes.
func (s *SQLiteStorage) RecordCycle(ctx context.Context, cycle model.LoadCycle) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCycle(&cycle); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var finished any
	if !cycle.FinishedAt.IsZero() {
		finished = cycle.FinishedAt.UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO load_cycles (id, source, started_at, finished_at)
		VALUES (?, ?, ?, ?)`,
		cycle.ID, cycle.Source, cycle.StartedAt.UTC(), finished)
	if err != nil {
		return fmt.Errorf("failed to insert load cycle: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO endpoint_outcomes (cycle_id, endpoint, ok, error, duration_ms, position)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare outcome insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, o := range cycle.Outcomes {
		var errText any
		if o.Error != "" {
			errText = o.Error
		}
		if _, err := stmt.ExecContext(ctx, cycle.ID, o.Endpoint, o.OK, errText, o.Duration.Milliseconds(), i); err != nil {
			return fmt.Errorf("failed to insert outcome for %s: %w", o.Endpoint, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load cycle: %w", err)
	}
	return nil
}

// ListCycles returns the most recent cycles, newest first.
func (s *SQLiteStorage) ListCycles(ctx context.Context, limit int) ([]model.LoadCycle, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, started_at, finished_at
		FROM load_cycles
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query load cycles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cycles []model.LoadCycle
	for rows.Next() {
		cycle, scanErr := scanCycle(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		cycles = append(cycles, cycle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate load cycles: %w", err)
	}

	for i := range cycles {
		outcomes, outErr := s.getOutcomes(ctx, cycles[i].ID)
		if outErr != nil {
			return nil, outErr
		}
		cycles[i].Outcomes = outcomes
	}

	return cycles, nil
}

// GetCycle returns a single cycle by its full id or a unique id prefix.
// An exact match wins over prefix matches.
func (s *SQLiteStorage) GetCycle(ctx context.Context, id string) (*model.LoadCycle, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, started_at, finished_at
		FROM load_cycles
		WHERE substr(id, 1, length(?)) = ?
		ORDER BY id = ? DESC, started_at DESC
		LIMIT 2`, id, id, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query load cycle: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []model.LoadCycle
	for rows.Next() {
		cycle, scanErr := scanCycle(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, cycle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate load cycles: %w", err)
	}

	switch {
	case len(matches) == 0:
		return nil, fmt.Errorf("load cycle %s: %w", id, common.ErrNotFound)
	case len(matches) > 1 && matches[0].ID != id:
		return nil, fmt.Errorf("load cycle %s: %w", id, common.ErrAmbiguousID)
	}

	cycle := matches[0]
	cycle.Outcomes, err = s.getOutcomes(ctx, cycle.ID)
	if err != nil {
		return nil, err
	}
	return &cycle, nil
}

// PruneBefore deletes cycles that started before cutoff and reports how many went.
func (s *SQLiteStorage) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM endpoint_outcomes
		WHERE cycle_id IN (SELECT id FROM load_cycles WHERE started_at < ?)`, cutoff.UTC()); err != nil {
		return 0, fmt.Errorf("failed to prune outcomes: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM load_cycles WHERE started_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune load cycles: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned cycles: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit prune: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCycle(row rowScanner) (model.LoadCycle, error) {
	var (
		cycle    model.LoadCycle
		finished sql.NullTime
	)
	if err := row.Scan(&cycle.ID, &cycle.Source, &cycle.StartedAt, &finished); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.LoadCycle{}, err
		}
		return model.LoadCycle{}, fmt.Errorf("failed to scan load cycle: %w", err)
	}
	if finished.Valid {
		cycle.FinishedAt = finished.Time
	}
	return cycle, nil
}

func (s *SQLiteStorage) getOutcomes(ctx context.Context, cycleID string) ([]model.EndpointOutcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT endpoint, ok, error, duration_ms
		FROM endpoint_outcomes
		WHERE cycle_id = ?
		ORDER BY position`, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var outcomes []model.EndpointOutcome
	for rows.Next() {
		var (
			o          model.EndpointOutcome
			errText    sql.NullString
			durationMS int64
		)
		if err := rows.Scan(&o.Endpoint, &o.OK, &errText, &durationMS); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		o.Error = errText.String
		o.Duration = time.Duration(durationMS) * time.Millisecond
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outcomes: %w", err)
	}
	return outcomes, nil
}
