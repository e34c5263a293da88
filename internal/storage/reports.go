package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/streamcheck/internal/common"
	"github.com/Veraticus/streamcheck/internal/model"
	"github.com/Veraticus/streamcheck/internal/service"
)

// SaveReport stores report together with the selection and start date that produced it.
func (s *SQLiteStorage) SaveReport(ctx context.Context, query model.ResultQuery, report *model.ResultReport) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateReport(query, report); err != nil {
		return 0, err
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to encode report: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO reports (start_date, main_league, total_cost, coverage_ratio,
			weighted_coverage, package_count, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		query.StartDate.UTC(),
		report.Meta.MainLeague,
		report.Data.TotalCost,
		report.Data.CoverageRatio,
		report.Data.WeightedCoverage,
		len(report.Data.SelectedPackages),
		string(payload),
		time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get report id: %w", err)
	}

	for i, team := range query.Teams {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO report_teams (report_id, position, name) VALUES (?, ?, ?)
		`, id, i, team); err != nil {
			return 0, fmt.Errorf("failed to save report team: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit report: %w", err)
	}

	return id, nil
}

// GetReport retrieves a stored report by id.
func (s *SQLiteStorage) GetReport(ctx context.Context, id int64) (*service.HistoryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, ErrInvalidID
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, start_date, created_at, payload
		FROM reports
		WHERE id = ?
	`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	teams, err := s.reportTeams(ctx, id)
	if err != nil {
		return nil, err
	}
	entry.Teams = teams

	return entry, nil
}

// ListReports returns the most recent reports first. A non-positive limit returns all.
func (s *SQLiteStorage) ListReports(ctx context.Context, limit int) ([]service.HistoryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, start_date, created_at, payload
		FROM reports
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []service.HistoryEntry
	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}

	for i := range entries {
		teams, teamErr := s.reportTeams(ctx, entries[i].ID)
		if teamErr != nil {
			return nil, teamErr
		}
		entries[i].Teams = teams
	}

	return entries, nil
}

// ClearReports deletes the whole history and returns the number of removed reports.
func (s *SQLiteStorage) ClearReports(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM report_teams`); err != nil {
		return 0, fmt.Errorf("failed to clear report teams: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM reports`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear reports: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count removed reports: %w", err)
	}

	return removed, tx.Commit()
}

func (s *SQLiteStorage) reportTeams(ctx context.Context, id int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM report_teams WHERE report_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load report teams: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var teams []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan report team: %w", err)
		}
		teams = append(teams, name)
	}
	return teams, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*service.HistoryEntry, error) {
	var (
		entry   service.HistoryEntry
		payload string
	)
	if err := row.Scan(&entry.ID, &entry.StartDate, &entry.CreatedAt, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}

	var report model.ResultReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("failed to decode stored report %d: %w", entry.ID, err)
	}
	entry.Report = &report

	return &entry, nil
}
