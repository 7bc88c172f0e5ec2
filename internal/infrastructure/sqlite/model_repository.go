package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zjrosen/modelctl/internal/lifecycle"
	"github.com/zjrosen/modelctl/internal/log"
)

const modelColumns = `name, version, created_at, deprecation_at, retirement_at, updated_at`

// ModelRepository reads and writes the models table.
type ModelRepository struct {
	db  *sql.DB
	now func() time.Time
}

func newModelRepository(db *sql.DB) *ModelRepository {
	return &ModelRepository{db: db, now: time.Now}
}

func scanModel(scanner interface{ Scan(...any) error }) (*ModelRow, error) {
	var row ModelRow
	err := scanner.Scan(
		&row.Name, &row.Version, &row.CreatedAt,
		&row.DeprecationAt, &row.RetirementAt, &row.UpdatedAt,
	)
	return &row, err
}

// ReplaceAll makes the table hold exactly models, in order, within a single
// transaction. On error the previous contents are kept.
func (r *ModelRepository) ReplaceAll(ctx context.Context, models []*lifecycle.Model) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM models`); err != nil {
		return fmt.Errorf("failed to clear models: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO models (`+modelColumns+`) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	updated := r.now()
	for _, m := range models {
		row := toModelRow(m, updated)
		if _, err := stmt.ExecContext(ctx,
			row.Name, row.Version, row.CreatedAt,
			row.DeprecationAt, row.RetirementAt, row.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert model %s: %w", m.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit models: %w", err)
	}
	log.Debug(log.CatDB, "Replaced models", "count", len(models))
	return nil
}

// List returns every stored model in insertion order. A row that violates the
// lifecycle invariants fails the whole call with a *lifecycle.ParseError.
func (r *ModelRepository) List(ctx context.Context) ([]*lifecycle.Model, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+modelColumns+` FROM models ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer rows.Close()

	var models []*lifecycle.Model
	for i := 0; rows.Next(); i++ {
		row, err := scanModel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}
		m, err := row.toDomain(i)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate models: %w", err)
	}
	return models, nil
}

// Count returns the number of stored models.
func (r *ModelRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM models`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count models: %w", err)
	}
	return n, nil
}
