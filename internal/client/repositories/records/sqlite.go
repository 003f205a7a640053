package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blueprint/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func get(ctx context.Context, q dbx.DBTX, key string) (string, bool, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get record[%s]: %w", key, err)
	}
	return value, true, nil
}

func set(ctx context.Context, q dbx.DBTX, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO records (key, value, updated_at) VALUES (?, ?, CAST(strftime('%s', 'now') AS INTEGER))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set record[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, bool, error) {
	return get(ctx, r.db, key)
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value string) error {
	return set(ctx, r.db, key, value)
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete record[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, prefix string) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM records WHERE substr(key, 1, ?) = ? ORDER BY key`, len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate record rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, found, err := get(ctx, tx, key)
		if err != nil {
			return err
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}

		return set(ctx, tx, key, next)
	})
}
