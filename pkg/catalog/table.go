// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type scanner interface {
	Scan(dest ...any) error
}

// entity describes how one catalog type maps onto its table.
// The first column is always the primary key.
type entity[T any] struct {
	table   string
	columns []string
	values  func(T) ([]any, error)
	scan    func(scanner) (T, error)
	id      func(*T) *string
	check   func(T) error
}

// Table is CRUD access to one entity kind.
type Table[T any] struct {
	db *DB
	e  entity[T]
}

func newTable[T any](db *DB, e entity[T]) *Table[T] {
	return &Table[T]{db: db, e: e}
}

// Kind is the table name, used as the admin route segment.
func (t *Table[T]) Kind() string {
	return t.e.table
}

func (t *Table[T]) selectSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.e.columns, ", "), t.e.table)
}

// List returns every row ordered by primary key.
func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	return t.where(ctx, "1 = 1")
}

func (t *Table[T]) where(ctx context.Context, cond string, args ...any) ([]T, error) {
	rows, err := t.db.query(ctx, fmt.Sprintf("%s WHERE %s ORDER BY %s", t.selectSQL(), cond, t.e.columns[0]), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t.e.table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := t.e.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", t.e.table, err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Get returns one row or ErrNotFound.
func (t *Table[T]) Get(ctx context.Context, id string) (T, error) {
	row := t.db.queryRow(ctx, fmt.Sprintf("%s WHERE %s = ?", t.selectSQL(), t.e.columns[0]), id)
	item, err := t.e.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, fmt.Errorf("%s %s: %w", t.e.table, id, ErrNotFound)
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to get %s %s: %w", t.e.table, id, err)
	}
	return item, nil
}

// Create inserts item, assigning a new ID when it has none.
func (t *Table[T]) Create(ctx context.Context, item T) (T, error) {
	if err := t.e.check(item); err != nil {
		return item, err
	}
	if id := t.e.id(&item); *id == "" {
		*id = uuid.NewString()
	}

	values, err := t.e.values(item)
	if err != nil {
		return item, err
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.e.columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.e.table, strings.Join(t.e.columns, ", "), placeholders)

	// check first so both drivers report duplicates the same way
	if _, err := t.Get(ctx, *t.e.id(&item)); err == nil {
		return item, fmt.Errorf("%s %s: %w", t.e.table, *t.e.id(&item), ErrConflict)
	}
	if _, err := t.db.exec(ctx, query, values...); err != nil {
		return item, fmt.Errorf("failed to insert %s: %w", t.e.table, err)
	}
	return item, nil
}

// Update replaces the row with item's ID, or returns ErrNotFound.
func (t *Table[T]) Update(ctx context.Context, item T) (T, error) {
	if err := t.e.check(item); err != nil {
		return item, err
	}
	values, err := t.e.values(item)
	if err != nil {
		return item, err
	}

	sets := make([]string, 0, len(t.e.columns)-1)
	for _, col := range t.e.columns[1:] {
		sets = append(sets, col+" = ?")
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", t.e.table, strings.Join(sets, ", "), t.e.columns[0])
	args := append(values[1:], values[0])

	res, err := t.db.exec(ctx, query, args...)
	if err != nil {
		return item, fmt.Errorf("failed to update %s: %w", t.e.table, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return item, fmt.Errorf("%s %s: %w", t.e.table, *t.e.id(&item), ErrNotFound)
	}
	return item, nil
}

// Delete removes a row, or returns ErrNotFound.
func (t *Table[T]) Delete(ctx context.Context, id string) error {
	res, err := t.db.exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = ?", t.e.table, t.e.columns[0]), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", t.e.table, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s %s: %w", t.e.table, id, ErrNotFound)
	}
	return nil
}

// SetID assigns id to item's primary key.
func (t *Table[T]) SetID(item *T, id string) {
	*t.e.id(item) = id
}
