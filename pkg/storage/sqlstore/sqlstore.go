// Package sqlstore implements storage.Driver over any database/sql connection
// that ent's SQL dialects support. Queries are built with ent's dialect
// builder so the same code serves SQLite and PostgreSQL.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/rocksolid/rocksolid/pkg/storage"
)

// Table is the name of the routines table.
const Table = "routines"

var columns = []string{"id", "name", "items", "created_at"}

// Driver provides storage operations using an ent SQL driver.
// It is database-agnostic and can be embedded by specific drivers.
type Driver struct {
	drv *entsql.Driver
}

var _ storage.Driver = (*Driver)(nil)

// New wraps an open ent SQL driver and creates the routines table when it
// does not exist yet.
func New(ctx context.Context, drv *entsql.Driver) (*Driver, error) {
	d := &Driver{drv: drv}
	if err := d.migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return d, nil
}

func (d *Driver) builder() *entsql.DialectBuilder {
	return entsql.Dialect(d.drv.Dialect())
}

func (d *Driver) migrate(ctx context.Context) error {
	query, args := d.builder().CreateTable(Table).
		IfNotExists().
		Columns(
			entsql.Column("id").Type("VARCHAR(64)"),
			entsql.Column("name").Type("TEXT").Attr("NOT NULL"),
			entsql.Column("items").Type("TEXT").Attr("NOT NULL"),
			entsql.Column("created_at").Type("BIGINT").Attr("NOT NULL"),
		).
		PrimaryKey("id").
		Query()

	_, err := d.drv.DB().ExecContext(ctx, query, args...)
	return err
}

// Create stores a routine.
func (d *Driver) Create(ctx context.Context, r storage.Routine) error {
	if r.ID == "" {
		return errors.New("cannot store routine without id")
	}

	items, err := json.Marshal(nonNil(r.Items))
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}

	query, args := d.builder().Insert(Table).
		Columns(columns...).
		Values(r.ID, r.Name, string(items), r.CreatedAt.UnixMicro()).
		Query()

	if _, err := d.drv.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("could not execute routine creation: %w", err)
	}
	return nil
}

// Get retrieves a routine by id.
func (d *Driver) Get(ctx context.Context, id string) (*storage.Routine, error) {
	b := d.builder()
	query, args := b.Select(columns...).
		From(b.Table(Table)).
		Where(entsql.EQ("id", id)).
		Query()

	routines, err := d.query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("failed to get routine: %w", err)
	}
	if len(routines) == 0 {
		return nil, storage.NotFoundError{ID: id}
	}
	return &routines[0], nil
}

// List returns all routines, newest first.
func (d *Driver) List(ctx context.Context) ([]storage.Routine, error) {
	b := d.builder()
	query, args := b.Select(columns...).
		From(b.Table(Table)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id")).
		Query()

	routines, err := d.query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("failed to list routines: %w", err)
	}
	return routines, nil
}

// Delete removes a routine by id.
func (d *Driver) Delete(ctx context.Context, id string) error {
	query, args := d.builder().Delete(Table).
		Where(entsql.EQ("id", id)).
		Query()

	res, err := d.drv.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete routine: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete routine: %w", err)
	}
	if n == 0 {
		return storage.NotFoundError{ID: id}
	}
	return nil
}

// Close closes the underlying connection.
func (d *Driver) Close() error {
	return d.drv.Close()
}

func (d *Driver) query(ctx context.Context, query string, args []any) ([]storage.Routine, error) {
	rows, err := d.drv.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routines := []storage.Routine{}
	for rows.Next() {
		r, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, r)
	}
	return routines, rows.Err()
}

func scanRoutine(rows *sql.Rows) (storage.Routine, error) {
	var (
		r         storage.Routine
		items     string
		createdAt int64
	)
	if err := rows.Scan(&r.ID, &r.Name, &items, &createdAt); err != nil {
		return storage.Routine{}, fmt.Errorf("failed to scan routine: %w", err)
	}

	if err := json.Unmarshal([]byte(items), &r.Items); err != nil {
		return storage.Routine{}, fmt.Errorf("failed to unmarshal items of %s: %w", r.ID, err)
	}
	r.Items = nonNil(r.Items)
	r.CreatedAt = time.UnixMicro(createdAt).UTC()
	return r, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
