package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ugaemi/groupcode/internal/group"
)

// SQLSTATE unique_violation
const uniqueViolation = "23505"

const schemaTemplate = `
CREATE TABLE IF NOT EXISTS %[1]s (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    %[2]s TEXT NOT NULL UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// PostgresStore implements GroupStore using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and creates the tables.
func NewPostgresStore(ctx context.Context, databaseURL string, tables ...Table) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	for _, t := range tables {
		coll, col := identifiers(t.Collection, t.Column)
		if _, err := pool.Exec(ctx, fmt.Sprintf(schemaTemplate, coll, col)); err != nil {
			pool.Close()
			return nil, fmt.Errorf("creating table %s: %w", t.Collection, err)
		}
	}

	return &PostgresStore{pool: pool}, nil
}

// Exists reports whether any row of collection has column equal to value.
func (s *PostgresStore) Exists(ctx context.Context, collection, column, value string) (bool, error) {
	coll, col := identifiers(collection, column)

	var exists bool
	err := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, coll, col), value).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking %s.%s: %w", collection, column, err)
	}
	return exists, nil
}

// Create inserts a new group.
func (s *PostgresStore) Create(ctx context.Context, t Table, g *group.Group) error {
	coll, col := identifiers(t.Collection, t.Column)
	_, err := s.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, name, %s, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`, coll, col),
		g.ID, g.Name, g.Code, g.CreatedAt, g.UpdatedAt)
	return mapWriteError(err)
}

// FindByCode looks up a group by its code.
func (s *PostgresStore) FindByCode(ctx context.Context, t Table, c string) (*group.Group, error) {
	coll, col := identifiers(t.Collection, t.Column)
	row := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT id, name, %[2]s, created_at, updated_at
		 FROM %[1]s WHERE %[2]s = $1`, coll, col), c)

	g, err := scanGroup(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g.Kind = t.Kind
	return g, nil
}

// UpdateCode replaces oldCode with newCode in a single conditional update.
func (s *PostgresStore) UpdateCode(ctx context.Context, t Table, oldCode, newCode string) error {
	coll, col := identifiers(t.Collection, t.Column)
	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE %[1]s SET %[2]s = $1, updated_at = $2 WHERE %[2]s = $3`, coll, col),
		newCode, time.Now(), oldCode)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func identifiers(collection, column string) (string, string) {
	return pgx.Identifier{collection}.Sanitize(), pgx.Identifier{column}.Sanitize()
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrCodeTaken, pgErr.ConstraintName)
	}
	return err
}

func scanGroup(row pgx.Row) (*group.Group, error) {
	var g group.Group
	err := row.Scan(&g.ID, &g.Name, &g.Code, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
