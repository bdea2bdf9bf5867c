package main

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("not found")

//go:embed db/db.sql
var schemaSQL string

//go:embed db/seed.sql
var seedSQL string

type Repository interface {
	Count(ctx context.Context, q string) (int64, error)
	List(ctx context.Context, q string, limit, offset int32) ([]*Book, error)
	Get(ctx context.Context, id int64) (*Book, error)
}

type sqliteRepo struct{ db *sql.DB }

func NewSQLiteRepo(db *sql.DB) Repository { return &sqliteRepo{db: db} }

func openSQLite(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=on", path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// migrate crea el esquema y, si la tabla está vacía y seed=true, carga los libros base.
func migrate(ctx context.Context, db *sql.DB, seed bool) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	if !seed {
		return nil
	}
	var c int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM books`).Scan(&c); err != nil {
		return err
	}
	if c > 0 {
		return nil
	}
	if _, err := db.ExecContext(ctx, seedSQL); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

const bookColumns = `id,title,author,price_cents,cover_url,description,category,created_unix`

func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

func (r *sqliteRepo) Count(ctx context.Context, q string) (int64, error) {
	var c int64
	if strings.TrimSpace(q) == "" {
		err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM books`).Scan(&c)
		return c, err
	}
	qp := likePattern(q)
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM books
		WHERE lower(title) LIKE ? OR lower(author) LIKE ?`, qp, qp).Scan(&c)
	return c, err
}

func (r *sqliteRepo) List(ctx context.Context, q string, limit, offset int32) ([]*Book, error) {
	var rows *sql.Rows
	var err error
	if strings.TrimSpace(q) == "" {
		rows, err = r.db.QueryContext(ctx, `
			SELECT `+bookColumns+`
			FROM books ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	} else {
		qp := likePattern(q)
		rows, err = r.db.QueryContext(ctx, `
			SELECT `+bookColumns+`
			FROM books
			WHERE lower(title) LIKE ? OR lower(author) LIKE ?
			ORDER BY id LIMIT ? OFFSET ?`, qp, qp, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.PriceCents, &b.CoverURL, &b.Description, &b.Category, &b.CreatedUnix); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

func (r *sqliteRepo) Get(ctx context.Context, id int64) (*Book, error) {
	var b Book
	err := r.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id=?`, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.PriceCents, &b.CoverURL, &b.Description, &b.Category, &b.CreatedUnix)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
