package main

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ahinestrog/bookcart/Backend/src/cart/aggregator"
)

type sqliteStore struct{ db *sql.DB }

func NewSQLiteStore(db *sql.DB) CartStore { return &sqliteStore{db: db} }

func (r *sqliteStore) Load(ctx context.Context, userID int64) (aggregator.Cart, error) {
	var cartID int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id=?`, userID).Scan(&cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return aggregator.Cart{UserID: userID, Items: []aggregator.LineItem{}}, nil
	}
	if err != nil {
		return aggregator.Cart{}, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT book_id, title, author, cover_url, unit_price_cents, qty
		FROM cart_items WHERE cart_id=? ORDER BY position`, cartID)
	if err != nil {
		return aggregator.Cart{}, err
	}
	defer rows.Close()

	var items []aggregator.LineItem
	for rows.Next() {
		var it aggregator.LineItem
		if err := rows.Scan(&it.BookID, &it.Title, &it.Author, &it.CoverURL, &it.UnitPrice.Cents, &it.Qty); err != nil {
			return aggregator.Cart{}, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return aggregator.Cart{}, err
	}
	return aggregator.FromItems(userID, items)
}

// Save reemplaza todas las líneas del carrito en una sola transacción.
func (r *sqliteStore) Save(ctx context.Context, c aggregator.Cart) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO carts(user_id, updated_unix) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET updated_unix = excluded.updated_unix`,
		c.UserID, time.Now().Unix()); err != nil {
		return err
	}
	var cartID int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id=?`, c.UserID).Scan(&cartID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id=?`, cartID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cart_items(cart_id, position, book_id, title, author, cover_url, unit_price_cents, qty)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, it := range c.Items {
		if _, err := stmt.ExecContext(ctx,
			cartID, i, it.BookID, it.Title, it.Author, it.CoverURL, it.UnitPrice.Cents, it.Qty); err != nil {
			return err
		}
	}
	return tx.Commit()
}
