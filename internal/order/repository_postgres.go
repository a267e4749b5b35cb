package order

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	orderColumns = `id, idempotency_key, customer_name, customer_email, customer_doc, customer_phone, address, postal_code, recipient, items, total, status, created_at`

	insertOrderQuery = `
		INSERT INTO orders (idempotency_key, customer_name, customer_email, customer_doc, customer_phone, address, postal_code, recipient, items, total, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,now())
		RETURNING id, created_at
	`
	getOrderByIDQuery  = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	getOrderByKeyQuery = `SELECT ` + orderColumns + ` FROM orders WHERE idempotency_key = $1`
	listOrdersQuery    = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	updateStatusQuery  = `UPDATE orders SET status = $1 WHERE id = $2 RETURNING ` + orderColumns
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var o Order
	var items []byte
	err := row.Scan(
		&o.ID, &o.IdempotencyKey,
		&o.CustomerName, &o.CustomerEmail, &o.CustomerDoc, &o.CustomerPhone,
		&o.Address, &o.PostalCode, &o.Recipient,
		&items, &o.Total, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		return Order{}, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return Order{}, fmt.Errorf("order items: %w", err)
		}
	}
	return o, nil
}

func (r *PostgresRepository) Create(o Order) (Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return Order{}, fmt.Errorf("order items: %w", err)
	}
	err = r.db.QueryRow(insertOrderQuery,
		o.IdempotencyKey,
		o.CustomerName, o.CustomerEmail, o.CustomerDoc, o.CustomerPhone,
		o.Address, o.PostalCode, o.Recipient,
		items, o.Total, o.Status,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return Order{}, fmt.Errorf("order insert: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) GetByID(id int64) (Order, error) {
	o, err := scanOrder(r.db.QueryRow(getOrderByIDQuery, id))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("order get: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) GetByKey(key string) (Order, error) {
	o, err := scanOrder(r.db.QueryRow(getOrderByKeyQuery, key))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("order get by key: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) List() ([]Order, error) {
	rows, err := r.db.Query(listOrdersQuery)
	if err != nil {
		return nil, fmt.Errorf("order list: %w", err)
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("order scan: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(id int64, status string) (Order, error) {
	o, err := scanOrder(r.db.QueryRow(updateStatusQuery, status, id))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("order status update: %w", err)
	}
	return o, nil
}
