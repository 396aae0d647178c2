package receipt

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 5 * time.Second
	pgUniqueCode = "23505"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Create(ctx context.Context, r Receipt) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO receipts (id, total, item_count, created_at)
		VALUES ($1, $2, $3, $4)
	`, r.ID, r.Total.String(), r.ItemCount, r.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrReceiptExists
		}
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO receipt_lines (receipt_id, position, name, qty, unit_price)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, l := range r.Lines {
		if _, err := stmt.ExecContext(ctx, r.ID, i, l.Name, l.Quantity, l.UnitPrice.String()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Receipt, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var (
		r     Receipt
		total string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, total::text, item_count, created_at
		FROM receipts
		WHERE id = $1
	`, id).Scan(&r.ID, &total, &r.ItemCount, &r.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return Receipt{}, false, nil
	}
	if err != nil {
		return Receipt{}, false, err
	}
	if r.Total, err = decimal.NewFromString(total); err != nil {
		return Receipt{}, false, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, qty, unit_price::text
		FROM receipt_lines
		WHERE receipt_id = $1
		ORDER BY position ASC
	`, id)
	if err != nil {
		return Receipt{}, false, err
	}
	defer rows.Close()

	lines := make([]Line, 0, 8)
	for rows.Next() {
		var (
			l     Line
			price string
		)
		if err := rows.Scan(&l.Name, &l.Quantity, &price); err != nil {
			return Receipt{}, false, err
		}
		if l.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return Receipt{}, false, err
		}
		l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return Receipt{}, false, err
	}
	r.Lines = lines

	return r, true, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueCode
}
