package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

// PostgresSource reads catalog records from the items table. The table is
// only read at startup; stock changes stay in memory for the session.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresSource) Records(ctx context.Context) ([]Record, error) {
	var out []Record

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT name, price::text, description, stock
			FROM items
			ORDER BY position ASC, name ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Record, 0, 16)
		for rows.Next() {
			var (
				r     Record
				price string
			)
			if err := rows.Scan(&r.Name, &price, &r.Description, &r.Stock); err != nil {
				return err
			}
			if r.Price, err = decimal.NewFromString(price); err != nil {
				return err
			}
			out = append(out, r)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
