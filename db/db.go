package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	conn *pgxpool.Pool
}

func (d *DB) Close() error {
	d.conn.Close()
	return nil
}

func (d *DB) GetPool() *pgxpool.Pool {
	return d.conn
}

func NewPSQL(ctx context.Context, dsn string) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	config.MaxConns = 20

	conn, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(ctx); err != nil {
		return nil, err
	}

	return &DB{conn}, nil
}

func FormatLimitOffset(limit int, offset int) string {
	if limit > 0 && offset > 0 {
		return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
	}

	if limit > 0 {
		return fmt.Sprintf("LIMIT %d", limit)
	}

	if offset > 0 {
		return fmt.Sprintf("OFFSET %d", offset)
	}

	return ""
}

func mapper[T1 any, T2 any](lst []*T1, f func(*T1) *T2) []*T2 {
	if len(lst) == 0 {
		return []*T2{}
	}
	rez := make([]*T2, len(lst))
	for i := range rez {
		rez[i] = f(lst[i])
	}
	return rez
}

func toSingular[T1, T2 any](ctx context.Context, filter T1, f func(context.Context, T1) ([]*T2, error)) (*T2, error) {
	many, err := f(ctx, filter)
	if err != nil || len(many) == 0 {
		return nil, err
	}
	return many[0], nil
}
