package source

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres reads both inputs from tables of a PostgreSQL database.
type Postgres struct {
	pool         *pgxpool.Pool
	table        string
	membersTable string
}

func OpenPostgres(ctx context.Context, dsn, table, membersTable string) (*Postgres, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if membersTable != "" {
		if err := validateTable(membersTable); err != nil {
			return nil, err
		}
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	poolConfig.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Postgres{pool: pool, table: table, membersTable: membersTable}, nil
}

func (p *Postgres) Transactions(ctx context.Context) ([]map[string]string, error) {
	return p.selectAll(ctx, p.table)
}

func (p *Postgres) Members(ctx context.Context) ([]map[string]string, error) {
	if p.membersTable == "" {
		return nil, nil
	}
	return p.selectAll(ctx, p.membersTable)
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func (p *Postgres) selectAll(ctx context.Context, table string) ([]map[string]string, error) {
	query := "SELECT * FROM " + pgx.Identifier{table}.Sanitize()
	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []map[string]string
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		row := make(map[string]string, len(fields))
		for i, f := range fields {
			row[f.Name] = stringify(values[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	return out, nil
}
