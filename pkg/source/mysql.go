package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQL reads both inputs from tables of a MySQL or MariaDB database.
type MySQL struct {
	db           *sql.DB
	table        string
	membersTable string
}

// OpenMySQL accepts a driver DSN or a mysql:// / mariadb:// URL.
func OpenMySQL(dsn, table, membersTable string) (*MySQL, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if membersTable != "" {
		if err := validateTable(membersTable); err != nil {
			return nil, err
		}
	}
	mysqlDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	return &MySQL{db: db, table: table, membersTable: membersTable}, nil
}

func toMySQLDSN(dsn string) (string, error) {
	if !strings.HasPrefix(dsn, "mariadb://") && !strings.HasPrefix(dsn, "mysql://") {
		return dsn, nil
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	var user, pass string
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	host := u.Host
	db := strings.TrimPrefix(u.Path, "/")
	if user == "" || host == "" || db == "" {
		return "", fmt.Errorf("incomplete dsn: user, host and database are required")
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=Local&interpolateParams=true",
		user, pass, host, db), nil
}

func (m *MySQL) Transactions(ctx context.Context) ([]map[string]string, error) {
	return m.selectAll(ctx, m.table)
}

func (m *MySQL) Members(ctx context.Context) ([]map[string]string, error) {
	if m.membersTable == "" {
		return nil, nil
	}
	return m.selectAll(ctx, m.membersTable)
}

func (m *MySQL) Close() error {
	return m.db.Close()
}

func (m *MySQL) selectAll(ctx context.Context, table string) ([]map[string]string, error) {
	rows, err := m.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM `%s`", table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []map[string]string
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			row[col] = stringify(values[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	return out, nil
}
