// Package source loads raw transaction and member rows from CSV exports or
// database tables. Rows are returned as header -> value maps so every source
// feeds the same normalizer.
package source

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"salonkpi/pkg/config"
)

// Source yields the two raw inputs. Members may return nil rows when no
// member import is configured.
type Source interface {
	Transactions(ctx context.Context) ([]map[string]string, error)
	Members(ctx context.Context) ([]map[string]string, error)
	Close() error
}

var ErrInvalidTable = errors.New("invalid table name")

var tableNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

func validateTable(name string) error {
	if !tableNameRe.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidTable, name)
	}
	return nil
}

// Open returns the source described by cfg.
func Open(ctx context.Context, cfg config.SourceConfig) (Source, error) {
	switch cfg.Kind {
	case config.SourceCSV, "":
		return NewFiles(cfg.Transactions, cfg.Members), nil
	case config.SourceMySQL:
		src, err := OpenMySQL(cfg.DSN, cfg.Table, cfg.MembersTable)
		if err != nil {
			return nil, err
		}
		return src, nil
	case config.SourcePostgres:
		src, err := OpenPostgres(ctx, cfg.DSN, cfg.Table, cfg.MembersTable)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownSource, cfg.Kind)
}

// stringify renders a database value the way the POS export would print it.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	case float32:
		return decimal.NewFromFloat32(x).String()
	case float64:
		return decimal.NewFromFloat(x).String()
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
