package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"salonkpi/pkg/config"
)

func TestToMySQLDSN(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		want    string
		wantErr bool
	}{
		{"driver dsn passes through", "u:p@tcp(db:3306)/pos", "u:p@tcp(db:3306)/pos", false},
		{"mariadb url", "mariadb://u:p@db:3306/pos", "u:p@tcp(db:3306)/pos?parseTime=true&loc=Local&interpolateParams=true", false},
		{"mysql url without password", "mysql://u@db/pos", "u:@tcp(db)/pos?parseTime=true&loc=Local&interpolateParams=true", false},
		{"missing database", "mysql://u:p@db:3306/", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toMySQLDSN(tt.dsn)
			if (err != nil) != tt.wantErr {
				t.Fatalf("toMySQLDSN() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("toMySQLDSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateTable(t *testing.T) {
	for _, name := range []string{"orders", "pos_2024"} {
		if err := validateTable(name); err != nil {
			t.Errorf("validateTable(%q) = %v", name, err)
		}
	}
	for _, name := range []string{"", "orders; DROP TABLE x", "a.b", "訂單"} {
		if err := validateTable(name); !errors.Is(err, ErrInvalidTable) {
			t.Errorf("validateTable(%q) = %v, want ErrInvalidTable", name, err)
		}
	}
	if _, err := OpenMySQL("u:p@tcp(h)/db", "bad-name", ""); !errors.Is(err, ErrInvalidTable) {
		t.Errorf("OpenMySQL() error = %v, want ErrInvalidTable", err)
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"信義店", "信義店"},
		{[]byte("完成"), "完成"},
		{int64(42), "42"},
		{1200.5, "1200.5"},
		{time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), "2024-03-05 14:30:00"},
		{time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC), "1990-05-01"},
	}
	for _, tt := range tests {
		if got := stringify(tt.in); got != tt.want {
			t.Errorf("stringify(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	orders := filepath.Join(dir, "orders.csv")
	body := "店家名稱,訂單狀態,會員帳號\n信義店,完成,0912\n大安店,取消\n"
	if err := os.WriteFile(orders, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	src, err := Open(context.Background(), config.SourceConfig{Kind: config.SourceCSV, Transactions: orders})
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	rows, err := src.Transactions(context.Background())
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if len(rows) != 2 || rows[0]["會員帳號"] != "0912" || rows[1]["會員帳號"] != "" {
		t.Fatalf("rows = %v", rows)
	}

	members, err := src.Members(context.Background())
	if err != nil || members != nil {
		t.Fatalf("Members() = %v, %v; want nil without a path", members, err)
	}

	missing := NewFiles(filepath.Join(dir, "nope.csv"), "")
	if _, err := missing.Transactions(context.Background()); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestOpen_UnknownKind(t *testing.T) {
	_, err := Open(context.Background(), config.SourceConfig{Kind: "excel"})
	if !errors.Is(err, config.ErrUnknownSource) {
		t.Fatalf("Open() error = %v, want ErrUnknownSource", err)
	}
}
