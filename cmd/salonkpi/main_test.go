package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecute_ReportsErrors(t *testing.T) {
	orders := filepath.Join(t.TempDir(), "orders.csv")
	if err := os.WriteFile(orders, []byte("訂單狀態,完成剪髮時間,會員帳號\n完成,2024-01-02 10:00,m1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad cohort", []string{"lost", "--cohort", "bogus", "-t", orders}, `unknown lost cohort "bogus"`},
		{"bad scope", []string{"hourly", "--scope", "night", "-t", orders}, `unknown hourly scope "night"`},
		{"missing config", []string{"months", "-c", filepath.Join(t.TempDir(), "none.toml")}, "failed to open config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if code := execute(context.Background(), tt.args, &stderr); code != 1 {
				t.Fatalf("execute() = %d, want 1", code)
			}
			if !strings.Contains(stderr.String(), tt.want) {
				t.Fatalf("stderr = %q, want it to mention %q", stderr.String(), tt.want)
			}
		})
	}
}
