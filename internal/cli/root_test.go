package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/talkincode/supermarkt/internal/goods"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCategoriesCommand(t *testing.T) {
	out, err := execute(t, "categories")
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	for _, c := range goods.Categories() {
		if !strings.Contains(out, string(c.Category)) {
			t.Fatalf("missing %s:\n%s", c.Category, out)
		}
	}
}

func TestSimulateCommandCSV(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "stock.csv")
	data := "type,id,name,quality,expiryDate,defaultPrice\nCheese,C1,Gouda,40,2026-09-01,10\n"
	if err := os.WriteFile(file, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "simulate", "--today", "2026-07-01", "--csv", file, "--days", "2", "--format", "csv")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !strings.Contains(out, "C1,2,2026-07-03,38,13.8,false,false") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestSimulateCommandRejectsUnknownFormat(t *testing.T) {
	if _, err := execute(t, "simulate", "--format", "pdf"); err == nil {
		t.Fatalf("unknown format accepted")
	}
}

func TestServeStopsWithContext(t *testing.T) {
	t.Setenv("SUPERMARKT_SYSTEM_WORKDIR", t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"serve", "--demo", "--today", "2026-07-01", "--listen", "127.0.0.1:0"})
	if err := cmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("serve: %v\n%s", err, out.String())
	}
}
