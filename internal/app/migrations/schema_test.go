package migrations

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Optional text fields are modeled as *string and inserted as nil when the
// client omits them. pgx encodes a nil pointer as SQL NULL, which skips the
// column default entirely, so these columns must accept NULL.
func TestOptionalTextColumnsAcceptNull(t *testing.T) {
	sql := readInitMigration(t)

	optional := []struct {
		table  string
		column string
	}{
		{"courses", "description"},
		{"reviews", "comment"},
		{"bundles", "description"},
		{"tutoring_sessions", "description"},
		{"tutoring_requests", "note"},
		{"subscription_plans", "description"},
		{"achievements", "description"},
	}

	for _, tc := range optional {
		def := columnDefinition(t, sql, tc.table, tc.column)
		if strings.Contains(def, "NOT NULL") {
			t.Errorf("%s.%s is declared NOT NULL but the model field is a pointer: %q", tc.table, tc.column, def)
		}
	}
}

func TestTransactionDescriptionStaysRequired(t *testing.T) {
	sql := readInitMigration(t)

	def := columnDefinition(t, sql, "points_transactions", "description")
	if !strings.Contains(def, "NOT NULL") {
		t.Errorf("points_transactions.description should stay NOT NULL, got %q", def)
	}
}

func readInitMigration(t *testing.T) string {
	t.Helper()

	path := filepath.Join("..", "..", "..", "migrations", "001_init.sql")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read migration file: %v", err)
	}
	return string(data)
}

func columnDefinition(t *testing.T, sql, table, column string) string {
	t.Helper()

	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(sql, marker)
	if start < 0 {
		t.Fatalf("table %s not found in migration", table)
	}
	body := sql[start+len(marker):]
	end := strings.Index(body, ");")
	if end < 0 {
		t.Fatalf("table %s definition is not terminated", table)
	}
	for _, line := range strings.Split(body[:end], "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, column+" ") {
			return strings.TrimSuffix(trimmed, ",")
		}
	}
	t.Fatalf("column %s.%s not found in migration", table, column)
	return ""
}
