package repo

import (
	"strings"
	"testing"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		sort         string
		dateFiltered bool
		want         string
	}{
		{"created_at", false, "created_at DESC"},
		{"updated_at", false, "updated_at DESC"},
		{"title", false, "title DESC"},
		{"status", false, "status DESC"},
		{"due_date", false, "due_date ASC NULLS LAST"},
		// unknown fields fall back instead of erroring
		{"owner_id; DROP TABLE tasks", false, "created_at DESC"},
		{"", false, "created_at DESC"},
		{"", true, "due_date ASC NULLS LAST"},
	}
	for _, tc := range tests {
		if got := orderClause(tc.sort, tc.dateFiltered); got != tc.want {
			t.Errorf("orderClause(%q, %v) = %q, want %q", tc.sort, tc.dateFiltered, got, tc.want)
		}
	}
}

func TestOrderClausePriority(t *testing.T) {
	got := orderClause("priority", false)
	// high sorts first with due-date tiebreak
	for _, frag := range []string{"WHEN 'high' THEN 0", "WHEN 'medium' THEN 1", "due_date ASC NULLS LAST"} {
		if !strings.Contains(got, frag) {
			t.Errorf("priority clause %q missing %q", got, frag)
		}
	}
}
