package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses runs of whitespace", "find   the \t order", "find the order"},
		{"trims leading and trailing", "  quick sync  ", "quick sync"},
		{"empty input", "   ", ""},
		{"already clean", "open settings", "open settings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestPurchaseOrderQuery(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		found bool
	}{
		{"straight double quotes win over heuristics", `find PO "Acme Order 42"`, "Acme Order 42", true},
		{"straight single quotes", "open 'po 1042' now", "po 1042", true},
		{"curly double quotes", "show “Summer Restock” please", "Summer Restock", true},
		{"curly single quotes", "show ‘Summer Restock’ please", "Summer Restock", true},
		{"single-char quote ignored", `find "a" order po 77`, "77", true},
		{"po with space", "find po 1042", "1042", true},
		{"po with hyphen", "open po-2024-18", "2024-18", true},
		{"po with underscore", "status of po_881", "881", true},
		{"po with hash", "check po#5512", "5512", true},
		{"uppercase PO", "Where is PO 300?", "300", true},
		{"bare hash with three digits", "what about #123", "123", true},
		{"bare hash too short", "what about #12", "", false},
		{"no po reference", "show me the dashboard", "", false},
		{"po inside another word does not match", "points of interest", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PurchaseOrderQuery(tt.in)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSupplierQuery(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		found bool
	}{
		{"quoted phrase wins", `supplier "Blue Ridge Supply"`, "Blue Ridge Supply", true},
		{"supplier named", "Open supplier named Acme", "Acme", true},
		{"supplier called", "open supplier called Northwind Traders", "Northwind Traders", true},
		{"vendor for", "metrics vendor for Globex", "Globex", true},
		{"plain supplier mention", "show supplier Acme", "Acme", true},
		{"ampersand and apostrophe", "supplier O'Neill & Sons", "O'Neill & Sons", true},
		{"bare supplier word", "list my suppliers", "", false},
		{"no supplier mention", "open the dashboard", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SupplierQuery(tt.in)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
