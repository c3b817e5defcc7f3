package response

import "testing"

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		limit      int64
		totalPages int64
	}{
		{"empty set still has one page", 0, 10, 1},
		{"exact multiple", 40, 10, 4},
		{"remainder rounds up", 41, 10, 5},
		{"fewer than one page", 3, 10, 1},
		{"limit one", 7, 1, 7},
		{"zero limit is normalized", 5, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, 1, tt.limit)
			if p.TotalPages != tt.totalPages {
				t.Fatalf("totalPages want %d, got %d", tt.totalPages, p.TotalPages)
			}
			if p.Total != tt.total {
				t.Fatalf("total want %d, got %d", tt.total, p.Total)
			}
		})
	}
}
