package services

import (
	"context"
	"testing"
)

func TestVisitorUpsertByIP(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	visitors := NewVisitorService(st)

	first, err := visitors.Record(ctx, VisitorInput{IP: "203.0.113.7", Country: "DE"})
	if err != nil {
		t.Fatalf("first visit: %v", err)
	}
	if first.VisitCount != 1 {
		t.Fatalf("first visit count want 1, got %d", first.VisitCount)
	}

	second, err := visitors.Record(ctx, VisitorInput{IP: "203.0.113.7", City: "Berlin"})
	if err != nil {
		t.Fatalf("second visit: %v", err)
	}
	if second.ID != first.ID {
		t.Fatal("same IP must hit the same document")
	}
	if second.VisitCount != 2 {
		t.Fatalf("second visit count want 2, got %d", second.VisitCount)
	}
	if second.Country != "DE" || second.City != "Berlin" {
		t.Fatalf("geo fields must merge, got %q/%q", second.Country, second.City)
	}

	if _, err := visitors.Record(ctx, VisitorInput{}); err == nil {
		t.Fatal("missing ip must be rejected")
	}
}
