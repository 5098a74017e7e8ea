package store

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/rushteam/eventrec/core"
)

func TestEventCatalogRoundTrip(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	defer ms.Close()
	catalog := NewEventCatalog(ms)

	ev := &core.Event{
		ID: "ev_1", Title: "Jazz Night", Category: "Music",
		Tags: []string{"jazz", "live"}, Date: "2026-09-10",
		CurrentParticipants: 12, MaxParticipants: 30,
	}
	if err := catalog.PutEvent(ctx, ev); err != nil {
		t.Fatalf("PutEvent() error = %v", err)
	}

	got, err := catalog.GetEvent(ctx, "ev_1")
	if err != nil {
		t.Fatalf("GetEvent() error = %v", err)
	}
	if got.Title != "Jazz Night" || got.CurrentParticipants != 12 {
		t.Errorf("GetEvent() = %+v", got)
	}

	if _, err := catalog.GetEvent(ctx, "ev_missing"); !core.IsStoreNotFound(err) {
		t.Errorf("GetEvent(missing) error = %v, want ErrStoreNotFound", err)
	}
}

func TestEventCatalogListUpcoming(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	defer ms.Close()
	catalog := NewEventCatalog(ms)

	now := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	events := []*core.Event{
		{ID: "ev_past", Date: "2026-05-20"},
		{ID: "ev_today", Date: "2026-06-01"},
		{ID: "ev_future", Date: "2026-06-15"},
		{ID: "ev_baddate", Date: "not-a-date"},
	}
	for _, ev := range events {
		if err := catalog.PutEvent(ctx, ev); err != nil {
			t.Fatalf("PutEvent(%s) error = %v", ev.ID, err)
		}
	}

	got, err := catalog.ListUpcoming(ctx, now)
	if err != nil {
		t.Fatalf("ListUpcoming() error = %v", err)
	}

	ids := make([]string, 0, len(got))
	for _, ev := range got {
		ids = append(ids, ev.ID)
	}
	if want := []string{"ev_today", "ev_future"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ListUpcoming() = %v, want %v", ids, want)
	}
}

func TestEventCatalogListUpcomingOrderStable(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	defer ms.Close()
	catalog := NewEventCatalog(ms)

	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	// 乱序写入，含同一天开始的三个活动
	events := []*core.Event{
		{ID: "ev_c", Date: "2026-06-10"},
		{ID: "ev_late", Date: "2026-07-01"},
		{ID: "ev_a", Date: "2026-06-10"},
		{ID: "ev_early", Date: "2026-06-02"},
		{ID: "ev_b", Date: "2026-06-10"},
	}
	for _, ev := range events {
		if err := catalog.PutEvent(ctx, ev); err != nil {
			t.Fatalf("PutEvent(%s) error = %v", ev.ID, err)
		}
	}

	want := []string{"ev_early", "ev_a", "ev_b", "ev_c", "ev_late"}
	for i := 0; i < 10; i++ {
		got, err := catalog.ListUpcoming(ctx, now)
		if err != nil {
			t.Fatalf("ListUpcoming() error = %v", err)
		}
		ids := make([]string, 0, len(got))
		for _, ev := range got {
			ids = append(ids, ev.ID)
		}
		if !reflect.DeepEqual(ids, want) {
			t.Fatalf("ListUpcoming() run %d = %v, want %v (date asc, ID asc)", i, ids, want)
		}
	}
}
