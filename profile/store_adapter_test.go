package profile

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/store"
)

func newTestSource(t *testing.T) (*StoreHistorySource, *store.MemoryStore, *store.EventCatalog) {
	t.Helper()
	ms := store.NewMemoryStore()
	t.Cleanup(func() { ms.Close() })
	catalog := store.NewEventCatalog(ms)
	return NewStoreHistorySource(ms, catalog), ms, catalog
}

func TestStoreHistorySourceRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, ms, catalog := newTestSource(t)

	if err := catalog.PutEvent(ctx, &core.Event{
		ID: "ev_1", Title: "Jazz Night", Category: "Music",
		Tags: []string{"jazz", "live"}, Date: "2026-09-10",
	}); err != nil {
		t.Fatalf("PutEvent() error = %v", err)
	}

	prefs, _ := json.Marshal(SignupPreferences{Categories: []string{"Music"}, Tags: []string{"live"}})
	ms.Set(ctx, "user:prefs:u_1", prefs)

	authored, _ := json.Marshal([]AuthoredEvent{{Category: "Tech", Tags: []string{"golang"}}})
	ms.Set(ctx, "user:events:u_1", authored)

	participations, _ := json.Marshal([]map[string]string{
		{"event_id": "ev_1", "status": "attended"},
		{"event_id": "ev_missing", "status": "attended"},
	})
	ms.Set(ctx, "user:participations:u_1", participations)

	gotPrefs, err := src.SignupPreferences(ctx, "u_1")
	if err != nil {
		t.Fatalf("SignupPreferences() error = %v", err)
	}
	if len(gotPrefs.Categories) != 1 || gotPrefs.Categories[0] != "Music" {
		t.Errorf("prefs = %+v, want Music category", gotPrefs)
	}

	gotAuthored, err := src.AuthoredEvents(ctx, "u_1")
	if err != nil {
		t.Fatalf("AuthoredEvents() error = %v", err)
	}
	if len(gotAuthored) != 1 || gotAuthored[0].Category != "Tech" {
		t.Errorf("authored = %+v, want one Tech event", gotAuthored)
	}

	gotParts, err := src.Participations(ctx, "u_1")
	if err != nil {
		t.Fatalf("Participations() error = %v", err)
	}
	// 缺失关联活动的记录被跳过
	if len(gotParts) != 1 {
		t.Fatalf("participations = %+v, want 1 resolved record", gotParts)
	}
	if gotParts[0].Title != "Jazz Night" || gotParts[0].Status != "attended" {
		t.Errorf("participation = %+v, want resolved Jazz Night", gotParts[0])
	}
}

func TestStoreHistorySourceMissingUser(t *testing.T) {
	ctx := context.Background()
	src, _, _ := newTestSource(t)

	prefs, err := src.SignupPreferences(ctx, "nobody")
	if err != nil {
		t.Fatalf("SignupPreferences() error = %v", err)
	}
	if len(prefs.Categories) != 0 || len(prefs.Tags) != 0 {
		t.Errorf("prefs = %+v, want empty", prefs)
	}

	authored, err := src.AuthoredEvents(ctx, "nobody")
	if err != nil || authored != nil {
		t.Errorf("AuthoredEvents() = %v, %v, want nil, nil", authored, err)
	}

	parts, err := src.Participations(ctx, "nobody")
	if err != nil || len(parts) != 0 {
		t.Errorf("Participations() = %v, %v, want empty, nil", parts, err)
	}
}

func TestBuilderWithStoreSource(t *testing.T) {
	ctx := context.Background()
	src, ms, catalog := newTestSource(t)

	catalog.PutEvent(ctx, &core.Event{
		ID: "ev_1", Title: "Jazz Night", Category: "Music",
		Tags: []string{"live"}, Date: "2026-09-10",
	})
	participations, _ := json.Marshal([]map[string]string{
		{"event_id": "ev_1", "status": "attended"},
	})
	ms.Set(ctx, "user:participations:u_1", participations)

	b := &Builder{Source: src}
	p := b.Build(ctx, "u_1")

	if p.EventsAttended != 1 {
		t.Errorf("EventsAttended = %d, want 1", p.EventsAttended)
	}
	if len(p.FavoriteCategories) != 1 || p.FavoriteCategories[0] != "Music" {
		t.Errorf("FavoriteCategories = %v, want [Music]", p.FavoriteCategories)
	}
}
