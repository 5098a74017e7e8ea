package explain

import (
	"context"
	"strings"
	"testing"

	"github.com/rushteam/eventrec/core"
)

func TestReason(t *testing.T) {
	tests := []struct {
		name    string
		score   float64
		factors []string
		want    string
	}{
		{
			"high score with factor",
			85, []string{"Matches your interest in Music", "Happening soon"},
			"Highly recommended: Matches your interest in Music",
		},
		{
			"boundary seventy",
			70, []string{"Happening soon"},
			"Highly recommended: Happening soon",
		},
		{
			"good match",
			55, []string{"Upcoming event"},
			"Good match: Upcoming event",
		},
		{
			"may interest",
			35, []string{"Upcoming event"},
			"May interest you: Upcoming event",
		},
		{
			"low score",
			10, []string{"Based on your preferences"},
			"Based on your activity: Based on your preferences",
		},
		{
			"no factors",
			80, nil,
			"Highly recommended based on your event preferences and history",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reason(tt.score, tt.factors); got != tt.want {
				t.Errorf("Reason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReasonNode(t *testing.T) {
	node := &ReasonNode{}
	item := core.NewEventItem(&core.Event{ID: "ev_1", Title: "Jazz Night"})
	item.Score = 75
	item.SetMatchFactors([]string{"Happening soon"})

	out, err := node.Process(context.Background(), &core.RecommendContext{}, []*core.Item{item})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got := out[0].Reason(); got != "Highly recommended: Happening soon" {
		t.Errorf("Reason() = %q", got)
	}
	if lbl, ok := out[0].Labels["reason"]; !ok || lbl.Source != "explain" {
		t.Errorf("reason label = %+v, want source explain", out[0].Labels)
	}
}

func TestInsight(t *testing.T) {
	recs := []core.Recommendation{{EventID: "ev_1"}, {EventID: "ev_2"}}

	t.Run("empty recommendations", func(t *testing.T) {
		got := Insight(core.NewUserProfile(), nil)
		if !strings.HasPrefix(got, "No events available") {
			t.Errorf("Insight() = %q, want no-events message", got)
		}
	})

	t.Run("cold start", func(t *testing.T) {
		got := Insight(core.NewUserProfile(), recs)
		if !strings.HasPrefix(got, "Welcome!") || !strings.Contains(got, "2 upcoming event(s)") {
			t.Errorf("Insight() = %q, want welcome message with count", got)
		}
	})

	t.Run("with favorite category", func(t *testing.T) {
		p := &core.UserProfile{FavoriteCategories: []string{"Music", "Tech"}}
		got := Insight(p, recs)
		want := "Based on your interest in Music and your event history, we've found 2 personalized recommendations for you."
		if got != want {
			t.Errorf("Insight() = %q, want %q", got, want)
		}
	})

	t.Run("tags only", func(t *testing.T) {
		p := &core.UserProfile{FavoriteTags: []string{"live"}}
		got := Insight(p, recs)
		want := "We've found 2 events that match your preferences based on your activity and interests."
		if got != want {
			t.Errorf("Insight() = %q, want %q", got, want)
		}
	})
}
