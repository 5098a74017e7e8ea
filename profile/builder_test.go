package profile

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rushteam/eventrec/core"
)

func TestBuildFromRecordsWeighting(t *testing.T) {
	prefs := SignupPreferences{Categories: []string{"Music"}, Tags: []string{"live"}}
	authored := []AuthoredEvent{
		{Category: "Tech", Tags: []string{"golang"}},
	}
	participations := []Participation{
		{Title: "Go Meetup", Category: "Tech", Tags: []string{"golang"}, Status: "attended"},
	}

	p := BuildFromRecords(prefs, authored, participations)

	// Tech 累计 2+2=4 > Music 1
	if want := []string{"Tech", "Music"}; !reflect.DeepEqual(p.FavoriteCategories, want) {
		t.Errorf("FavoriteCategories = %v, want %v", p.FavoriteCategories, want)
	}
	// golang 累计 4 > live 1
	if want := []string{"golang", "live"}; !reflect.DeepEqual(p.FavoriteTags, want) {
		t.Errorf("FavoriteTags = %v, want %v", p.FavoriteTags, want)
	}
	if p.EventsCreated != 1 {
		t.Errorf("EventsCreated = %d, want 1", p.EventsCreated)
	}
	if p.EventsAttended != 1 {
		t.Errorf("EventsAttended = %d, want 1", p.EventsAttended)
	}
	if !p.HasInitialPreferences {
		t.Error("HasInitialPreferences = false, want true")
	}
	if len(p.ParticipationHistory) != 1 || p.ParticipationHistory[0].Title != "Go Meetup" {
		t.Errorf("ParticipationHistory = %v, want one Go Meetup entry", p.ParticipationHistory)
	}
}

func TestBuildFromRecordsTieBreakFirstSeen(t *testing.T) {
	participations := []Participation{
		{Category: "Art", Status: "registered"},
		{Category: "Food", Status: "registered"},
		{Category: "Tech", Status: "registered"},
		{Category: "Tech", Status: "registered"},
	}

	p := BuildFromRecords(SignupPreferences{}, nil, participations)

	// Tech 权重 4；Art 与 Food 同为 2，按首次出现顺序排位
	if want := []string{"Tech", "Art", "Food"}; !reflect.DeepEqual(p.FavoriteCategories, want) {
		t.Errorf("FavoriteCategories = %v, want %v", p.FavoriteCategories, want)
	}
}

func TestBuildFromRecordsTruncation(t *testing.T) {
	var participations []Participation
	for _, c := range []string{"A", "B", "C", "D", "E"} {
		participations = append(participations, Participation{
			Category: c,
			Tags:     []string{"t" + c, "u" + c},
			Status:   "registered",
		})
	}

	p := BuildFromRecords(SignupPreferences{}, nil, participations)

	if len(p.FavoriteCategories) != 3 {
		t.Errorf("len(FavoriteCategories) = %d, want 3", len(p.FavoriteCategories))
	}
	if len(p.FavoriteTags) != 5 {
		t.Errorf("len(FavoriteTags) = %d, want 5", len(p.FavoriteTags))
	}
}

func TestBuildFromRecordsPrefsVerbatimWithoutHistory(t *testing.T) {
	prefs := SignupPreferences{
		Categories: []string{"Music", "Music", "Art", "Food", "Tech"},
		Tags:       []string{"live", "", "live", "jazz"},
	}

	p := BuildFromRecords(prefs, nil, nil)

	// 无历史：原样采用注册偏好（去重、截断），不做加权重排
	if want := []string{"Music", "Art", "Food"}; !reflect.DeepEqual(p.FavoriteCategories, want) {
		t.Errorf("FavoriteCategories = %v, want %v", p.FavoriteCategories, want)
	}
	if want := []string{"live", "jazz"}; !reflect.DeepEqual(p.FavoriteTags, want) {
		t.Errorf("FavoriteTags = %v, want %v", p.FavoriteTags, want)
	}
	if p.IsColdStart() {
		t.Error("profile with signup preferences should not be cold start")
	}
}

func TestBuildFromRecordsAttendedStatusOnly(t *testing.T) {
	participations := []Participation{
		{Category: "Music", Status: "attended"},
		{Category: "Music", Status: "registered"},
		{Category: "Music", Status: "cancelled"},
		{Category: "Music", Status: "attended"},
	}

	p := BuildFromRecords(SignupPreferences{}, nil, participations)

	if p.EventsAttended != 2 {
		t.Errorf("EventsAttended = %d, want 2 (only attended status counts)", p.EventsAttended)
	}
	if len(p.ParticipationHistory) != 4 {
		t.Errorf("len(ParticipationHistory) = %d, want 4 (all participations enter history)", len(p.ParticipationHistory))
	}
}

func TestApplyExplicitPreferences(t *testing.T) {
	t.Run("overrides profile without history", func(t *testing.T) {
		p := core.NewUserProfile()
		p.FavoriteCategories = []string{"Derived"}

		ApplyExplicitPreferences(p, []string{"Music", "", "Music", "Art"}, []string{"live"})

		if want := []string{"Music", "Art"}; !reflect.DeepEqual(p.FavoriteCategories, want) {
			t.Errorf("FavoriteCategories = %v, want %v", p.FavoriteCategories, want)
		}
		if want := []string{"live"}; !reflect.DeepEqual(p.FavoriteTags, want) {
			t.Errorf("FavoriteTags = %v, want %v", p.FavoriteTags, want)
		}
	})

	t.Run("keeps derived profile with history", func(t *testing.T) {
		p := core.NewUserProfile()
		p.FavoriteCategories = []string{"Derived"}
		p.EventsAttended = 2

		ApplyExplicitPreferences(p, []string{"Music"}, nil)

		if want := []string{"Derived"}; !reflect.DeepEqual(p.FavoriteCategories, want) {
			t.Errorf("FavoriteCategories = %v, want %v (history wins)", p.FavoriteCategories, want)
		}
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		p := core.NewUserProfile()
		p.FavoriteCategories = []string{"Derived"}

		ApplyExplicitPreferences(p, nil, nil)

		if want := []string{"Derived"}; !reflect.DeepEqual(p.FavoriteCategories, want) {
			t.Errorf("FavoriteCategories = %v, want %v", p.FavoriteCategories, want)
		}
	})
}

// failingSource 模拟数据源故障。
type failingSource struct {
	prefsErr          error
	authoredErr       error
	participationsErr error
}

func (s *failingSource) Name() string { return "failing" }

func (s *failingSource) SignupPreferences(context.Context, string) (SignupPreferences, error) {
	if s.prefsErr != nil {
		return SignupPreferences{}, s.prefsErr
	}
	return SignupPreferences{Categories: []string{"Music"}}, nil
}

func (s *failingSource) AuthoredEvents(context.Context, string) ([]AuthoredEvent, error) {
	if s.authoredErr != nil {
		return nil, s.authoredErr
	}
	return []AuthoredEvent{{Category: "Tech"}}, nil
}

func (s *failingSource) Participations(context.Context, string) ([]Participation, error) {
	if s.participationsErr != nil {
		return nil, s.participationsErr
	}
	return nil, nil
}

func TestBuilderDegradation(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	t.Run("prefs failure continues without prefs", func(t *testing.T) {
		b := &Builder{Source: &failingSource{prefsErr: boom}}
		p := b.Build(ctx, "u_1")
		if p == nil {
			t.Fatal("Build() = nil, want valid profile")
		}
		// 创建历史仍然生效
		if len(p.FavoriteCategories) != 1 || p.FavoriteCategories[0] != "Tech" {
			t.Errorf("FavoriteCategories = %v, want [Tech]", p.FavoriteCategories)
		}
	})

	t.Run("history failure yields empty profile", func(t *testing.T) {
		b := &Builder{Source: &failingSource{authoredErr: boom}}
		p := b.Build(ctx, "u_1")
		if p == nil {
			t.Fatal("Build() = nil, want valid profile")
		}
		if !p.IsColdStart() {
			t.Errorf("profile = %+v, want empty cold-start profile", p)
		}
	})

	t.Run("participations failure yields empty profile", func(t *testing.T) {
		b := &Builder{Source: &failingSource{participationsErr: boom}}
		p := b.Build(ctx, "u_1")
		if !p.IsColdStart() {
			t.Errorf("profile = %+v, want empty cold-start profile", p)
		}
	})

	t.Run("nil source yields empty profile", func(t *testing.T) {
		b := &Builder{}
		p := b.Build(ctx, "u_1")
		if !p.IsColdStart() {
			t.Errorf("profile = %+v, want empty cold-start profile", p)
		}
	})
}
