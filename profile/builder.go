// Package profile 把注册偏好、创建历史、参与历史聚合为用户兴趣画像。
//
// 画像构建是“永不失败”的：任何数据源错误都降级为空但合法的画像，
// 推荐链路宁可质量下降也不阻塞调用方。
package profile

import (
	"context"

	"github.com/rushteam/eventrec/core"
)

const (
	maxFavoriteCategories = 3
	maxFavoriteTags       = 5

	signupWeight  = 1 // 注册偏好：弱信号
	historyWeight = 2 // 创建/参与：强信号，二者等权
)

// SignupPreferences 是用户注册时填写的偏好。
type SignupPreferences struct {
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}

// AuthoredEvent 是用户创建过的一场活动的画像视角摘要。
type AuthoredEvent struct {
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// Participation 是一条已解析出活动详情的参与记录。
type Participation struct {
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Status   string   `json:"status"` // registered / attended / cancelled ...
}

// StatusAttended 计入 EventsAttended 的参与状态。
const StatusAttended = "attended"

// HistorySource 是画像原始记录的外部数据契约。
// 三类记录都允许为空；实现方负责解析参与记录关联的活动详情。
type HistorySource interface {
	Name() string

	SignupPreferences(ctx context.Context, userID string) (SignupPreferences, error)
	AuthoredEvents(ctx context.Context, userID string) ([]AuthoredEvent, error)
	Participations(ctx context.Context, userID string) ([]Participation, error)
}

// Builder 构建用户画像。
type Builder struct {
	Source HistorySource
}

// Build 拉取用户记录并聚合画像。
//
// 失败语义：注册偏好读取失败按“无偏好”继续；创建/参与历史读取失败
// 返回空但合法的画像。两种情况都不向调用方返回错误。
func (b *Builder) Build(ctx context.Context, userID string) *core.UserProfile {
	if b == nil || b.Source == nil {
		return core.NewUserProfile()
	}

	prefs, err := b.Source.SignupPreferences(ctx, userID)
	if err != nil {
		prefs = SignupPreferences{}
	}

	authored, err := b.Source.AuthoredEvents(ctx, userID)
	if err != nil {
		return core.NewUserProfile()
	}

	participations, err := b.Source.Participations(ctx, userID)
	if err != nil {
		return core.NewUserProfile()
	}

	return BuildFromRecords(prefs, authored, participations)
}

// BuildFromRecords 是纯聚合：不做 I/O，输入相同则输出相同。
//
// 权重规则：注册偏好每次出现 +1；创建的活动与参与的活动，其类别 +2、
// 每个标签 +2（参与和创建视为等强信号）。类别取权重 Top3，标签取 Top5，
// 同权重按首次出现顺序排位。
func BuildFromRecords(prefs SignupPreferences, authored []AuthoredEvent, participations []Participation) *core.UserProfile {
	categories := newTally()
	tags := newTally()

	for _, cat := range prefs.Categories {
		if cat != "" {
			categories.add(cat, signupWeight)
		}
	}
	for _, tag := range prefs.Tags {
		if tag != "" {
			tags.add(tag, signupWeight)
		}
	}

	for _, ev := range authored {
		if ev.Category != "" {
			categories.add(ev.Category, historyWeight)
		}
		for _, tag := range ev.Tags {
			if tag != "" {
				tags.add(tag, historyWeight)
			}
		}
	}

	p := core.NewUserProfile()
	for _, part := range participations {
		if part.Category != "" {
			categories.add(part.Category, historyWeight)
		}
		for _, tag := range part.Tags {
			if tag != "" {
				tags.add(tag, historyWeight)
			}
		}
		p.ParticipationHistory = append(p.ParticipationHistory, core.HistoryEntry{
			Title:    part.Title,
			Category: part.Category,
			Tags:     part.Tags,
		})
		if part.Status == StatusAttended {
			p.EventsAttended++
		}
	}

	p.EventsCreated = len(authored)
	p.HasInitialPreferences = len(prefs.Categories) > 0 || len(prefs.Tags) > 0

	p.FavoriteCategories = categories.top(maxFavoriteCategories)
	if len(p.FavoriteCategories) == 0 {
		p.FavoriteCategories = truncate(prefs.Categories, maxFavoriteCategories)
	}
	p.FavoriteTags = tags.top(maxFavoriteTags)
	if len(p.FavoriteTags) == 0 {
		p.FavoriteTags = truncate(prefs.Tags, maxFavoriteTags)
	}

	// 首次使用的用户：无任何历史时，画像原样采用注册偏好，
	// 保证有偏好的新用户拿到的是自己填的东西而不是加权产物。
	if len(authored) == 0 && len(participations) == 0 {
		p.FavoriteCategories = truncate(prefs.Categories, maxFavoriteCategories)
		p.FavoriteTags = truncate(prefs.Tags, maxFavoriteTags)
	}

	return p
}

// ApplyExplicitPreferences 处理请求时显式传入的偏好：
// 仅当画像没有任何创建/参与历史时覆盖（显式意图优先于“派生出来的空”）。
func ApplyExplicitPreferences(p *core.UserProfile, categories, tags []string) {
	if p == nil {
		return
	}
	if p.EventsCreated > 0 || p.EventsAttended > 0 {
		return
	}
	if cats := clean(categories); len(cats) > 0 {
		p.FavoriteCategories = truncate(cats, maxFavoriteCategories)
	}
	if ts := clean(tags); len(ts) > 0 {
		p.FavoriteTags = truncate(ts, maxFavoriteTags)
	}
}

func truncate(s []string, n int) []string {
	out := clean(s)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// clean 去掉空串并按首次出现去重。
func clean(s []string) []string {
	out := make([]string, 0, len(s))
	seen := make(map[string]struct{}, len(s))
	for _, v := range s {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
