package core

// HistoryEntry 是用户参与过的一场活动的摘要，进入画像与文本相似度。
type HistoryEntry struct {
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// UserProfile 是用户兴趣画像：请求期构建、请求结束即丢弃，本库不做持久化。
//
// 不变式：
//   - FavoriteCategories 去重、按权重降序，至多 3 个；权重相同时保持首次出现顺序
//   - FavoriteTags 同上，至多 5 个
type UserProfile struct {
	FavoriteCategories   []string       `json:"favorite_categories"`
	FavoriteTags         []string       `json:"favorite_tags"`
	ParticipationHistory []HistoryEntry `json:"participation_history"`

	EventsCreated  int `json:"events_created"`
	EventsAttended int `json:"events_attended"`

	// HasInitialPreferences 表示注册时是否填写过偏好（与后续覆盖无关）。
	HasInitialPreferences bool `json:"has_initial_preferences"`
}

// NewUserProfile 返回空但合法的画像（降级路径的返回值）。
func NewUserProfile() *UserProfile {
	return &UserProfile{
		FavoriteCategories:   []string{},
		FavoriteTags:         []string{},
		ParticipationHistory: []HistoryEntry{},
	}
}

// IsColdStart 判断画像是否完全无信号：无类别、无标签、无参与历史。
// 冷启动画像走“热门 + 临近”基础分，而不是五因素打分。
func (p *UserProfile) IsColdStart() bool {
	if p == nil {
		return true
	}
	return len(p.FavoriteCategories) == 0 &&
		len(p.FavoriteTags) == 0 &&
		len(p.ParticipationHistory) == 0
}

// ProfileSummary 是返回给调用方展示用的画像摘要。
type ProfileSummary struct {
	FavoriteCategories []string `json:"favorite_categories"`
	FavoriteTags       []string `json:"favorite_tags"`
	EventsCreated      int      `json:"total_events_created"`
	EventsAttended     int      `json:"total_events_attended"`
}

// Summary 生成画像摘要。
func (p *UserProfile) Summary() ProfileSummary {
	if p == nil {
		return ProfileSummary{FavoriteCategories: []string{}, FavoriteTags: []string{}}
	}
	return ProfileSummary{
		FavoriteCategories: p.FavoriteCategories,
		FavoriteTags:       p.FavoriteTags,
		EventsCreated:      p.EventsCreated,
		EventsAttended:     p.EventsAttended,
	}
}
