// Package rank 实现对 (用户画像, 候选活动) 配对的相似度打分与排序。
package rank

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/textsim"
)

// 各打分因素的上限。总分为五个因素之和，钳制在 [0, 100]。
const (
	maxCategoryScore   = 30.0
	maxTagScore        = 20.0
	maxTextScore       = 25.0
	maxDateScore       = 15.0
	maxPopularityScore = 10.0

	// 冷启动画像的基础分与加成
	coldStartBase          = 40.0
	coldStartHotBonus      = 20.0
	coldStartWarmBonus     = 10.0
	coldStartUpcomingBonus = 10.0
)

// Scorer 计算单个 (画像, 活动) 配对的有界相关性分数与匹配因素。
//
// 无共享可变状态：同样的输入永远得到同样的分数。
// 文本相似度失败（退化文本）时回退到词重叠比例，不向上抛错。
type Scorer struct {
	// Vectorizer 是单对打分用的文本向量化器；零值即可用。
	Vectorizer textsim.Vectorizer
}

// Breakdown 记录各因素得分，用于观测与解释。
type Breakdown struct {
	Category   float64
	Tag        float64
	Text       float64
	Date       float64
	Popularity float64

	MatchedCategory bool
	MatchedTags     []string
	DaysUntil       int
	HasDate         bool
}

// Score 返回配对分数（[0, 100]）与打分细目。
// 冷启动判断不在此处：画像无信号时调用方应改用 ColdStartScore。
func (s *Scorer) Score(p *core.UserProfile, e *core.Event, now time.Time) (float64, Breakdown) {
	var bd Breakdown

	bd.Category = s.categoryScore(p, e)
	bd.MatchedCategory = bd.Category == maxCategoryScore

	bd.Tag, bd.MatchedTags = s.tagScore(p, e)
	bd.Text = s.textScore(p, e)

	bd.DaysUntil, bd.HasDate = e.DaysUntil(now)
	bd.Date = s.dateScore(bd.DaysUntil, bd.HasDate)

	bd.Popularity = s.popularityScore(e)

	total := bd.Category + bd.Tag + bd.Text + bd.Date + bd.Popularity
	return math.Min(100, math.Max(0, total)), bd
}

// ColdStartScore 是无信号画像的替代公式：基础分 40 + 热度加成 + 临近加成。
// 不使用五因素打分，保证新用户也能拿到“热门且临近”的合理推荐。
func (s *Scorer) ColdStartScore(e *core.Event, now time.Time) float64 {
	score := coldStartBase

	p := e.PopularityRatio()
	switch {
	case p >= 0.3 && p <= 0.9:
		score += coldStartHotBonus
	case p >= 0.1 && p < 0.3:
		score += coldStartWarmBonus
	}

	if days, ok := e.DaysUntil(now); ok && days >= 0 && days <= 30 {
		score += coldStartUpcomingBonus
	}
	return score
}

// Confidence 由分数换算：clamp(round(score/10), 1, 10)，永不为 0。
func Confidence(score float64) int {
	c := int(math.Round(score / 10))
	if c < 1 {
		c = 1
	}
	if c > 10 {
		c = 10
	}
	return c
}

// categoryScore：完全匹配 30 分；部分匹配（任一方向的子串）15 分。
// 已知怪癖：子串规则对短类别名有误报（如 "art" 命中 "party"），
// 空类别对任何偏好都算部分匹配（空串是一切字符串的子串），与线上行为保持一致。
func (s *Scorer) categoryScore(p *core.UserProfile, e *core.Event) float64 {
	eventCategory := strings.ToLower(e.Category)
	for _, cat := range p.FavoriteCategories {
		if strings.ToLower(cat) == eventCategory {
			return maxCategoryScore
		}
	}
	for _, cat := range p.FavoriteCategories {
		lc := strings.ToLower(cat)
		if strings.Contains(eventCategory, lc) || strings.Contains(lc, eventCategory) {
			return maxCategoryScore / 2
		}
	}
	return 0
}

// tagScore：每命中一个偏好标签 +5，封顶 20。
// 命中定义：偏好标签与活动标签相等，或为活动标签的子串（大小写不敏感）。
func (s *Scorer) tagScore(p *core.UserProfile, e *core.Event) (float64, []string) {
	if len(e.Tags) == 0 || len(p.FavoriteTags) == 0 {
		return 0, nil
	}
	eventTags := make([]string, 0, len(e.Tags))
	for _, t := range e.Tags {
		eventTags = append(eventTags, strings.ToLower(t))
	}

	var matched []string
	for _, tag := range p.FavoriteTags {
		lt := strings.ToLower(tag)
		if lt == "" {
			continue
		}
		for _, et := range eventTags {
			if lt == et || strings.Contains(et, lt) {
				matched = append(matched, tag)
				break
			}
		}
	}
	if len(matched) == 0 {
		return 0, nil
	}
	return math.Min(maxTagScore, float64(len(matched))*5), matched
}

// textScore：画像文本与活动文本的 TF-IDF 余弦相似度 × 25。
// 向量化失败（文本退化）时回退到词重叠比例 × 25。
func (s *Scorer) textScore(p *core.UserProfile, e *core.Event) float64 {
	userText := BuildUserText(p)
	eventText := BuildEventText(e)
	if userText == "" || eventText == "" {
		return 0
	}

	sim, err := s.Vectorizer.Similarity(userText, eventText)
	if err != nil {
		return s.Vectorizer.OverlapRatio(userText, eventText) * maxTextScore
	}
	return sim * maxTextScore
}

// dateScore：未来 0–30 天内按 max(0, 15 - days/2) 计分；过去或不可解析为 0。
func (s *Scorer) dateScore(days int, hasDate bool) float64 {
	if !hasDate || days < 0 || days > 30 {
		return 0
	}
	return math.Max(0, maxDateScore-float64(days)/2)
}

// popularityScore：报名比例在 [0.3, 0.9] 加 10 分，[0.1, 0.3) 加 5 分。
// “热门但未满”的活动更值得推。
func (s *Scorer) popularityScore(e *core.Event) float64 {
	p := e.PopularityRatio()
	switch {
	case p >= 0.3 && p <= 0.9:
		return maxPopularityScore
	case p >= 0.1 && p < 0.3:
		return maxPopularityScore / 2
	}
	return 0
}

// MatchFactors 生成面向人的匹配因素列表，与分数计算相互独立。
// 至多包含：类别匹配、标签匹配（列出前 2 个）、时间临近；无任何命中时给通用占位。
func MatchFactors(bd Breakdown, e *core.Event) []string {
	var factors []string

	if bd.MatchedCategory {
		factors = append(factors, fmt.Sprintf("Matches your interest in %s", e.Category))
	}

	if len(bd.MatchedTags) > 0 {
		shown := bd.MatchedTags
		if len(shown) > 2 {
			shown = shown[:2]
		}
		factors = append(factors, fmt.Sprintf("Matches your tags: %s", strings.Join(shown, ", ")))
	}

	if bd.HasDate {
		switch {
		case bd.DaysUntil >= 0 && bd.DaysUntil <= 7:
			factors = append(factors, "Happening soon")
		case bd.DaysUntil >= 8 && bd.DaysUntil <= 30:
			factors = append(factors, "Upcoming event")
		}
	}

	if len(factors) == 0 {
		return []string{"Based on your preferences"}
	}
	return factors
}

// BuildUserText 拼接画像的文本表示：类别、标签、参与历史的标题/类别/标签，全部小写。
func BuildUserText(p *core.UserProfile) string {
	var parts []string
	for _, cat := range p.FavoriteCategories {
		parts = append(parts, strings.ToLower(cat))
	}
	for _, tag := range p.FavoriteTags {
		parts = append(parts, strings.ToLower(tag))
	}
	for _, h := range p.ParticipationHistory {
		parts = append(parts, strings.ToLower(h.Title), strings.ToLower(h.Category))
		for _, tag := range h.Tags {
			parts = append(parts, strings.ToLower(tag))
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// BuildEventText 拼接活动的文本表示：标题、描述、类别、标签，全部小写。
func BuildEventText(e *core.Event) string {
	parts := []string{
		strings.ToLower(e.Title),
		strings.ToLower(e.Description),
		strings.ToLower(e.Category),
	}
	for _, tag := range e.Tags {
		parts = append(parts, strings.ToLower(tag))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
