package recommender

import (
	"context"
	"sort"
	"time"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/explain"
	"github.com/rushteam/eventrec/feature"
	"github.com/rushteam/eventrec/filter"
	"github.com/rushteam/eventrec/pipeline"
	"github.com/rushteam/eventrec/profile"
	"github.com/rushteam/eventrec/rank"
	"github.com/rushteam/eventrec/recall"
	"github.com/rushteam/eventrec/rerank"
)

// DefaultTopN 未指定 top_n 时的默认返回条数。
const DefaultTopN = 5

// Recommender 是推荐引擎的门面：组装默认 Pipeline，
// 画像构建 → 召回 → 过滤 → 特征补齐 → 打分排序 → 截断 → 解释。
//
// 依赖都是可选的：
//   - Profiles 为 nil 时只能用请求里传入的画像（否则按空画像打分）
//   - Events 为 nil 时只能用请求里传入的候选列表
//   - Features 为 nil 时跳过特征补齐，用候选自带的报名数
type Recommender struct {
	Profiles *profile.Builder
	Events   core.EventStore
	Features core.FeatureService
	Scorer   *rank.Scorer
}

func New() *Recommender {
	return &Recommender{Scorer: &rank.Scorer{}}
}

// Request 是一次推荐请求。
type Request struct {
	UserID string

	// Profile 已构建好的画像；为 nil 时通过 Profiles 构建
	Profile *core.UserProfile

	// Candidates 候选活动；为 nil 时通过 Events 召回 upcoming
	Candidates []*core.Event

	// TopN 返回条数；0 表示默认值，负数是调用方契约违例
	TopN int

	// InitialCategories/InitialTags 注册时选择的偏好，
	// 仅对没有任何活动历史的用户生效
	InitialCategories []string
	InitialTags       []string

	// NowUnix 打分基准时间（Unix 秒）；0 表示 time.Now()
	NowUnix int64
}

// Result 是推荐结果：推荐列表、画像洞察与画像摘要。
type Result struct {
	Recommendations []core.Recommendation `json:"recommendations"`
	Insight         string                `json:"insights"`
	Profile         core.ProfileSummary   `json:"user_profile"`
}

// Recommend 执行一次完整推荐。
//
// 失败语义：除 top_n 为负的前置校验外不向调用方返回错误。
// 画像构建失败按空画像继续，打分失败的信号记 0 分，
// 没有任何候选得分时退化为热门排序，保证返回结构始终合法。
func (r *Recommender) Recommend(ctx context.Context, req *Request) (*Result, error) {
	topN := req.TopN
	if topN == 0 {
		topN = DefaultTopN
	}
	if topN < 0 {
		return nil, core.NewDomainError(core.ModuleScore, core.ErrorCodeInvalidInput, "recommender: top_n must be positive")
	}

	p := req.Profile
	if p == nil {
		p = r.Profiles.Build(ctx, req.UserID)
	}
	profile.ApplyExplicitPreferences(p, req.InitialCategories, req.InitialTags)

	rctx := &core.RecommendContext{
		UserID:  req.UserID,
		Scene:   "event_feed",
		Profile: p,
		NowUnix: req.NowUnix,
		Params: map[string]any{
			"top_n": topN,
		},
	}

	items := make([]*core.Item, 0, len(req.Candidates))
	for _, ev := range req.Candidates {
		if ev == nil {
			continue
		}
		items = append(items, core.NewEventItem(ev))
	}

	pipe := r.buildPipeline(req, topN)
	out, err := pipe.Run(ctx, rctx, items)
	if err != nil {
		// Node 实现里失败都已内部降级，这里兜底走热门排序
		out = nil
	}

	recs := make([]core.Recommendation, 0, len(out))
	for _, it := range out {
		if it == nil || it.Event == nil {
			continue
		}
		recs = append(recs, core.Recommendation{
			EventID:      it.ID,
			Title:        it.Event.Title,
			Score:        it.Score,
			Confidence:   it.Confidence,
			Reason:       it.Reason(),
			MatchFactors: it.MatchFactors(),
		})
	}

	if !anyScored(recs) {
		if fb := fallbackPopular(req.Candidates, req.UserID, topN, scoringTime(req.NowUnix)); len(fb) > 0 {
			recs = fb
		}
	}

	return &Result{
		Recommendations: recs,
		Insight:         explain.Insight(p, recs),
		Profile:         p.Summary(),
	}, nil
}

func (r *Recommender) buildPipeline(req *Request, topN int) *pipeline.Pipeline {
	var nodes []pipeline.Node

	if len(req.Candidates) == 0 && r.Events != nil {
		nodes = append(nodes, &recall.Upcoming{Events: r.Events})
	}
	nodes = append(nodes, &filter.FilterNode{
		Filters: []filter.Filter{
			&filter.OwnEventsFilter{},
			&filter.PastEventsFilter{},
		},
	})
	if r.Features != nil {
		nodes = append(nodes, &feature.EnrichNode{FeatureService: r.Features})
	}
	scorer := r.Scorer
	if scorer == nil {
		scorer = &rank.Scorer{}
	}
	nodes = append(nodes,
		&rank.MatchNode{Scorer: scorer},
		&rerank.TopNNode{N: topN},
		&explain.ReasonNode{},
	)
	return &pipeline.Pipeline{Nodes: nodes}
}

// anyScored 判断是否存在得分大于 0 的推荐。
// 全零意味着打分链路整体失效（或毫无信号），此时退化为热门排序。
func anyScored(recs []core.Recommendation) bool {
	for _, rec := range recs {
		if rec.Score > 0 {
			return true
		}
	}
	return false
}

// fallbackPopular 在没有任何候选得分时按热度排序兜底。
// 排序键：报名人数降序，开始日期升序；日期无法解析的排在同热度最后。
func fallbackPopular(candidates []*core.Event, userID string, topN int, now time.Time) []core.Recommendation {
	type candidate struct {
		ev   *core.Event
		days int
	}

	pool := make([]candidate, 0, len(candidates))
	for _, ev := range candidates {
		if ev == nil {
			continue
		}
		if userID != "" && ev.OwnerID == userID {
			continue
		}
		days, ok := ev.DaysUntil(now)
		if !ok {
			days = 999
		} else if days < 0 {
			continue
		}
		pool = append(pool, candidate{ev: ev, days: days})
	}

	sort.SliceStable(pool, func(i, j int) bool {
		pi := pool[i].ev.CurrentParticipants
		pj := pool[j].ev.CurrentParticipants
		if pi != pj {
			return pi > pj
		}
		return pool[i].days < pool[j].days
	})

	if len(pool) > topN {
		pool = pool[:topN]
	}

	recs := make([]core.Recommendation, 0, len(pool))
	for _, c := range pool {
		recs = append(recs, core.Recommendation{
			EventID:      c.ev.ID,
			Title:        c.ev.Title,
			Score:        50,
			Confidence:   5,
			Reason:       "Popular upcoming event - check it out!",
			MatchFactors: []string{"Popular event", "Upcoming soon"},
		})
	}
	return recs
}

func scoringTime(nowUnix int64) time.Time {
	if nowUnix > 0 {
		return time.Unix(nowUnix, 0)
	}
	return time.Now()
}
