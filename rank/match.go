package rank

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/pipeline"
	"github.com/rushteam/eventrec/pkg/utils"
)

// MatchNode 是规则打分的排序 Node：
//   - 对每个候选调用 Scorer 得到 [0, 100] 的分数与匹配因素
//   - 冷启动画像改走 ColdStartScore（热门 + 临近的基础分）
//   - 回填 Confidence 与匹配因素，写入解释用 labels
//   - 按分数稳定降序排序（同分保持候选原始顺序）
type MatchNode struct {
	Scorer *Scorer
}

func (n *MatchNode) Name() string        { return "rank.match" }
func (n *MatchNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *MatchNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	scorer := n.Scorer
	if scorer == nil {
		scorer = &Scorer{}
	}

	profile := rctx.GetProfile()
	now := scoringTime(rctx)
	coldStart := profile.IsColdStart()
	if coldStart {
		rctx.PutLabel("cold_start", utils.Label{Value: "true", Source: "rank"})
	}

	for _, it := range items {
		if it == nil || it.Event == nil {
			continue
		}

		score, bd := scorer.Score(profile, it.Event, now)
		if coldStart {
			// 无信号画像：丢弃五因素分数，改用基础分公式
			score = scorer.ColdStartScore(it.Event, now)
		}

		it.Score = score
		it.Confidence = Confidence(score)
		it.SetMatchFactors(MatchFactors(bd, it.Event))

		if bd.MatchedCategory {
			it.PutLabel("match_category", utils.Label{Value: it.Event.Category, Source: "rank"})
		}
		if len(bd.MatchedTags) > 0 {
			it.PutLabel("match_tags", utils.Label{Value: strings.Join(bd.MatchedTags, ","), Source: "rank"})
		}
		if coldStart {
			it.PutLabel("cold_start", utils.Label{Value: "true", Source: "rank"})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		return items[i].Score > items[j].Score
	})
	return items, nil
}

// scoringTime 返回打分基准时间；rctx 固定了 NowUnix 时用之，保证可复现。
func scoringTime(rctx *core.RecommendContext) time.Time {
	if rctx != nil && rctx.NowUnix != 0 {
		return time.Unix(rctx.NowUnix, 0).UTC()
	}
	return time.Now()
}
