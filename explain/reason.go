// Package explain 生成面向人的推荐解释：单条理由与整批洞察。
package explain

import (
	"context"
	"fmt"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/pipeline"
	"github.com/rushteam/eventrec/pkg/utils"
)

// 理由的分数档位基准短语。
const (
	reasonHighly   = "Highly recommended"
	reasonGood     = "Good match"
	reasonMaybe    = "May interest you"
	reasonActivity = "Based on your activity"
)

// Reason 由分数档位与首个匹配因素生成单条推荐理由。
// 档位：>= 70 强推，>= 50 合适，>= 30 可能感兴趣，其余兜底。
func Reason(score float64, matchFactors []string) string {
	var base string
	switch {
	case score >= 70:
		base = reasonHighly
	case score >= 50:
		base = reasonGood
	case score >= 30:
		base = reasonMaybe
	default:
		base = reasonActivity
	}

	if len(matchFactors) > 0 {
		return fmt.Sprintf("%s: %s", base, matchFactors[0])
	}
	return fmt.Sprintf("%s based on your event preferences and history", base)
}

// ReasonNode 是后处理 Node：为每个候选写入推荐理由。
// 依赖 Rank 阶段回填的分数与匹配因素，应放在 rank.match 之后。
type ReasonNode struct{}

func (n *ReasonNode) Name() string        { return "explain.reason" }
func (n *ReasonNode) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *ReasonNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	for _, it := range items {
		if it == nil {
			continue
		}
		reason := Reason(it.Score, it.MatchFactors())
		it.SetReason(reason)
		it.PutLabel("reason", utils.Label{Value: reason, Source: "explain"})
	}
	return items, nil
}
