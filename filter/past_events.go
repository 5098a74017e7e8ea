package filter

import (
	"context"
	"time"

	"github.com/rushteam/eventrec/core"
)

// PastEventsFilter 过滤掉日期早于今天的活动。
// 候选资格契约的另一半：只推荐当天及之后的活动。
// 日期不可解析的活动保留，在打分阶段日期因素记 0，而不是被剔除。
type PastEventsFilter struct{}

func (f *PastEventsFilter) Name() string {
	return "filter.past_events"
}

func (f *PastEventsFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if item.Event == nil {
		return false, nil
	}

	now := time.Now()
	if rctx != nil && rctx.NowUnix != 0 {
		now = time.Unix(rctx.NowUnix, 0).UTC()
	}

	days, ok := item.Event.DaysUntil(now)
	if !ok {
		return false, nil
	}
	return days < 0, nil
}
