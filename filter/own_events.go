package filter

import (
	"context"

	"github.com/rushteam/eventrec/core"
)

// OwnEventsFilter 过滤掉请求用户自己创建的活动。
// 候选资格契约的一半：不给用户推荐自己办的活动。
type OwnEventsFilter struct{}

func (f *OwnEventsFilter) Name() string {
	return "filter.own_events"
}

func (f *OwnEventsFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if item.Event == nil || rctx == nil || rctx.UserID == "" {
		return false, nil
	}
	return item.Event.OwnerID != "" && item.Event.OwnerID == rctx.UserID, nil
}
