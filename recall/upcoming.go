package recall

import (
	"context"
	"time"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/pipeline"
	"github.com/rushteam/eventrec/pkg/utils"
)

// Upcoming 从 EventStore 召回日期在今天（含）之后的活动。
// 这是 store 驱动链路的默认候选来源；过期活动在数据源一侧就被排除。
type Upcoming struct {
	Events core.EventStore

	// Limit 限制召回数量（<= 0 表示不限制）。
	Limit int
}

func (r *Upcoming) Name() string        { return "recall.upcoming" }
func (r *Upcoming) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Upcoming) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Upcoming) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Events == nil {
		return nil, nil
	}

	from := time.Now()
	if rctx != nil && rctx.NowUnix != 0 {
		from = time.Unix(rctx.NowUnix, 0).UTC()
	}

	events, err := r.Events.ListUpcoming(ctx, from)
	if err != nil {
		// 候选来源失败不阻塞其它来源
		return nil, nil
	}

	if r.Limit > 0 && len(events) > r.Limit {
		events = events[:r.Limit]
	}

	out := make([]*core.Item, 0, len(events))
	for _, e := range events {
		if e == nil {
			continue
		}
		it := core.NewEventItem(e)
		it.PutLabel("recall_source", utils.Label{Value: r.Name(), Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
