package recall

import (
	"context"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/pipeline"
	"github.com/rushteam/eventrec/pkg/utils"
)

// Hot 是热门召回源：从有序集合（按报名人数计分）读取活动 ID，
// 再通过 EventStore 解析活动详情。
//   - Store 实现 KeyValueStore 时用 ZRange（降序 TopN）
//   - Store 为空时使用内存中的 IDs 作为 fallback
// Hot 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Hot struct {
	Store  core.Store
	Events core.EventStore
	Key    string   // 有序集合 key，例如 "hot:events"
	IDs    []string // fallback 内存列表

	// TopN 召回数量上限，默认 100。
	TopN int64
}

func (r *Hot) Name() string        { return "recall.hot" }
func (r *Hot) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Hot) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Hot) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	var ids []string

	topN := r.TopN
	if topN <= 0 {
		topN = 100
	}

	if r.Store != nil && r.Key != "" {
		if kvStore, ok := r.Store.(core.KeyValueStore); ok {
			members, err := kvStore.ZRange(ctx, r.Key, 0, topN-1)
			if err == nil && len(members) > 0 {
				ids = members
			}
		}
	}

	// Fallback：使用内存 IDs
	if len(ids) == 0 {
		ids = r.IDs
	}

	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		it := core.NewItem(id)
		if r.Events != nil {
			if ev, err := r.Events.GetEvent(ctx, id); err == nil {
				it.Event = ev
			}
		}
		it.PutLabel("recall_source", utils.Label{Value: r.Name(), Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
