package recall

import (
	"context"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/pipeline"
	"github.com/rushteam/eventrec/pkg/utils"
)

// Static 是调用方直传候选列表的来源：外部数据层已经查好候选活动
// （排除本人创建、排除过期），本库只负责打分排序。
// Static 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Static struct {
	Events []*core.Event
}

func (r *Static) Name() string        { return "recall.static" }
func (r *Static) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Static) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Static) Recall(
	_ context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	out := make([]*core.Item, 0, len(r.Events))
	for _, e := range r.Events {
		if e == nil {
			continue
		}
		it := core.NewEventItem(e)
		it.PutLabel("recall_source", utils.Label{Value: r.Name(), Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
