package feature

import (
	"context"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/pipeline"
	"github.com/rushteam/eventrec/pkg/utils"
)

// 特征服务约定的统计特征 key。
const (
	KeyCurrentParticipants = "current_participants"
	KeyMaxParticipants     = "max_participants"
)

// EnrichNode 是特征注入节点：在 Rank 之前为候选活动补齐报名统计。
// 只补缺失值（报名数或容量为 0 且特征服务里有数据），
// 调用方已经提供的数据不被覆盖。特征服务失败时静默跳过，不阻塞打分。
type EnrichNode struct {
	// FeatureService 活动统计特征服务（store 或 feast 实现）。
	FeatureService core.FeatureService
}

func (n *EnrichNode) Name() string        { return "feature.enrich" }
func (n *EnrichNode) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *EnrichNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.FeatureService == nil || len(items) == 0 {
		return items, nil
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it == nil || it.Event == nil {
			continue
		}
		if it.Event.CurrentParticipants == 0 || it.Event.MaxParticipants == 0 {
			ids = append(ids, it.Event.ID)
		}
	}
	if len(ids) == 0 {
		return items, nil
	}

	featuresByID, err := n.FeatureService.BatchGetEventFeatures(ctx, ids)
	if err != nil {
		return items, nil
	}

	for _, it := range items {
		if it == nil || it.Event == nil {
			continue
		}
		features, ok := featuresByID[it.Event.ID]
		if !ok {
			continue
		}
		if it.Event.CurrentParticipants == 0 {
			if v, ok := features[KeyCurrentParticipants]; ok {
				it.Event.CurrentParticipants = int(v)
			}
		}
		if it.Event.MaxParticipants == 0 {
			if v, ok := features[KeyMaxParticipants]; ok {
				it.Event.MaxParticipants = int(v)
			}
		}
		it.PutLabel("feature_source", utils.Label{Value: n.FeatureService.Name(), Source: "feature"})
	}
	return items, nil
}
