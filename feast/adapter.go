package feast

import (
	"context"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/pkg/conv"
)

const (
	// 实体 join key
	entityEventID = "event_id"

	// 特征视图 event_stats 的特征引用
	featCurrentParticipants = "event_stats:current_participants"
	featMaxParticipants     = "event_stats:max_participants"
)

// Adapter 把 Feast Client 适配成 core.FeatureService，
// 从 event_stats 特征视图取活动的报名统计。
type Adapter struct {
	Client Client
}

func NewAdapter(client Client) *Adapter {
	return &Adapter{Client: client}
}

func (a *Adapter) Name() string { return "feast" }

func (a *Adapter) GetEventFeatures(ctx context.Context, eventID string) (map[string]float64, error) {
	all, err := a.BatchGetEventFeatures(ctx, []string{eventID})
	if err != nil {
		return nil, err
	}
	return all[eventID], nil
}

func (a *Adapter) BatchGetEventFeatures(ctx context.Context, eventIDs []string) (map[string]map[string]float64, error) {
	if len(eventIDs) == 0 {
		return map[string]map[string]float64{}, nil
	}

	entityRows := make([]map[string]interface{}, len(eventIDs))
	for i, id := range eventIDs {
		entityRows[i] = map[string]interface{}{entityEventID: id}
	}

	resp, err := a.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   []string{featCurrentParticipants, featMaxParticipants},
		EntityRows: entityRows,
	})
	if err != nil {
		return nil, err
	}

	result := make(map[string]map[string]float64, len(eventIDs))
	for i, fv := range resp.FeatureVectors {
		if i >= len(eventIDs) {
			break
		}
		features := make(map[string]float64, len(fv.Values))
		if v, ok := fv.Values[featCurrentParticipants]; ok {
			if f, ok := conv.ToFloat64(v); ok {
				features["current_participants"] = f
			}
		}
		if v, ok := fv.Values[featMaxParticipants]; ok {
			if f, ok := conv.ToFloat64(v); ok {
				features["max_participants"] = f
			}
		}
		result[eventIDs[i]] = features
	}
	return result, nil
}

func (a *Adapter) Close(ctx context.Context) error {
	return a.Client.Close()
}

var _ core.FeatureService = (*Adapter)(nil)
