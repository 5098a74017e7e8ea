// Package feature 提供活动统计特征的获取与注入。
// 打分依赖报名人数（popularity 信号），候选来源不带统计数据时由本包补齐。
package feature

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/eventrec/core"
)

// StoreFeatureService 是基于 Store 的特征服务实现，采用适配器模式。
// 特征按活动 ID 以 JSON 形式存在 {KeyPrefix}{eventID}。
type StoreFeatureService struct {
	store     core.Store
	keyPrefix string
}

// NewStoreFeatureService 创建基于 Store 的特征服务。
func NewStoreFeatureService(s core.Store, keyPrefix string) *StoreFeatureService {
	if keyPrefix == "" {
		keyPrefix = "event:features:"
	}
	return &StoreFeatureService{store: s, keyPrefix: keyPrefix}
}

func (s *StoreFeatureService) Name() string { return "store" }

func (s *StoreFeatureService) GetEventFeatures(ctx context.Context, eventID string) (map[string]float64, error) {
	data, err := s.store.Get(ctx, s.keyPrefix+eventID)
	if err != nil {
		return nil, err
	}
	var features map[string]float64
	if err := json.Unmarshal(data, &features); err != nil {
		return nil, fmt.Errorf("decode features for %s: %w", eventID, err)
	}
	return features, nil
}

func (s *StoreFeatureService) BatchGetEventFeatures(ctx context.Context, eventIDs []string) (map[string]map[string]float64, error) {
	keys := make([]string, 0, len(eventIDs))
	for _, id := range eventIDs {
		keys = append(keys, s.keyPrefix+id)
	}

	raw, err := s.store.BatchGet(ctx, keys)
	if err != nil {
		return nil, err
	}

	out := make(map[string]map[string]float64, len(raw))
	for i, id := range eventIDs {
		data, ok := raw[keys[i]]
		if !ok {
			continue
		}
		var features map[string]float64
		if err := json.Unmarshal(data, &features); err != nil {
			continue
		}
		out[id] = features
	}
	return out, nil
}

func (s *StoreFeatureService) Close(ctx context.Context) error { return nil }

var _ core.FeatureService = (*StoreFeatureService)(nil)
