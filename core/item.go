package core

import "github.com/rushteam/eventrec/pkg/utils"

// Item 是推荐链路中的统一承载结构：候选活动、分数、元信息、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策；Confidence 由 Rank 阶段回填。
type Item struct {
	ID         string
	Score      float64
	Confidence int
	Event      *Event
	Meta       map[string]any
	Labels     map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// NewEventItem 从候选活动构建 Item。
func NewEventItem(e *Event) *Item {
	it := NewItem("")
	if e != nil {
		it.ID = e.ID
		it.Event = e
	}
	return it
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// MatchFactors 返回 Rank 阶段写入的匹配因素（保持写入顺序）。
func (it *Item) MatchFactors() []string {
	if it.Meta == nil {
		return nil
	}
	if fs, ok := it.Meta["match_factors"].([]string); ok {
		return fs
	}
	return nil
}

// SetMatchFactors 写入匹配因素。
func (it *Item) SetMatchFactors(factors []string) {
	if it.Meta == nil {
		it.Meta = make(map[string]any)
	}
	it.Meta["match_factors"] = factors
}

// Reason 返回 Explain 阶段写入的推荐理由。
func (it *Item) Reason() string {
	if it.Meta == nil {
		return ""
	}
	if r, ok := it.Meta["reason"].(string); ok {
		return r
	}
	return ""
}

// SetReason 写入推荐理由。
func (it *Item) SetReason(reason string) {
	if it.Meta == nil {
		it.Meta = make(map[string]any)
	}
	it.Meta["reason"] = reason
}
