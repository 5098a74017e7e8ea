package core

import (
	"strings"
	"time"
)

// Event 是候选活动的统一承载结构，由外部数据层提供，对本库只读。
//
// 字段约定：
//   - Date 保留原始字符串（ISO 日期或 RFC3339），解析失败按“日期不可用”降级，
//     不向调用方抛错（见 ParseEventDate）
//   - MaxParticipants 为 0 表示“不限/未知”
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date"`
	OwnerID     string   `json:"owner_id,omitempty"`

	CurrentParticipants int `json:"current_participants"`
	MaxParticipants     int `json:"max_participants"`
}

// PopularityRatio 返回报名人数 / 容量的比值（容量缺失时按 1 处理）。
// 该比值作为“热度但未满”的信号参与打分。
func (e *Event) PopularityRatio() float64 {
	max := e.MaxParticipants
	if max < 1 {
		max = 1
	}
	return float64(e.CurrentParticipants) / float64(max)
}

// eventDateLayouts 按优先级尝试的日期格式。
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseEventDate 容错解析活动日期。
// 支持 RFC3339（含 'Z' 后缀）、无时区的 ISO 时间、纯日期三种形式。
func ParseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, NewDomainError(ModuleScore, ErrorCodeDateUnparseable, "empty event date")
	}
	var lastErr error
	for _, layout := range eventDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// DaysUntil 返回从 now 的日历日到活动日期的天数差（同日为 0，过去为负）。
// 日期不可解析时返回 (0, false)。
func (e *Event) DaysUntil(now time.Time) (int, bool) {
	t, err := ParseEventDate(e.Date)
	if err != nil {
		return 0, false
	}
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	start := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	end := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24), true
}
