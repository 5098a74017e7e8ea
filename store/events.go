package store

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/rushteam/eventrec/core"
)

const (
	// 活动详情 hash 的 key（field = eventID，value = JSON）
	eventHashKey = "events"
	// 按开始时间索引的 zset（score = Unix 时间戳）
	eventDateZSetKey = "events:by_date"
)

// EventCatalog 是基于 KeyValueStore 的 core.EventStore 实现。
// 活动详情存 hash，开始时间存 zset，ListUpcoming 靠时间戳过滤。
type EventCatalog struct {
	KV core.KeyValueStore
}

func NewEventCatalog(kv core.KeyValueStore) *EventCatalog {
	return &EventCatalog{KV: kv}
}

func (c *EventCatalog) Name() string { return "catalog:" + c.KV.Name() }

// PutEvent 写入活动详情，并在日期可解析时更新时间索引。
func (c *EventCatalog) PutEvent(ctx context.Context, ev *core.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := c.KV.HSet(ctx, eventHashKey, ev.ID, data); err != nil {
		return err
	}
	if t, err := core.ParseEventDate(ev.Date); err == nil {
		return c.KV.ZAdd(ctx, eventDateZSetKey, float64(t.Unix()), ev.ID)
	}
	return nil
}

func (c *EventCatalog) GetEvent(ctx context.Context, eventID string) (*core.Event, error) {
	data, err := c.KV.HGet(ctx, eventHashKey, eventID)
	if err != nil {
		return nil, err
	}
	var ev core.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// ListUpcoming 由 events:by_date 时间索引驱动：取出索引里的活动 ID，
// 逐个加载详情并按日历日过滤，最后按 (开始时间, ID) 升序排序，
// 同一份数据的召回顺序在多次请求间保持一致。
func (c *EventCatalog) ListUpcoming(ctx context.Context, from time.Time) ([]*core.Event, error) {
	ids, err := c.KV.ZRange(ctx, eventDateZSetKey, 0, -1)
	if err != nil {
		return nil, err
	}

	// from 按日历日截断，当天开始的活动也算 upcoming
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	type dated struct {
		ev *core.Event
		at int64
	}
	upcoming := make([]dated, 0, len(ids))
	for _, id := range ids {
		data, err := c.KV.HGet(ctx, eventHashKey, id)
		if err != nil {
			continue
		}
		var ev core.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			continue
		}
		t, err := core.ParseEventDate(ev.Date)
		if err != nil || t.Before(day) {
			continue
		}
		upcoming = append(upcoming, dated{ev: &ev, at: t.Unix()})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		if upcoming[i].at != upcoming[j].at {
			return upcoming[i].at < upcoming[j].at
		}
		return upcoming[i].ev.ID < upcoming[j].ev.ID
	})

	events := make([]*core.Event, 0, len(upcoming))
	for _, d := range upcoming {
		events = append(events, d.ev)
	}
	return events, nil
}

var _ core.EventStore = (*EventCatalog)(nil)
