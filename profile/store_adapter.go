package profile

import (
	"context"
	"encoding/json"

	"github.com/rushteam/eventrec/core"
)

// 存储 key 约定（JSON 记录）：
//   user:prefs:{userID}          -> SignupPreferences
//   user:events:{userID}         -> []AuthoredEvent
//   user:participations:{userID} -> []participationRecord（EventID + Status）
const (
	keyPrefixSignupPrefs    = "user:prefs:"
	keyPrefixAuthoredEvents = "user:events:"
	keyPrefixParticipations = "user:participations:"
)

// participationRecord 是存储中的参与记录，活动详情需要再解析。
type participationRecord struct {
	EventID string `json:"event_id"`
	Status  string `json:"status"`
}

// StoreHistorySource 把 core.Store + core.EventStore 适配为 HistorySource。
//
// 参与记录只存 (event_id, status)，活动详情通过 EventStore 逐条解析；
// 解析不到的记录跳过而不是报错，缺失的关联数据不应让画像构建失败。
type StoreHistorySource struct {
	Store  core.Store
	Events core.EventStore
}

// NewStoreHistorySource 创建存储适配器。
func NewStoreHistorySource(s core.Store, events core.EventStore) *StoreHistorySource {
	return &StoreHistorySource{Store: s, Events: events}
}

func (a *StoreHistorySource) Name() string { return "store" }

func (a *StoreHistorySource) SignupPreferences(ctx context.Context, userID string) (SignupPreferences, error) {
	var prefs SignupPreferences
	data, err := a.Store.Get(ctx, keyPrefixSignupPrefs+userID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return prefs, nil
		}
		return prefs, err
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return SignupPreferences{}, err
	}
	return prefs, nil
}

func (a *StoreHistorySource) AuthoredEvents(ctx context.Context, userID string) ([]AuthoredEvent, error) {
	data, err := a.Store.Get(ctx, keyPrefixAuthoredEvents+userID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var events []AuthoredEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (a *StoreHistorySource) Participations(ctx context.Context, userID string) ([]Participation, error) {
	data, err := a.Store.Get(ctx, keyPrefixParticipations+userID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var records []participationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	out := make([]Participation, 0, len(records))
	for _, rec := range records {
		if rec.EventID == "" || a.Events == nil {
			continue
		}
		ev, err := a.Events.GetEvent(ctx, rec.EventID)
		if err != nil || ev == nil {
			// 关联活动缺失：跳过该条记录
			continue
		}
		out = append(out, Participation{
			Title:    ev.Title,
			Category: ev.Category,
			Tags:     ev.Tags,
			Status:   rec.Status,
		})
	}
	return out, nil
}
