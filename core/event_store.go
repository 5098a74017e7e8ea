package core

import (
	"context"
	"time"
)

// EventStore 是候选活动数据的领域接口。
//
// 本库不拥有活动的持久化：EventStore 的实现由外部数据层提供
// （store.MemoryStore/RedisStore 上的适配器，或任意 CRUD 服务的客户端）。
// 召回节点通过它取候选集，调用方也可以直接传入候选列表绕过它。
type EventStore interface {
	// Name 返回数据源名称（用于日志/监控）
	Name() string

	// GetEvent 按 ID 读取活动；不存在时返回 ErrStoreNotFound
	GetEvent(ctx context.Context, eventID string) (*Event, error)

	// ListUpcoming 列出日期在 from（含当日）之后的活动
	ListUpcoming(ctx context.Context, from time.Time) ([]*Event, error)
}

// FeatureService 是活动统计特征的领域接口。
//
// 打分需要报名人数（popularity 信号），而候选活动可能来自不带统计数据的
// 数据源；FeatureService 在 Rank 之前补齐这些特征。
// 实现：feature.StoreFeatureService（基于 KeyValueStore）、feast.Adapter（Feast 在线特征）。
type FeatureService interface {
	// Name 返回特征服务名称（用于日志/监控）
	Name() string

	// GetEventFeatures 获取单个活动的统计特征
	// 约定 key：current_participants、max_participants
	GetEventFeatures(ctx context.Context, eventID string) (map[string]float64, error)

	// BatchGetEventFeatures 批量获取活动统计特征（减少网络往返）
	BatchGetEventFeatures(ctx context.Context, eventIDs []string) (map[string]map[string]float64, error)

	// Close 关闭特征服务，释放资源
	Close(ctx context.Context) error
}
