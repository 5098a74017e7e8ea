package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rushteam/eventrec/core"
)

// janitorInterval 过期 key 的后台清理周期。
const janitorInterval = 10 * time.Second

// MemoryStore 是内存实现的 KeyValueStore，用于测试、示例与单机原型。
// 活动目录、用户历史、热门 zset 都可以落在这里；进程重启后数据丢失。
//
// 过期策略：读取时惰性判断 + 后台定期清理，两者共用 expiresAt。
type MemoryStore struct {
	mu     sync.RWMutex
	kv     map[string]memEntry
	hashes map[string]map[string][]byte
	zsets  map[string]map[string]float64
	stop   chan struct{}
}

type memEntry struct {
	value     []byte
	expiresAt time.Time // 零值表示永不过期
}

func (e memEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

func NewMemoryStore() *MemoryStore {
	m := &MemoryStore{
		kv:     make(map[string]memEntry),
		hashes: make(map[string]map[string][]byte),
		zsets:  make(map[string]map[string]float64),
		stop:   make(chan struct{}),
	}
	go m.janitor()
	return m
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.kv[key]
	if !ok || e.expired(time.Now()) {
		return nil, core.ErrStoreNotFound
	}
	return e.value, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl ...int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.kv[key] = memEntry{value: value, expiresAt: expiryFrom(ttl)}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.kv, key)
	return nil
}

func (m *MemoryStore) BatchGet(ctx context.Context, keys []string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := time.Now()
	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		if e, ok := m.kv[key]; ok && !e.expired(now) {
			out[key] = e.value
		}
	}
	return out, nil
}

func (m *MemoryStore) BatchSet(ctx context.Context, kvs map[string][]byte, ttl ...int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiresAt := expiryFrom(ttl)
	for key, value := range kvs {
		m.kv[key] = memEntry{value: value, expiresAt: expiresAt}
	}
	return nil
}

func (m *MemoryStore) ZAdd(ctx context.Context, key string, score float64, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	zset, ok := m.zsets[key]
	if !ok {
		zset = make(map[string]float64)
		m.zsets[key] = zset
	}
	zset[member] = score
	return nil
}

// ZRange 按 score 降序返回 [start, stop] 区间的成员（与 RedisStore 的
// ZRevRange 语义一致）。stop 为 -1 表示取到末尾；同分成员按名称排序，
// 保证热门召回的结果可复现。
func (m *MemoryStore) ZRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	m.mu.RLock()
	zset := m.zsets[key]
	members := make([]string, 0, len(zset))
	for member := range zset {
		members = append(members, member)
	}
	sort.Slice(members, func(i, j int) bool {
		si, sj := zset[members[i]], zset[members[j]]
		if si != sj {
			return si > sj
		}
		return members[i] < members[j]
	})
	m.mu.RUnlock()

	if len(members) == 0 {
		return nil, nil
	}
	if start < 0 {
		start = 0
	}
	if stop < 0 || stop >= int64(len(members)) {
		stop = int64(len(members)) - 1
	}
	if start > stop {
		return nil, nil
	}
	return members[start : stop+1], nil
}

func (m *MemoryStore) ZScore(ctx context.Context, key string, member string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	score, ok := m.zsets[key][member]
	if !ok {
		return 0, core.ErrStoreNotFound
	}
	return score, nil
}

func (m *MemoryStore) HGet(ctx context.Context, key, field string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.hashes[key][field]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return value, nil
}

func (m *MemoryStore) HSet(ctx context.Context, key, field string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	hash, ok := m.hashes[key]
	if !ok {
		hash = make(map[string][]byte)
		m.hashes[key] = hash
	}
	hash[field] = value
	return nil
}

func (m *MemoryStore) HGetAll(ctx context.Context, key string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hash := m.hashes[key]
	out := make(map[string][]byte, len(hash))
	for field, value := range hash {
		out[field] = value
	}
	return out, nil
}

func (m *MemoryStore) Close() error {
	select {
	case <-m.stop:
	default:
		close(m.stop)
	}
	return nil
}

func (m *MemoryStore) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for key, e := range m.kv {
				if e.expired(now) {
					delete(m.kv, key)
				}
			}
			m.mu.Unlock()
		}
	}
}

func expiryFrom(ttl []int) time.Time {
	if len(ttl) > 0 && ttl[0] > 0 {
		return time.Now().Add(time.Duration(ttl[0]) * time.Second)
	}
	return time.Time{}
}

var _ core.Store = (*MemoryStore)(nil)
var _ core.KeyValueStore = (*MemoryStore)(nil)
