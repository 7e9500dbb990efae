package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/shopperos/tastekit/core"
)

// tasteKeyPrefix 是口味向量在 KV 后端中的 key 前缀。
const tasteKeyPrefix = "taste:user:"

// KVTasteStore 把任意 core.Store 适配为 core.TasteStore：
// 口味向量以 JSON 数组存储在 "taste:user:{id}" 下。
// 搭配 RedisStore 即为生产形态，搭配 MemoryStore 用于测试。
type KVTasteStore struct {
	kv core.Store
}

func NewKVTasteStore(kv core.Store) *KVTasteStore {
	return &KVTasteStore{kv: kv}
}

func (s *KVTasteStore) Name() string { return s.kv.Name() + "_taste" }

func (s *KVTasteStore) Get(ctx context.Context, userID string) ([]float64, error) {
	data, err := s.kv.Get(ctx, tasteKeyPrefix+userID)
	if err != nil {
		if core.IsNotFound(err) {
			return nil, core.ErrTasteNotFound
		}
		return nil, core.NewDomainError(core.ModuleTaste, core.ErrorCodeUnavailable,
			"taste: fetch failed: "+err.Error())
	}

	var vector []float64
	if err := json.Unmarshal(data, &vector); err != nil {
		return nil, core.NewDomainError(core.ModuleTaste, core.ErrorCodeUnavailable,
			"taste: malformed payload for user "+userID)
	}
	return vector, nil
}

func (s *KVTasteStore) Upsert(ctx context.Context, userID string, vector []float64) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return core.NewDomainError(core.ModuleTaste, core.ErrorCodeInvalidInput,
			"taste: marshal failed: "+err.Error())
	}
	if err := s.kv.Set(ctx, tasteKeyPrefix+userID, data); err != nil {
		return core.NewDomainError(core.ModuleTaste, core.ErrorCodeUnavailable,
			"taste: upsert failed: "+err.Error())
	}
	return nil
}

func (s *KVTasteStore) Close() error { return s.kv.Close() }

var _ core.TasteStore = (*KVTasteStore)(nil)

// MemoryTasteStore 是纯内存的 TasteStore，用于测试与 demo。
type MemoryTasteStore struct {
	mu      sync.RWMutex
	vectors map[string][]float64
}

func NewMemoryTasteStore() *MemoryTasteStore {
	return &MemoryTasteStore{vectors: make(map[string][]float64)}
}

func (s *MemoryTasteStore) Name() string { return "memory_taste" }

func (s *MemoryTasteStore) Get(ctx context.Context, userID string) ([]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vectors[userID]
	if !ok {
		return nil, core.ErrTasteNotFound
	}
	return v, nil
}

func (s *MemoryTasteStore) Upsert(ctx context.Context, userID string, vector []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]float64, len(vector))
	copy(cp, vector)
	s.vectors[userID] = cp
	return nil
}

func (s *MemoryTasteStore) Close() error { return nil }

var _ core.TasteStore = (*MemoryTasteStore)(nil)
