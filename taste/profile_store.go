// Package taste 维护用户口味画像：带降级链的读取、幂等写入、标定计算。
package taste

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopperos/tastekit/core"
	"github.com/shopperos/tastekit/embedding"
	"github.com/shopperos/tastekit/pkg/vectormath"
)

// DislikeWeight 是标定计算中 dislike 均值的扣减权重。
const DislikeWeight = 0.3

// DefaultTimeout 是单次外部口味存储调用的默认超时。
const DefaultTimeout = 5 * time.Second

// ProfileStore 是进程内的口味画像存储。
//
// 读取链（Get）：进程内缓存 → 外部层（按注册顺序，限时、fail-soft）→
// 预置默认向量 → 不存在。外部层的任何错误只会被记录并降级到下一层，
// 不会作为推荐调用的失败向上传播。
//
// 缓存只增不减，进程生命周期内不过期；目录/用户规模增长后需要引入上界。
type ProfileStore struct {
	mu    sync.RWMutex
	cache map[string][]float64

	tiers    []core.TasteStore
	defaults map[string][]float64
	timeout  time.Duration
	logger   zerolog.Logger

	index *embedding.Index
}

// Option 配置 ProfileStore。
type Option func(*ProfileStore)

// WithTier 追加一个外部口味存储层，按注册顺序查询。
func WithTier(tier core.TasteStore) Option {
	return func(s *ProfileStore) {
		if tier != nil {
			s.tiers = append(s.tiers, tier)
		}
	}
}

// WithDefaults 设置预置默认向量（demo 用户），作为外部层之后的兜底。
func WithDefaults(defaults map[string][]float64) Option {
	return func(s *ProfileStore) { s.defaults = defaults }
}

// WithTimeout 覆盖外部调用超时（默认 5s）。
func WithTimeout(d time.Duration) Option {
	return func(s *ProfileStore) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger 注入日志（默认 Nop，库代码不主动输出）。
func WithLogger(logger zerolog.Logger) Option {
	return func(s *ProfileStore) { s.logger = logger }
}

// NewProfileStore 创建口味画像存储。index 用于标定时解析商品 Embedding。
func NewProfileStore(index *embedding.Index, opts ...Option) *ProfileStore {
	s := &ProfileStore{
		cache:   make(map[string][]float64),
		timeout: DefaultTimeout,
		logger:  zerolog.Nop(),
		index:   index,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get 返回用户口味向量；(nil, false) 表示不存在（合法的冷启动信号，非错误）。
func (s *ProfileStore) Get(ctx context.Context, userID string) ([]float64, bool) {
	// 第一层：进程内缓存
	s.mu.RLock()
	if v, ok := s.cache[userID]; ok {
		s.mu.RUnlock()
		return v, true
	}
	s.mu.RUnlock()

	// 第二层：外部存储，限时且 fail-soft
	for _, tier := range s.tiers {
		v, err := s.fetch(ctx, tier, userID)
		if err == nil && len(v) > 0 {
			s.putCache(userID, v)
			return v, true
		}
		if err != nil && !core.IsNotFound(err) {
			s.logger.Warn().
				Str("store", tier.Name()).
				Str("user_id", userID).
				Err(err).
				Msg("taste store degraded to next tier")
		}
	}

	// 第三层：预置默认向量
	if v, ok := s.defaults[userID]; ok {
		s.putCache(userID, v)
		return v, true
	}

	return nil, false
}

func (s *ProfileStore) fetch(ctx context.Context, tier core.TasteStore, userID string) ([]float64, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return tier.Get(fetchCtx, userID)
}

// Set 幂等写入用户口味向量。
// 缓存无条件更新（写入失败也不回滚，读者可以立即看到新画像）；
// 返回值反映外部持久化是否成功，失败会被记录但不致命。
func (s *ProfileStore) Set(ctx context.Context, userID string, vector []float64) bool {
	s.putCache(userID, vector)

	persisted := false
	for _, tier := range s.tiers {
		upsertCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := tier.Upsert(upsertCtx, userID, vector)
		cancel()

		if err == nil {
			persisted = true
			continue
		}
		if core.IsNotSupported(err) {
			continue // 只读层（如 Feast），跳过
		}
		s.logger.Warn().
			Str("store", tier.Name()).
			Str("user_id", userID).
			Err(err).
			Msg("taste vector persist failed")
	}
	return persisted
}

func (s *ProfileStore) putCache(userID string, vector []float64) {
	s.mu.Lock()
	s.cache[userID] = vector
	s.mu.Unlock()
}

// ComputeFromCalibration 由标定信号（liked/disliked 商品 ID）计算口味向量：
//
//	taste = normalize(mean(liked) - 0.3 * mean(disliked))
//
// 无法解析的 ID 会被跳过；liked 为空或全部无法解析时返回 INVALID_INPUT。
// 计算结果不会自动持久化，持久化是独立的 Set 调用。
func (s *ProfileStore) ComputeFromCalibration(likedIDs, dislikedIDs []string) ([]float64, error) {
	if len(likedIDs) == 0 {
		return nil, core.NewDomainError(core.ModuleTaste, core.ErrorCodeInvalidInput,
			"taste: need at least one liked product")
	}

	liked := s.resolve(likedIDs)
	if len(liked) == 0 {
		return nil, core.NewDomainError(core.ModuleTaste, core.ErrorCodeInvalidInput,
			"taste: no liked product resolved to an embedding")
	}

	vector := vectormath.Mean(liked)

	if disliked := s.resolve(dislikedIDs); len(disliked) > 0 {
		penalty := vectormath.Scale(vectormath.Mean(disliked), DislikeWeight)
		vector = vectormath.Sub(vector, penalty)
	}

	return vectormath.Normalize(vector), nil
}

func (s *ProfileStore) resolve(ids []string) [][]float64 {
	out := make([][]float64, 0, len(ids))
	for _, id := range ids {
		if v, ok := s.index.Vector(id); ok {
			out = append(out, v)
		}
	}
	return out
}
