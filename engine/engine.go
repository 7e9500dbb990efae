// Package engine 把索引、目录、口味画像与召回/过滤/重排 Node 编排为
// 面向产品的推荐操作：个性化目录、找替代品、发现流、礼物推荐、标定。
//
// 每次调用独立组装一条小型 Pipeline，调用之间除口味缓存外不共享状态；
// 所有依赖在进程启动时显式构造并经构造函数注入，没有隐式全局单例。
package engine

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopperos/tastekit/catalog"
	"github.com/shopperos/tastekit/core"
	"github.com/shopperos/tastekit/embedding"
	"github.com/shopperos/tastekit/filter"
	"github.com/shopperos/tastekit/pipeline"
	"github.com/shopperos/tastekit/recall"
	"github.com/shopperos/tastekit/rerank"
	"github.com/shopperos/tastekit/taste"
)

// Engine 是推荐引擎的编排入口。
// 所有字段在构造后只读（rng 除外，内部加锁），可被并发请求共享。
type Engine struct {
	catalog  *catalog.Catalog
	index    *embedding.Index
	profiles *taste.ProfileStore

	popular  *recall.Popular
	trending *recall.Trending

	cfg    Config
	logger zerolog.Logger

	// rand.Rand 非并发安全，扰动/抽样时加锁使用
	rngMu sync.Mutex
	rng   *rand.Rand
}

// Filters 是个性化目录的筛选条件。零值字段不生效。
type Filters struct {
	Category string  // 单品类筛选
	PriceMin float64 // 最低价（> 0 时生效）
	PriceMax float64 // 最高价（> 0 时生效）
}

// Option 配置 Engine。
type Option func(*Engine)

// WithConfig 覆盖业务参数（零值字段回填默认值）。
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg.withDefaults() }
}

// WithPopular 注入热门召回源（冷启动兜底）。
func WithPopular(p *recall.Popular) Option {
	return func(e *Engine) { e.popular = p }
}

// WithTrending 注入趋势召回源（发现流第三版块）。
func WithTrending(t *recall.Trending) Option {
	return func(e *Engine) { e.trending = t }
}

// WithRand 注入随机源，保证扰动与抽样在测试中可复现。
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger 注入日志（默认 Nop）。
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New 创建引擎。catalog/index/profiles 在启动时一次性构建后传入。
func New(c *catalog.Catalog, idx *embedding.Index, profiles *taste.ProfileStore, opts ...Option) *Engine {
	e := &Engine{
		catalog:  c,
		index:    idx,
		profiles: profiles,
		cfg:      DefaultConfig(),
		logger:   zerolog.Nop(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.popular == nil {
		e.popular = &recall.Popular{}
	}
	if e.trending == nil {
		e.trending = &recall.Trending{Window: e.cfg.TrendingWindow}
	}
	return e
}

// rankSpec 描述一次排序链路的组装参数。
type rankSpec struct {
	overfetch  int
	excludeIDs []string
	filters    []filter.Filter
	diversify  bool
	annotate   pipeline.Node // 理由生成 Node，可为 nil
}

// rank 组装并执行一条标准链路：
// 近邻召回（超采样）→ 商品解析 → 排除/过滤 → 多样性 → 截断 → 理由标注。
// 候选在召回后保持分数降序，过滤与多样性只做剔除，不改变顺序；
// 候选耗尽时返回不足 k 的结果，不补齐。
func (e *Engine) rank(ctx context.Context, q *core.Query, spec rankSpec) ([]*core.Candidate, error) {
	fs := make([]filter.Filter, 0, len(spec.filters)+1)
	if len(spec.excludeIDs) > 0 {
		fs = append(fs, filter.NewExcludeIDs(spec.excludeIDs))
	}
	fs = append(fs, spec.filters...)

	nodes := []pipeline.Node{
		&recall.Neighbors{Index: e.index, Overfetch: spec.overfetch},
		&catalog.Resolver{Catalog: e.catalog},
	}
	if len(fs) > 0 {
		nodes = append(nodes, &filter.FilterNode{Filters: fs})
	}
	if spec.diversify {
		nodes = append(nodes, &rerank.Diversity{})
	}
	nodes = append(nodes, &rerank.TopN{N: q.K})
	if spec.annotate != nil {
		nodes = append(nodes, spec.annotate)
	}

	p := &pipeline.Pipeline{Nodes: nodes}
	return p.Run(ctx, q, nil)
}

// coldStart 是无口味画像时的兜底：热门榜前 k 个，
// 榜单自带分数或固定中性亲和度 0.5。
func (e *Engine) coldStart(ctx context.Context, k int) ([]*core.Candidate, error) {
	q := &core.Query{K: k}
	p := &pipeline.Pipeline{Nodes: []pipeline.Node{
		e.popular,
		&catalog.Resolver{Catalog: e.catalog},
		&rerank.TopN{N: k},
	}}
	return p.Run(ctx, q, nil)
}
