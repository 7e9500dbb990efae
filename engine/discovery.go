package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/shopperos/tastekit/catalog"
	"github.com/shopperos/tastekit/core"
	"github.com/shopperos/tastekit/pipeline"
	"github.com/shopperos/tastekit/pkg/vectormath"
	"github.com/shopperos/tastekit/rerank"
)

// 版块标题与类型是对外契约，顺序固定。
const (
	sectionJustForToday = "Just For Today"
	sectionNewArrivals  = "New Arrivals in Your Style"
	sectionTrending     = "Trending"
)

// DiscoveryFeed 返回三版块发现流：
//
//	1. Just For Today — 口味向量加高斯扰动后检索，每天口味相近但不相同
//	2. New Arrivals in Your Style — 原始口味检索，排除版块 1 已出现的商品
//	3. Trending — 趋势榜（默认 7 天窗口），与口味无关
//
// 版块 1/2 有顺序依赖（版块 2 的排除集来自版块 1），在同一 goroutine
// 内串行执行；趋势版块独立并行。无口味画像时版块 1 降级为热门榜，
// 版块 2 为空，版块 3 不受影响。
func (e *Engine) DiscoveryFeed(ctx context.Context, userID string) (*core.FeedResult, error) {
	size := e.cfg.FeedSectionSize
	vector, hasTaste := e.profiles.Get(ctx, userID)

	var justForToday, newArrivals, trending []*core.Candidate

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if !hasTaste {
			justForToday, err = e.coldStart(gctx, size)
			return err
		}

		perturbed := e.perturb(vector)
		q := &core.Query{UserID: userID, Vector: perturbed, K: e.cfg.JustForTodayK}
		justForToday, err = e.rank(gctx, q, rankSpec{})
		if err != nil {
			return err
		}
		if len(justForToday) > size {
			justForToday = justForToday[:size]
		}

		seen := make([]string, 0, len(justForToday))
		for _, c := range justForToday {
			seen = append(seen, c.ID)
		}
		q = &core.Query{UserID: userID, Vector: vector, K: e.cfg.NewArrivalsK}
		newArrivals, err = e.rank(gctx, q, rankSpec{excludeIDs: seen})
		if err != nil {
			return err
		}
		if len(newArrivals) > size {
			newArrivals = newArrivals[:size]
		}
		return nil
	})

	g.Go(func() error {
		q := &core.Query{UserID: userID, K: size}
		p := &pipeline.Pipeline{Nodes: []pipeline.Node{
			e.trending,
			&catalog.Resolver{Catalog: e.catalog},
			&rerank.TopN{N: size},
		}}
		var err error
		trending, err = p.Run(gctx, q, nil)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &core.FeedResult{Sections: []core.FeedSection{
		{Title: sectionJustForToday, Type: "personalized", Products: justForToday},
		{Title: sectionNewArrivals, Type: "new_arrivals", Products: newArrivals},
		{Title: sectionTrending, Type: "trending", Products: trending},
	}}, nil
}

// perturb 给口味向量加各维独立的高斯噪声后重新归一化。
// 噪声幅度与向量范数成比例（NoiseScale 倍），保证扰动后的检索结果
// 与原口味相近但不完全相同。
func (e *Engine) perturb(vector []float64) []float64 {
	scale := e.cfg.NoiseScale * vectormath.Norm(vector)

	out := make([]float64, len(vector))
	e.rngMu.Lock()
	for i, x := range vector {
		out[i] = x + e.rng.NormFloat64()*scale
	}
	e.rngMu.Unlock()
	return vectormath.Normalize(out)
}
