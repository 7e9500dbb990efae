package engine

import (
	"context"

	"github.com/shopperos/tastekit/core"
)

// ComputeFromCalibration 由标定信号计算口味向量并给出即时推荐。
//
// 向量计算见 taste.ProfileStore.ComputeFromCalibration；即时推荐基于
// 新向量做近邻检索，排除标定中滑过的全部商品（liked 与 disliked）。
// 结果不会自动持久化，持久化由调用方显式调用 SaveTasteVector。
func (e *Engine) ComputeFromCalibration(ctx context.Context, likedIDs, dislikedIDs []string) (*core.CalibrationResult, error) {
	vector, err := e.profiles.ComputeFromCalibration(likedIDs, dislikedIDs)
	if err != nil {
		return nil, err
	}

	swiped := make([]string, 0, len(likedIDs)+len(dislikedIDs))
	swiped = append(swiped, likedIDs...)
	swiped = append(swiped, dislikedIDs...)

	overfetch := 1
	if e.cfg.CalibrationRecsK > 0 {
		overfetch = (e.cfg.CalibrationRecsSearchK + e.cfg.CalibrationRecsK - 1) / e.cfg.CalibrationRecsK
	}
	q := &core.Query{Vector: vector, K: e.cfg.CalibrationRecsK}
	recs, err := e.rank(ctx, q, rankSpec{
		overfetch:  overfetch,
		excludeIDs: swiped,
	})
	if err != nil {
		return nil, err
	}

	return &core.CalibrationResult{TasteVector: vector, Recommendations: recs}, nil
}

// CalibrationSet 返回标定用的商品集合：覆盖商品数最多的前若干品类，
// 每个品类至少抽固定数量，整体截断到 n。n <= 0 时返回 nil。
func (e *Engine) CalibrationSet(n int) []*core.Product {
	if n <= 0 {
		return nil
	}

	categories := e.catalog.TopCategories(e.cfg.CalibrationTopCategories)
	if len(categories) == 0 {
		return nil
	}

	per := n / len(categories)
	if per < e.cfg.CalibrationMinPerCategory {
		per = e.cfg.CalibrationMinPerCategory
	}

	out := make([]*core.Product, 0, n)
	for _, category := range categories {
		e.rngMu.Lock()
		picked := e.catalog.Sample(category, per, e.rng)
		e.rngMu.Unlock()
		out = append(out, picked...)
		if len(out) >= n {
			break
		}
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// SaveTasteVector 持久化用户口味向量（缓存立即可见，外部持久化 fail-soft）。
// 返回值表示是否至少有一个外部层持久化成功。
func (e *Engine) SaveTasteVector(ctx context.Context, userID string, vector []float64) bool {
	return e.profiles.Set(ctx, userID, vector)
}
