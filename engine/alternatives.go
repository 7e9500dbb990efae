package engine

import (
	"context"

	"github.com/shopperos/tastekit/core"
	"github.com/shopperos/tastekit/reason"
)

// Alternatives 返回与指定商品相似的替代品。
//
// 种子商品或其 Embedding 缺失时返回 NOT_FOUND——这是唯一把未知 ID
// 作为显式错误向上抛的操作（其余场景按软条件降级处理）。
// 结果排除种子自身；理由优先同品类，其次同颜色，兜底 "Similar style"。
func (e *Engine) Alternatives(ctx context.Context, productID string, k int) (*core.AlternativesResult, error) {
	if k <= 0 {
		k = e.cfg.DefaultK
	}

	source, ok := e.catalog.ByID(productID)
	if !ok {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeNotFound,
			"engine: product not found: "+productID)
	}
	vector, ok := e.index.Vector(productID)
	if !ok {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeNotFound,
			"engine: no embedding for product: "+productID)
	}

	q := &core.Query{
		Vector:           vector,
		K:                k,
		DominantCategory: source.Category,
		DominantColor:    source.Color,
	}
	items, err := e.rank(ctx, q, rankSpec{
		overfetch:  e.cfg.AlternativesOverfetch,
		excludeIDs: []string{productID},
		annotate:   &reason.Alternatives{},
	})
	if err != nil {
		return nil, err
	}

	return &core.AlternativesResult{Source: source, Alternatives: items}, nil
}
