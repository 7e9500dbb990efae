package engine

import (
	"context"

	"github.com/shopperos/tastekit/core"
	"github.com/shopperos/tastekit/filter"
)

// PersonalizedCatalog 返回用户的个性化商品目录。
//
// 有口味画像：按口味向量做近邻排序（超采样 ×3），应用品类/价格筛选，
// 不做多样性约束。无画像：热门榜冷启动兜底，ColdStart 置位。
// k <= 0 时取默认值。
func (e *Engine) PersonalizedCatalog(ctx context.Context, userID string, f Filters, k int) (*core.CatalogResult, error) {
	if k <= 0 {
		k = e.cfg.DefaultCatalogK
	}

	vector, ok := e.profiles.Get(ctx, userID)
	if !ok {
		items, err := e.coldStart(ctx, k)
		if err != nil {
			return nil, err
		}
		return &core.CatalogResult{Products: items, ColdStart: true}, nil
	}

	var fs []filter.Filter
	if f.Category != "" {
		fs = append(fs, &filter.Category{Value: f.Category})
	}
	if f.PriceMin > 0 || f.PriceMax > 0 {
		fs = append(fs, &filter.PriceRange{Min: f.PriceMin, Max: f.PriceMax})
	}

	q := &core.Query{UserID: userID, Vector: vector, K: k}
	items, err := e.rank(ctx, q, rankSpec{
		overfetch: e.cfg.CatalogOverfetch,
		filters:   fs,
	})
	if err != nil {
		return nil, err
	}
	return &core.CatalogResult{Products: items}, nil
}
