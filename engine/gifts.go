package engine

import (
	"context"
	"strings"

	"github.com/shopperos/tastekit/core"
	"github.com/shopperos/tastekit/filter"
	"github.com/shopperos/tastekit/pkg/utils"
	"github.com/shopperos/tastekit/pkg/vectormath"
	"github.com/shopperos/tastekit/reason"
	"github.com/shopperos/tastekit/recall"
)

// GiftSuggestionsForList 基于礼物清单推荐补充礼物。
//
// 清单口味 = 清单内商品 Embedding 的归一化均值；多数品类/颜色决定理由文案。
// 结果排除清单自身的商品。清单为空或全部无法解析时降级为精选品类样本，
// EmptyList 置位。
func (e *Engine) GiftSuggestionsForList(ctx context.Context, listIDs []string, k int, diversify bool) (*core.GiftResult, error) {
	if k <= 0 {
		k = e.cfg.DefaultK
	}

	vectors := make([][]float64, 0, len(listIDs))
	categories := make([]string, 0, len(listIDs))
	colors := make([]string, 0, len(listIDs))
	for _, id := range listIDs {
		v, ok := e.index.Vector(id)
		if !ok {
			continue
		}
		vectors = append(vectors, v)
		if p, ok := e.catalog.ByID(id); ok {
			categories = append(categories, p.Category)
			colors = append(colors, p.Color)
		}
	}

	if len(vectors) == 0 {
		return &core.GiftResult{Suggestions: e.curatedGifts(k), EmptyList: true}, nil
	}

	q := &core.Query{
		Vector:           vectormath.Normalize(vectormath.Mean(vectors)),
		K:                k,
		DominantCategory: utils.Majority(categories),
		DominantColor:    utils.Majority(colors),
	}
	items, err := e.rank(ctx, q, rankSpec{
		overfetch:  e.cfg.GiftOverfetch,
		excludeIDs: listIDs,
		diversify:  diversify,
		annotate:   &reason.GiftList{},
	})
	if err != nil {
		return nil, err
	}
	return &core.GiftResult{Suggestions: items}, nil
}

// GiftSuggestionsForUser 基于收礼人口味画像推荐礼物。
//
// 价格区间由送礼人预算决定；禁选品类（内衣袜类等不适合送礼的品类）
// 始终生效；强制多样性约束（礼物清单不应该全是同一个品类）。
// 收礼人无画像时走空清单礼物路径。
func (e *Engine) GiftSuggestionsForUser(ctx context.Context, recipientID string, k int, priceMin, priceMax float64) (*core.GiftResult, error) {
	if k <= 0 {
		k = e.cfg.DefaultK
	}

	vector, ok := e.profiles.Get(ctx, recipientID)
	if !ok {
		return &core.GiftResult{Suggestions: e.curatedGifts(k), EmptyList: true}, nil
	}

	fs := []filter.Filter{filter.NewExcludeCategories(e.cfg.TabooCategories)}
	if priceMin > 0 || priceMax > 0 {
		fs = append(fs, &filter.PriceRange{Min: priceMin, Max: priceMax})
	}

	q := &core.Query{UserID: recipientID, Vector: vector, K: k}
	items, err := e.rank(ctx, q, rankSpec{
		overfetch: e.cfg.GiftOverfetch,
		filters:   fs,
		diversify: true,
		annotate:  &reason.Affinity{},
	})
	if err != nil {
		return nil, err
	}
	return &core.GiftResult{Suggestions: items}, nil
}

// curatedGifts 返回精选品类的礼物样本：每个精选品类无放回抽取固定数量，
// 理由为固定文案（如 "Popular dress gift"），整体截断到 k。
func (e *Engine) curatedGifts(k int) []*core.Candidate {
	out := make([]*core.Candidate, 0, k)
	for _, category := range e.cfg.GiftCategories {
		e.rngMu.Lock()
		picked := e.catalog.Sample(category, e.cfg.GiftSamplesPerCategory, e.rng)
		e.rngMu.Unlock()

		for _, p := range picked {
			c := core.NewCandidate(p.ID)
			c.Score = recall.NeutralScore
			c.Product = p
			c.Reason = "Popular " + strings.ToLower(category) + " gift"
			c.PutLabel("reason", utils.Label{Value: c.Reason, Source: "reason"})
			out = append(out, c)
		}
	}
	if len(out) > k {
		out = out[:k]
	}
	return out
}
