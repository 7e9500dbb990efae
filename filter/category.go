package filter

import (
	"context"

	"github.com/shopperos/tastekit/core"
)

// Category 只保留指定品类的候选（单品类筛选）。
// Value 为空时不生效。
type Category struct {
	Value string
}

func (f *Category) Name() string { return "filter.category" }

func (f *Category) ShouldFilter(_ context.Context, _ *core.Query, c *core.Candidate) (bool, error) {
	if f.Value == "" || c.Product == nil {
		return false, nil
	}
	return c.Product.Category != f.Value, nil
}

// ExcludeCategories 剔除指定品类集合中的候选。
// 礼物场景用它承载不适合送礼的品类清单（贴身衣物等）。
type ExcludeCategories struct {
	categories map[string]bool
}

// NewExcludeCategories 创建品类排除过滤器。
func NewExcludeCategories(categories []string) *ExcludeCategories {
	set := make(map[string]bool, len(categories))
	for _, cat := range categories {
		if cat != "" {
			set[cat] = true
		}
	}
	return &ExcludeCategories{categories: set}
}

func (f *ExcludeCategories) Name() string { return "filter.exclude_categories" }

func (f *ExcludeCategories) ShouldFilter(_ context.Context, _ *core.Query, c *core.Candidate) (bool, error) {
	if c.Product == nil {
		return false, nil
	}
	return f.categories[c.Product.Category], nil
}
