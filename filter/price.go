package filter

import (
	"context"

	"github.com/shopperos/tastekit/core"
)

// PriceRange 按价格区间过滤候选。
// Min / Max <= 0 时对应边界不生效；商品未解析时不过滤（交给 Resolver 处理）。
type PriceRange struct {
	Min float64
	Max float64
}

func (f *PriceRange) Name() string { return "filter.price" }

func (f *PriceRange) ShouldFilter(_ context.Context, _ *core.Query, c *core.Candidate) (bool, error) {
	if c.Product == nil {
		return false, nil
	}
	if f.Min > 0 && c.Product.Price < f.Min {
		return true, nil
	}
	if f.Max > 0 && c.Product.Price > f.Max {
		return true, nil
	}
	return false, nil
}
