package core

import "github.com/shopperos/tastekit/pkg/utils"

// Candidate 是推荐链路中的统一承载结构：商品、分数、推荐理由、标签。
// Score 是候选与种子向量的点积（亲和度），用于排序决策；
// Labels 用于解释与观测（召回来源、过滤原因等）。
type Candidate struct {
	ID      string
	Score   float64
	Reason  string
	Product *Product
	Labels  map[string]utils.Label
}

func NewCandidate(id string) *Candidate {
	return &Candidate{
		ID:     id,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (c *Candidate) PutLabel(key string, lbl utils.Label) {
	if c.Labels == nil {
		c.Labels = make(map[string]utils.Label)
	}
	if old, ok := c.Labels[key]; ok {
		c.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	c.Labels[key] = lbl
}

// Category 返回候选商品的品类；商品未解析时为空串。
func (c *Candidate) Category() string {
	if c.Product == nil {
		return ""
	}
	return c.Product.Category
}

// Color 返回候选商品的颜色；商品未解析时为空串。
func (c *Candidate) Color() string {
	if c.Product == nil {
		return ""
	}
	return c.Product.Color
}
