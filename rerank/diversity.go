package rerank

import (
	"context"

	"github.com/shopperos/tastekit/core"
	"github.com/shopperos/tastekit/pipeline"
)

// Diversity 是多样性 ReRank：按品类去重，每个品类最多保留一个候选
// （分数高的先到先得，输入须已按分数降序）。
// 品类缺失（商品未解析）的候选不参与去重，直接保留。
type Diversity struct{}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.Query,
	items []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(items) == 0 {
		return items, nil
	}

	seen := make(map[string]bool, 32)
	out := make([]*core.Candidate, 0, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}

		cate := it.Category()
		if cate == "" {
			out = append(out, it)
			continue
		}
		if seen[cate] {
			continue
		}
		seen[cate] = true
		out = append(out, it)
	}

	return out, nil
}
