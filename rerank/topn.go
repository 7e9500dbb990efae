package rerank

import (
	"context"

	"github.com/shopperos/tastekit/core"
	"github.com/shopperos/tastekit/pipeline"
)

// TopN 是截断节点：保留前 N 个候选，放在过滤/多样性之后作为链路收尾。
// 候选不足 N 时原样返回，不补齐。
type TopN struct {
	// N 要保留的候选数量
	// 如果 N <= 0，则返回所有候选（不截断）
	N int
}

func (n *TopN) Name() string {
	return "rerank.topn"
}

func (n *TopN) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopN) Process(
	_ context.Context,
	_ *core.Query,
	items []*core.Candidate,
) ([]*core.Candidate, error) {
	if n.N <= 0 {
		return items, nil
	}

	if len(items) <= n.N {
		return items, nil
	}

	return items[:n.N], nil
}
