package pipeline

import (
	"context"

	"github.com/shopperos/tastekit/core"
)

// Pipeline 是 tastekit 的核心抽象：把推荐逻辑拆成可组合的 Node 链。
// 典型链路：召回（超采样）→ 排除/过滤 → 多样性重排 → 截断 → 理由标注。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	q *core.Query,
	items []*core.Candidate,
) ([]*core.Candidate, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, q, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
