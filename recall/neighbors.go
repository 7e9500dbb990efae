package recall

import (
	"context"

	"github.com/shopperos/tastekit/core"
	"github.com/shopperos/tastekit/embedding"
	"github.com/shopperos/tastekit/pipeline"
	"github.com/shopperos/tastekit/pkg/utils"
)

// Neighbors 是 Embedding 近邻召回源：对种子向量做穷举 Top-K 检索。
//
// Overfetch 是超采样系数：召回 q.K × Overfetch 个候选，给后续的
// 排除/过滤/多样性留出余量，避免结果饥饿。系数按调用场景选择：
// 替代品 ×2、个性化目录 ×3、礼物推荐 ×5。
// Neighbors 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Neighbors struct {
	Index     *embedding.Index
	Overfetch int // <= 0 时视为 1（不超采样）
}

func (r *Neighbors) Name() string        { return "recall.neighbors" }
func (r *Neighbors) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Neighbors) Process(
	ctx context.Context,
	q *core.Query,
	_ []*core.Candidate,
) ([]*core.Candidate, error) {
	return r.Recall(ctx, q)
}

// Recall 实现 Source 接口。
// 维度不匹配的种子向量是程序错误，INVARIANT 直接向上传播。
func (r *Neighbors) Recall(
	ctx context.Context,
	q *core.Query,
) ([]*core.Candidate, error) {
	if r.Index == nil || q == nil || len(q.Vector) == 0 {
		return nil, nil
	}

	factor := r.Overfetch
	if factor <= 0 {
		factor = 1
	}
	k := q.K * factor
	if k <= 0 {
		k = r.Index.Len()
	}

	neighbors, err := r.Index.Nearest(q.Vector, k)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Candidate, 0, len(neighbors))
	for _, nb := range neighbors {
		c := core.NewCandidate(nb.ID)
		c.Score = nb.Score
		c.PutLabel("recall_source", utils.Label{Value: "neighbors", Source: "recall"})
		out = append(out, c)
	}
	return out, nil
}
