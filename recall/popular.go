package recall

import (
	"context"
	"encoding/json"

	"github.com/shopperos/tastekit/core"
	"github.com/shopperos/tastekit/pipeline"
	"github.com/shopperos/tastekit/pkg/utils"
)

// Popular 是热门召回源，冷启动（用户无口味画像）时的兜底。
// - 如果 Store 实现了 KeyValueStore，优先使用 ZRange（有序集合，按分数降序）
// - 否则从普通 key 读取 JSON 数组
// - 如果 Store 为空或读取失败，使用内存中的 IDs 作为 fallback
//
// 榜单自带分数时（zset）取该分数为亲和度，否则取固定中性值 0.5。
// 返回 min(q.K, 榜单长度) 个候选，不足时不补齐。
// Popular 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Popular struct {
	Store core.Store
	Key   string  // 存储 key，例如 "popular:products"
	IDs   []string // fallback 内存榜单（有序）
}

func (r *Popular) Name() string        { return "recall.popular" }
func (r *Popular) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Popular) Process(
	ctx context.Context,
	q *core.Query,
	_ []*core.Candidate,
) ([]*core.Candidate, error) {
	return r.Recall(ctx, q)
}

// Recall 实现 Source 接口
func (r *Popular) Recall(
	ctx context.Context,
	q *core.Query,
) ([]*core.Candidate, error) {
	var ids []string
	scores := make(map[string]float64)

	// 优先从 Store 读取（支持 ZRange 或普通 Get）
	if r.Store != nil && r.Key != "" {
		if kvStore, ok := r.Store.(core.KeyValueStore); ok {
			members, err := kvStore.ZRange(ctx, r.Key, 0, 99)
			if err == nil && len(members) > 0 {
				ids = members
				for _, m := range members {
					if s, err := kvStore.ZScore(ctx, r.Key, m); err == nil {
						scores[m] = s
					}
				}
			}
		} else {
			data, err := r.Store.Get(ctx, r.Key)
			if err == nil {
				var parsed []string
				if json.Unmarshal(data, &parsed) == nil {
					ids = parsed
				}
			}
		}
	}

	// Fallback：使用内存榜单
	if len(ids) == 0 {
		ids = r.IDs
	}

	k := len(ids)
	if q != nil && q.K > 0 && q.K < k {
		k = q.K
	}

	out := make([]*core.Candidate, 0, k)
	for _, id := range ids[:k] {
		c := core.NewCandidate(id)
		if s, ok := scores[id]; ok {
			c.Score = s
		} else {
			c.Score = NeutralScore
		}
		c.PutLabel("recall_source", utils.Label{Value: "popular", Source: "recall"})
		out = append(out, c)
	}
	return out, nil
}
