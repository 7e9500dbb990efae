package recall

import (
	"context"
	"encoding/json"

	"github.com/shopperos/tastekit/core"
	"github.com/shopperos/tastekit/pipeline"
	"github.com/shopperos/tastekit/pkg/utils"
)

// DefaultTrendingWindow 是发现流使用的默认趋势时间窗口。
const DefaultTrendingWindow = "7d"

// Trending 是趋势召回源，按时间窗口读取趋势榜单。
// 存储 key 为 KeyPrefix + Window（如 "trending:7d"）；榜单刷新由外部协作方负责，
// 核心只做只读消费。读取方式与 Popular 一致：zset 优先，JSON 数组次之，
// 内存 Windows 兜底。
type Trending struct {
	Store     core.Store
	KeyPrefix string              // 默认 "trending:"
	Window    string              // 默认 "7d"
	Windows   map[string][]string // fallback：窗口 -> 有序 ID 列表
}

func (r *Trending) Name() string        { return "recall.trending" }
func (r *Trending) Kind() pipeline.Kind { return pipeline.KindRecall }

func (r *Trending) window() string {
	if r.Window != "" {
		return r.Window
	}
	return DefaultTrendingWindow
}

func (r *Trending) key() string {
	prefix := r.KeyPrefix
	if prefix == "" {
		prefix = "trending:"
	}
	return prefix + r.window()
}

// Process 实现 Node 接口，直接调用 Recall
func (r *Trending) Process(
	ctx context.Context,
	q *core.Query,
	_ []*core.Candidate,
) ([]*core.Candidate, error) {
	return r.Recall(ctx, q)
}

// Recall 实现 Source 接口
func (r *Trending) Recall(
	ctx context.Context,
	q *core.Query,
) ([]*core.Candidate, error) {
	var ids []string
	scores := make(map[string]float64)

	if r.Store != nil {
		if kvStore, ok := r.Store.(core.KeyValueStore); ok {
			members, err := kvStore.ZRange(ctx, r.key(), 0, 99)
			if err == nil && len(members) > 0 {
				ids = members
				for _, m := range members {
					if s, err := kvStore.ZScore(ctx, r.key(), m); err == nil {
						scores[m] = s
					}
				}
			}
		} else {
			data, err := r.Store.Get(ctx, r.key())
			if err == nil {
				var parsed []string
				if json.Unmarshal(data, &parsed) == nil {
					ids = parsed
				}
			}
		}
	}

	if len(ids) == 0 {
		ids = r.Windows[r.window()]
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
		c.PutLabel("recall_source", utils.Label{Value: "trending", Source: "recall"})
		c.PutLabel("trending_window", utils.Label{Value: r.window(), Source: "recall"})
		out = append(out, c)
	}
	return out, nil
}
