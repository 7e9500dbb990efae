package recall

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shopperos/tastekit/core"
	"github.com/shopperos/tastekit/pipeline"
	"github.com/shopperos/tastekit/pkg/utils"
)

// Fanout 是一个 Recall Node：并发执行多个召回源，并合并结果。
// 单个召回源的超时/错误只会丢弃该源的结果，不会中断其他源——
// 外部依赖的故障在这里降级，不向调用方传播。
type Fanout struct {
	Sources       []Source
	Dedup         bool          // 按 ID 去重，保留先出现的（优先级按 Sources 顺序）
	Timeout       time.Duration // 每个召回源的超时时间
	MaxConcurrent int           // 最大并发数（0 表示无限制）
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	q *core.Query,
	_ []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	var (
		mu      sync.Mutex
		results = make([][]*core.Candidate, len(n.Sources))
		eg, _   = errgroup.WithContext(ctx)
	)

	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		idx, s := i, src

		eg.Go(func() error {
			recallCtx := ctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(ctx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(recallCtx, q)
			if err != nil {
				// 超时或错误时丢弃该源，不中断其他召回源
				return nil
			}

			for _, it := range items {
				it.PutLabel("recall_source", utils.Label{Value: s.Name(), Source: "recall"})
			}

			mu.Lock()
			results[idx] = items
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// 按 Sources 顺序合并，保证确定性；Dedup 时保留先出现的
	out := make([]*core.Candidate, 0)
	seen := make(map[string]bool)
	for _, items := range results {
		for _, it := range items {
			if it == nil {
				continue
			}
			if n.Dedup {
				if seen[it.ID] {
					continue
				}
				seen[it.ID] = true
			}
			out = append(out, it)
		}
	}
	return out, nil
}
