package filter

import (
	"context"

	"github.com/shopperos/tastekit/core"
)

// ExcludeIDs 剔除指定 ID 的候选：种子商品自身、已在清单中、已购买的商品等。
type ExcludeIDs struct {
	ids map[string]bool
}

// NewExcludeIDs 创建 ID 排除过滤器。
func NewExcludeIDs(ids []string) *ExcludeIDs {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = true
		}
	}
	return &ExcludeIDs{ids: set}
}

func (f *ExcludeIDs) Name() string { return "filter.exclude_ids" }

func (f *ExcludeIDs) ShouldFilter(_ context.Context, _ *core.Query, c *core.Candidate) (bool, error) {
	return f.ids[c.ID], nil
}
