// Package filter 提供候选过滤：排除清单、价格区间、品类约束与 CEL 规则。
package filter

import (
	"context"

	"github.com/shopperos/tastekit/core"
)

// Filter 判断单个候选是否应被过滤掉。
// 返回 true 表示剔除该候选。
type Filter interface {
	Name() string
	ShouldFilter(ctx context.Context, q *core.Query, c *core.Candidate) (bool, error)
}
