package recall

import (
	"context"

	"github.com/shopperos/tastekit/core"
)

// Source 表示一个可复用的召回源（向量近邻/热门/趋势/...）。
// 你可以把它理解为"可并发 fan-out 的策略单元"。
type Source interface {
	Name() string
	Recall(ctx context.Context, q *core.Query) ([]*core.Candidate, error)
}

// NeutralScore 是无分数榜单项的固定中性亲和度。
const NeutralScore = 0.5
