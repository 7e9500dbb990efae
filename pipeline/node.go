package pipeline

import (
	"context"

	"github.com/shopperos/tastekit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall      Kind = "recall"      // 召回阶段：生成候选集
	KindFilter      Kind = "filter"      // 过滤阶段：剔除不符合约束的候选
	KindReRank      Kind = "rerank"      // 重排阶段：多样性约束与截断
	KindPostProcess Kind = "postprocess" // 后处理阶段：理由生成等最终修饰
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 candidates -> 输出 candidates"的形态，
// 方便召回生成、过滤截断、多样性重排、理由标注等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		q *core.Query,
		items []*core.Candidate,
	) ([]*core.Candidate, error)
}
