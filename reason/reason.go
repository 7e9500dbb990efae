// Package reason 提供推荐理由生成：规则驱动的后处理 Node。
//
// 规则是顺序敏感的：先检查与种子多数品类的匹配，再检查多数颜色，
// 都不匹配时落到兜底文案。种子的多数属性由 Query 携带
// （多数票计算见 utils.Majority）。
package reason

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopperos/tastekit/core"
	"github.com/shopperos/tastekit/pipeline"
	"github.com/shopperos/tastekit/pkg/utils"
)

func annotate(c *core.Candidate, reason string) {
	c.Reason = reason
	c.PutLabel("reason", utils.Label{Value: reason, Source: "reason"})
}

// Alternatives 为"找替代品"生成理由：
// 同品类 → "Same style: {category}"；同颜色 → "Same color: {color}"；
// 否则 → "Similar style"。
type Alternatives struct{}

func (n *Alternatives) Name() string        { return "reason.alternatives" }
func (n *Alternatives) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *Alternatives) Process(
	_ context.Context,
	q *core.Query,
	items []*core.Candidate,
) ([]*core.Candidate, error) {
	for _, it := range items {
		if it == nil {
			continue
		}
		switch {
		case q.DominantCategory != "" && it.Category() == q.DominantCategory:
			annotate(it, "Same style: "+q.DominantCategory)
		case q.DominantColor != "" && it.Color() == q.DominantColor:
			annotate(it, "Same color: "+q.DominantColor)
		default:
			annotate(it, "Similar style")
		}
	}
	return items, nil
}

// GiftList 为"礼物清单补充"生成理由：
// 多数品类匹配 → "Matches their love of {category}s"；
// 多数颜色匹配 → "In their favorite color ({color})"；
// 否则 → "Complements items on their list"。
type GiftList struct{}

func (n *GiftList) Name() string        { return "reason.gift_list" }
func (n *GiftList) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *GiftList) Process(
	_ context.Context,
	q *core.Query,
	items []*core.Candidate,
) ([]*core.Candidate, error) {
	for _, it := range items {
		if it == nil {
			continue
		}
		switch {
		case q.DominantCategory != "" && it.Category() == q.DominantCategory:
			annotate(it, fmt.Sprintf("Matches their love of %ss", strings.ToLower(q.DominantCategory)))
		case q.DominantColor != "" && it.Color() == q.DominantColor:
			annotate(it, fmt.Sprintf("In their favorite color (%s)", q.DominantColor))
		default:
			annotate(it, "Complements items on their list")
		}
	}
	return items, nil
}

// Affinity 为"按画像送礼"生成理由：带亲和度百分比的固定文案，
// 如 "Matches their style (87% affinity)"。
type Affinity struct{}

func (n *Affinity) Name() string        { return "reason.affinity" }
func (n *Affinity) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *Affinity) Process(
	_ context.Context,
	_ *core.Query,
	items []*core.Candidate,
) ([]*core.Candidate, error) {
	for _, it := range items {
		if it == nil {
			continue
		}
		annotate(it, fmt.Sprintf("Matches their style (%.0f%% affinity)", it.Score*100))
	}
	return items, nil
}

// Static 为所有候选标注同一条固定理由（如精选礼物样本的 "Popular dress gift"）。
type Static struct {
	Reason string
}

func (n *Static) Name() string        { return "reason.static" }
func (n *Static) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *Static) Process(
	_ context.Context,
	_ *core.Query,
	items []*core.Candidate,
) ([]*core.Candidate, error) {
	for _, it := range items {
		if it == nil {
			continue
		}
		annotate(it, n.Reason)
	}
	return items, nil
}
