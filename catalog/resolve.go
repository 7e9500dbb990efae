package catalog

import (
	"context"

	"github.com/shopperos/tastekit/core"
	"github.com/shopperos/tastekit/pipeline"
)

// Resolver 是候选解析 Node：把候选 ID 解析为商品记录并挂到 Candidate 上。
// 目录中不存在的候选按软条件处理：直接跳过，不报错。
// 召回（索引行）与目录理论上 1:1 对应，跳过只发生在两者短暂不同步时。
type Resolver struct {
	Catalog *Catalog
}

func (n *Resolver) Name() string        { return "catalog.resolve" }
func (n *Resolver) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *Resolver) Process(
	_ context.Context,
	_ *core.Query,
	items []*core.Candidate,
) ([]*core.Candidate, error) {
	if n.Catalog == nil {
		return items, nil
	}

	out := make([]*core.Candidate, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if it.Product == nil {
			p, ok := n.Catalog.ByID(it.ID)
			if !ok {
				continue
			}
			it.Product = p
		}
		out = append(out, it)
	}
	return out, nil
}
