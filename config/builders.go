package config

import (
	"fmt"

	"github.com/shopperos/tastekit/filter"
	"github.com/shopperos/tastekit/pipeline"
	"github.com/shopperos/tastekit/pkg/conv"
	"github.com/shopperos/tastekit/reason"
	"github.com/shopperos/tastekit/recall"
	"github.com/shopperos/tastekit/rerank"
)

func init() {
	Register("recall.popular", buildPopularNode)
	Register("recall.trending", buildTrendingNode)
	Register("filter.price", buildPriceFilterNode)
	Register("filter.exclude_ids", buildExcludeIDsNode)
	Register("filter.exclude_categories", buildExcludeCategoriesNode)
	Register("filter.category", buildCategoryFilterNode)
	Register("filter.expr", buildExprFilterNode)
	Register("rerank.diversity", buildDiversityNode)
	Register("rerank.topn", buildTopNNode)
	Register("reason.static", buildStaticReasonNode)
}

func buildPopularNode(cfg map[string]interface{}) (pipeline.Node, error) {
	ids := conv.SliceAnyToString(cfg["ids"])
	return &recall.Popular{
		Key: conv.ConfigGet(cfg, "key", ""),
		IDs: ids,
	}, nil
}

func buildTrendingNode(cfg map[string]interface{}) (pipeline.Node, error) {
	node := &recall.Trending{
		KeyPrefix: conv.ConfigGet(cfg, "key_prefix", ""),
		Window:    conv.ConfigGet(cfg, "window", ""),
	}
	if windows, ok := cfg["windows"].(map[string]interface{}); ok {
		node.Windows = make(map[string][]string, len(windows))
		for w, v := range windows {
			node.Windows[w] = conv.SliceAnyToString(v)
		}
	}
	return node, nil
}

func buildPriceFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &filter.FilterNode{Filters: []filter.Filter{
		&filter.PriceRange{
			Min: conv.ConfigGetFloat64(cfg, "min", 0),
			Max: conv.ConfigGetFloat64(cfg, "max", 0),
		},
	}}, nil
}

func buildExcludeIDsNode(cfg map[string]interface{}) (pipeline.Node, error) {
	ids := conv.SliceAnyToString(cfg["ids"])
	return &filter.FilterNode{Filters: []filter.Filter{
		filter.NewExcludeIDs(ids),
	}}, nil
}

func buildExcludeCategoriesNode(cfg map[string]interface{}) (pipeline.Node, error) {
	categories := conv.SliceAnyToString(cfg["categories"])
	return &filter.FilterNode{Filters: []filter.Filter{
		filter.NewExcludeCategories(categories),
	}}, nil
}

func buildCategoryFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &filter.FilterNode{Filters: []filter.Filter{
		&filter.Category{Value: conv.ConfigGet(cfg, "category", "")},
	}}, nil
}

func buildExprFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	expr := conv.ConfigGet(cfg, "expr", "")
	if expr == "" {
		return nil, fmt.Errorf("filter.expr: expr is required")
	}
	f, err := filter.NewExpr(expr)
	if err != nil {
		return nil, err
	}
	return &filter.FilterNode{Filters: []filter.Filter{f}}, nil
}

func buildDiversityNode(map[string]interface{}) (pipeline.Node, error) {
	return &rerank.Diversity{}, nil
}

func buildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopN{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
}

func buildStaticReasonNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &reason.Static{Reason: conv.ConfigGet(cfg, "reason", "")}, nil
}
