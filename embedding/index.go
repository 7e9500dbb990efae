// Package embedding 提供商品 Embedding 的不可变索引与穷举式 Top-K 检索。
//
// 设计取舍：目录规模为中小型，穷举打分（O(n·d) / 次查询）可以接受；
// 近似索引（ANN）是优化项，不在本包范围内。索引构建是批量加载操作，
// 不在热路径上，也不支持增量更新。
package embedding

import (
	"fmt"
	"sort"

	"github.com/shopperos/tastekit/core"
	"github.com/shopperos/tastekit/pkg/vectormath"
)

// Index 是不可变的 Embedding 矩阵 + id↔行号双向映射。
// 构建完成后只读，可被任意数量的并发读者无锁访问。
type Index struct {
	vectors [][]float64
	ids     []string       // 行号 -> 商品 ID
	rows    map[string]int // 商品 ID -> 行号
	dim     int
}

// Neighbor 是一次检索命中的结果项。
type Neighbor struct {
	ID    string  // 商品 ID
	Row   int     // 索引行号
	Score float64 // 与查询向量的点积
}

// Build 构建索引。每个向量与 ids 中同位置的商品 ID 一一对应。
//
// 以下情况返回 INVARIANT 错误（程序错误，立即失败，不降级）：
//   - 向量数与 ID 数不一致
//   - 向量维度不一致（以首个向量为准）
//   - 商品 ID 重复
func Build(vectors [][]float64, ids []string) (*Index, error) {
	if len(vectors) != len(ids) {
		return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeInvariant,
			fmt.Sprintf("embedding: %d vectors but %d ids", len(vectors), len(ids)))
	}
	if len(vectors) == 0 {
		return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeInvariant,
			"embedding: empty index")
	}

	dim := len(vectors[0])
	rows := make(map[string]int, len(ids))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeInvariant,
				fmt.Sprintf("embedding: vector %d has dimension %d, want %d", i, len(v), dim))
		}
		if _, dup := rows[ids[i]]; dup {
			return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeInvariant,
				"embedding: duplicate id "+ids[i])
		}
		rows[ids[i]] = i
	}

	idsCopy := make([]string, len(ids))
	copy(idsCopy, ids)

	return &Index{
		vectors: vectors,
		ids:     idsCopy,
		rows:    rows,
		dim:     dim,
	}, nil
}

// Dimension 返回索引的向量维度。
func (idx *Index) Dimension() int { return idx.dim }

// Len 返回索引的行数。
func (idx *Index) Len() int { return len(idx.ids) }

// Vector 按商品 ID 查找 Embedding；不存在时返回 (nil, false)。
func (idx *Index) Vector(id string) ([]float64, bool) {
	row, ok := idx.rows[id]
	if !ok {
		return nil, false
	}
	return idx.vectors[row], true
}

// Nearest 对每一行计算 score = dot(embedding, query)，返回分数最高的 k 项，
// 按分数降序排列。分数相同的行按行号升序排列（显式确定的平局规则，保证可复现）。
// k 大于行数时返回全部行。
//
// 查询向量维度与索引不一致时返回 INVARIANT 错误。
func (idx *Index) Nearest(query []float64, k int) ([]Neighbor, error) {
	if len(query) != idx.dim {
		return nil, core.NewDomainError(core.ModuleEmbedding, core.ErrorCodeInvariant,
			fmt.Sprintf("embedding: query dimension %d, index dimension %d", len(query), idx.dim))
	}
	if k <= 0 {
		return nil, nil
	}

	neighbors := make([]Neighbor, len(idx.vectors))
	for i, v := range idx.vectors {
		neighbors[i] = Neighbor{
			ID:    idx.ids[i],
			Row:   i,
			Score: vectormath.Dot(v, query),
		}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Score != neighbors[j].Score {
			return neighbors[i].Score > neighbors[j].Score
		}
		return neighbors[i].Row < neighbors[j].Row
	})

	if k < len(neighbors) {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}
