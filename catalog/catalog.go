// Package catalog 提供商品目录的只读查询：按 ID、按品类、品类统计与抽样。
// 目录由加载协作方在启动时一次性构建，此后不可变，可无锁并发读。
package catalog

import (
	"math/rand"
	"sort"

	"github.com/shopperos/tastekit/core"
)

// Catalog 是不可变的商品目录。
type Catalog struct {
	products   []*core.Product
	byID       map[string]*core.Product
	byCategory map[string][]*core.Product
	categories []string // 按商品数降序；数量相同按首次加载顺序
}

// New 从商品记录构建目录。商品 ID 重复时返回 INVARIANT 错误。
func New(products []*core.Product) (*Catalog, error) {
	c := &Catalog{
		products:   make([]*core.Product, 0, len(products)),
		byID:       make(map[string]*core.Product, len(products)),
		byCategory: make(map[string][]*core.Product),
	}

	firstSeen := make(map[string]int) // 品类 -> 首次出现序号，用于平局排序
	for _, p := range products {
		if p == nil || p.ID == "" {
			continue
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvariant,
				"catalog: duplicate product id "+p.ID)
		}
		c.byID[p.ID] = p
		c.products = append(c.products, p)
		if _, ok := firstSeen[p.Category]; !ok {
			firstSeen[p.Category] = len(firstSeen)
		}
		c.byCategory[p.Category] = append(c.byCategory[p.Category], p)
	}

	c.categories = make([]string, 0, len(c.byCategory))
	for cat := range c.byCategory {
		c.categories = append(c.categories, cat)
	}
	sort.Slice(c.categories, func(i, j int) bool {
		ci, cj := c.categories[i], c.categories[j]
		if len(c.byCategory[ci]) != len(c.byCategory[cj]) {
			return len(c.byCategory[ci]) > len(c.byCategory[cj])
		}
		return firstSeen[ci] < firstSeen[cj]
	})

	return c, nil
}

// Len 返回目录中的商品数。
func (c *Catalog) Len() int { return len(c.products) }

// ByID 按 ID 查找商品；不存在返回 (nil, false)。
func (c *Catalog) ByID(id string) (*core.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// ByCategory 返回某品类下的全部商品（加载顺序）。返回的切片不可修改。
func (c *Catalog) ByCategory(category string) []*core.Product {
	return c.byCategory[category]
}

// Categories 返回品类列表，按商品数降序排列，数量相同按首次加载顺序。
func (c *Catalog) Categories() []string {
	return c.categories
}

// TopCategories 返回商品数最多的前 n 个品类。
func (c *Catalog) TopCategories(n int) []string {
	if n <= 0 || n >= len(c.categories) {
		return c.categories
	}
	return c.categories[:n]
}

// Sample 从某品类无放回抽取至多 n 个商品。
// 随机源由调用方注入，保证测试可复现；rng 为 nil 时按加载顺序取前 n 个。
func (c *Catalog) Sample(category string, n int, rng *rand.Rand) []*core.Product {
	pool := c.byCategory[category]
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	if n > len(pool) {
		n = len(pool)
	}
	if rng == nil {
		out := make([]*core.Product, n)
		copy(out, pool[:n])
		return out
	}

	picked := make([]*core.Product, len(pool))
	copy(picked, pool)
	rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:n]
}
