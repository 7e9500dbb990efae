package core

// CatalogResult 是个性化目录的结果。
type CatalogResult struct {
	// Products 按亲和度降序排列的候选列表
	Products []*Candidate

	// ColdStart 为 true 表示用户无口味画像，结果来自热门榜降级
	ColdStart bool
}

// AlternativesResult 是"找替代品"的结果。
type AlternativesResult struct {
	// Source 作为种子的商品
	Source *Product

	// Alternatives 替代候选列表（不包含种子自身）
	Alternatives []*Candidate
}

// FeedSection 是发现流中的一个版块。
// 版块顺序与标题是对外契约的一部分，不可调整。
type FeedSection struct {
	Title    string       // 版块标题（如 "Just For Today"）
	Type     string       // 版块类型：personalized / new_arrivals / trending
	Products []*Candidate // 版块内容
}

// FeedResult 是发现流的结果：固定三个版块，顺序固定。
type FeedResult struct {
	Sections []FeedSection
}

// GiftResult 是礼物推荐的结果。
type GiftResult struct {
	// Suggestions 礼物候选列表
	Suggestions []*Candidate

	// EmptyList 为 true 表示输入清单为空（或全部无法解析），结果来自精选品类样本
	EmptyList bool
}

// CalibrationResult 是标定计算的结果。
// TasteVector 不会自动持久化，持久化是独立的显式调用。
type CalibrationResult struct {
	// TasteVector 归一化后的口味向量
	TasteVector []float64

	// Recommendations 基于新口味向量的即时推荐（排除标定中滑过的商品）
	Recommendations []*Candidate
}
