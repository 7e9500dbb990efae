package core

// Query 承载一次推荐调用的种子信息，贯穿整个 Pipeline 透传。
// 每次调用独立构建，调用之间不共享状态。
type Query struct {
	UserID string // 目标用户（可为空，如"找替代品"）

	// Vector 是种子向量：用户口味向量、商品 Embedding 或清单均值向量
	Vector []float64

	// K 是目标返回条数；召回阶段会按超采样系数放大
	K int

	// DominantCategory / DominantColor 是种子集合的多数属性，
	// 由多数票计算，平局按首次出现顺序；用于理由生成与匹配规则
	DominantCategory string
	DominantColor    string

	// Params 请求级扩展参数
	Params map[string]any
}
