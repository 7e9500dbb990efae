// Package tastekit 是一个购物个性化工具包（Taste Kit）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → ReRank → PostProcess）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测
// - 口味画像: 缓存优先、多层降级的用户口味向量（见 taste 包）
// - Node 可扩展: 自定义 Node 即可插拔扩展召回源与过滤策略
package tastekit

import "github.com/shopperos/tastekit/pipeline"

// 轻量 facade：便于用户直接 import "tastekit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
