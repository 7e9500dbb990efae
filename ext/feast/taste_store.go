// Package feast 把 Feast Feature Store 适配为只读的口味向量层。
//
// 口味向量以 double list 在线特征存储（例如 "user_taste:vector"），
// 由离线管道物化到 Feast 在线存储；本层只负责读取。
// 写入（Upsert）返回 NOT_SUPPORTED：Feast 的在线特征通过物化管道更新，
// 引擎侧的写路径应使用 store.KVTasteStore（Redis）。
//
// 参考：https://github.com/feast-dev/feast
package feast

import (
	"context"

	feastsdk "github.com/feast-dev/feast/sdk/go"

	"github.com/shopperos/tastekit/core"
)

// TasteStore 实现 core.TasteStore 的只读读取层。
type TasteStore struct {
	client    *feastsdk.GrpcClient
	project   string
	feature   string // 特征全名，如 "user_taste:vector"
	entityKey string // 实体 key，如 "user_id"
}

// Option 配置 TasteStore。
type Option func(*TasteStore)

// WithFeature 覆盖默认特征名（默认 "user_taste:vector"）。
func WithFeature(feature string) Option {
	return func(s *TasteStore) { s.feature = feature }
}

// WithEntityKey 覆盖默认实体 key（默认 "user_id"）。
func WithEntityKey(key string) Option {
	return func(s *TasteStore) { s.entityKey = key }
}

// NewTasteStore 创建 Feast 口味向量层。
//
// 参数：
//   - host/port: Feast Feature Server 的 gRPC 地址（port 为 0 时使用默认 6565）
//   - project: Feast 项目名
func NewTasteStore(host string, port int, project string, opts ...Option) (*TasteStore, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleTaste, core.ErrorCodeUnavailable,
			"feast: connect failed: "+err.Error())
	}

	s := &TasteStore{
		client:    client,
		project:   project,
		feature:   "user_taste:vector",
		entityKey: "user_id",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *TasteStore) Name() string { return "feast_taste" }

// Get 获取用户口味向量。
// 用户没有物化的向量时返回 NOT_FOUND（合法的冷启动信号）；
// 网络/服务错误返回 UNAVAILABLE，由上层降级链兜底。
func (s *TasteStore) Get(ctx context.Context, userID string) ([]float64, error) {
	req := &feastsdk.OnlineFeaturesRequest{
		Features: []string{s.feature},
		Entities: []feastsdk.Row{
			{s.entityKey: feastsdk.StrVal(userID)},
		},
		Project: s.project,
	}

	resp, err := s.client.GetOnlineFeatures(ctx, req)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleTaste, core.ErrorCodeUnavailable,
			"feast: get online features failed: "+err.Error())
	}

	rows := resp.Rows()
	if len(rows) == 0 {
		return nil, core.ErrTasteNotFound
	}

	val, ok := rows[0][s.feature]
	if !ok || val == nil {
		return nil, core.ErrTasteNotFound
	}

	list := val.GetDoubleListVal()
	if list == nil || len(list.GetVal()) == 0 {
		return nil, core.ErrTasteNotFound
	}
	return list.GetVal(), nil
}

// Upsert 不支持：Feast 在线特征由物化管道写入。
func (s *TasteStore) Upsert(ctx context.Context, userID string, vector []float64) error {
	return core.NewDomainError(core.ModuleTaste, core.ErrorCodeNotSupported,
		"feast: taste vectors are materialized offline, upsert not supported")
}

// Close 关闭客户端连接。
// 官方 SDK 没有显式的 Close 方法，连接由 gRPC 库管理。
func (s *TasteStore) Close() error {
	s.client = nil
	return nil
}

var _ core.TasteStore = (*TasteStore)(nil)
