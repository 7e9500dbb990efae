package core

import "context"

// TasteStore 是外部口味向量持久化服务的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层实现（store.RedisTasteStore、ext/feast）
//   - 调用方是 taste.ProfileStore 的降级链：失败/超时不向上传播，
//     只降级到下一层（demo 默认向量 / 冷启动）
//   - Upsert 要求幂等
type TasteStore interface {
	// Name 返回后端名称（用于日志/监控）
	Name() string

	// Get 获取用户口味向量；用户不存在返回 NOT_FOUND
	Get(ctx context.Context, userID string) ([]float64, error)

	// Upsert 幂等写入用户口味向量；只读后端可返回 NOT_SUPPORTED
	Upsert(ctx context.Context, userID string, vector []float64) error

	// Close 关闭连接/释放资源
	Close() error
}

var (
	// ErrTasteNotFound 表示用户没有持久化的口味向量（合法的冷启动信号，非故障）
	ErrTasteNotFound = NewDomainError(ModuleTaste, ErrorCodeNotFound, "taste: vector not found")
)
