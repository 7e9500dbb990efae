package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - 输入校验：INVALID_INPUT（例如标定时 liked 列表为空）
//   - 资源缺失：NOT_FOUND（未知商品/用户，多数调用方按软条件降级处理）
//   - 外部依赖：UNAVAILABLE（外部口味向量服务超时/出错，只在边界内部使用）
//   - 程序错误：INVARIANT（向量维度不匹配、索引构建非法，立即失败不降级）
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "INVARIANT"）
	Message string // 错误消息
	Module  string // 模块名称（如 "catalog", "embedding", "taste"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound     = "NOT_FOUND"     // 资源不存在
	ErrorCodeNotSupported = "NOT_SUPPORTED" // 操作不支持
	ErrorCodeUnavailable  = "UNAVAILABLE"   // 外部服务不可用
	ErrorCodeInvalidInput = "INVALID_INPUT" // 输入无效
	ErrorCodeInvariant    = "INVARIANT"     // 不变量被破坏（程序错误）
)

// 模块名称常量
const (
	ModuleStore     = "store"     // 存储模块
	ModuleCatalog   = "catalog"   // 商品目录模块
	ModuleEmbedding = "embedding" // 向量索引模块
	ModuleTaste     = "taste"     // 口味画像模块
	ModuleEngine    = "engine"    // 推荐引擎模块
)

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool { return hasCode(err, ErrorCodeNotSupported) }

// IsUnavailable 检查错误是否为 UNAVAILABLE
func IsUnavailable(err error) bool { return hasCode(err, ErrorCodeUnavailable) }

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool { return hasCode(err, ErrorCodeInvalidInput) }

// IsInvariant 检查错误是否为 INVARIANT
func IsInvariant(err error) bool { return hasCode(err, ErrorCodeInvariant) }
