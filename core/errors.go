package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型，提供错误代码（Code）和消息（Message）
//   - 画像构建、文本相似度、日期解析的失败都在本库内部降级消化，
//     DomainError 只出现在日志/观测与显式的调用方契约违例（如 top_n <= 0）
type DomainError struct {
	Code    string // 错误代码（如 "INVALID_INPUT", "DATE_UNPARSEABLE"）
	Message string // 错误消息
	Module  string // 模块名称（如 "profile", "score", "store"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// GetDomainError 获取 DomainError，如果不是则返回 nil。
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// 错误代码常量
const (
	ErrorCodeNotFound        = "NOT_FOUND"        // 资源不存在
	ErrorCodeInvalidInput    = "INVALID_INPUT"    // 输入无效（调用方契约违例）
	ErrorCodeDateUnparseable = "DATE_UNPARSEABLE" // 活动日期无法解析
	ErrorCodeDegenerateText  = "DEGENERATE_TEXT"  // 文本退化，无法向量化
	ErrorCodeUnavailable     = "UNAVAILABLE"      // 依赖的数据源不可用
)

// 模块名称常量
const (
	ModuleProfile = "profile" // 画像构建
	ModuleScore   = "score"   // 相似度打分
	ModuleStore   = "store"   // 存储
	ModuleFeature = "feature" // 特征
)

// IsInvalidInput 检查错误是否为调用方契约违例。
func IsInvalidInput(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidInput
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND（含存储哨兵错误）。
func IsNotFound(err error) bool {
	if errors.Is(err, ErrStoreNotFound) {
		return true
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}
