package core

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message），调用方据此展示可操作的诊断信息
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Schema 错误：MISSING_FEATURES
//   - Model 错误：INFERENCE_FAILURE
//   - Explain 错误：EXPLANATION_FAILURE
//   - Report 错误：RENDER_FAILURE
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
type DomainError struct {
	Code    string // 错误代码（如 "MISSING_FEATURES", "INFERENCE_FAILURE"）
	Message string // 错误消息
	Module  string // 模块名称（如 "schema", "model", "report"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil。
// 使用 errors.As 以便穿透包装类型（如 MissingFeaturesError）。
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

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
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
	// 领域错误代码
	ErrorCodeMissingFeatures    = "MISSING_FEATURES"    // 输入缺少 schema 必需特征
	ErrorCodeInferenceFailure   = "INFERENCE_FAILURE"   // 某个分类器推理失败（整组失败）
	ErrorCodeExplanationFailure = "EXPLANATION_FAILURE" // 归因计算失败（仅降级，不失败）
	ErrorCodeRenderFailure      = "RENDER_FAILURE"      // 某种输出格式渲染失败

	// 通用错误代码
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeUnavailable   = "UNAVAILABLE"    // 服务不可用
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误
)

// 模块名称常量
const (
	ModuleSchema  = "schema"  // 特征 schema 对齐模块
	ModuleModel   = "model"   // 分类器模块
	ModuleExplain = "explain" // 归因模块
	ModuleReport  = "report"  // 报告模块
	ModuleStore   = "store"   // 存储模块
	ModuleFeature = "feature" // 特征来源模块
	ModuleService = "service" // 远程推理服务模块
)

// MissingFeaturesError 表示输入行缺少 schema 必需的特征列。
// Missing 中的名称供调用方逐条展示；匹配列为零时 Missing 即完整 schema。
type MissingFeaturesError struct {
	inner   *DomainError
	Missing []string
}

// NewMissingFeaturesError 创建缺失特征错误，missing 为缺失的特征名列表。
func NewMissingFeaturesError(missing []string) *MissingFeaturesError {
	return &MissingFeaturesError{
		inner: NewDomainError(ModuleSchema, ErrorCodeMissingFeatures,
			fmt.Sprintf("schema: missing required features: %s", strings.Join(missing, ", "))),
		Missing: missing,
	}
}

func (e *MissingFeaturesError) Error() string { return e.inner.Message }
func (e *MissingFeaturesError) Unwrap() error { return e.inner }

// InferenceError 表示某个标签的分类器推理失败。按契约整组预测随之失败。
type InferenceError struct {
	inner *DomainError
	Label string
	Cause error
}

// NewInferenceError 创建推理失败错误，label 为出错的抗生素标签。
func NewInferenceError(label string, cause error) *InferenceError {
	return &InferenceError{
		inner: NewDomainError(ModuleModel, ErrorCodeInferenceFailure,
			fmt.Sprintf("model: inference failed for %q: %v", label, cause)),
		Label: label,
		Cause: cause,
	}
}

func (e *InferenceError) Error() string { return e.inner.Message }

// Unwrap 同时暴露 DomainError 与底层原因，errors.Is/As 均可穿透。
func (e *InferenceError) Unwrap() []error { return []error{e.inner, e.Cause} }

// ExplanationError 表示某个标签的归因计算失败。按契约仅降级该标签的
// 归因列表，不影响预测结果本身。
type ExplanationError struct {
	inner *DomainError
	Label string
	Cause error
}

// NewExplanationError 创建归因失败错误，label 为出错的抗生素标签。
func NewExplanationError(label string, cause error) *ExplanationError {
	return &ExplanationError{
		inner: NewDomainError(ModuleExplain, ErrorCodeExplanationFailure,
			fmt.Sprintf("explain: attribution failed for %q: %v", label, cause)),
		Label: label,
		Cause: cause,
	}
}

func (e *ExplanationError) Error() string { return e.inner.Message }

// Unwrap 同时暴露 DomainError 与底层原因，errors.Is/As 均可穿透。
func (e *ExplanationError) Unwrap() []error { return []error{e.inner, e.Cause} }

// RenderError 表示某种输出格式渲染失败。各格式相互独立，互不影响。
type RenderError struct {
	inner  *DomainError
	Format string
}

// NewRenderError 创建渲染失败错误，format 为请求的输出格式名。
func NewRenderError(format string, cause error) *RenderError {
	return &RenderError{
		inner: NewDomainError(ModuleReport, ErrorCodeRenderFailure,
			fmt.Sprintf("report: render %q failed: %v", format, cause)),
		Format: format,
	}
}

func (e *RenderError) Error() string { return e.inner.Message }
func (e *RenderError) Unwrap() error { return e.inner }

// 错误检查函数

// IsMissingFeatures 检查错误是否为 MISSING_FEATURES
func IsMissingFeatures(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeMissingFeatures
	}
	return false
}

// IsInferenceFailure 检查错误是否为 INFERENCE_FAILURE
func IsInferenceFailure(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInferenceFailure
	}
	return false
}

// IsExplanationFailure 检查错误是否为 EXPLANATION_FAILURE
func IsExplanationFailure(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeExplanationFailure
	}
	return false
}

// IsRenderFailure 检查错误是否为 RENDER_FAILURE
func IsRenderFailure(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeRenderFailure
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotSupported
	}
	return false
}

// IsUnavailable 检查错误是否为 UNAVAILABLE
func IsUnavailable(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnavailable
	}
	return false
}
