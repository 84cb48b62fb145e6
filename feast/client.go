// Package feast 提供 Feast Feature Store 的客户端封装，
// 作为患者特征的在线来源（feature.FeastSource 的底层依赖）。
package feast

import (
	"context"
	"time"
)

// Client 是 Feast Feature Store 的客户端接口。
//
// Feast 是一个开源的 Feature Store，提供在线特征存储与特征服务。
// 在本系统中的用途：按患者实体 ID 获取化验/临床特征，
// 供上传缺列时的补齐节点使用。
//
// 实现：
//   - GrpcClient：基于官方 Go SDK（本包）
//   - 也可自行实现此接口对接 HTTP Feature Server
type Client interface {
	// GetOnlineFeatures 获取在线特征（用于实时预测）
	//
	// 参数：
	//   - Features: 特征名称列表，例如 ["patient_labs:bacteria_count"]
	//   - EntityRows: 实体行，例如 [{"patient_id": "p-1001"}]
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表
	Features []string

	// EntityRows 实体行，每行是实体键到实体值的映射
	EntityRows []map[string]interface{}

	// Project 项目名称（可选，缺省用客户端配置）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	// Rows 特征行，与请求的 EntityRows 一一对应
	Rows []FeatureRow

	// Metadata 附加元信息
	Metadata map[string]interface{}
}

// FeatureRow 是单个实体的特征行。
type FeatureRow struct {
	// Values 特征名到特征值的映射
	Values map[string]interface{}

	// EntityRow 对应的实体行
	EntityRow map[string]interface{}
}

// ClientConfig 客户端配置
type ClientConfig struct {
	Endpoint string
	Project  string
	Timeout  time.Duration
	Auth     *AuthConfig
}

// AuthConfig 认证配置
type AuthConfig struct {
	Type  string // "static"
	Token string
}

// ClientOption 客户端配置选项
type ClientOption func(*ClientConfig)

// WithTimeout 设置请求超时。
func WithTimeout(d time.Duration) ClientOption {
	return func(c *ClientConfig) { c.Timeout = d }
}

// WithStaticAuth 设置静态 Token 认证。
func WithStaticAuth(token string) ClientOption {
	return func(c *ClientConfig) {
		c.Auth = &AuthConfig{Type: "static", Token: token}
	}
}
