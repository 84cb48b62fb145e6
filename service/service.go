// Package service 提供 core.MLService 的基础设施实现：
// 对接外部推理服务（自定义 REST、TF Serving REST 等）。
package service

// Config 远程推理服务配置。
type Config struct {
	// Endpoint 服务端点，如 "http://localhost:8080/predict"
	Endpoint string

	// HealthEndpoint 健康检查端点（可选，缺省从 Endpoint 推导 /health）
	HealthEndpoint string

	// Timeout 超时时间（秒），缺省 5
	Timeout int

	// Auth 认证信息（可选）
	Auth *AuthConfig
}

// AuthConfig 认证配置
type AuthConfig struct {
	Type   string // "bearer", "api_key"
	Token  string
	APIKey string
}
