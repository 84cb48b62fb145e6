package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rushteam/amrkit/core"
)

// RESTClient 是通过 HTTP/REST 调用外部推理服务的 core.MLService 实现。
//
// 请求格式（JSON）：
//
//	{"features_list": [{"age": 34, "bacteria_count": 1200}, ...]}
//	或 {"instances": [[34, 1200], ...]}
//
// 响应格式（JSON）：
//
//	{"scores": [0.81, ...]}
type RESTClient struct {
	Endpoint       string
	HealthEndpoint string
	Client         *http.Client
	Auth           *AuthConfig
}

// NewRESTClient 创建 REST 推理客户端。
func NewRESTClient(cfg *Config) *RESTClient {
	timeout := 5 * time.Second
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}
	health := cfg.HealthEndpoint
	if health == "" {
		health = strings.TrimSuffix(cfg.Endpoint, "/predict") + "/health"
	}
	return &RESTClient{
		Endpoint:       cfg.Endpoint,
		HealthEndpoint: health,
		Client:         &http.Client{Timeout: timeout},
		Auth:           cfg.Auth,
	}
}

// Predict 批量预测（实现 core.MLService 接口）
func (c *RESTClient) Predict(ctx context.Context, req *core.MLPredictRequest) (*core.MLPredictResponse, error) {
	if len(req.Features) == 0 && len(req.Instances) == 0 {
		return &core.MLPredictResponse{Predictions: []float64{}}, nil
	}

	body := map[string]any{}
	want := 0
	if len(req.Features) > 0 {
		body["features_list"] = req.Features
		want = len(req.Features)
	} else {
		body["instances"] = req.Instances
		want = len(req.Instances)
	}
	if req.ModelName != "" {
		body["model"] = req.ModelName
	}
	if req.ModelVersion != "" {
		body["version"] = req.ModelVersion
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.applyAuth(httpReq)

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("rest call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("rest error: status=%d, read body failed: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("rest error: status=%d, body=%s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Scores       []float64 `json:"scores"`
		ModelVersion string    `json:"model_version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(result.Scores) != want {
		return nil, fmt.Errorf("response scores count mismatch: expected %d, got %d", want, len(result.Scores))
	}

	return &core.MLPredictResponse{
		Predictions:  result.Scores,
		ModelVersion: result.ModelVersion,
	}, nil
}

// Health 健康检查（实现 core.MLService 接口）
func (c *RESTClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.HealthEndpoint, nil)
	if err != nil {
		return err
	}
	c.applyAuth(req)
	resp, err := c.Client.Do(req)
	if err != nil {
		return core.NewDomainError(core.ModuleService, core.ErrorCodeUnavailable,
			fmt.Sprintf("service: health check failed: %v", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return core.NewDomainError(core.ModuleService, core.ErrorCodeUnavailable,
			fmt.Sprintf("service: health check status %d", resp.StatusCode))
	}
	return nil
}

// Close 关闭连接（实现 core.MLService 接口）
func (c *RESTClient) Close(ctx context.Context) error {
	c.Client.CloseIdleConnections()
	return nil
}

func (c *RESTClient) applyAuth(req *http.Request) {
	if c.Auth == nil {
		return
	}
	switch c.Auth.Type {
	case "bearer":
		req.Header.Set("Authorization", "Bearer "+c.Auth.Token)
	case "api_key":
		req.Header.Set("X-API-Key", c.Auth.APIKey)
	}
}

var _ core.MLService = (*RESTClient)(nil)
