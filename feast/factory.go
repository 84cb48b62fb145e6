package feast

import (
	"fmt"
	"strconv"
	"strings"
)

// NewClient 统一的客户端创建函数：解析 endpoint 并创建 gRPC 客户端。
//
// 参数：
//   - endpoint: 服务端点，如 "localhost:6565" 或 "grpc://localhost:6565"
//   - project: 项目名称
//
// 示例：
//
//	client, err := feast.NewClient("localhost:6565", "uti_amr")
func NewClient(endpoint, project string, opts ...ClientOption) (Client, error) {
	endpoint = strings.TrimPrefix(endpoint, "grpc://")

	host := endpoint
	port := 0
	if i := strings.LastIndex(endpoint, ":"); i >= 0 {
		host = endpoint[:i]
		p, err := strconv.Atoi(endpoint[i+1:])
		if err != nil {
			return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
		}
		port = p
	}
	if host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: empty host", endpoint)
	}

	return NewGrpcClient(host, port, project, opts...)
}
