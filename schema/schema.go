// Package schema 负责期望特征 schema 的加载与原始表格行的对齐（reconcile）。
//
// schema 是进程级单例：启动时加载一次，之后只读。每个模型训练时使用的
// 特征列表与顺序即由它固定，所有请求的特征向量都必须满足这一契约。
package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/amrkit/core"
)

// Schema 是有序的期望特征集合：名称顺序即向量顺序，加载后不可变。
type Schema struct {
	features []string
	index    map[string]int
}

// New 从特征名列表创建 Schema。列表为空或含重复名时报错，
// 启动期校验失败应视为进程不可服务。
func New(features []string) (*Schema, error) {
	if len(features) == 0 {
		return nil, core.NewDomainError(core.ModuleSchema, core.ErrorCodeInvalidInput, "schema: empty feature list")
	}
	index := make(map[string]int, len(features))
	for i, f := range features {
		name := strings.TrimSpace(f)
		if name == "" {
			return nil, core.NewDomainError(core.ModuleSchema, core.ErrorCodeInvalidInput, "schema: blank feature name")
		}
		if _, ok := index[name]; ok {
			return nil, core.NewDomainError(core.ModuleSchema, core.ErrorCodeInvalidInput,
				fmt.Sprintf("schema: duplicate feature %q", name))
		}
		index[name] = i
	}
	// 保留 trim 后的名称，保证匹配与展示一致
	trimmed := make([]string, len(features))
	for i, f := range features {
		trimmed[i] = strings.TrimSpace(f)
	}
	return &Schema{features: trimmed, index: index}, nil
}

// Features 返回特征名的副本（保持顺序），调用方可安全持有。
func (s *Schema) Features() []string {
	out := make([]string, len(s.features))
	copy(out, s.features)
	return out
}

// Len 返回特征数量。
func (s *Schema) Len() int { return len(s.features) }

// Contains 判断特征名是否属于 schema。
func (s *Schema) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// schemaFile 是 schema 清单的序列化形式（YAML/JSON 通用）。
type schemaFile struct {
	Features []string `yaml:"features" json:"features"`
}

// Load 从 YAML 或 JSON 文件加载 schema。
// 文件格式：{"features": ["age", "bacteria_count", ...]}
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	return Parse(data)
}

// Parse 解析 schema 清单字节（先试 JSON，失败退回 YAML）。
func Parse(data []byte) (*Schema, error) {
	var sf schemaFile
	if err := json.Unmarshal(data, &sf); err != nil {
		if err := yaml.Unmarshal(data, &sf); err != nil {
			return nil, fmt.Errorf("parse schema: %w", err)
		}
	}
	return New(sf.Features)
}

// LoadFromStore 从 Store 按 key 加载 schema 快照，支持 redis 分发部署。
func LoadFromStore(ctx context.Context, st core.Store, key string) (*Schema, error) {
	data, err := st.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load schema from %s: %w", st.Name(), err)
	}
	return Parse(data)
}
