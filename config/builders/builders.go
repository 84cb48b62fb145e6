// Package builders 注册内置 Node 的构建逻辑，供配置驱动的装配使用。
//
// 纯配置即可构建的 Node（schema.reconcile、rule.cel）在 init 中注册；
// 依赖运行时实例的 Node（predict.panel、explain.topk、feature.enrich）
// 通过 Register* 函数在装配期闭包注册。
package builders

import (
	"fmt"

	"github.com/rushteam/amrkit/config"
	"github.com/rushteam/amrkit/core"
	"github.com/rushteam/amrkit/ensemble"
	"github.com/rushteam/amrkit/explain"
	"github.com/rushteam/amrkit/feature"
	"github.com/rushteam/amrkit/pipeline"
	"github.com/rushteam/amrkit/pkg/conv"
	"github.com/rushteam/amrkit/registry"
	"github.com/rushteam/amrkit/rules"
	"github.com/rushteam/amrkit/schema"
)

func init() {
	config.Register("schema.reconcile", buildReconcileNode)
	config.Register("rule.cel", buildRuleNode)
}

// RegisterPanelNodes 注册依赖 Registry 实例的预测与归因 Node。
func RegisterPanelNodes(reg *registry.Registry) {
	config.Register("predict.panel", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return &ensemble.PredictNode{
			Registry:      reg,
			MaxConcurrent: int(conv.ConfigGetInt64(cfg, "max_concurrent", 0)),
		}, nil
	})
	config.Register("explain.topk", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return &explain.Node{
			Registry:      reg,
			TopK:          int(conv.ConfigGetInt64(cfg, "top_k", explain.DefaultTopK)),
			MaxConcurrent: int(conv.ConfigGetInt64(cfg, "max_concurrent", 0)),
		}, nil
	})
}

// RegisterEnrichNode 注册依赖特征来源实例的补齐 Node。
func RegisterEnrichNode(src core.FeatureSource) {
	config.Register("feature.enrich", func(_ map[string]interface{}) (pipeline.Node, error) {
		return &feature.EnrichNode{Source: src}, nil
	})
}

// buildReconcileNode 构建对齐 Node。
// 配置：features（内联特征名列表）或 path（schema 清单文件路径），二选一。
func buildReconcileNode(cfg map[string]interface{}) (pipeline.Node, error) {
	if features := conv.SliceAnyToString(cfg["features"]); len(features) > 0 {
		s, err := schema.New(features)
		if err != nil {
			return nil, err
		}
		return &schema.ReconcileNode{Schema: s}, nil
	}
	if path := conv.ConfigGet[string](cfg, "path", ""); path != "" {
		s, err := schema.Load(path)
		if err != nil {
			return nil, err
		}
		return &schema.ReconcileNode{Schema: s}, nil
	}
	return nil, fmt.Errorf("schema.reconcile needs features or path")
}

// buildRuleNode 构建规则 Node。
// 配置：rules（条目含 name/expr/message 的列表）；缺省使用内置规则集。
func buildRuleNode(cfg map[string]interface{}) (pipeline.Node, error) {
	rawRules, ok := cfg["rules"].([]interface{})
	if !ok || len(rawRules) == 0 {
		return &rules.Node{Rules: rules.Default()}, nil
	}

	parsed := make([]rules.Rule, 0, len(rawRules))
	for _, rr := range rawRules {
		rm, ok := rr.(map[string]interface{})
		if !ok {
			continue
		}
		parsed = append(parsed, rules.Rule{
			Name:    conv.ConfigGet[string](rm, "name", ""),
			Expr:    conv.ConfigGet[string](rm, "expr", ""),
			Message: conv.ConfigGet[string](rm, "message", ""),
		})
	}
	compiled, err := rules.Compile(parsed)
	if err != nil {
		return nil, err
	}
	return &rules.Node{Rules: compiled}, nil
}
