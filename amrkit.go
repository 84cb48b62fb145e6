package amrkit

import (
	"context"
	"fmt"

	"github.com/rushteam/amrkit/core"
	"github.com/rushteam/amrkit/ensemble"
	"github.com/rushteam/amrkit/explain"
	"github.com/rushteam/amrkit/feature"
	"github.com/rushteam/amrkit/pipeline"
	"github.com/rushteam/amrkit/registry"
	"github.com/rushteam/amrkit/report"
	"github.com/rushteam/amrkit/rules"
	"github.com/rushteam/amrkit/schema"
)

// Engine 将 Schema 校验、模型面板推理、归因解释与建议规则
// 组装成一条固定流水线，对外暴露单一入口 Predict。
type Engine struct {
	schema   *schema.Schema
	registry *registry.Registry
	pipe     *pipeline.Pipeline
}

// EngineOption 配置 Engine 的可选能力。
type EngineOption func(*engineOptions)

type engineOptions struct {
	source        core.FeatureSource
	rules         []rules.Rule
	topK          int
	maxConcurrent int
}

// WithFeatureSource 在 Reconcile 之前从特征源补齐缺失的患者特征。
func WithFeatureSource(src core.FeatureSource) EngineOption {
	return func(o *engineOptions) { o.source = src }
}

// WithRules 覆盖默认的临床建议规则集。
func WithRules(rs []rules.Rule) EngineOption {
	return func(o *engineOptions) { o.rules = rs }
}

// WithTopK 设置每个耐药标签保留的归因条数。
func WithTopK(k int) EngineOption {
	return func(o *engineOptions) { o.topK = k }
}

// WithMaxConcurrent 限制面板推理与解释阶段的并发度。
func WithMaxConcurrent(n int) EngineOption {
	return func(o *engineOptions) { o.maxConcurrent = n }
}

// NewEngine 构建固定流水线：
// [enrich] → reconcile → predict.panel → explain.topk → rule.cel
func NewEngine(s *schema.Schema, reg *registry.Registry, opts ...EngineOption) (*Engine, error) {
	if s == nil {
		return nil, fmt.Errorf("amrkit: schema is nil")
	}
	if reg == nil {
		return nil, fmt.Errorf("amrkit: registry is nil")
	}
	o := &engineOptions{topK: explain.DefaultTopK}
	for _, opt := range opts {
		opt(o)
	}
	ruleSet := o.rules
	if ruleSet == nil {
		ruleSet = rules.Default()
	}
	compiled, err := rules.Compile(ruleSet)
	if err != nil {
		return nil, err
	}

	var nodes []pipeline.Node
	if o.source != nil {
		nodes = append(nodes, &feature.EnrichNode{Source: o.source})
	}
	nodes = append(nodes,
		&schema.ReconcileNode{Schema: s},
		&ensemble.PredictNode{Registry: reg, MaxConcurrent: o.maxConcurrent},
		&explain.Node{Registry: reg, TopK: o.topK, MaxConcurrent: o.maxConcurrent},
		&rules.Node{Rules: compiled},
	)
	return &Engine{
		schema:   s,
		registry: reg,
		pipe:     &pipeline.Pipeline{Nodes: nodes},
	}, nil
}

// Predict 对单个患者样本执行完整面板预测并组装报告。
// raw 为原始列名到取值的映射（如 CSV 首行解析结果），多余列忽略，
// 缺失 Schema 列会返回 MissingFeaturesError。
func (e *Engine) Predict(ctx context.Context, patientID string, raw map[string]any) (*core.Report, error) {
	pctx := core.NewPredictContext(patientID, raw)
	preds, err := e.pipe.Run(ctx, pctx, nil)
	if err != nil {
		return nil, err
	}
	return report.Assemble(patientID, preds, pctx.Suggestions), nil
}

// Render 将 Report 渲染为指定格式（report.Render 的便捷转发）。
func Render(r *core.Report, format report.Format) ([]byte, error) {
	return report.Render(r, format)
}

// Schema 返回引擎使用的特征 Schema。
func (e *Engine) Schema() *schema.Schema { return e.schema }

// Registry 返回引擎使用的模型注册表。
func (e *Engine) Registry() *registry.Registry { return e.registry }
