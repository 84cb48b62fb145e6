package pipeline

import (
	"context"

	"github.com/rushteam/amrkit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindReconcile   Kind = "reconcile"   // 对齐阶段：原始行对齐到 schema，产出特征向量
	KindEnrich      Kind = "enrich"      // 补齐阶段：从特征库补齐上传缺失的列（可选）
	KindPredict     Kind = "predict"     // 预测阶段：全组模型推理，产出判定与概率
	KindExplain     Kind = "explain"     // 归因阶段：为耐药判定计算特征贡献
	KindRule        Kind = "rule"        // 规则阶段：产出临床决策建议
	KindPostProcess Kind = "postprocess" // 后处理阶段：补充元信息或最终结果修饰
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 predictions -> 输出 predictions”的形态：
// Predict 生成、Explain 注解、Rule 标记均在同一形态下完成；
// 对齐/补齐等请求级操作通过 PredictContext 透传。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		pctx *core.PredictContext,
		preds []*core.Prediction,
	) ([]*core.Prediction, error)
}
