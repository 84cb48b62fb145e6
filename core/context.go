package core

import "github.com/rushteam/amrkit/pkg/utils"

// PredictContext 承载单次请求的患者/输入信息，贯穿整个 Pipeline 透传。
// 除 Pipeline 节点按阶段写入的字段（Vector、Suggestions）外，其余字段只读。
type PredictContext struct {
	// PatientID 患者标识，调用方提供的不透明 ID（仅用于报告归属与产物命名，核心不生成）
	PatientID string

	// Raw 原始表格行：任意列名到标量值的映射，列集与顺序不限
	Raw map[string]any

	// Vector 对齐后的特征向量，由 reconcile 节点写入；写入后只读
	Vector *FeatureVector

	// Suggestions 临床决策建议，由 rule 节点累积写入
	Suggestions []string

	// Labels 请求级标签，可驱动整个 Pipeline 行为与观测
	Labels map[string]utils.Label

	// Params 请求级上下文参数（如上传来源、请求场景等）
	Params map[string]any
}

// NewPredictContext 创建一次请求的上下文。
func NewPredictContext(patientID string, raw map[string]any) *PredictContext {
	return &PredictContext{
		PatientID: patientID,
		Raw:       raw,
		Labels:    make(map[string]utils.Label),
		Params:    make(map[string]any),
	}
}

// PutLabel 写入请求级 Label。
func (pctx *PredictContext) PutLabel(key string, lbl utils.Label) {
	if pctx.Labels == nil {
		pctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := pctx.Labels[key]; ok {
		pctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	pctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (pctx *PredictContext) GetLabel(key string) (utils.Label, bool) {
	if pctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := pctx.Labels[key]
	return lbl, ok
}
