package feature

import (
	"context"

	"github.com/rushteam/amrkit/core"
	"github.com/rushteam/amrkit/pipeline"
	"github.com/rushteam/amrkit/pkg/utils"
)

// EnrichNode 是补齐阶段的 Pipeline Node：上传的表格行缺列时，
// 按 PatientID 从特征来源读取特征，仅填入原始行中不存在的列。
//
// 约束：
//   - 绝不覆盖上传值（上传数据优先于特征库快照）
//   - 补齐失败只记录标签并放行：后续 reconcile 仍会按完整性契约校验，
//     缺列照常报 MISSING_FEATURES，这里不吞掉任何缺失
//   - 补齐不是默认填充：来源里也没有的特征依旧缺失
type EnrichNode struct {
	Source core.FeatureSource
}

func (n *EnrichNode) Name() string        { return "feature.enrich" }
func (n *EnrichNode) Kind() pipeline.Kind { return pipeline.KindEnrich }

func (n *EnrichNode) Process(
	ctx context.Context,
	pctx *core.PredictContext,
	preds []*core.Prediction,
) ([]*core.Prediction, error) {
	if n.Source == nil || pctx.PatientID == "" {
		return preds, nil
	}

	features, err := n.Source.GetPatientFeatures(ctx, pctx.PatientID)
	if err != nil {
		pctx.PutLabel("enrich_error", utils.Label{Value: err.Error(), Source: "enrich"})
		return preds, nil
	}

	if pctx.Raw == nil {
		pctx.Raw = make(map[string]any, len(features))
	}
	filled := 0
	for name, val := range features {
		if _, exists := pctx.Raw[name]; exists {
			continue
		}
		pctx.Raw[name] = val
		filled++
	}
	if filled > 0 {
		pctx.PutLabel("enrich_source", utils.Label{Value: n.Source.Name(), Source: "enrich"})
	}
	return preds, nil
}
