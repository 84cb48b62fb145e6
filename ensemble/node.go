package ensemble

import (
	"context"

	"github.com/rushteam/amrkit/core"
	"github.com/rushteam/amrkit/pipeline"
	"github.com/rushteam/amrkit/registry"
)

// PredictNode 是预测阶段的 Pipeline Node：对 PredictContext.Vector
// 执行整组推理，产出按 Registry 顺序排列的预测列表。
// 上游未完成对齐（Vector 为空）属于编排错误，直接报错。
type PredictNode struct {
	Registry      *registry.Registry
	MaxConcurrent int
}

func (n *PredictNode) Name() string        { return "predict.panel" }
func (n *PredictNode) Kind() pipeline.Kind { return pipeline.KindPredict }

func (n *PredictNode) Process(
	ctx context.Context,
	pctx *core.PredictContext,
	_ []*core.Prediction,
) ([]*core.Prediction, error) {
	if pctx.Vector == nil {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput,
			"predict: feature vector not reconciled")
	}
	p := &Predictor{Registry: n.Registry, MaxConcurrent: n.MaxConcurrent}
	return p.PredictAll(ctx, pctx.Vector)
}
