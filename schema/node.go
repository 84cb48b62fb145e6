package schema

import (
	"context"

	"github.com/rushteam/amrkit/core"
	"github.com/rushteam/amrkit/pipeline"
	"github.com/rushteam/amrkit/pkg/utils"
)

// ReconcileNode 是对齐阶段的 Pipeline Node：
// 把 PredictContext.Raw 对齐到 schema，写入 PredictContext.Vector。
// 对齐失败（缺列）时整条请求失败，不进入推理阶段。
type ReconcileNode struct {
	Schema *Schema
}

func (n *ReconcileNode) Name() string        { return "schema.reconcile" }
func (n *ReconcileNode) Kind() pipeline.Kind { return pipeline.KindReconcile }

func (n *ReconcileNode) Process(
	_ context.Context,
	pctx *core.PredictContext,
	preds []*core.Prediction,
) ([]*core.Prediction, error) {
	vec, err := Reconcile(pctx.Raw, n.Schema)
	if err != nil {
		return nil, err
	}
	pctx.Vector = vec
	pctx.PutLabel("schema", utils.Label{Value: "reconciled", Source: "reconcile"})
	return preds, nil
}
