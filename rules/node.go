package rules

import (
	"context"

	"github.com/rushteam/amrkit/core"
	"github.com/rushteam/amrkit/pipeline"
	"github.com/rushteam/amrkit/pkg/utils"
)

// Node 是规则阶段的 Pipeline Node：按组顺序对每条预测求值规则集，
// 命中的建议累积到 PredictContext.Suggestions，并在预测上记录命中规则。
type Node struct {
	Rules []Rule
}

func (n *Node) Name() string        { return "rule.cel" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindRule }

func (n *Node) Process(
	_ context.Context,
	pctx *core.PredictContext,
	preds []*core.Prediction,
) ([]*core.Prediction, error) {
	for _, pred := range preds {
		msgs := Apply(n.Rules, pred)
		if len(msgs) == 0 {
			continue
		}
		pctx.Suggestions = append(pctx.Suggestions, msgs...)
		pred.PutLabel("rule", utils.Label{Value: "matched", Source: "rule"})
	}
	return preds, nil
}
