package pipeline

import (
	"context"

	"github.com/rushteam/amrkit/core"
)

// Pipeline 是 amrkit 的核心抽象：把预测逻辑拆成可组合的 Node 链
// （Reconcile → Predict → Explain → Rule）。
// 数据严格单向流动，节点之间不回改彼此的产出。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	pctx *core.PredictContext,
	preds []*core.Prediction,
) ([]*core.Prediction, error) {
	cur := preds
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, pctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
