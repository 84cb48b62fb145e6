package explain

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/amrkit/core"
	"github.com/rushteam/amrkit/pipeline"
	"github.com/rushteam/amrkit/pkg/utils"
	"github.com/rushteam/amrkit/registry"
)

// Node 是归因阶段的 Pipeline Node：为每个耐药判定计算 Top-K 归因。
// 各标签的归因相互独立，可并发执行；单个标签失败只记录标签并留空列表，
// 不中断请求（归因是补充信息，预测才是主体）。
type Node struct {
	Registry      *registry.Registry
	TopK          int
	MaxConcurrent int
}

func (n *Node) Name() string        { return "explain.topk" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindExplain }

func (n *Node) Process(
	ctx context.Context,
	pctx *core.PredictContext,
	preds []*core.Prediction,
) ([]*core.Prediction, error) {
	if pctx.Vector == nil || len(preds) == 0 {
		return preds, nil
	}

	eg, gctx := errgroup.WithContext(ctx)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for _, pred := range preds {
		pred := pred
		if !pred.Resistant {
			continue
		}
		clf, ok := n.Registry.Get(pred.Antibiotic)
		if !ok {
			continue
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			attrs, err := Explain(clf, pctx.Vector, n.TopK)
			if err != nil {
				// 归因失败仅降级：记录领域错误，列表留空
				derr := core.NewExplanationError(pred.Antibiotic, err)
				pred.PutLabel("explain_error", utils.Label{Value: derr.Error(), Source: "explain"})
				return nil
			}
			pred.Attributions = attrs
			if len(attrs) > 0 {
				pred.PutLabel("explain_method", utils.Label{Value: "additive", Source: "explain"})
			}
			return nil
		})
	}

	// 仅 ctx 取消会从这里返回错误，归因自身的失败已在各自 goroutine 内吞掉
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return preds, nil
}
