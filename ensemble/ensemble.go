// Package ensemble 对注册的全部抗生素模型执行整组推理。
//
// 各标签的推理相互独立（Registry 只读、无共享可变状态），因此可以并发执行；
// 结果写入按 Registry 序号预分配的槽位，完成顺序绝不泄漏到输出顺序。
// 任一分类器出错即整组失败（InferenceError），不返回部分结果：
// 临床侧必须看到完整的组面板，或者什么都不看到。
package ensemble

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/amrkit/core"
	"github.com/rushteam/amrkit/pkg/utils"
	"github.com/rushteam/amrkit/registry"
)

// Predictor 整组预测器。
type Predictor struct {
	Registry *registry.Registry

	// MaxConcurrent 最大并发数（0 表示无限制）
	MaxConcurrent int
}

// PredictAll 对 Registry 中每个条目调用一次 Classify，按 Registry 顺序
// 返回预测结果。判定与概率来自同一次 Classify 调用（原子推理契约）。
// ctx 取消时放弃在途推理并返回 ctx 错误。
func (p *Predictor) PredictAll(ctx context.Context, vec *core.FeatureVector) ([]*core.Prediction, error) {
	entries := p.Registry.Entries()
	results := make([]*core.Prediction, len(entries))

	eg, gctx := errgroup.WithContext(ctx)
	if p.MaxConcurrent > 0 {
		eg.SetLimit(p.MaxConcurrent)
	}

	for i, e := range entries {
		i, e := i, e
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome, err := e.Classifier.Classify(vec)
			if err != nil {
				return core.NewInferenceError(e.Label, err)
			}
			if outcome.Probability < 0 || outcome.Probability > 1 {
				return core.NewInferenceError(e.Label, core.NewDomainError(
					core.ModuleModel, core.ErrorCodeInternalError, "probability out of [0,1]"))
			}
			pred := core.NewPrediction(e.Label)
			pred.Resistant = outcome.Resistant
			pred.Probability = outcome.Probability
			pred.PutLabel("predict_model", utils.Label{Value: e.Classifier.Name(), Source: "predict"})
			results[i] = pred
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
