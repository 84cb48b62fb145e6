// Package explain 为单次耐药判定计算特征归因并排序截断。
//
// 归因是加性局部解释：各特征贡献之和等于本次预测的 margin 相对模型基线
// 期望的偏移，因此必须按请求、按标签重新计算，不得跨患者缓存。
// 只有判定为耐药的标签才会被解释（解释服务于需要临床行动的预测）；
// 归因失败仅使该标签的列表为空，绝不使整条请求失败。
package explain

import (
	"math"
	"sort"

	"github.com/rushteam/amrkit/core"
	"github.com/rushteam/amrkit/model"
)

// DefaultTopK 是默认保留的归因条数。
const DefaultTopK = 5

// Explain 计算 clf 对 vec 这一次预测的归因，按 |贡献值| 降序排列并截断到 topK。
// 并列时保持原始特征顺序（稳定排序），保证输出确定性。
// clf 不具备 Explainer 能力时返回 (nil, nil)：无归因不是错误。
func Explain(clf model.Classifier, vec *core.FeatureVector, topK int) ([]core.Attribution, error) {
	explainer, ok := clf.(model.Explainer)
	if !ok {
		return nil, nil
	}
	contribs, err := explainer.Contributions(vec)
	if err != nil {
		return nil, err
	}
	if len(contribs) != vec.Len() {
		return nil, core.NewDomainError(core.ModuleExplain, core.ErrorCodeInternalError,
			"explain: contribution length mismatch")
	}

	attrs := make([]core.Attribution, vec.Len())
	for i := range contribs {
		attrs[i] = core.Attribution{Feature: vec.Names[i], Value: contribs[i]}
	}
	sort.SliceStable(attrs, func(i, j int) bool {
		return math.Abs(attrs[i].Value) > math.Abs(attrs[j].Value)
	})

	if topK <= 0 {
		topK = DefaultTopK
	}
	if len(attrs) > topK {
		attrs = attrs[:topK]
	}
	return attrs, nil
}
