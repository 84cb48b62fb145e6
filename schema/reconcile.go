package schema

import (
	"strings"

	"github.com/rushteam/amrkit/core"
	"github.com/rushteam/amrkit/pkg/conv"
)

// Reconcile 将任意原始表格行对齐到 schema：
//  1. 列名 trim 空白后与 schema 匹配，未命中的列直接丢弃
//  2. 命中的列按 schema 顺序重排为特征向量
//  3. 任一 schema 特征缺失即整体失败（MissingFeaturesError 列出全部缺失名），
//     绝不默认填充；零列命中时缺失列表即完整 schema，不做特殊分支
//
// 纯函数：不修改输入，不做 I/O。值转换失败（如非数值字符串）视同缺失处理，
// 因为该列无法进入向量。
func Reconcile(raw map[string]any, s *Schema) (*core.FeatureVector, error) {
	matched := make(map[string]float64, s.Len())
	for col, val := range raw {
		name := strings.TrimSpace(col)
		if !s.Contains(name) {
			continue
		}
		if f, ok := conv.ToFloat64(val); ok {
			matched[name] = f
		}
	}

	var missing []string
	for _, name := range s.features {
		if _, ok := matched[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, core.NewMissingFeaturesError(missing)
	}

	values := make([]float64, s.Len())
	for i, name := range s.features {
		values[i] = matched[name]
	}
	return &core.FeatureVector{Names: s.Features(), Values: values}, nil
}
