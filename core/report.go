package core

import "strings"

// NoResistanceSummary 是无耐药判定时的固定总结文案。
const NoResistanceSummary = "All antibiotics predicted sensitive. Proceed with standard treatment."

// Report 是一次请求的完整结果：按组顺序排列的预测、临床建议与派生总结。
// 组装后不可变，也绝不跨请求合并。
type Report struct {
	// PatientID 调用方提供的患者标识（不透明，可为空）
	PatientID string

	// Predictions 按 Registry 顺序排列的预测结果，每个抗生素一条
	Predictions []*Prediction

	// Suggestions 临床决策建议（规则引擎产出，仅供参考，不校验临床正确性）
	Suggestions []string
}

// ResistantAntibiotics 返回判定为耐药的抗生素标签，保持组内顺序。
func (r *Report) ResistantAntibiotics() []string {
	var labels []string
	for _, p := range r.Predictions {
		if p.Resistant {
			labels = append(labels, p.Antibiotic)
		}
	}
	return labels
}

// Summary 是 Predictions 的纯派生函数：存在耐药判定时列出这些标签（组内顺序），
// 否则返回固定的无耐药文案。总在读取时重新计算，不冗余存储。
func (r *Report) Summary() string {
	resistant := r.ResistantAntibiotics()
	if len(resistant) == 0 {
		return NoResistanceSummary
	}
	return strings.Join(resistant, ", ")
}

// Attributions 返回标签到归因列表的映射，仅包含耐药判定且归因非空的标签。
func (r *Report) Attributions() map[string][]Attribution {
	m := make(map[string][]Attribution)
	for _, p := range r.Predictions {
		if p.Resistant && len(p.Attributions) > 0 {
			m[p.Antibiotic] = p.Attributions
		}
	}
	return m
}
