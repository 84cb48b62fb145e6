package core

import "github.com/rushteam/amrkit/pkg/utils"

// Attribution 是单特征对单次预测的局部贡献：有符号实数，
// 正值推向耐药（Resistant），负值推向敏感（Sensitive），绝对值表示影响强度。
type Attribution struct {
	Feature string  `json:"feature"`
	Value   float64 `json:"value"`
}

// Prediction 是预测链路中的统一承载结构：标签、判定、概率、归因、元信息。
// 判定（Resistant）与概率（Probability）必须来自同一次推理调用，二者不可分别求取。
// Labels 用于解释与策略驱动；Attributions 仅对耐药判定填充。
type Prediction struct {
	// Antibiotic 抗生素标签（组内唯一）
	Antibiotic string

	// Resistant 判定结果：true 为耐药，false 为敏感
	Resistant bool

	// Probability 耐药类的概率估计，取值 [0, 1]
	Probability float64

	// Attributions 按 |贡献值| 降序排列的归因列表（最多保留 Top-K），仅耐药判定填充
	Attributions []Attribution

	Meta   map[string]any
	Labels map[string]utils.Label
}

// NewPrediction 创建一条预测记录。
func NewPrediction(antibiotic string) *Prediction {
	return &Prediction{
		Antibiotic: antibiotic,
		Meta:       make(map[string]any),
		Labels:     make(map[string]utils.Label),
	}
}

// Verdict 返回判定的展示文案。
func (p *Prediction) Verdict() string {
	if p.Resistant {
		return "Resistant"
	}
	return "Sensitive"
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (p *Prediction) PutLabel(key string, lbl utils.Label) {
	if p.Labels == nil {
		p.Labels = make(map[string]utils.Label)
	}
	if old, ok := p.Labels[key]; ok {
		p.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	p.Labels[key] = lbl
}
