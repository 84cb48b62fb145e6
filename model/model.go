package model

import "github.com/rushteam/amrkit/core"

// Outcome 是一次原子推理的产出：判定与耐药类概率来自同一次评估，
// 不允许分两次调用分别求取（即使底层实现是确定性的，契约也如此约束）。
type Outcome struct {
	// Resistant 按模型自身的决策规则判定（各模型持有自己的阈值，不强制 0.5）
	Resistant bool

	// Probability 耐药类（正类）的概率估计，取值 [0, 1]
	Probability float64
}

// Classifier 是单个抗生素二分类器的最小抽象：输入对齐后的特征向量，
// 输出一次原子推理结果。具体实现可以是本地模型（LR/GBDT）或远程推理服务。
// 加载完成后实现必须可被并发只读调用。
type Classifier interface {
	Name() string
	Classify(vec *core.FeatureVector) (*Outcome, error)
}

// Explainer 是可选的归因能力：计算单次预测中每个特征的加性局部贡献
// （与 vec 顺序对齐；所有贡献之和等于本次 margin 相对基线期望的偏移）。
// 不实现此接口的分类器（如远程模型）其耐药判定的归因列表为空。
type Explainer interface {
	Contributions(vec *core.FeatureVector) ([]float64, error)
}
